// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Fun evaluates the right-hand side of the five coupled equations at the
// packed state y, writing the time derivatives into f (same layout). The
// signature matches gosl's ode.Func so the method value can be handed to
// the solver directly. Physically invalid values of y do not fail here;
// they are reported through the crossing predicates. The numeric-error
// policy panics on NaN/Inf in the result.
func (o *Model) Fun(f la.Vector, dx, x float64, y la.Vector) {
	if o.Fused {
		o.funFused(f, y)
	} else {
		o.funReference(f, y)
	}
	o.Policy.Check("rhs", f)
}

// funReference is the straightforward array-pass evaluator. It is the
// behavioural reference for funFused; both must produce identical values
// up to floating-point summation order.
func (o *Model) funReference(f la.Vector, y la.Vector) {
	CA, CC, cCa, cCO3, Phi := o.Unpack(y)
	w := &o.ws
	n := o.Grid.N
	dx := o.Grid.Dx

	// reaction terms from the clamped saturation products
	for i := 0; i < n; i++ {
		mask := o.NotTooDeep[i] * o.NotTooShallow[i]
		bA, bC, _, _ := o.saturation(cCa[i]*cCO3[i], mask)
		w.coA[i] = CA[i] * bA
		w.coC[i] = CC[i] * bC
		w.ch[i] = w.coA[i] - o.Lambda*w.coC[i]
	}

	// compaction factor, velocities, tortuosity denominator and porosity
	// diffusivity
	for i := 0; i < n; i++ {
		phi := Phi[i]
		w.f[i] = fF(phi)
		w.u[i] = o.Presum + o.Rhorat*phi*phi*phi*w.f[i]/(1.0-phi)
		w.w[i] = o.Presum - o.Rhorat*phi*phi*w.f[i]
		w.denom[i] = 1.0 - 2.0*math.Log(phi)
		w.dphi[i] = o.Auxcon * w.f[i] * phi * phi * phi / (1.0 - phi)
	}

	// spatial derivatives. CA and CC get backward differences only: their
	// bottom boundary condition is a sentinel and must not leak in.
	o.Grid.GradBackward(w.caBack, CA, o.BcCA)
	o.Grid.GradBackward(w.ccBack, CC, o.BcCC)
	o.Grid.GradBackward(w.ccaBack, cCa, o.BcCCa)
	o.Grid.GradForward(w.ccaForw, cCa, o.BcCCa)
	o.Grid.Laplace(w.ccaLap, cCa, o.BcCCa)
	o.Grid.GradBackward(w.cco3Back, cCO3, o.BcCCO3)
	o.Grid.GradForward(w.cco3Forw, cCO3, o.BcCCO3)
	o.Grid.Laplace(w.cco3Lap, cCO3, o.BcCCO3)
	o.Grid.GradBackward(w.phiBack, Phi, o.BcPhi)
	o.Grid.GradForward(w.phiForw, Phi, o.BcPhi)
	o.Grid.Laplace(w.phiLap, Phi, o.BcPhi)

	// Fiadeiro-Veronis weights. The ion Péclet numbers carry the
	// porosity-dependent tortuosity factor 1 - 2·ln(φ); the porosity
	// equation uses its own diffusivity instead.
	for i := 0; i < n; i++ {
		common := w.w[i] * dx / 2.0
		w.sigCCa[i] = o.Sigma(common*w.denom[i]/o.DCa, w.w[i])
		w.sigCCO3[i] = o.Sigma(common*w.denom[i]/o.DCO3, w.w[i])
		w.sigPhi[i] = o.Sigma(common/w.dphi[i], w.w[i])
	}
	for i := 0; i < n; i++ {
		w.ccaGrad[i] = BlendGradients(w.sigCCa[i], w.ccaForw[i], w.ccaBack[i])
		w.cco3Grad[i] = BlendGradients(w.sigCCO3[i], w.cco3Forw[i], w.cco3Back[i])
		w.phiGrad[i] = BlendGradients(w.sigPhi[i], w.phiForw[i], w.phiBack[i])
	}

	// assemble the five derivative fields
	fCA, fCC, fcCa, fcCO3, fPhi := o.Unpack(f)
	for i := 0; i < n; i++ {
		fCA[i] = -w.u[i]*w.caBack[i] - o.Da*((1.0-CA[i])*w.coA[i]+o.Lambda*CA[i]*w.coC[i])
		fCC[i] = -w.u[i]*w.ccBack[i] + o.Da*(o.Lambda*(1.0-CC[i])*w.coC[i]+CC[i]*w.coA[i])
	}
	for i := 0; i < n; i++ {
		phi := Phi[i]
		phiDenom := phi / w.denom[i]
		gradPhiDenom := w.phiGrad[i] * (w.denom[i] + 2.0) / (w.denom[i] * w.denom[i])
		fcCa[i] = (w.ccaGrad[i]*gradPhiDenom+phiDenom*w.ccaLap[i])*o.DCa/phi -
			w.w[i]*w.ccaGrad[i] +
			o.Da*(1.0-phi)*(o.Delta-cCa[i])*w.ch[i]/phi
		fcCO3[i] = (w.cco3Grad[i]*gradPhiDenom+phiDenom*w.cco3Lap[i])*o.DCO3/phi -
			w.w[i]*w.cco3Grad[i] +
			o.Da*(1.0-phi)*(o.Delta-cCO3[i])*w.ch[i]/phi
		dWdx := -o.Rhorat * w.phiGrad[i] * (2.0*phi*w.f[i] + 10.0*(w.f[i]-1.0))
		fPhi[i] = -(phi*dWdx + w.w[i]*w.phiGrad[i]) +
			w.dphi[i]*w.phiLap[i] +
			o.Da*(1.0-phi)*w.ch[i]
	}
}
