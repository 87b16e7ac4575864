// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// funFused is the performance-tuned evaluator: after the difference
// operators have produced the gradient and Laplacian arrays, all remaining
// arithmetic runs in a single pass over the cells with scalar temporaries.
// Every per-cell quantity is computed before it is consumed and no cell
// reads another cell's temporaries, so the fusion introduces no
// write/read hazards; cross-cell coupling enters only through the already
// finalized stencil arrays.
func (o *Model) funFused(f la.Vector, y la.Vector) {
	CA, CC, cCa, cCO3, Phi := o.Unpack(y)
	w := &o.ws
	n := o.Grid.N
	dx := o.Grid.Dx

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

	for i := 0; i < n; i++ {
		phi := Phi[i]
		F := fF(phi)
		U := o.Presum + o.Rhorat*phi*phi*phi*F/(1.0-phi)
		W := o.Presum - o.Rhorat*phi*phi*F
		denom := 1.0 - 2.0*math.Log(phi)
		oneMinusPhi := 1.0 - phi
		dphi := o.Auxcon * F * phi * phi * phi / oneMinusPhi

		common := W * dx / 2.0
		sigCCa := o.Sigma(common*denom/o.DCa, W)
		sigCCO3 := o.Sigma(common*denom/o.DCO3, W)
		sigPhi := o.Sigma(common/dphi, W)

		ccaGrad := BlendGradients(sigCCa, w.ccaForw[i], w.ccaBack[i])
		cco3Grad := BlendGradients(sigCCO3, w.cco3Forw[i], w.cco3Back[i])
		phiGrad := BlendGradients(sigPhi, w.phiForw[i], w.phiBack[i])

		helper1 := phi / denom
		helper2 := phiGrad * (2.0 + denom) / (denom * denom)
		helperCCa := o.DCa * (helper2*ccaGrad + helper1*w.ccaLap[i])
		helperCCO3 := o.DCO3 * (helper2*cco3Grad + helper1*w.cco3Lap[i])

		mask := o.NotTooDeep[i] * o.NotTooShallow[i]
		bA, bC, _, _ := o.saturation(cCa[i]*cCO3[i], mask)
		coA := CA[i] * bA
		coC := CC[i] * bC
		ch := coA - o.Lambda*coC

		dWdx := -o.Rhorat * phiGrad * (2.0*phi*F + 10.0*(F-1.0))

		f[ICA*n+i] = -U*w.caBack[i] - o.Da*((1.0-CA[i])*coA+o.Lambda*CA[i]*coC)
		f[ICC*n+i] = -U*w.ccBack[i] + o.Da*(o.Lambda*(1.0-CC[i])*coC+CC[i]*coA)
		f[ICCa*n+i] = helperCCa/phi - W*ccaGrad +
			o.Da*oneMinusPhi*(o.Delta-cCa[i])*ch/phi
		f[ICCO3*n+i] = helperCCO3/phi - W*cco3Grad +
			o.Da*oneMinusPhi*(o.Delta-cCO3[i])*ch/phi
		f[IPhi*n+i] = -(dWdx*phi + W*phiGrad) + dphi*w.phiLap[i] +
			o.Da*oneMinusPhi*ch
	}
}
