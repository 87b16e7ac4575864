// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diagenesis implements the L'Heureux early-diagenesis model: five
// coupled reaction-diffusion-advection equations for the aragonite and
// calcite fractions (CA, CC), the dissolved calcium and carbonate
// concentrations (cCa, cCO3) and the porosity (Phi) in a 1-D sediment
// column.
//
// The Model exposes the two entry points consumed by the stiff ODE solver:
// Fun (the right-hand side) and Jac (a local, reaction-term Jacobian on a
// fixed block sparsity pattern), plus the crossing predicates used to
// detect physically invalid excursions.
//
//	Reference:
//	[1] L'Heureux I (2018) Diagenetic self-organization and stochastic
//	    resonance in a model of limestone-marl sequences. Geofluids,
//	    vol. 2018, Article ID 4968315. http://dx.doi.org/10.1155/2018/4968315
package diagenesis

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/grid"
	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/inp"
)

// indices of the five fields in the packed state vector
const (
	ICA   = iota // aragonite fraction
	ICC          // calcite fraction
	ICCa         // dissolved calcium
	ICCO3        // dissolved carbonate
	IPhi         // porosity
	NFields
)

// FieldNames lists the field labels in packing order
var FieldNames = []string{"CA", "CC", "cCa", "cCO3", "Phi"}

// Model holds the parameters, derived constants, boundary conditions and
// scratch space of one integration run. All derived constants are written
// once by New and are read-only afterwards; a Model is not safe for
// concurrent use because the evaluators share scratch buffers.
type Model struct {

	// grid
	Grid *grid.Grid // dimensionless depth grid, [0, MaxDepth/Xstar]

	// boundary conditions per field. CA and CC carry a large sentinel as
	// bottom value; it must never enter their gradients because only
	// backward differencing is applied to them.
	BcCA   grid.BCs
	BcCC   grid.BCs
	BcCCa  grid.BCs
	BcCCO3 grid.BCs
	BcPhi  grid.BCs

	// kinetics parameters
	M1, M2 float64 // aragonite dissolution/precipitation exponents
	N1, N2 float64 // calcite precipitation/dissolution exponents

	// derived constants
	Nu1     float64 // k1/k2
	Nu2     float64 // k4/k3
	KRat    float64 // KC/KA
	Lambda  float64 // k3/k2
	Da      float64 // Damköhler number: k2·Tstar
	Delta   float64 // rhos/(muA·√KC)
	DCa     float64 // DCa/D0Ca
	DCO3    float64 // DCO3/D0Ca
	Rhorat  float64 // (rhos/rhow - 1)·beta/sedimentationrate
	Rhorat0 float64 // (rhos0/rhow - 1)·beta/sedimentationrate
	Auxcon  float64 // beta/(D0Ca·b·g·rhow·(PhiNR - PhiInfty))
	Presum  float64 // 1 - rhorat0·Phi0³·F(Phi0)/(1 - Phi0)

	// Fiadeiro-Veronis guard band. coth(Pe) diverges for small Pe and
	// loses precision for very large |Pe|; outside [PecletMin, PecletMax]
	// the scheme falls back to central or fully one-sided differencing.
	PecletMin float64
	PecletMax float64

	// FV enables Péclet-weighted blending; when false the ion and
	// porosity gradients use pure sign-of-W upwinding
	FV bool

	// initial values
	CAIni, CCIni, CCaIni, CCO3Ini, PhiIni float64

	// depth band where aragonite dissolution kinetics apply
	NotTooShallow []float64 // 1 below ShallowLimit, else 0
	NotTooDeep    []float64 // 1 above DeepLimit, else 0

	// numeric-error policy, scoped to this model
	Policy FPPolicy

	// Fused selects the single-loop evaluator in Fun
	Fused bool

	scn *inp.Scenario
	ws  workspace
}

// workspace holds the per-evaluation scratch arrays
type workspace struct {
	caBack, ccBack               []float64
	ccaBack, ccaForw, ccaLap     []float64
	cco3Back, cco3Forw, cco3Lap  []float64
	phiBack, phiForw, phiLap     []float64
	f, u, w, denom               []float64
	sigCCa, sigCCO3, sigPhi      []float64
	ccaGrad, cco3Grad, phiGrad   []float64
	coA, coC, ch, dphi           []float64
}

// New returns a model ready for integration
func New(scn *inp.Scenario) (*Model, error) {
	scn.Finalize()
	if err := scn.Validate(); err != nil {
		return nil, err
	}

	xstar := scn.Xstar()
	tstar := scn.Tstar()

	g, err := grid.New(scn.N, scn.MaxDepth/xstar)
	if err != nil {
		return nil, err
	}

	o := &Model{
		Grid:   g,
		BcCA:   grid.ValueBCs(scn.CA0, bottomSentinel),
		BcCC:   grid.ValueBCs(scn.CC0, bottomSentinel),
		BcCCa:  grid.ValueZeroGradBCs(scn.CCa0),
		BcCCO3: grid.ValueZeroGradBCs(scn.CCO30),
		BcPhi:  grid.ValueZeroGradBCs(scn.Phi0),

		M1: scn.M1, M2: scn.M2,
		N1: scn.N1, N2: scn.N2,

		Nu1:     scn.K1 / scn.K2,
		Nu2:     scn.K4 / scn.K3,
		KRat:    scn.KC / scn.KA,
		Lambda:  scn.K3 / scn.K2,
		Da:      scn.K2 * tstar,
		Delta:   scn.Rhos / (scn.MuA * math.Sqrt(scn.KC)),
		DCa:     scn.DCa / scn.D0Ca,
		DCO3:    scn.DCO3 / scn.D0Ca,
		Rhorat:  (scn.Rhos/scn.Rhow - 1.0) * scn.Beta / scn.SedRate,
		Rhorat0: (scn.Rhos0/scn.Rhow - 1.0) * scn.Beta / scn.SedRate,

		PecletMin: 1e-2,
		PecletMax: 1e2,
		FV:        scn.FiadeiroVeronis,

		CAIni: scn.CAIni, CCIni: scn.CCIni,
		CCaIni: scn.CCaIni, CCO3Ini: scn.CCO3Ini,
		PhiIni: scn.PhiIni,

		Policy: DefaultFPPolicy(),
		scn:    scn,
	}

	gravity := 100.0 * 9.81 // cm/s² in the cgs-like unit mix of [1]
	o.Auxcon = scn.Beta / (scn.D0Ca * scn.B * gravity * scn.Rhow * (scn.PhiNR - scn.PhiInfty))
	o.Presum = 1.0 - o.Rhorat0*math.Pow(scn.Phi0, 3.0)*fF(scn.Phi0)/(1.0-scn.Phi0)

	// Heaviside masks marking the aragonite dissolution band; zero exactly
	// at the limits
	o.NotTooShallow = make([]float64, g.N)
	o.NotTooDeep = make([]float64, g.N)
	shallow := scn.ShallowLimit / xstar
	deep := scn.DeepLimit / xstar
	for i, x := range g.X {
		if x > shallow {
			o.NotTooShallow[i] = 1.0
		}
		if x < deep {
			o.NotTooDeep[i] = 1.0
		}
	}

	o.allocWorkspace(g.N)
	return o, nil
}

// bottomSentinel is the degenerate bottom condition for CA and CC. The
// model has no physical bottom boundary condition for the two solid
// fractions; the sentinel makes any leak into the results obvious.
const bottomSentinel = 1e99

// Scenario returns the input parameters this model was built from
func (o *Model) Scenario() *inp.Scenario { return o.scn }

// Ndim returns the size of the packed state vector
func (o *Model) Ndim() int { return NFields * o.Grid.N }

// Slice returns the portion of y holding field f (no copy)
func (o *Model) Slice(y la.Vector, f int) la.Vector {
	n := o.Grid.N
	return y[f*n : (f+1)*n]
}

// Unpack splits y into the five field arrays (no copy)
func (o *Model) Unpack(y la.Vector) (CA, CC, cCa, cCO3, Phi la.Vector) {
	return o.Slice(y, ICA), o.Slice(y, ICC), o.Slice(y, ICCa), o.Slice(y, ICCO3), o.Slice(y, IPhi)
}

// Pack concatenates five field arrays into a fresh state vector
func (o *Model) Pack(CA, CC, cCa, cCO3, Phi []float64) la.Vector {
	n := o.Grid.N
	for _, f := range [][]float64{CA, CC, cCa, cCO3, Phi} {
		if len(f) != n {
			chk.Panic("diagenesis: cannot pack field with %d cells into a %d-cell grid", len(f), n)
		}
	}
	y := la.NewVector(NFields * n)
	copy(y[ICA*n:], CA)
	copy(y[ICC*n:], CC)
	copy(y[ICCa*n:], cCa)
	copy(y[ICCO3*n:], cCO3)
	copy(y[IPhi*n:], Phi)
	return y
}

// InitialState returns the uniform initial state vector
func (o *Model) InitialState() la.Vector {
	y := la.NewVector(o.Ndim())
	ini := []float64{o.CAIni, o.CCIni, o.CCaIni, o.CCO3Ini, o.PhiIni}
	n := o.Grid.N
	for f := 0; f < NFields; f++ {
		for i := 0; i < n; i++ {
			y[f*n+i] = ini[f]
		}
	}
	return y
}

// fF is the exponential compaction factor F(φ) = 1 - exp(10 - 10/φ)
func fF(phi float64) float64 {
	return 1.0 - math.Exp(10.0-10.0/phi)
}

// SolidVelocity returns the solid-phase burial velocity U(φ)
func (o *Model) SolidVelocity(phi float64) float64 {
	return o.Presum + o.Rhorat*phi*phi*phi*fF(phi)/(1.0-phi)
}

// PoreWaterVelocity returns the pore-water velocity W(φ) relative to the
// solid phase
func (o *Model) PoreWaterVelocity(phi float64) float64 {
	return o.Presum - o.Rhorat*phi*phi*fF(phi)
}

// PorosityDiffusivity returns the porosity diffusion coefficient dφ(φ)
func (o *Model) PorosityDiffusivity(phi float64) float64 {
	return o.Auxcon * fF(phi) * phi * phi * phi / (1.0 - phi)
}

// saturation computes the bracketed rate factors of the two reaction
// terms and their derivatives with respect to the ion product cCa·cCO3.
//
//	coA = CA·bA   with  bA = (1 - min(Ω_A,1))^m2·mask - nu1·(max(Ω_A,1) - 1)^m1
//	coC = CC·bC   with  bC = (max(Ω_C,1) - 1)^n1 - nu2·(1 - min(Ω_C,1))^n2
//
// where Ω_C = cCa·cCO3 and Ω_A = Ω_C·KRat. The two-sided clamps keep
// precipitation and dissolution on separate branches of the power laws.
func (o *Model) saturation(prod, mask float64) (bA, bC, dbA, dbC float64) {
	three := prod * o.KRat
	threeUpp := math.Min(three, 1.0)
	threeLow := math.Max(three, 1.0)
	twoUpp := math.Min(prod, 1.0)
	twoLow := math.Max(prod, 1.0)

	bA = math.Pow(1.0-threeUpp, o.M2)*mask - o.Nu1*math.Pow(threeLow-1.0, o.M1)
	bC = math.Pow(twoLow-1.0, o.N1) - o.Nu2*math.Pow(1.0-twoUpp, o.N2)

	// clamp-side derivatives; exactly at the equilibrium ratio both sides
	// are flat
	if three < 1.0 {
		dbA = -o.M2 * math.Pow(1.0-three, o.M2-1.0) * o.KRat * mask
	} else if three > 1.0 {
		dbA = -o.Nu1 * o.M1 * math.Pow(three-1.0, o.M1-1.0) * o.KRat
	}
	if prod > 1.0 {
		dbC = o.N1 * math.Pow(prod-1.0, o.N1-1.0)
	} else if prod < 1.0 {
		dbC = o.Nu2 * o.N2 * math.Pow(1.0-prod, o.N2-1.0)
	}
	return
}

// allocWorkspace allocates the scratch arrays of the evaluators
func (o *Model) allocWorkspace(n int) {
	w := &o.ws
	for _, dst := range []*[]float64{
		&w.caBack, &w.ccBack,
		&w.ccaBack, &w.ccaForw, &w.ccaLap,
		&w.cco3Back, &w.cco3Forw, &w.cco3Lap,
		&w.phiBack, &w.phiForw, &w.phiLap,
		&w.f, &w.u, &w.w, &w.denom,
		&w.sigCCa, &w.sigCCO3, &w.sigPhi,
		&w.ccaGrad, &w.cco3Grad, &w.phiGrad,
		&w.coA, &w.coC, &w.ch, &w.dphi,
	} {
		*dst = make([]float64, n)
	}
}
