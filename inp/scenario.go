// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inp implements the input data read from a (.toml) scenario file.
// All parameters have explicit named fields with Scenario A defaults; a
// scenario file only needs to list the values it overrides.
package inp

import (
	"math"

	"github.com/BurntSushi/toml"
	"github.com/cpmech/gosl/chk"
)

// Scenario holds the physical and numerical parameters of one
// early-diagenesis run. Distances are in cm, times in years; the model
// works with the dimensionless versions obtained through Xstar and Tstar.
type Scenario struct {

	// identification
	Name string `toml:"name"` // scenario label, e.g. "A"

	// boundary (surface) values
	CA0   float64 `toml:"CA0"`   // aragonite fraction at the surface
	CC0   float64 `toml:"CC0"`   // calcite fraction at the surface
	CCa0  float64 `toml:"cCa0"`  // dissolved Ca concentration at the surface; 0 ⇒ 0.326e-3/√KC
	CCO30 float64 `toml:"cCO30"` // dissolved CO3 concentration at the surface; 0 ⇒ 0.326e-3/√KC
	Phi0  float64 `toml:"Phi0"`  // porosity at the surface

	// initial (uniform) values
	CAIni   float64 `toml:"CAIni"`   // initial aragonite fraction
	CCIni   float64 `toml:"CCIni"`   // initial calcite fraction
	CCaIni  float64 `toml:"cCaIni"`  // initial Ca concentration; 0 ⇒ surface value
	CCO3Ini float64 `toml:"cCO3Ini"` // initial CO3 concentration; 0 ⇒ surface value
	PhiIni  float64 `toml:"PhiIni"`  // initial porosity

	// reaction kinetics
	K1 float64 `toml:"k1"` // aragonite precipitation rate constant (1/a)
	K2 float64 `toml:"k2"` // aragonite dissolution rate constant (1/a)
	K3 float64 `toml:"k3"` // calcite precipitation rate constant (1/a)
	K4 float64 `toml:"k4"` // calcite dissolution rate constant (1/a)
	M1 float64 `toml:"m1"` // aragonite dissolution exponent
	M2 float64 `toml:"m2"` // aragonite precipitation exponent
	N1 float64 `toml:"n1"` // calcite precipitation exponent
	N2 float64 `toml:"n2"` // calcite dissolution exponent

	// solubilities and stoichiometry
	KA  float64 `toml:"KA"`  // aragonite solubility product
	KC  float64 `toml:"KC"`  // calcite solubility product
	MuA float64 `toml:"muA"` // molar mass of aragonite (g/mol)

	// densities and compaction
	Rhos     float64 `toml:"rhos"`     // sediment (solid) density (g/cm³); 0 ⇒ rhos0
	Rhos0    float64 `toml:"rhos0"`    // initial solid density; 0 ⇒ from surface composition
	Rhow     float64 `toml:"rhow"`     // pore water density (g/cm³)
	Beta     float64 `toml:"beta"`     // hydraulic conductivity-like constant (cm/a)
	B        float64 `toml:"b"`        // sediment compressibility (Pa⁻¹)
	PhiNR    float64 `toml:"PhiNR"`    // porosity in the non-reactive zone
	PhiInfty float64 `toml:"PhiInfty"` // porosity at infinite depth

	// diffusion
	D0Ca float64 `toml:"D0Ca"` // reference Ca diffusivity (cm²/a)
	DCa  float64 `toml:"DCa"`  // Ca diffusivity (cm²/a)
	DCO3 float64 `toml:"DCO3"` // CO3 diffusivity (cm²/a)

	// sedimentation and geometry
	SedRate      float64 `toml:"sedimentationrate"` // sedimentation rate (cm/a)
	MaxDepth     float64 `toml:"max_depth"`         // column depth (cm)
	ShallowLimit float64 `toml:"ShallowLimit"`      // top of the aragonite dissolution zone (cm)
	DeepLimit    float64 `toml:"DeepLimit"`         // bottom of the aragonite dissolution zone (cm)
	N            int     `toml:"N"`                 // number of depth cells; 0 ⇒ 2.5 cm resolution

	// numerics
	FiadeiroVeronis bool `toml:"fiadeiro_veronis"` // blend upwind/central differences; false ⇒ pure sign-based upwinding
}

// ScenarioA returns the parameter set of Scenario A from Table 1 of
// L'Heureux (2018)
func ScenarioA() *Scenario {
	o := &Scenario{
		Name:            "A",
		CA0:             0.6,
		CC0:             0.3,
		Phi0:            0.8,
		CAIni:           0.6,
		CCIni:           0.3,
		PhiIni:          0.8,
		K1:              1.0,
		K2:              1.0,
		K3:              0.1,
		K4:              0.1,
		M1:              2.48,
		M2:              2.48,
		N1:              2.8,
		N2:              2.8,
		KA:              math.Pow(10, -6.19),
		KC:              math.Pow(10, -6.37),
		MuA:             100.09,
		Rhow:            1.023,
		Beta:            0.1,
		B:               5.0e-4 * 0.8 * 0.8 * 0.8 / (0.8 * 3.0),
		PhiNR:           0.8,
		PhiInfty:        0.01,
		D0Ca:            131.9,
		DCa:             131.9,
		DCO3:            272.6,
		SedRate:         0.1,
		MaxDepth:        500.0,
		ShallowLimit:    50.0,
		DeepLimit:       150.0,
		FiadeiroVeronis: true,
	}
	o.Finalize()
	return o
}

// Finalize fills the fields that default to values derived from other
// fields. It is idempotent and must be called after overriding parameters.
func (o *Scenario) Finalize() {
	if o.Rhos0 == 0 {
		o.Rhos0 = 2.95*o.CA0 + 2.71*o.CC0 + 2.8*(1.0-(o.CA0+o.CC0))
	}
	if o.Rhos == 0 {
		o.Rhos = o.Rhos0
	}
	if o.CCa0 == 0 {
		o.CCa0 = 0.326e-3 / math.Sqrt(o.KC)
	}
	if o.CCO30 == 0 {
		o.CCO30 = 0.326e-3 / math.Sqrt(o.KC)
	}
	if o.CCaIni == 0 {
		o.CCaIni = o.CCa0
	}
	if o.CCO3Ini == 0 {
		o.CCO3Ini = o.CCO30
	}
	if o.N == 0 {
		o.N = int(o.MaxDepth / 500.0 * 200.0) // standard 2.5 cm resolution
	}
}

// Xstar returns the depth scaling factor (cm)
func (o *Scenario) Xstar() float64 { return o.D0Ca / o.SedRate }

// Tstar returns the time scaling factor (years)
func (o *Scenario) Tstar() float64 { return o.Xstar() / o.SedRate }

// Validate checks the parameter domain
func (o *Scenario) Validate() error {
	if o.SedRate <= 0 {
		return chk.Err("inp: sedimentation rate %g is invalid", o.SedRate)
	}
	if o.D0Ca <= 0 || o.DCa <= 0 || o.DCO3 <= 0 {
		return chk.Err("inp: diffusivities must be positive (D0Ca=%g, DCa=%g, DCO3=%g)", o.D0Ca, o.DCa, o.DCO3)
	}
	if o.KA <= 0 || o.KC <= 0 {
		return chk.Err("inp: solubility products must be positive (KA=%g, KC=%g)", o.KA, o.KC)
	}
	if o.MuA <= 0 || o.Rhow <= 0 || o.Rhos <= 0 {
		return chk.Err("inp: densities and molar mass must be positive")
	}
	if o.K2 <= 0 || o.K3 <= 0 {
		return chk.Err("inp: k2 and k3 must be positive (k2=%g, k3=%g)", o.K2, o.K3)
	}
	if o.K1 < 0 || o.K4 < 0 {
		return chk.Err("inp: k1 and k4 cannot be negative (k1=%g, k4=%g)", o.K1, o.K4)
	}
	for _, phi := range []float64{o.Phi0, o.PhiIni, o.PhiNR} {
		if phi <= 0 || phi >= 1 {
			return chk.Err("inp: porosity %g is outside (0,1)", phi)
		}
	}
	if o.PhiInfty <= 0 || o.PhiInfty >= 1 {
		return chk.Err("inp: PhiInfty=%g is outside (0,1)", o.PhiInfty)
	}
	if o.PhiNR == o.PhiInfty {
		return chk.Err("inp: PhiNR must differ from PhiInfty")
	}
	if o.B <= 0 || o.Beta <= 0 {
		return chk.Err("inp: b and beta must be positive (b=%g, beta=%g)", o.B, o.Beta)
	}
	if o.CA0 < 0 || o.CC0 < 0 || o.CA0+o.CC0 > 1 {
		return chk.Err("inp: surface composition CA0=%g, CC0=%g is invalid", o.CA0, o.CC0)
	}
	if o.CAIni < 0 || o.CCIni < 0 || o.CAIni+o.CCIni > 1 {
		return chk.Err("inp: initial composition CAIni=%g, CCIni=%g is invalid", o.CAIni, o.CCIni)
	}
	if o.MaxDepth <= 0 {
		return chk.Err("inp: max_depth=%g is invalid", o.MaxDepth)
	}
	if o.ShallowLimit < 0 || o.DeepLimit <= o.ShallowLimit {
		return chk.Err("inp: dissolution zone [%g, %g] is invalid", o.ShallowLimit, o.DeepLimit)
	}
	if o.N < 3 {
		return chk.Err("inp: N=%d depth cells is too few", o.N)
	}
	return nil
}

// Solver holds the time-integration settings
type Solver struct {
	Method    string  `toml:"method"`     // ode method; "radau5" (default) or any gosl/ode method
	ATol      float64 `toml:"atol"`       // absolute tolerance
	RTol      float64 `toml:"rtol"`       // relative tolerance
	FirstStep float64 `toml:"first_step"` // initial step size (dimensionless time)
	TEnd      float64 `toml:"t_end"`      // integration span in units of Tstar
	Fused     bool    `toml:"fused"`      // use the fused single-loop RHS evaluator
}

// Tracker holds progress-reporting and storage settings
type Tracker struct {
	ProgressUpdates int `toml:"progress_updates"` // number of progress log lines over the whole span
	Snapshots       int `toml:"snapshots"`        // number of stored states (besides the final one)
}

// Input bundles everything a run needs
type Input struct {
	Scenario Scenario `toml:"scenario"`
	Solver   Solver   `toml:"solver"`
	Tracker  Tracker  `toml:"tracker"`
}

// Default returns the default input: Scenario A integrated over one Tstar
// with the tolerances used for the published results
func Default() *Input {
	return &Input{
		Scenario: *ScenarioA(),
		Solver: Solver{
			Method:    "radau5",
			ATol:      1e-3,
			RTol:      1e-3,
			FirstStep: 1e-6,
			TEnd:      1.0,
			Fused:     true,
		},
		Tracker: Tracker{
			ProgressUpdates: 100,
			Snapshots:       100,
		},
	}
}

// Read loads an input file on top of the defaults and validates the result
func Read(fnamepath string) (*Input, error) {
	o := Default()
	if _, err := toml.DecodeFile(fnamepath, o); err != nil {
		return nil, chk.Err("inp: cannot read %q:\n%v", fnamepath, err)
	}
	o.Scenario.Finalize()
	if err := o.Scenario.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks the solver and tracker settings
func (o *Input) Validate() error {
	if o.Solver.Method == "" {
		o.Solver.Method = "radau5"
	}
	if o.Solver.ATol <= 0 || o.Solver.RTol <= 0 {
		return chk.Err("inp: tolerances must be positive (atol=%g, rtol=%g)", o.Solver.ATol, o.Solver.RTol)
	}
	if o.Solver.FirstStep <= 0 {
		return chk.Err("inp: first step %g is invalid", o.Solver.FirstStep)
	}
	if o.Solver.TEnd <= 0 {
		return chk.Err("inp: integration span %g is invalid", o.Solver.TEnd)
	}
	if o.Tracker.ProgressUpdates < 1 {
		o.Tracker.ProgressUpdates = 1
	}
	if o.Tracker.Snapshots < 1 {
		o.Tracker.Snapshots = 1
	}
	return nil
}
