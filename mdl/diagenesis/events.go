// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import (
	"math"

	"github.com/cpmech/gosl/la"
	"gonum.org/v1/gonum/floats"
)

// Event pairs a crossing predicate with its identifier and termination
// flag. The driver watches the sign of F along the integration and records
// the crossing times; with Terminal=false the integration continues.
type Event struct {
	Name     string
	Terminal bool
	F        func(t float64, y la.Vector) float64
}

// Events returns the predicate table for physically invalid excursions.
// All events are non-terminal: a crossing is recorded, not fatal, and the
// caller decides afterwards whether the run is still meaningful.
func (o *Model) Events() []Event {
	return []Event{
		{Name: "zeros", F: o.zeros},
		{Name: "zeros_CA", F: o.zerosCA},
		{Name: "zeros_CC", F: o.zerosCC},
		{Name: "ones_CA_plus_CC", F: o.onesCAplusCC},
		{Name: "ones_Phi", F: o.onesPhi},
		{Name: "zeros_U", F: o.zerosU},
		{Name: "zeros_W", F: o.zerosW},
	}
}

// zeros goes negative when any field anywhere does
func (o *Model) zeros(t float64, y la.Vector) float64 {
	return floats.Min(y)
}

// zerosCA goes negative when the aragonite fraction does
func (o *Model) zerosCA(t float64, y la.Vector) float64 {
	return floats.Min(o.Slice(y, ICA))
}

// zerosCC goes negative when the calcite fraction does
func (o *Model) zerosCC(t float64, y la.Vector) float64 {
	return floats.Min(o.Slice(y, ICC))
}

// onesCAplusCC goes positive when the total solid fraction exceeds one
func (o *Model) onesCAplusCC(t float64, y la.Vector) float64 {
	CA := o.Slice(y, ICA)
	CC := o.Slice(y, ICC)
	m := math.Inf(-1)
	for i := range CA {
		if s := CA[i] + CC[i]; s > m {
			m = s
		}
	}
	return m - 1.0
}

// onesPhi goes positive when the porosity exceeds one
func (o *Model) onesPhi(t float64, y la.Vector) float64 {
	return floats.Max(o.Slice(y, IPhi)) - 1.0
}

// zerosU goes negative when the solid burial velocity reverses. U is
// positive at every depth at the start of the integration, so it reaches
// zero first where it is smallest.
func (o *Model) zerosU(t float64, y la.Vector) float64 {
	Phi := o.Slice(y, IPhi)
	m := math.Inf(1)
	for _, phi := range Phi {
		if u := o.SolidVelocity(phi); u < m {
			m = u
		}
	}
	return m
}

// zerosW goes positive when the pore-water velocity reverses. W is
// negative at every depth at the start, so it reaches zero first where it
// is least negative.
func (o *Model) zerosW(t float64, y la.Vector) float64 {
	Phi := o.Slice(y, IPhi)
	m := math.Inf(-1)
	for _, phi := range Phi {
		if w := o.PoreWaterVelocity(phi); w > m {
			m = w
		}
	}
	return m
}
