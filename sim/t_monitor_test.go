// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/mdl/diagenesis"
)

func Test_monitor01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("monitor01. crossing detection and interpolation")

	// two synthetic predicates: one crossing zero at t=0.5, one constant
	mon := newCrossingMonitor([]diagenesis.Event{
		{Name: "linear", F: func(t float64, y la.Vector) float64 { return t - 0.5 }},
		{Name: "constant", F: func(t float64, y la.Vector) float64 { return 1.0 }},
	})

	var y la.Vector
	crossed, terminal := mon.observe(0.0, y)
	if len(crossed) != 0 || terminal {
		tst.Errorf("the first observation cannot report a crossing\n")
		return
	}
	crossed, terminal = mon.observe(0.2, y)
	if len(crossed) != 0 || terminal {
		tst.Errorf("no crossing before t=0.5\n")
		return
	}
	crossed, terminal = mon.observe(1.0, y)
	if len(crossed) != 1 || crossed[0] != "linear" || terminal {
		tst.Errorf("expected a single non-terminal crossing, got %v\n", crossed)
		return
	}
	chk.Float64(tst, "interpolated crossing time", 1e-15, mon.Times["linear"][0], 0.5)
	if len(mon.Times["constant"]) != 0 {
		tst.Errorf("the constant predicate cannot cross\n")
		return
	}

	// no repeated report while the sign stays put
	crossed, _ = mon.observe(2.0, y)
	if len(crossed) != 0 {
		tst.Errorf("crossing reported twice\n")
		return
	}

	// crossing back is a new crossing
	mon2 := newCrossingMonitor([]diagenesis.Event{
		{Name: "vee", Terminal: true, F: func(t float64, y la.Vector) float64 {
			if t < 1 {
				return 0.5 - t
			}
			return t - 1.5
		}},
	})
	mon2.observe(0.0, y)
	_, terminal = mon2.observe(0.9, y)
	if !terminal {
		tst.Errorf("terminal crossing not flagged\n")
		return
	}
	mon2.observe(2.0, y)
	if len(mon2.Times["vee"]) != 2 {
		tst.Errorf("expected two crossings, got %d\n", len(mon2.Times["vee"]))
		return
	}
	chk.Float64(tst, "first crossing", 1e-15, mon2.Times["vee"][0], 0.5)

	// the second time is interpolated between the samples at 0.9 and 2.0,
	// not the exact root of the piecewise predicate
	chk.Float64(tst, "second crossing", 1e-14, mon2.Times["vee"][1], 0.9+1.1*0.4/0.9)
}

func Test_monitor02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("monitor02. touching zero counts once")

	mon := newCrossingMonitor([]diagenesis.Event{
		{Name: "touch", F: func(t float64, y la.Vector) float64 { return 1.0 - t }},
	})
	var y la.Vector
	mon.observe(0.0, y)
	crossed, _ := mon.observe(1.0, y) // lands exactly on zero
	if len(crossed) != 1 {
		tst.Errorf("reaching zero must count as a crossing\n")
		return
	}
	chk.Float64(tst, "crossing at the sample", 1e-15, mon.Times["touch"][0], 1.0)
	crossed, _ = mon.observe(1.0, y) // staying at zero is not a new crossing
	if len(crossed) != 0 {
		tst.Errorf("zero is not a sign change from zero\n")
	}
}
