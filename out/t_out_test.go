// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/inp"
	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/mdl/diagenesis"
	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/sim"
)

func Test_out01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out01. results roundtrip")

	res := &sim.Results{
		T: []float64{0.5, 1.0},
		Y: [][]float64{{1, 2, 3}, {4, 5, 6}},
		EventTimes: map[string][]float64{
			"zeros_CA": {0.7},
		},
		CoveredTime: 1.0,
		Nfeval:      42,
	}

	fn := filepath.Join(tst.TempDir(), "results.json")
	if err := Save(fn, res); err != nil {
		tst.Errorf("Save failed: %v\n", err)
		return
	}
	back, err := Load(fn)
	if err != nil {
		tst.Errorf("Load failed: %v\n", err)
		return
	}
	chk.Array(tst, "T", 1e-17, back.T, res.T)
	chk.Array(tst, "final state", 1e-17, back.Final(), res.Final())
	chk.Array(tst, "event times", 1e-17, back.EventTimes["zeros_CA"], res.EventTimes["zeros_CA"])
	if back.Nfeval != 42 {
		tst.Errorf("Nfeval: got %d, want 42\n", back.Nfeval)
		return
	}

	if _, err := Load(filepath.Join(tst.TempDir(), "missing.json")); err == nil {
		tst.Errorf("Load should fail on a missing file\n")
	}
}

func Test_out02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("out02. depth-profile figure")

	scn := inp.ScenarioA()
	scn.N = 10
	m, err := diagenesis.New(scn)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	fn := filepath.Join(tst.TempDir(), "profiles.png")
	if err := PlotProfiles(fn, m, m.InitialState(), "initial state"); err != nil {
		tst.Errorf("PlotProfiles failed: %v\n", err)
		return
	}
	st, err := os.Stat(fn)
	if err != nil || st.Size() == 0 {
		tst.Errorf("figure was not written\n")
	}
}
