// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package out saves integration results to disk and renders depth
// profiles of the final state.
package out

import (
	"encoding/json"
	"os"

	"github.com/cpmech/gosl/chk"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/sim"
)

// Save writes the results to path as indented JSON
func Save(path string, res *sim.Results) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return chk.Err("out: cannot encode results: %v", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return chk.Err("out: cannot write %q: %v", path, err)
	}
	return nil
}

// Load reads results previously written by Save
func Load(path string) (*sim.Results, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("out: cannot read %q: %v", path, err)
	}
	var res sim.Results
	if err := json.Unmarshal(b, &res); err != nil {
		return nil, chk.Err("out: cannot decode %q: %v", path, err)
	}
	return &res, nil
}
