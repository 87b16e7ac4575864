// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_policy01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("policy01. NaN and Inf handling")

	p := DefaultFPPolicy()
	p.Check("ok", []float64{1, -2, 0, 1e300})

	func() {
		defer func() {
			if recover() == nil {
				tst.Errorf("Check should panic on NaN\n")
			}
		}()
		p.Check("nan", []float64{1, math.NaN()})
	}()

	func() {
		defer func() {
			if recover() == nil {
				tst.Errorf("Check should panic on Inf\n")
			}
		}()
		p.Check("inf", []float64{math.Inf(-1)})
	}()

	// a disabled policy tolerates everything
	off := FPPolicy{}
	off.Check("off", []float64{math.NaN(), math.Inf(1)})
}
