// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/inp"
)

func Test_jac01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jac01. sparsity pattern")

	scn := inp.ScenarioA()
	scn.N = 10
	o, err := New(scn)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	n := o.Grid.N

	// 23 of the 25 field pairings are present; each contributes one
	// diagonal entry per cell
	if o.JacobianNnz() != 23*n {
		tst.Errorf("nnz: got %d, want %d\n", o.JacobianNnz(), 23*n)
		return
	}
	rows, cols := o.SparsityPattern()
	if len(rows) != 23*n || len(cols) != 23*n {
		tst.Errorf("pattern length: got %d/%d, want %d\n", len(rows), len(cols), 23*n)
		return
	}
	for k := range rows {
		fr, fc := rows[k]/n, cols[k]/n
		if rows[k]%n != cols[k]%n {
			tst.Errorf("off-diagonal entry (%d,%d) in a per-cell pattern\n", rows[k], cols[k])
			return
		}
		if fr == IPhi && (fc == ICA || fc == ICC) {
			tst.Errorf("porosity row must not couple to the solid fractions\n")
			return
		}
	}
}

// reactionTerms evaluates only the local reaction part of the right-hand
// side, for differencing against the analytic Jacobian
func reactionTerms(o *Model, y la.Vector) la.Vector {
	CA, CC, cCa, cCO3, Phi := o.Unpack(y)
	n := o.Grid.N
	r := la.NewVector(o.Ndim())
	for i := 0; i < n; i++ {
		mask := o.NotTooDeep[i] * o.NotTooShallow[i]
		bA, bC, _, _ := o.saturation(cCa[i]*cCO3[i], mask)
		coA := CA[i] * bA
		coC := CC[i] * bC
		ch := coA - o.Lambda*coC
		phi := Phi[i]
		r[ICA*n+i] = -o.Da * ((1.0-CA[i])*coA + o.Lambda*CA[i]*coC)
		r[ICC*n+i] = o.Da * (o.Lambda*(1.0-CC[i])*coC + CC[i]*coA)
		r[ICCa*n+i] = o.Da * (1.0 - phi) * (o.Delta - cCa[i]) * ch / phi
		r[ICCO3*n+i] = o.Da * (1.0 - phi) * (o.Delta - cCO3[i]) * ch / phi
		r[IPhi*n+i] = o.Da * (1.0 - phi) * ch
	}
	return r
}

func Test_jac02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("jac02. analytic derivatives vs finite differences")

	scn := inp.ScenarioA()
	scn.N = 10
	o, err := New(scn)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	n := o.Grid.N

	// a state covering both saturation branches inside and outside the
	// dissolution band (cells 1 and 2 carry mask=1)
	y := o.InitialState()
	cCa := o.Slice(y, ICCa)
	cCO3 := o.Slice(y, ICCO3)
	cCa[2], cCO3[2] = 2.5, 0.5 // supersaturated calcite, undersaturated aragonite
	cCa[3], cCO3[3] = 2.0, 1.0 // supersaturated on both
	cCa[7], cCO3[7] = 2.0, 1.0 // same branch, outside the band
	Phi := o.Slice(y, IPhi)
	Phi[4] = 0.5

	var T la.Triplet
	o.Jac(&T, 0, 0, y)
	J := T.ToDense()

	h := 1e-6
	for i := 0; i < n; i++ {
		for fc := 0; fc < NFields; fc++ {
			col := fc*n + i
			orig := y[col]
			y[col] = orig + h
			rp := reactionTerms(o, y)
			y[col] = orig - h
			rm := reactionTerms(o, y)
			y[col] = orig
			for fr := 0; fr < NFields; fr++ {
				row := fr*n + i
				want := (rp[row] - rm[row]) / (2.0 * h)
				if !blockPresent(fr, fc) {
					// the porosity row deliberately drops its CA and CC
					// couplings
					chk.Float64(tst, "dropped coupling", 1e-17, J.Get(row, col), 0.0)
					continue
				}
				chk.Float64(tst, "dJ", 1e-3, J.Get(row, col), want)
			}
		}
	}

	// no coupling between different cells
	chk.Float64(tst, "cross-cell (cCa)", 1e-17, J.Get(ICCa*n+2, ICCa*n+3), 0.0)
	chk.Float64(tst, "cross-cell (Phi)", 1e-17, J.Get(IPhi*n+4, ICCO3*n+5), 0.0)
}
