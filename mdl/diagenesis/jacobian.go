// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import "github.com/cpmech/gosl/la"

// blockPresent reports whether block (i,j) of the 5×5 block Jacobian is
// part of the sparsity pattern. The porosity row carries no CA or CC
// columns; every other pairing is present.
func blockPresent(i, j int) bool {
	return i < NFields-1 || j > 1
}

// JacobianNnz returns the number of structural nonzeros of the Jacobian
func (o *Model) JacobianNnz() int {
	count := 0
	for i := 0; i < NFields; i++ {
		for j := 0; j < NFields; j++ {
			if blockPresent(i, j) {
				count++
			}
		}
	}
	return count * o.Grid.N
}

// SparsityPattern returns the row/column indices of the structural
// nonzeros. Each present block is purely diagonal: the pattern is the
// local (per-cell) coupling approximation, not the banded structure of
// the difference stencils.
func (o *Model) SparsityPattern() (rows, cols []int) {
	n := o.Grid.N
	rows = make([]int, 0, o.JacobianNnz())
	cols = make([]int, 0, o.JacobianNnz())
	for i := 0; i < NFields; i++ {
		for j := 0; j < NFields; j++ {
			if !blockPresent(i, j) {
				continue
			}
			for k := 0; k < n; k++ {
				rows = append(rows, i*n+k)
				cols = append(cols, j*n+k)
			}
		}
	}
	return
}

// Jac fills dfdy with the approximate Jacobian at state y: the analytic
// derivatives of the local reaction terms on the fixed sparsity pattern.
// Transport contributions are deliberately absent; the stiff solver uses
// this matrix to precondition its Newton iterations, not as an exact
// linearization. The signature matches gosl's ode.JacF.
func (o *Model) Jac(dfdy *la.Triplet, dx, x float64, y la.Vector) {
	ndim := o.Ndim()
	if dfdy.Max() == 0 {
		dfdy.Init(ndim, ndim, o.JacobianNnz())
	}
	dfdy.Start()

	CA, CC, cCa, cCO3, Phi := o.Unpack(y)
	n := o.Grid.N

	for i := 0; i < n; i++ {
		mask := o.NotTooDeep[i] * o.NotTooShallow[i]
		bA, bC, dbA, dbC := o.saturation(cCa[i]*cCO3[i], mask)
		coA := CA[i] * bA
		coC := CC[i] * bC
		ch := coA - o.Lambda*coC

		// derivatives of coA, coC with respect to the two ions (chain
		// rule through the product cCa·cCO3)
		dcoAdcCa := CA[i] * dbA * cCO3[i]
		dcoAdcCO3 := CA[i] * dbA * cCa[i]
		dcoCdcCa := CC[i] * dbC * cCO3[i]
		dcoCdcCO3 := CC[i] * dbC * cCa[i]

		// derivatives of the common factor coA - λ·coC
		dchdcCa := dcoAdcCa - o.Lambda*dcoCdcCa
		dchdcCO3 := dcoAdcCO3 - o.Lambda*dcoCdcCO3

		phi := Phi[i]
		omp := 1.0 - phi
		g := o.Da * omp / phi

		// row CA: f = -Da·((1-CA)·coA + λ·CA·coC)
		o.putBlock(dfdy, ICA, ICA, i, -o.Da*((1.0-CA[i])*bA-coA+o.Lambda*coC))
		o.putBlock(dfdy, ICA, ICC, i, -o.Da*o.Lambda*CA[i]*bC)
		o.putBlock(dfdy, ICA, ICCa, i, -o.Da*((1.0-CA[i])*dcoAdcCa+o.Lambda*CA[i]*dcoCdcCa))
		o.putBlock(dfdy, ICA, ICCO3, i, -o.Da*((1.0-CA[i])*dcoAdcCO3+o.Lambda*CA[i]*dcoCdcCO3))
		o.putBlock(dfdy, ICA, IPhi, i, 0)

		// row CC: f = +Da·(λ·(1-CC)·coC + CC·coA)
		o.putBlock(dfdy, ICC, ICA, i, o.Da*CC[i]*bA)
		o.putBlock(dfdy, ICC, ICC, i, o.Da*(o.Lambda*((1.0-CC[i])*bC-coC)+coA))
		o.putBlock(dfdy, ICC, ICCa, i, o.Da*(o.Lambda*(1.0-CC[i])*dcoCdcCa+CC[i]*dcoAdcCa))
		o.putBlock(dfdy, ICC, ICCO3, i, o.Da*(o.Lambda*(1.0-CC[i])*dcoCdcCO3+CC[i]*dcoAdcCO3))
		o.putBlock(dfdy, ICC, IPhi, i, 0)

		// row cCa: f = Da·(1-φ)·(δ-cCa)·ch/φ
		o.putBlock(dfdy, ICCa, ICA, i, g*(o.Delta-cCa[i])*bA)
		o.putBlock(dfdy, ICCa, ICC, i, -g*(o.Delta-cCa[i])*o.Lambda*bC)
		o.putBlock(dfdy, ICCa, ICCa, i, g*(-ch+(o.Delta-cCa[i])*dchdcCa))
		o.putBlock(dfdy, ICCa, ICCO3, i, g*(o.Delta-cCa[i])*dchdcCO3)
		o.putBlock(dfdy, ICCa, IPhi, i, -o.Da*(o.Delta-cCa[i])*ch/(phi*phi))

		// row cCO3: f = Da·(1-φ)·(δ-cCO3)·ch/φ
		o.putBlock(dfdy, ICCO3, ICA, i, g*(o.Delta-cCO3[i])*bA)
		o.putBlock(dfdy, ICCO3, ICC, i, -g*(o.Delta-cCO3[i])*o.Lambda*bC)
		o.putBlock(dfdy, ICCO3, ICCa, i, g*(o.Delta-cCO3[i])*dchdcCa)
		o.putBlock(dfdy, ICCO3, ICCO3, i, g*(-ch+(o.Delta-cCO3[i])*dchdcCO3))
		o.putBlock(dfdy, ICCO3, IPhi, i, -o.Da*(o.Delta-cCO3[i])*ch/(phi*phi))

		// row Phi: f = Da·(1-φ)·ch. The CA and CC columns are outside
		// the sparsity pattern.
		o.putBlock(dfdy, IPhi, ICCa, i, o.Da*omp*dchdcCa)
		o.putBlock(dfdy, IPhi, ICCO3, i, o.Da*omp*dchdcCO3)
		o.putBlock(dfdy, IPhi, IPhi, i, -o.Da*ch)
	}
}

// putBlock stores one diagonal entry of block (fr,fc)
func (o *Model) putBlock(dfdy *la.Triplet, fr, fc, i int, v float64) {
	n := o.Grid.N
	dfdy.Put(fr*n+i, fc*n+i, v)
}
