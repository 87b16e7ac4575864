// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_grid01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid01. construction and cell centres")

	if _, err := New(2, 1.0); err == nil {
		tst.Errorf("New should fail with too few cells\n")
		return
	}
	if _, err := New(10, 0.0); err == nil {
		tst.Errorf("New should fail with zero length\n")
		return
	}

	g, err := New(4, 2.0)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	chk.Float64(tst, "Dx", 1e-17, g.Dx, 0.5)
	chk.Array(tst, "X", 1e-15, g.X, []float64{0.25, 0.75, 1.25, 1.75})
}

func Test_grid02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid02. operators on linear and quadratic fields")

	n := 8
	g, err := New(n, 2.0)
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}

	// linear field with ghost values taken at the ghost-cell centres:
	// both differences and the Laplacian are exact
	a, b := 0.3, 1.7
	u := make([]float64, n)
	for i, x := range g.X {
		u[i] = a + b*x
	}
	bc := ValueBCs(a+b*(-g.Dx/2.0), a+b*(g.L+g.Dx/2.0))

	res := make([]float64, n)
	g.GradBackward(res, u, bc)
	for i := 0; i < n; i++ {
		chk.Float64(tst, "backward grad (linear)", 1e-13, res[i], b)
	}
	g.GradForward(res, u, bc)
	for i := 0; i < n; i++ {
		chk.Float64(tst, "forward grad (linear)", 1e-13, res[i], b)
	}
	g.Laplace(res, u, bc)
	for i := 0; i < n; i++ {
		chk.Float64(tst, "laplacian (linear)", 1e-12, res[i], 0)
	}

	// quadratic field: the centred second difference is exact
	for i, x := range g.X {
		u[i] = x * x
	}
	xt, xb := -g.Dx/2.0, g.L+g.Dx/2.0
	bc = ValueBCs(xt*xt, xb*xb)
	g.Laplace(res, u, bc)
	for i := 0; i < n; i++ {
		chk.Float64(tst, "laplacian (quadratic)", 1e-12, res[i], 2.0)
	}
}

func Test_grid03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid03. ghost-cell conventions")

	g, err := New(3, 3.0) // Dx = 1
	if err != nil {
		tst.Errorf("New failed: %v\n", err)
		return
	}
	u := []float64{2.0, 5.0, 11.0}
	res := make([]float64, 3)

	// fixed-value ghost: the ghost cell holds the given value itself
	bc := ValueBCs(1.0, 20.0)
	g.GradBackward(res, u, bc)
	chk.Array(tst, "backward, value ghosts", 1e-15, res, []float64{1, 3, 6})
	g.GradForward(res, u, bc)
	chk.Array(tst, "forward, value ghosts", 1e-15, res, []float64{3, 6, 9})
	g.Laplace(res, u, bc)
	chk.Array(tst, "laplacian, value ghosts", 1e-15, res, []float64{2, 3, 3})

	// zero-derivative ghost: the ghost cell mirrors the adjacent interior
	// cell, so boundary differences vanish
	bc = BCs{Top: BC{Kind: ZeroGrad}, Bot: BC{Kind: ZeroGrad}}
	g.GradBackward(res, u, bc)
	chk.Array(tst, "backward, mirror ghosts", 1e-15, res, []float64{0, 3, 6})
	g.GradForward(res, u, bc)
	chk.Array(tst, "forward, mirror ghosts", 1e-15, res, []float64{3, 6, 0})
	g.Laplace(res, u, bc)
	chk.Array(tst, "laplacian, mirror ghosts", 1e-15, res, []float64{3, 3, -6})

	// the backward stencil must ignore the bottom condition and the
	// forward stencil the top one
	huge := BCs{Top: BC{Value, 1.0}, Bot: BC{Value, 1e99}}
	g.GradBackward(res, u, huge)
	chk.Array(tst, "backward ignores bottom", 1e-15, res, []float64{1, 3, 6})
	huge = BCs{Top: BC{Value, 1e99}, Bot: BC{Value, 20.0}}
	g.GradForward(res, u, huge)
	chk.Array(tst, "forward ignores top", 1e-15, res, []float64{3, 6, 9})
}
