// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package grid implements a uniform one-dimensional cell-centred mesh with
// the difference operators needed by the diagenesis equations: backward and
// forward first differences and the centred second difference (Laplacian).
// Boundary conditions enter through ghost cells: a fixed-value condition
// sets the ghost cell to the given value and a zero-derivative condition
// mirrors the adjacent interior cell.
package grid

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

// Kind distinguishes the supported boundary condition kinds
type Kind int

const (
	Value    Kind = iota // fixed value in the ghost cell
	ZeroGrad             // zero derivative across the boundary
)

// BC holds one boundary condition
type BC struct {
	Kind Kind    // kind of condition
	Val  float64 // value; used by Value kind only
}

// BCs holds the top (x=0) and bottom (x=L) conditions of one field
type BCs struct {
	Top BC
	Bot BC
}

// ValueBCs returns fixed-value conditions at both ends
func ValueBCs(top, bot float64) BCs {
	return BCs{Top: BC{Value, top}, Bot: BC{Value, bot}}
}

// ValueZeroGradBCs returns a fixed value at the top and a zero-derivative
// condition at the bottom
func ValueZeroGradBCs(top float64) BCs {
	return BCs{Top: BC{Value, top}, Bot: BC{Kind: ZeroGrad}}
}

// Grid is a uniform cell-centred grid with N cells over [0, L]
type Grid struct {
	N  int       // number of cells
	L  float64   // domain length
	Dx float64   // cell size
	X  []float64 // cell centre coordinates
}

// New returns a new grid with n cells over [0, L]
func New(n int, L float64) (*Grid, error) {
	if n < 3 {
		return nil, chk.Err("grid: at least 3 cells are required. n=%d is invalid", n)
	}
	if L <= 0 {
		return nil, chk.Err("grid: domain length must be positive. L=%g is invalid", L)
	}
	o := &Grid{N: n, L: L, Dx: L / float64(n)}
	o.X = utl.LinSpace(o.Dx/2.0, L-o.Dx/2.0, n)
	return o, nil
}

// ghostTop returns the value of the virtual cell above the first cell
func ghostTop(u []float64, bc BC) float64 {
	if bc.Kind == Value {
		return bc.Val
	}
	return u[0]
}

// ghostBot returns the value of the virtual cell below the last cell
func ghostBot(u []float64, bc BC) float64 {
	if bc.Kind == Value {
		return bc.Val
	}
	return u[len(u)-1]
}

// GradBackward computes the backward-differenced gradient of u into res.
// Only the top condition is consulted; the bottom ghost cell never enters
// the backward stencil.
func (o *Grid) GradBackward(res, u []float64, bc BCs) {
	res[0] = (u[0] - ghostTop(u, bc.Top)) / o.Dx
	for i := 1; i < o.N; i++ {
		res[i] = (u[i] - u[i-1]) / o.Dx
	}
}

// GradForward computes the forward-differenced gradient of u into res.
// Only the bottom condition is consulted.
func (o *Grid) GradForward(res, u []float64, bc BCs) {
	for i := 0; i < o.N-1; i++ {
		res[i] = (u[i+1] - u[i]) / o.Dx
	}
	res[o.N-1] = (ghostBot(u, bc.Bot) - u[o.N-1]) / o.Dx
}

// Laplace computes the centred second difference of u into res, using both
// ghost cells.
func (o *Grid) Laplace(res, u []float64, bc BCs) {
	dxx := o.Dx * o.Dx
	res[0] = (u[1] - 2.0*u[0] + ghostTop(u, bc.Top)) / dxx
	for i := 1; i < o.N-1; i++ {
		res[i] = (u[i+1] - 2.0*u[i] + u[i-1]) / dxx
	}
	res[o.N-1] = (ghostBot(u, bc.Bot) - 2.0*u[o.N-1] + u[o.N-2]) / dxx
}
