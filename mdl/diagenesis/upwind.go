// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import "math"

// Sigma returns the Fiadeiro-Veronis upwind weight for one cell.
//
//	|Pe| < PecletMin : 0            (central differencing)
//	|Pe| > PecletMax : sign(W)      (fully one-sided)
//	otherwise        : coth(Pe) - 1/Pe
//
// The two guard branches are mandatory: the closed form divides by
// sinh(Pe), which vanishes at Pe=0 and overflows for large |Pe|. With the
// Fiadeiro-Veronis blend disabled the weight is sign(W) everywhere (pure
// upwinding).
func (o *Model) Sigma(pe, w float64) float64 {
	if !o.FV {
		return sign(w)
	}
	if math.Abs(pe) < o.PecletMin {
		return 0.0
	}
	if math.Abs(pe) > o.PecletMax {
		return sign(w)
	}
	return math.Cosh(pe)/math.Sinh(pe) - 1.0/pe
}

// BlendGradients combines forward- and backward-differenced gradients with
// weight sigma:
//
//	grad = ((1-sigma)·gradForw + (1+sigma)·gradBack) / 2
//
// sigma=+1 selects the backward difference, sigma=-1 the forward one and
// sigma=0 the central average.
func BlendGradients(sigma, forw, back float64) float64 {
	return 0.5 * ((1.0-sigma)*forw + (1.0+sigma)*back)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1.0
	case x < 0:
		return -1.0
	}
	return 0.0
}
