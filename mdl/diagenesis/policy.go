// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diagenesis

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// FPPolicy is the numeric-error policy of one model instance. Division by
// zero, overflow and invalid operations surface as Inf or NaN in the
// computed derivatives; with the corresponding flag set the evaluation
// panics right away instead of feeding the integrator garbage. Underflow
// flushes to zero in IEEE arithmetic and is always tolerated. The policy
// is scoped to the model, so concurrent integrations (e.g. in tests) do
// not share error state.
type FPPolicy struct {
	RaiseNaN bool // panic on NaN in a computed derivative
	RaiseInf bool // panic on ±Inf in a computed derivative
}

// DefaultFPPolicy raises on both NaN and Inf
func DefaultFPPolicy() FPPolicy {
	return FPPolicy{RaiseNaN: true, RaiseInf: true}
}

// Check scans v and panics according to the policy. ctx names the
// operation for the error message.
func (o FPPolicy) Check(ctx string, v []float64) {
	if !o.RaiseNaN && !o.RaiseInf {
		return
	}
	for i, x := range v {
		if o.RaiseNaN && math.IsNaN(x) {
			chk.Panic("diagenesis: %s produced NaN at component %d", ctx, i)
		}
		if o.RaiseInf && math.IsInf(x, 0) {
			chk.Panic("diagenesis: %s produced Inf at component %d", ctx, i)
		}
	}
}
