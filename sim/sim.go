// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim drives the time integration of the diagenesis model. It
// wires the model's right-hand side and Jacobian into gosl's stiff ODE
// machinery, watches the physical-validity events along the accepted
// steps, and collects snapshots of the state for output.
package sim

import (
	"math"
	"time"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
	"github.com/sirupsen/logrus"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/inp"
	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/mdl/diagenesis"
)

// Results collects what one integration run produced
type Results struct {
	T []float64   // snapshot times [dimensionless]
	Y [][]float64 // snapshot states, one flat 5N vector per entry of T

	// EventTimes maps each event name to its crossing times
	EventTimes map[string][]float64

	CoveredTime float64       // dimensionless time actually reached
	Elapsed     time.Duration // wall-clock duration of the solve

	// solver statistics
	Nfeval    int // number of function evaluations
	Njeval    int // number of Jacobian evaluations
	Naccepted int // number of accepted steps
}

// Final returns the last stored state
func (o *Results) Final() []float64 {
	return o.Y[len(o.Y)-1]
}

// Simulation couples a model instance with the solver and tracking
// settings of one input set
type Simulation struct {
	Mdl *diagenesis.Model
	In  *inp.Input
	Log *logrus.Logger
}

// New builds the model from the input's scenario and returns a ready
// simulation
func New(in *inp.Input, log *logrus.Logger) (o *Simulation, err error) {
	defer func() { err = recoverErr(recover(), err) }()
	if err = in.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	m, err := diagenesis.New(&in.Scenario)
	if err != nil {
		return nil, err
	}
	m.Fused = in.Solver.Fused
	return &Simulation{Mdl: m, In: in, Log: log}, nil
}

// Run integrates from the initial state to Solver.TEnd. Event crossings
// are logged and recorded but never stop the integration; numeric-policy
// violations inside the model surface as an error.
func (o *Simulation) Run() (res *Results, err error) {
	defer func() { err = recoverErr(recover(), err) }()

	m := o.Mdl
	sv := o.In.Solver
	tr := o.In.Tracker
	tstar := o.In.Scenario.Tstar()

	conf := ode.NewConfig(sv.Method, "", nil)
	conf.SetTols(sv.ATol, sv.RTol)
	conf.IniH = sv.FirstStep

	mon := newCrossingMonitor(m.Events())
	res = &Results{EventTimes: mon.Times}

	snapEvery := sv.TEnd / float64(tr.Snapshots)
	nextSnap := snapEvery
	progEvery := sv.TEnd / float64(tr.ProgressUpdates)
	nextProg := progEvery
	started := time.Now()

	conf.SetStepOut(true, func(istep int, h, x float64, y la.Vector) (stop bool) {
		crossed, _ := mon.observe(x, y)
		for _, name := range crossed {
			o.Log.WithFields(logrus.Fields{
				"t":     x,
				"years": x * tstar,
			}).Warnf("event %q crossed", name)
		}
		for x >= nextSnap-1e-15 && len(res.T) < tr.Snapshots {
			res.T = append(res.T, x)
			res.Y = append(res.Y, append([]float64(nil), y...))
			nextSnap += snapEvery
		}
		if x >= nextProg {
			o.Log.WithFields(logrus.Fields{
				"step":     istep,
				"h":        h,
				"progress": math.Min(x/sv.TEnd, 1.0),
				"elapsed":  time.Since(started).Round(time.Millisecond),
			}).Info("integrating")
			for nextProg <= x {
				nextProg += progEvery
			}
		}
		res.CoveredTime = x
		return false
	})

	sol := ode.NewSolver(m.Ndim(), conf, m.Fun, m.Jac, nil)
	defer sol.Free()

	y := la.Vector(m.InitialState())
	sol.Solve(y, 0, sv.TEnd)

	// the output callback fires on accepted steps only; make sure the
	// final state is stored even when the last step lands between
	// snapshot marks
	if len(res.T) == 0 || res.T[len(res.T)-1] < sv.TEnd {
		res.T = append(res.T, sv.TEnd)
		res.Y = append(res.Y, append([]float64(nil), y...))
	}
	res.CoveredTime = sv.TEnd
	res.Elapsed = time.Since(started)
	res.Nfeval = sol.Stat.Nfeval
	res.Njeval = sol.Stat.Njeval
	res.Naccepted = sol.Stat.Naccepted

	o.Log.WithFields(logrus.Fields{
		"elapsed":   res.Elapsed.Round(time.Millisecond),
		"nfeval":    res.Nfeval,
		"njeval":    res.Njeval,
		"naccepted": res.Naccepted,
		"years":     res.CoveredTime * tstar,
	}).Info("integration finished")

	for _, ev := range m.Events() {
		ts := res.EventTimes[ev.Name]
		if len(ts) == 0 {
			continue
		}
		years := make([]float64, len(ts))
		for i, t := range ts {
			years[i] = t * tstar
		}
		o.Log.WithFields(logrus.Fields{
			"count": len(ts),
			"years": years,
		}).Warnf("event %q crossed during the run", ev.Name)
	}
	return res, nil
}

// recoverErr converts gosl panics into returned errors
func recoverErr(r interface{}, prev error) error {
	if r == nil {
		return prev
	}
	return chk.Err("%v", r)
}
