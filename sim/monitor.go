// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/cpmech/gosl/la"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/mdl/diagenesis"
)

// crossingMonitor watches the sign of every event predicate along the
// accepted steps of the integration. A sign change between two observations
// is recorded as a crossing, with the time located by linear interpolation
// between the two step ends.
type crossingMonitor struct {
	events  []diagenesis.Event
	prev    []float64
	prevT   float64
	started bool

	// Times holds the recorded crossing times per event name
	Times map[string][]float64
}

func newCrossingMonitor(events []diagenesis.Event) *crossingMonitor {
	return &crossingMonitor{
		events: events,
		prev:   make([]float64, len(events)),
		Times:  map[string][]float64{},
	}
}

// observe evaluates the predicates at (t, y) and records crossings since
// the previous observation. It returns the names of the events that
// crossed and whether any of them is terminal.
func (o *crossingMonitor) observe(t float64, y la.Vector) (crossed []string, terminal bool) {
	for k, ev := range o.events {
		cur := ev.F(t, y)
		if o.started && signChanged(o.prev[k], cur) {
			tc := o.prevT
			if cur != o.prev[k] {
				tc += (t - o.prevT) * o.prev[k] / (o.prev[k] - cur)
			}
			o.Times[ev.Name] = append(o.Times[ev.Name], tc)
			crossed = append(crossed, ev.Name)
			if ev.Terminal {
				terminal = true
			}
		}
		o.prev[k] = cur
	}
	o.prevT = t
	o.started = true
	return
}

func signChanged(a, b float64) bool {
	return (a < 0 && b >= 0) || (a > 0 && b <= 0)
}
