// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package out

import (
	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/mdl/diagenesis"
)

// PlotProfiles renders all five fields of state y against depth and saves
// the figure to path (format chosen by extension, e.g. .png or .pdf).
// Depth is converted back to centimetres with the scenario's length scale.
func PlotProfiles(path string, m *diagenesis.Model, y []float64, title string) error {
	xstar := m.Scenario().Xstar()

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "depth [cm]"
	p.Y.Label.Text = "field value [-]"

	args := make([]interface{}, 0, 2*diagenesis.NFields)
	for field := 0; field < diagenesis.NFields; field++ {
		vals := m.Slice(y, field)
		xy := make(plotter.XYs, len(vals))
		for i, v := range vals {
			xy[i].X = m.Grid.X[i] * xstar
			xy[i].Y = v
		}
		args = append(args, diagenesis.FieldNames[field], xy)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return chk.Err("out: cannot build profile lines: %v", err)
	}
	if err := p.Save(7*vg.Inch, 5*vg.Inch, path); err != nil {
		return chk.Err("out: cannot save plot %q: %v", path, err)
	}
	return nil
}
