// Copyright 2025 The RTM Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// rtm integrates the coupled aragonite/calcite/porosity diagenesis model
// over a one-dimensional sediment column and writes the resulting depth
// profiles to disk.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/inp"
	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/out"
	"github.com/MindTheGap-ERC/reactive-transport-model-for-limestone-marl-sequences/sim"
)

func main() {
	var (
		cfgPath  string
		outPath  string
		plotPath string
		tEnd     float64
		fused    bool
		verbose  bool
	)

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}

	cmd := &cobra.Command{
		Use:   "rtm",
		Short: "reactive-transport model for limestone-marl sequences",
		Long: "rtm solves the coupled equations for aragonite, calcite, the pore-water\n" +
			"calcium and carbonate concentrations and the porosity of a compacting\n" +
			"sediment column. Without --config it runs the default scenario.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}

			in := inp.Default()
			if cfgPath != "" {
				var err error
				if in, err = inp.Read(cfgPath); err != nil {
					return err
				}
				log.WithField("config", cfgPath).Info("loaded input")
			}
			if cmd.Flags().Changed("end") {
				in.Solver.TEnd = tEnd
			}
			if cmd.Flags().Changed("fused") {
				in.Solver.Fused = fused
			}

			s, err := sim.New(in, log)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"cells": s.Mdl.Grid.N,
				"tend":  in.Solver.TEnd,
				"years": in.Solver.TEnd * in.Scenario.Tstar(),
			}).Info("starting integration")

			res, err := s.Run()
			if err != nil {
				return err
			}

			if err := out.Save(outPath, res); err != nil {
				return err
			}
			log.WithField("path", outPath).Info("results written")

			if plotPath != "" {
				if err := out.PlotProfiles(plotPath, s.Mdl, res.Final(), "final depth profiles"); err != nil {
					return err
				}
				log.WithField("path", plotPath).Info("profiles plotted")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "TOML input file (default: built-in scenario)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "results.json", "output path for the results")
	cmd.Flags().StringVarP(&plotPath, "plot", "p", "", "write final depth profiles to this image file")
	cmd.Flags().Float64Var(&tEnd, "end", 0, "override the dimensionless end time")
	cmd.Flags().BoolVar(&fused, "fused", true, "use the fused right-hand-side evaluator")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
