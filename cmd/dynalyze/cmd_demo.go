// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/AleutianAI/dynalyze/services/analysis/report"
	"github.com/AleutianAI/dynalyze/services/analysis/slicer"
	"github.com/AleutianAI/dynalyze/services/analysis/spectrum"
	"github.com/AleutianAI/dynalyze/services/analysis/targets"
)

var demoQuick bool

// demoCmd walks through every engine in sequence.
//
// # Examples
//
//	dynalyze demo
//	dynalyze demo --quick
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a guided tour of every analysis engine",
	Long: `Runs five demonstrations back to back: execution tracing, execution
indexing, dynamic backward slicing, spectrum-based fault localization,
and the heisenbug experiment. Pauses between sections unless --quick
is set.`,
	Args: cobra.NoArgs,
	RunE: runDemoCommand,
}

func init() {
	demoCmd.Flags().BoolVar(&demoQuick, "quick", false,
		"Skip the pauses between demo sections")
}

func runDemoCommand(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}
	defer logger.Close()
	if demoQuick {
		cfg.Demo.Quick = true
	}

	pause := func() {
		if d := cfg.Demo.Pause(); d > 0 {
			time.Sleep(d)
		}
	}

	// 1. Execution tracing.
	fmt.Println(report.SectionHeader("1. Execution Tracing"))
	fmt.Println("summing 0..4 with every statement recorded:")
	sess := collector.NewSession(collector.WithLogger(logger))
	sumLog, sum, err := sess.TraceExecution(targets.LoopSum, 5)
	if err != nil {
		return err
	}
	fmt.Print(report.TraceListing(sumLog))
	fmt.Printf("result: %v\n", sum)
	pause()

	// 2. Execution indexing, on recursion where contexts matter.
	fmt.Println(report.SectionHeader("2. Execution Indexing"))
	fmt.Println("fibonacci(4): the same line in different calls gets distinct indices:")
	fibSess := collector.NewSession(collector.WithLogger(logger))
	if _, _, err := fibSess.TraceExecution(targets.FibonacciBuggy, 4); err != nil {
		return err
	}
	assigner := fibSess.Assigner()
	fmt.Print(report.IndexedListing(assigner.Points(), assigner.Stats()))
	pause()

	// 3. Dynamic backward slicing.
	fmt.Println(report.SectionHeader("3. Dynamic Backward Slicing"))
	fmt.Println("which lines did the final sum actually depend on?")
	res, err := slicer.ComputeDynamicSlice(sumLog,
		execindex.Location{Routine: targets.RoutineLoopSum, Line: 4}, "result")
	if err != nil {
		return err
	}
	fmt.Print(report.SliceReport(res))
	pause()

	// 4. Fault localization against the seeded max defect.
	fmt.Println(report.SectionHeader("4. Spectrum-Based Fault Localization"))
	fmt.Println("buggy_max assigns b where it should assign c; the suite finds it:")
	formula, err := cfg.Localize.ParsedFormula()
	if err != nil {
		return err
	}
	localizer := spectrum.NewLocalizer(targets.BuggyMax, spectrum.WithLogger(logger))
	localizer.AddTestCases(targets.MaxTestCases()...)
	if err := localizer.RunTests(cmd.Context()); err != nil {
		return err
	}
	rankings, err := localizer.Rankings(formula)
	if err != nil {
		return err
	}
	fmt.Print(report.RankingTable(formula, rankings, cfg.Localize.TopN))
	pause()

	// 5. Heisenbug.
	fmt.Println(report.SectionHeader("5. Heisenbug: Races Under Observation"))
	return runHeisenbugScenarios(cmd.Context(), cfg, false)
}
