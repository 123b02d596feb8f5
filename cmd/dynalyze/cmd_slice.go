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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/AleutianAI/dynalyze/services/analysis/execindex"
	"github.com/AleutianAI/dynalyze/services/analysis/report"
	"github.com/AleutianAI/dynalyze/services/analysis/slicer"
)

var (
	sliceLine int
	sliceVar  string
)

// sliceCmd computes a dynamic backward slice over a fresh trace.
//
// # Examples
//
//	dynalyze slice loop_sum --line 4 --var result
//	dynalyze slice buggy_max --line 6 --var maxVal
var sliceCmd = &cobra.Command{
	Use:   "slice <routine>",
	Short: "Compute a dynamic backward slice from a criterion",
	Long: `Runs a catalogued routine, then walks its trace backwards from the
criterion (a line and a variable) collecting every line the criterion's
value actually depended on in this run, through data and control
dependences.`,
	Args: cobra.ExactArgs(1),
	RunE: runSliceCommand,
}

func init() {
	sliceCmd.Flags().IntVar(&sliceLine, "line", 0, "Criterion line number (required)")
	sliceCmd.Flags().StringVar(&sliceVar, "var", "", "Criterion variable name (required)")
	_ = sliceCmd.MarkFlagRequired("line")
	_ = sliceCmd.MarkFlagRequired("var")
}

func runSliceCommand(cmd *cobra.Command, args []string) error {
	_, logger, err := loadSetup()
	if err != nil {
		return err
	}
	defer logger.Close()

	entry, err := resolveTarget(args[0])
	if err != nil {
		return err
	}

	sess := collector.NewSession(collector.WithLogger(logger))
	log, _, err := sess.TraceExecution(entry.Routine, entry.DemoArgs...)
	if err != nil {
		return err
	}

	target := execindex.Location{Routine: log.Routine(), Line: sliceLine}
	res, err := slicer.ComputeDynamicSlice(log, target, sliceVar)
	if err != nil {
		return err
	}

	fmt.Println(report.SectionHeader("Dynamic Backward Slice"))
	fmt.Print(report.SliceReport(res))
	return nil
}
