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
	"github.com/AleutianAI/dynalyze/services/analysis/report"
)

var traceList bool

// traceCmd collects and prints a full execution trace.
//
// # Examples
//
//	dynalyze trace loop_sum
//	dynalyze trace buggy_max -v
//	dynalyze trace --list
var traceCmd = &cobra.Command{
	Use:   "trace [routine]",
	Short: "Collect an execution trace of a catalogued routine",
	Long: `Runs a catalogued routine under instrumentation and prints every
recorded event: routine entries and exits, statement executions with
their execution indices, and the inferred read and write sets.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTraceCommand,
}

func init() {
	traceCmd.Flags().BoolVar(&traceList, "list", false,
		"List the catalogued routines instead of tracing")
}

func runTraceCommand(cmd *cobra.Command, args []string) error {
	if traceList || len(args) == 0 {
		printCatalog()
		return nil
	}

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
	log, result, err := sess.TraceExecution(entry.Routine, entry.DemoArgs...)
	if err != nil {
		return err
	}

	fmt.Println(report.SectionHeader("Execution Trace"))
	fmt.Print(report.TraceListing(log))
	fmt.Printf("result: %v\n", result)
	return nil
}
