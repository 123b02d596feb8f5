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

// indexCmd shows the execution index of every executed statement.
//
// # Examples
//
//	dynalyze index fibonacci_buggy
//
// The recursive routines are the interesting ones here: the same
// source line executed in different calling contexts gets distinct
// indices.
var indexCmd = &cobra.Command{
	Use:   "index <routine>",
	Short: "Assign execution indices to a routine's statement instances",
	Long: `Runs a catalogued routine under instrumentation and prints the
execution index of every statement instance: the calling context, the
statement, and the per-context instance counter. Together the three
pinpoint one dynamic execution point, even across loop iterations and
recursive calls.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndexCommand,
}

func runIndexCommand(cmd *cobra.Command, args []string) error {
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
	if _, _, err := sess.TraceExecution(entry.Routine, entry.DemoArgs...); err != nil {
		return err
	}

	assigner := sess.Assigner()
	fmt.Println(report.SectionHeader("Execution Indexing"))
	fmt.Print(report.IndexedListing(assigner.Points(), assigner.Stats()))
	return nil
}
