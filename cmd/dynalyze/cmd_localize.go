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

	"github.com/AleutianAI/dynalyze/services/analysis/report"
	"github.com/AleutianAI/dynalyze/services/analysis/spectrum"
	"github.com/AleutianAI/dynalyze/services/analysis/targets"
)

var (
	localizeFormula string
	localizeTopN    int
)

// localizeCmd ranks a routine's lines by suspiciousness.
//
// # Examples
//
//	dynalyze localize buggy_max
//	dynalyze localize factorial_buggy --formula tarantula
var localizeCmd = &cobra.Command{
	Use:   "localize <routine>",
	Short: "Rank a routine's lines by suspiciousness from its test suite",
	Long: `Runs the routine's built-in test suite under instrumentation,
aggregates which lines each passing and failing case executed, and
ranks the lines with a suspiciousness formula. Routines with suites:
buggy_max, correct_max, factorial_buggy, correct_factorial,
is_prime_buggy, correct_is_prime.`,
	Args: cobra.ExactArgs(1),
	RunE: runLocalizeCommand,
}

func init() {
	localizeCmd.Flags().StringVar(&localizeFormula, "formula", "",
		"Suspiciousness formula: tarantula or ochiai (config default if empty)")
	localizeCmd.Flags().IntVar(&localizeTopN, "top", 0,
		"Show only the top N lines (config default if zero)")
}

// suiteFor maps a catalogued routine to its localization suite.
func suiteFor(name string) ([]spectrum.TestCase, bool) {
	switch name {
	case "buggy_max", "correct_max":
		return targets.MaxTestCases(), true
	case "factorial_buggy", "correct_factorial":
		return targets.FactorialTestCases(), true
	case "is_prime_buggy", "correct_is_prime":
		return targets.PrimeTestCases(), true
	default:
		return nil, false
	}
}

func runLocalizeCommand(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}
	defer logger.Close()

	entry, err := resolveTarget(args[0])
	if err != nil {
		return err
	}
	cases, ok := suiteFor(entry.Name)
	if !ok {
		return fmt.Errorf("no test suite for %q", entry.Name)
	}

	formulaName := localizeFormula
	if formulaName == "" {
		formulaName = cfg.Localize.Formula
	}
	formula, err := spectrum.ParseFormula(formulaName)
	if err != nil {
		return err
	}
	topN := localizeTopN
	if topN == 0 {
		topN = cfg.Localize.TopN
	}

	localizer := spectrum.NewLocalizer(entry.Routine, spectrum.WithLogger(logger))
	localizer.AddTestCases(cases...)
	if err := localizer.RunTests(cmd.Context()); err != nil {
		return err
	}

	fmt.Println(report.SectionHeader("Spectrum-Based Fault Localization"))
	for _, res := range localizer.Results() {
		status := "pass"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Printf("  %s  %s got %v\n", status, res.Case, res.Actual)
	}
	fmt.Println()

	rankings, err := localizer.Rankings(formula)
	if err != nil {
		return err
	}
	fmt.Print(report.RankingTable(formula, rankings, topN))

	if entry.Defect != "" {
		top, err := localizer.MostSuspicious(formula)
		if err == nil {
			fmt.Printf("\nmost suspicious: %s (seeded defect: %s)\n", top.Location, entry.Defect)
		}
	}
	return nil
}
