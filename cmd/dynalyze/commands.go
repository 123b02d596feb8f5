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
	"strings"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dynalyze/pkg/logging"
	"github.com/AleutianAI/dynalyze/services/analysis/config"
	"github.com/AleutianAI/dynalyze/services/analysis/targets"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dynalyze",
	Short: "Dynamic program analysis toolkit",
	Long: `dynalyze traces instrumented routines and analyzes the traces.

Engines:
  trace      Collect an execution trace with read/write sets
  index      Assign execution indices to every statement instance
  slice      Compute a dynamic backward slice from a criterion
  localize   Rank lines by suspiciousness from a test suite
  heisenbug  Reproduce a race condition with index-targeted delays
  demo       Run all of the above as a guided tour

Routines come from a built-in catalogue of small programs with seeded
defects; run "dynalyze trace --list" to see them.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Path to a YAML configuration file (embedded defaults if empty)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(localizeCmd)
	rootCmd.AddCommand(heisenbugCmd)
	rootCmd.AddCommand(demoCmd)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadSetup loads the configuration and builds a logger honoring the
// configured level and the --verbose override.
func loadSetup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}
	if flagVerbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Config{Level: level, Service: "dynalyze"})
	return cfg, logger, nil
}

// resolveTarget looks a routine up in the catalogue, listing the
// available names on a miss.
func resolveTarget(name string) (targets.Entry, error) {
	e, ok := targets.Lookup(name)
	if !ok {
		names := make([]string, 0)
		for _, entry := range targets.Catalog() {
			names = append(names, entry.Name)
		}
		return targets.Entry{}, fmt.Errorf("unknown routine %q, available: %s",
			name, strings.Join(names, ", "))
	}
	return e, nil
}

// printCatalog lists every catalogued routine with its seeded defect.
func printCatalog() {
	for _, e := range targets.Catalog() {
		if e.Defect != "" {
			fmt.Printf("  %-22s defect: %s\n", e.Name, e.Defect)
		} else {
			fmt.Printf("  %-22s correct\n", e.Name)
		}
	}
}
