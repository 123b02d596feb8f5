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
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/dynalyze/services/analysis/config"
	"github.com/AleutianAI/dynalyze/services/analysis/heisenbug"
	"github.com/AleutianAI/dynalyze/services/analysis/report"
)

// heisenbugCmd runs the race condition experiment in three scenarios.
//
// # Examples
//
//	dynalyze heisenbug
//	dynalyze heisenbug --config experiment.yaml
var heisenbugCmd = &cobra.Command{
	Use:   "heisenbug",
	Short: "Reproduce a race condition with index-targeted delays",
	Long: `Runs batches of concurrent withdrawal trials against an account with
a deliberately non-atomic read-modify-write, in three scenarios:

  1. unperturbed:  the lost-update window is narrow, anomalies are rare
  2. perturbed:    a delay injected at the balance read's execution
                   index widens the window, anomalies become common
  3. lock guarded: a mutex spans the read-modify-write, anomalies
                   cannot happen, perturbed or not

The contrast between 1 and 2 is the heisenbug: the defect's visibility
depends on timing that observation itself changes.`,
	Args: cobra.NoArgs,
	RunE: runHeisenbugCommand,
}

func runHeisenbugCommand(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSetup()
	if err != nil {
		return err
	}
	defer logger.Close()

	fmt.Println(report.SectionHeader("Heisenbug: Lost Updates Under Perturbation"))
	return runHeisenbugScenarios(cmd.Context(), cfg, true)
}

// runHeisenbugScenarios runs the three scenario batches. The demo
// command reuses it with terse output.
func runHeisenbugScenarios(ctx context.Context, cfg *config.Config, showTrials bool) error {
	base, err := cfg.Heisenbug.TrialConfig()
	if err != nil {
		return err
	}
	trials := cfg.Heisenbug.Trials
	perturb := heisenbug.NewPerturbator(nil, cfg.Heisenbug.PerturbDelay())

	fmt.Printf("workers %d, initial balance %d, amount %d, %d trials per scenario\n\n",
		base.Workers, base.Initial, base.Amount, trials)

	unperturbed, err := heisenbug.RunBatch(ctx, base, trials)
	if err != nil {
		return err
	}
	fmt.Println(report.BatchSummary("unperturbed", unperturbed))

	perturbedCfg := base
	perturbedCfg.Perturb = perturb
	perturbed, err := heisenbug.RunBatch(ctx, perturbedCfg, trials)
	if err != nil {
		return err
	}
	fmt.Println(report.BatchSummary("perturbed", perturbed))

	guardedCfg := base
	guardedCfg.Strategy = heisenbug.StrategyLockGuarded
	guardedCfg.Perturb = perturb
	guarded, err := heisenbug.RunBatch(ctx, guardedCfg, trials)
	if err != nil {
		return err
	}
	fmt.Println(report.BatchSummary("lock guarded, perturbed", guarded))

	if showTrials && len(perturbed.Trials) > 0 {
		fmt.Println("\nfirst perturbed trial:")
		fmt.Print(report.TrialSummary(perturbed.Trials[0]))
	}
	return nil
}
