// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package heisenbug

import (
	"context"

	"github.com/AleutianAI/dynalyze/pkg/logging"
	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"golang.org/x/sync/errgroup"
)

// Trial configuration defaults.
const (
	DefaultWorkers = 3
	DefaultInitial = 1000
	DefaultAmount  = 100
)

// TrialConfig describes one concurrent withdrawal trial.
//
// The zero value runs the reference experiment: zero Workers, Initial,
// Amount, and Logger are sentinels that RunTrial replaces with the
// Default* values. An exactly-zero balance or amount is therefore not
// configurable; negative values are honored as given.
type TrialConfig struct {
	// Workers is the number of concurrent withdrawing goroutines.
	// Zero means DefaultWorkers; one is rejected, it cannot race.
	Workers int

	// Initial is the starting balance. Zero means DefaultInitial.
	Initial int64

	// Amount is withdrawn once per worker. Zero means DefaultAmount.
	Amount int64

	// Strategy selects the account's synchronization.
	Strategy Strategy

	// Perturb, when non-nil, hooks every worker's session and injects
	// delays at its target indices.
	Perturb *Perturbator

	// Logger receives per-trial debug output. Nil means the default
	// logger.
	Logger *logging.Logger
}

func (c *TrialConfig) applyDefaults() {
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Initial == 0 {
		c.Initial = DefaultInitial
	}
	if c.Amount == 0 {
		c.Amount = DefaultAmount
	}
	if c.Logger == nil {
		c.Logger = logging.Default()
	}
}

// TrialResult is the outcome of one trial.
type TrialResult struct {
	// FinalBalance is the account balance after every worker finished.
	FinalBalance int64

	// Expected is Initial - Workers*Amount.
	Expected int64

	// Anomaly is true when FinalBalance differs from Expected, i.e. at
	// least one withdrawal was lost.
	Anomaly bool

	// Lost is how much money the lost updates left behind. Zero when
	// the trial is correct.
	Lost int64

	// Transactions is the account's log in completion order.
	Transactions []Transaction
}

// RunTrial starts the configured workers, waits for them, and checks
// the final balance against the arithmetic expectation.
func RunTrial(ctx context.Context, cfg TrialConfig) (*TrialResult, error) {
	cfg.applyDefaults()
	if cfg.Workers < 2 {
		return nil, ErrInvalidWorkers
	}

	acct := NewAccount(cfg.Initial, cfg.Strategy)

	g, ctx := errgroup.WithContext(ctx)
	for worker := 1; worker <= cfg.Workers; worker++ {
		routine := acct.TransferRoutine(worker, cfg.Amount)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var opts []collector.Option
			if cfg.Perturb != nil {
				opts = append(opts, collector.WithEventHook(cfg.Perturb.Hook()))
			}
			_, _, err := collector.NewSession(opts...).TraceExecution(routine)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &TrialResult{
		FinalBalance: acct.Balance(),
		Expected:     cfg.Initial - int64(cfg.Workers)*cfg.Amount,
		Transactions: acct.Transactions(),
	}
	res.Anomaly = res.FinalBalance != res.Expected
	res.Lost = res.FinalBalance - res.Expected

	recordTrial(cfg.Strategy, cfg.Perturb != nil, res.Anomaly)
	cfg.Logger.Debug("trial complete",
		"strategy", cfg.Strategy.String(),
		"perturbed", cfg.Perturb != nil,
		"final", res.FinalBalance,
		"expected", res.Expected,
		"anomaly", res.Anomaly,
	)
	return res, nil
}

// BatchResult aggregates repeated trials of one configuration.
type BatchResult struct {
	Trials    []*TrialResult
	Anomalies int

	// Rate is Anomalies over the number of trials.
	Rate float64
}

// RunBatch repeats the trial and reports how often the anomaly
// manifested. The rate is the observable that separates the three
// scenarios: near zero unperturbed, near one perturbed, exactly zero
// lock guarded.
func RunBatch(ctx context.Context, cfg TrialConfig, trials int) (*BatchResult, error) {
	if trials < 1 {
		return nil, ErrInvalidTrials
	}

	batch := &BatchResult{Trials: make([]*TrialResult, 0, trials)}
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := RunTrial(ctx, cfg)
		if err != nil {
			return nil, err
		}
		batch.Trials = append(batch.Trials, res)
		if res.Anomaly {
			batch.Anomalies++
		}
	}
	batch.Rate = float64(batch.Anomalies) / float64(trials)
	return batch, nil
}
