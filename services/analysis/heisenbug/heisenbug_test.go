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
	"testing"
	"time"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("unsynchronized")
	require.NoError(t, err)
	assert.Equal(t, StrategyUnsynchronized, s)

	s, err = ParseStrategy(" Lock_Guarded ")
	require.NoError(t, err)
	assert.Equal(t, StrategyLockGuarded, s)

	_, err = ParseStrategy("hope")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestWithdrawSequential(t *testing.T) {
	acct := NewAccount(1000, StrategyUnsynchronized)
	sess := collector.NewSession()

	log, result, err := sess.TraceExecution(acct.TransferRoutine(1, 100))
	require.NoError(t, err)
	assert.Equal(t, int64(900), result)
	assert.Equal(t, int64(900), acct.Balance())

	txns := acct.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, Transaction{Worker: 1, Read: 1000, Wrote: 900, Amount: 100}, txns[0])
	assert.Equal(t, "worker-1: 1000 -> 900 (withdrew 100)", txns[0].String())

	var statements []collector.TraceEvent
	matched := false
	want := ReadBalanceIndex()
	for _, ev := range log.Events() {
		if ev.Kind != collector.KindStatement {
			continue
		}
		statements = append(statements, ev)
		if ev.Index.Equal(want) {
			matched = true
			assert.Equal(t, LineReadBalance, ev.Location.Line)
		}
	}
	require.Len(t, statements, 3)
	assert.True(t, matched, "trace must contain the default perturbation target")

	// The racy accesses themselves must be visible: the balance is read
	// at L1 and written back at L3.
	assert.Equal(t, []string{"amount", "balance"}, statements[0].ReadSet)
	assert.Equal(t, []string{"next"}, statements[1].WriteSet)
	assert.Contains(t, statements[2].WriteSet, "balance")
}

func TestRunTrial_InvalidWorkers(t *testing.T) {
	_, err := RunTrial(context.Background(), TrialConfig{Workers: 1})
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestRunTrial_Defaults(t *testing.T) {
	res, err := RunTrial(context.Background(), TrialConfig{Strategy: StrategyLockGuarded})
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultInitial-DefaultWorkers*DefaultAmount), res.Expected)
	assert.Len(t, res.Transactions, DefaultWorkers)
}

// Zero-valued fields are sentinels for the defaults; negative values
// are taken as given.
func TestRunTrial_NegativeInitialHonored(t *testing.T) {
	res, err := RunTrial(context.Background(), TrialConfig{
		Initial:  -500,
		Strategy: StrategyLockGuarded,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(-500-DefaultWorkers*DefaultAmount), res.Expected)
	assert.Equal(t, res.Expected, res.FinalBalance)
	assert.False(t, res.Anomaly)
}

// Lock guarding keeps the trial correct even under aggressive
// perturbation.
func TestRunTrial_LockGuardedAlwaysCorrect(t *testing.T) {
	cfg := TrialConfig{
		Workers:  4,
		Initial:  1000,
		Amount:   100,
		Strategy: StrategyLockGuarded,
		Perturb:  NewPerturbator(nil, 5*time.Millisecond),
	}
	batch, err := RunBatch(context.Background(), cfg, 3)
	require.NoError(t, err)
	assert.Zero(t, batch.Anomalies)
	assert.Zero(t, batch.Rate)
	for _, res := range batch.Trials {
		assert.Equal(t, int64(600), res.FinalBalance)
		assert.False(t, res.Anomaly)
		assert.Zero(t, res.Lost)
	}
}

// Perturbing the balance read of every unsynchronized worker parks all
// of them inside the read-to-write window together, so withdrawals are
// lost and the final balance lands above the expectation.
func TestRunTrial_PerturbedLosesUpdates(t *testing.T) {
	cfg := TrialConfig{
		Workers:  3,
		Initial:  1000,
		Amount:   100,
		Strategy: StrategyUnsynchronized,
		Perturb:  NewPerturbator(nil, 50*time.Millisecond),
	}
	batch, err := RunBatch(context.Background(), cfg, 4)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, batch.Anomalies, 1, "a 50ms window must lose updates")

	for _, res := range batch.Trials {
		if !res.Anomaly {
			continue
		}
		assert.Greater(t, res.FinalBalance, res.Expected, "lost withdrawals leave money behind")
		assert.Positive(t, res.Lost)
		assert.Len(t, res.Transactions, cfg.Workers, "every worker still logs its withdrawal")
	}
}

// The defining contrast of the experiment: the same unsynchronized
// configuration runs a batch with and a batch without perturbation,
// and the injected delay must raise the anomaly rate decisively. The
// margin is generous; in practice the perturbed rate sits near one and
// the unperturbed rate near zero.
func TestRunBatch_PerturbationRaisesAnomalyRate(t *testing.T) {
	if testing.Short() {
		t.Skip("statistical batch comparison")
	}

	base := TrialConfig{
		Workers:  3,
		Initial:  1000,
		Amount:   100,
		Strategy: StrategyUnsynchronized,
	}
	const trials = 100

	unperturbed, err := RunBatch(context.Background(), base, trials)
	require.NoError(t, err)

	cfg := base
	cfg.Perturb = NewPerturbator(nil, 10*time.Millisecond)
	perturbed, err := RunBatch(context.Background(), cfg, trials)
	require.NoError(t, err)

	assert.Greater(t, perturbed.Rate, unperturbed.Rate+0.5,
		"the delay at the balance read must widen the lost-update window")
}

func TestRunBatch_Validation(t *testing.T) {
	_, err := RunBatch(context.Background(), TrialConfig{}, 0)
	assert.ErrorIs(t, err, ErrInvalidTrials)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunBatch(ctx, TrialConfig{Strategy: StrategyLockGuarded}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPerturbatorDefaults(t *testing.T) {
	p := NewPerturbator(nil, 0)
	assert.Equal(t, DefaultDelay, p.Delay())
}
