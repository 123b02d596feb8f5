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
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AleutianAI/dynalyze/services/analysis/collector"
)

// Strategy selects how the account synchronizes its read-modify-write.
type Strategy int

const (
	// StrategyUnsynchronized performs the read-modify-write with no
	// mutual exclusion. Concurrent withdrawals can lose updates.
	StrategyUnsynchronized Strategy = iota

	// StrategyLockGuarded holds a mutex across the whole
	// read-modify-write, so no update is ever lost.
	StrategyLockGuarded
)

// String returns the strategy's canonical name.
func (s Strategy) String() string {
	switch s {
	case StrategyUnsynchronized:
		return "unsynchronized"
	case StrategyLockGuarded:
		return "lock_guarded"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// ParseStrategy resolves a strategy by name, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unsynchronized":
		return StrategyUnsynchronized, nil
	case "lock_guarded":
		return StrategyLockGuarded, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Statement numbering of the instrumented transfer routine.
const (
	RoutineTransfer  = "transfer"
	LineReadBalance  = 1
	LineComputeNext  = 2
	LineWriteBalance = 3
)

// Transaction records one completed withdrawal as its worker saw it.
type Transaction struct {
	Worker int
	Read   int64
	Wrote  int64
	Amount int64
}

// String renders the transaction as "worker-2: 1000 -> 900 (withdrew 100)".
func (t Transaction) String() string {
	return fmt.Sprintf("worker-%d: %d -> %d (withdrew %d)", t.Worker, t.Read, t.Wrote, t.Amount)
}

// Account is a bank account with a seeded lost-update defect.
//
// # Description
//
// Withdraw reads the balance, computes the new value, and writes it
// back as three separate steps. Under StrategyUnsynchronized nothing
// stops two workers from both reading the same balance and the later
// write from clobbering the earlier one. The individual accesses use
// atomics so the races stay at the logical level, as lost updates,
// rather than torn reads.
//
// # Thread Safety
//
// Balance, Transactions, and Withdraw are safe to call concurrently.
// Whether concurrent Withdraws are CORRECT is exactly the point of the
// experiment and depends on the strategy.
type Account struct {
	strategy Strategy
	balance  int64

	mu sync.Mutex // guards the read-modify-write under StrategyLockGuarded

	logMu sync.Mutex
	txns  []Transaction
}

// NewAccount creates an account holding the initial balance.
func NewAccount(initial int64, strategy Strategy) *Account {
	return &Account{strategy: strategy, balance: initial}
}

// Strategy returns the account's synchronization strategy.
func (a *Account) Strategy() Strategy {
	return a.strategy
}

// Balance returns the current balance.
func (a *Account) Balance() int64 {
	return atomic.LoadInt64(&a.balance)
}

// Transactions returns a copy of the transaction log in completion
// order.
func (a *Account) Transactions() []Transaction {
	a.logMu.Lock()
	defer a.logMu.Unlock()
	out := make([]Transaction, len(a.txns))
	copy(out, a.txns)
	return out
}

// Withdraw subtracts amount from the balance under instrumentation and
// returns the balance it wrote.
//
// The three statements are the heisenbug's anatomy: a perturbation
// hook that sleeps on the LineReadBalance event lands its delay inside
// the read-to-write window.
//
//	L1 read = balance
//	L2 next = read - amount
//	L3 balance = next
func (a *Account) Withdraw(s *collector.Session, worker int, amount int64) int64 {
	if a.strategy == StrategyLockGuarded {
		a.mu.Lock()
		defer a.mu.Unlock()
	}

	// bal is this frame's view of the shared balance. Snapshotting the
	// live cell instead would let another worker's store show up as this
	// frame's write.
	var read, next, bal int64
	fr := s.Enter(RoutineTransfer, func() collector.Bindings {
		return collector.Bindings{"balance": bal, "read": read, "next": next, "amount": amount}
	})
	defer fr.Exit()

	read = atomic.LoadInt64(&a.balance)
	bal = read
	fr.Stmt(LineReadBalance, "balance", "amount")
	next = read - amount
	fr.Stmt(LineComputeNext, "read", "amount")
	atomic.StoreInt64(&a.balance, next)
	bal = next
	fr.Stmt(LineWriteBalance, "next")

	a.logMu.Lock()
	a.txns = append(a.txns, Transaction{Worker: worker, Read: read, Wrote: next, Amount: amount})
	a.logMu.Unlock()
	return next
}

// TransferRoutine adapts a withdrawal to the collector's routine shape
// for one worker.
func (a *Account) TransferRoutine(worker int, amount int64) collector.Routine {
	return func(s *collector.Session, _ ...any) any {
		return a.Withdraw(s, worker, amount)
	}
}
