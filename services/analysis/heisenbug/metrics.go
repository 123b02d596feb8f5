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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// trialsTotal counts trials by strategy and perturbation.
	trialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dynalyze_heisenbug_trials_total",
		Help: "Total heisenbug trials by strategy and perturbation",
	}, []string{"strategy", "perturbed"})

	// anomaliesTotal counts trials that lost at least one update.
	anomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dynalyze_heisenbug_anomalies_total",
		Help: "Total trials ending with an incorrect balance",
	}, []string{"strategy", "perturbed"})
)

func recordTrial(strategy Strategy, perturbed, anomaly bool) {
	p := "false"
	if perturbed {
		p = "true"
	}
	trialsTotal.WithLabelValues(strategy.String(), p).Inc()
	if anomaly {
		anomaliesTotal.WithLabelValues(strategy.String(), p).Inc()
	}
}
