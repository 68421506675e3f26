// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes used as the outcome label of scicomp_params_loads_total.
const (
	OutcomeSuccess         = "success"
	OutcomeParseError      = "parse_error"
	OutcomeMissingRequired = "missing_required"
	OutcomeTypeMismatch    = "type_mismatch"
	OutcomeInvalidSpec     = "invalid_spec"
	OutcomeFailure         = "failure"
)

var (
	paramsLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scicomp_params_loads_total",
		Help: "Options file loads by outcome",
	}, []string{"outcome"})

	paramsDefaultsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scicomp_params_defaults_applied_total",
		Help: "Parameters bound to their default value because the options file omitted them",
	})

	paramsReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scicomp_params_reloads_total",
		Help: "Options file hot reloads by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// RecordParamsLoad counts one options file load.
func RecordParamsLoad(outcome string) {
	paramsLoadsTotal.WithLabelValues(outcome).Inc()
}

// RecordDefaultApplied counts one parameter bound to its default.
func RecordDefaultApplied() {
	paramsDefaultsApplied.Inc()
}

// RecordParamsReload counts one hot reload attempt.
func RecordParamsReload(success bool) {
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	}
	paramsReloadsTotal.WithLabelValues(outcome).Inc()
}
