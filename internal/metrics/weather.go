// SPDX-License-Identifier: MIT
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	weatherRowsRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scicomp_weather_rows_read_total",
		Help: "Observation rows read from input files",
	})

	weatherRowsSelected = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "scicomp_weather_rows_selected",
		Help: "Observation rows inside the date range (last run)",
	})

	weatherRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scicomp_weather_runs_total",
		Help: "Weather pipeline runs by outcome",
	}, []string{"outcome"}) // outcome=success|failure
)

// RecordWeatherRun records the row counts and outcome of one pipeline run.
func RecordWeatherRun(read, selected int, success bool) {
	weatherRowsRead.Add(float64(read))
	outcome := OutcomeSuccess
	if !success {
		outcome = OutcomeFailure
	} else {
		weatherRowsSelected.Set(float64(selected))
	}
	weatherRunsTotal.WithLabelValues(outcome).Inc()
}
