// Package metrics provides Prometheus instrumentation for the kitchen.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MealsCreated counts meals inserted into the catalog.
	MealsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealmax_meals_created_total",
		Help: "Total number of meals created",
	})

	// MealsDeleted counts soft deletions.
	MealsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mealmax_meals_deleted_total",
		Help: "Total number of meals soft deleted",
	})

	// BattlesTotal counts resolved battles, partitioned by whether the
	// lower-scored combatant pulled off the upset.
	BattlesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mealmax_battles_total",
		Help: "Total number of battles resolved",
	}, []string{"result"})

	// ScoreDelta observes the normalized score gap between combatants.
	ScoreDelta = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mealmax_battle_score_delta",
		Help:    "Normalized score delta between combatants",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 0.75, 1.0},
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
