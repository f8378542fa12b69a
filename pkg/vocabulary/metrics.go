package vocabulary

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	vocabularyLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridcert_vocabulary_lookups_total",
			Help: "Total number of vocabulary lookups",
		},
		[]string{"result"}, // hit or load
	)

	vocabularyLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gridcert_vocabulary_load_errors_total",
			Help: "Total number of vocabulary files that failed to load",
		},
	)
)
