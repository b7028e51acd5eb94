package cleanserver

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cleansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "htmlcleaner",
		Name:      "cleans_total",
		Help:      "Number of cleaning passes served, by input mode.",
	}, []string{"mode"})

	elementsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "htmlcleaner",
		Name:      "elements_processed_total",
		Help:      "Total elements visited by the attribute pass.",
	})

	cleanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "htmlcleaner",
		Name:      "clean_duration_seconds",
		Help:      "Wall time of a full parse, clean, and serialize pass.",
		Buckets:   prometheus.DefBuckets,
	})
)

func observeClean(fragment bool, elements int, d time.Duration) {
	mode := "document"
	if fragment {
		mode = "fragment"
	}
	cleansTotal.WithLabelValues(mode).Inc()
	elementsProcessed.Add(float64(elements))
	cleanDuration.Observe(d.Seconds())
}
