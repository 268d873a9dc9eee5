package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hackbot",
		Subsystem: "backend",
		Name:      "refresh_total",
		Help:      "The total number of persisted event changes",
	})

	renderCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hackbot",
		Subsystem: "backend",
		Name:      "render_total",
		Help:      "The total number of scheduled event renders",
	}, []string{"result"})
)
