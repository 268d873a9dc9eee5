package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	interactionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hackbot",
		Subsystem: "bot",
		Name:      "interactions_total",
		Help:      "The total number of received interactions",
	}, []string{"kind"})

	commandErrorCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hackbot",
		Subsystem: "bot",
		Name:      "command_errors_total",
		Help:      "The total number of failed commands",
	}, []string{"command"})
)
