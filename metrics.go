package globepins

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTicked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "globepins",
		Subsystem: "loop",
		Name:      "frames_total",
		Help:      "Total frames ticked",
	})

	hoverEvaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globepins",
		Subsystem: "hover",
		Name:      "evaluations_total",
		Help:      "Total per-marker hit tests",
	}, []string{"marker"})

	hoverTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globepins",
		Subsystem: "hover",
		Name:      "transitions_total",
		Help:      "Total hover state changes",
	}, []string{"marker", "state"})

	hoveredMarkers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "globepins",
		Subsystem: "hover",
		Name:      "hovered",
		Help:      "1 while the pointer is over the marker",
	}, []string{"marker"})
)
