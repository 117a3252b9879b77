package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var TaskTransitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "task_transitions_total",
		Help: "Task state changes by resulting state and operation",
	},
	[]string{"operation", "state"},
)

func init() {
	prometheus.MustRegister(TaskTransitions)
}
