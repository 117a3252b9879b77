package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connected_clients",
		Help: "Dashboards currently subscribed to task events",
	})
	EventsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ws_events_sent_total",
			Help: "Task events queued to websocket clients",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(ConnectedClients, EventsSent)
}
