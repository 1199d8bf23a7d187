package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var matchesUpdated = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "matches_updated_total",
	Help: "Partidas editadas ou canceladas, por status resultante",
}, []string{"status"})

func RecordMatchUpdated(status string) { matchesUpdated.WithLabelValues(status).Inc() }
