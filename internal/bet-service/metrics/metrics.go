package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	betsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bets_placed_total",
		Help: "Apostas registradas com status PLACED",
	})

	betsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bets_settled_total",
		Help: "Apostas liquidadas por status final",
	}, []string{"status"})

	matchFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bet_match_fetch_failures_total",
		Help: "Falhas ao consultar o match-service por motivo",
	}, []string{"reason"})

	settleNotPlayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bet_settle_match_not_played_total",
		Help: "Leituras de apostas PLACED cuja partida ainda não foi jogada",
	})
)

func RecordPlaced() { betsPlaced.Inc() }

// RecordSettled status deve ser "WON" ou "LOST".
func RecordSettled(status string) { betsSettled.WithLabelValues(status).Inc() }

// RecordMatchFetchFailure reason: "not_found" | "unavailable".
func RecordMatchFetchFailure(reason string) { matchFetchFailures.WithLabelValues(reason).Inc() }

func RecordNotPlayed() { settleNotPlayed.Inc() }
