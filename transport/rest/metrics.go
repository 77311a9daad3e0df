package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "mastermind"

type metrics struct {
	sessionsStarted prometheus.Counter
	guesses         prometheus.Counter
	sessionsWon     prometheus.Counter
}

func newMetrics(registerer prometheus.Registerer) *metrics {
	factory := promauto.With(registerer)

	return &metrics{
		sessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_started_total",
			Help:      "Number of sessions created.",
		}),
		guesses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "guesses_total",
			Help:      "Number of guesses scored.",
		}),
		sessionsWon: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "sessions_won_total",
			Help:      "Number of sessions finished by cracking the code.",
		}),
	}
}
