// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package lobby

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the lobby's counters and gauges. NewMainServer registers them
// once against the process-wide prometheus.Registerer and shares them with
// every game server it opens.
type Metrics struct {
	PlayersJoined prometheus.Counter
	PlayersLeft   prometheus.Counter
	GamesOpen     prometheus.Gauge
	GamesOpened   prometheus.Counter
}

// NewMetrics creates and registers the lobby metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		PlayersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lobby_players_joined_total",
			Help: "Total number of players that have joined a game.",
		}),
		PlayersLeft: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lobby_players_left_total",
			Help: "Total number of players that have left a game.",
		}),
		GamesOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lobby_games_open",
			Help: "Number of currently open games.",
		}),
		GamesOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lobby_games_opened_total",
			Help: "Total number of games opened since process start.",
		}),
	}

	for _, c := range []prometheus.Collector{m.PlayersJoined, m.PlayersLeft, m.GamesOpen, m.GamesOpened} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
