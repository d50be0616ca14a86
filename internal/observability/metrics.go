// Package observability holds the Prometheus metrics of the game.
package observability

import "github.com/prometheus/client_golang/prometheus"

const (
	MoveAccepted = "accepted"
	MoveIgnored  = "ignored"
	MoveRejected = "rejected"
)

var (
	// MovesTotal counts move events by result: accepted, ignored (occupied cell) or rejected.
	MovesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_moves_total",
			Help: "Move events",
		},
		[]string{"result"},
	)

	// GamesTotal counts finished games by outcome: won_x, won_o or draw.
	GamesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tictactoe_games_total",
			Help: "Finished games",
		},
		[]string{"outcome"},
	)

	// SessionsTotal counts games started, including resets.
	SessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tictactoe_sessions_total",
			Help: "Games started",
		},
	)
)

func init() {
	prometheus.MustRegister(MovesTotal, GamesTotal, SessionsTotal)
}
