package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the game counters exported at /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	DiceRolled     prometheus.Counter
	TurnsCompleted *prometheus.CounterVec
	GamesStarted   prometheus.Counter
	GamesFinished  *prometheus.CounterVec
	PlayersSeated  prometheus.Gauge
	UpperBonuses   prometheus.Counter
	YahtzeesScored prometheus.Counter
	GrandTotals    prometheus.Histogram
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// New creates the game metrics and registers them with reg
func New(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DiceRolled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rolls_total",
			Help:      "Total number of dice rolls",
		}),
		TurnsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "turns_completed_total",
			Help:      "Committed turns by scored category",
		}, []string{"category"}),
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Total number of games started",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that ended, by outcome",
		}, []string{"outcome"}),
		PlayersSeated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_seated",
			Help:      "Number of players seated at the active table",
		}),
		UpperBonuses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upper_bonuses_total",
			Help:      "Upper section bonuses awarded",
		}),
		YahtzeesScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "yahtzees_total",
			Help:      "Yahtzees and bonus Yahtzees scored",
		}),
		GrandTotals: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grand_total_points",
			Help:      "Final grand totals of completed scorecards",
			Buckets:   prometheus.LinearBuckets(50, 50, 12),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		m.DiceRolled,
		m.TurnsCompleted,
		m.GamesStarted,
		m.GamesFinished,
		m.PlayersSeated,
		m.UpperBonuses,
		m.YahtzeesScored,
		m.GrandTotals,
		m.HTTPRequests,
		m.HTTPDuration,
	)

	return m
}

// Outcome labels for GamesFinished
const (
	OutcomeComplete  = "complete"
	OutcomeAbandoned = "abandoned"
)

func (m *Metrics) IncRolls() {
	if m == nil {
		return
	}
	m.DiceRolled.Inc()
}

func (m *Metrics) IncTurn(category string) {
	if m == nil {
		return
	}
	m.TurnsCompleted.WithLabelValues(category).Inc()
}

func (m *Metrics) IncGamesStarted() {
	if m == nil {
		return
	}
	m.GamesStarted.Inc()
}

func (m *Metrics) IncGamesFinished(outcome string) {
	if m == nil {
		return
	}
	m.GamesFinished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetPlayersSeated(count int) {
	if m == nil {
		return
	}
	m.PlayersSeated.Set(float64(count))
}

func (m *Metrics) IncUpperBonus() {
	if m == nil {
		return
	}
	m.UpperBonuses.Inc()
}

func (m *Metrics) IncYahtzee() {
	if m == nil {
		return
	}
	m.YahtzeesScored.Inc()
}

func (m *Metrics) ObserveGrandTotal(points int) {
	if m == nil {
		return
	}
	m.GrandTotals.Observe(float64(points))
}

func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())
}
