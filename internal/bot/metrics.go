package bot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics структура для метрик Prometheus
type Metrics struct {
	UpdatesProcessed     *prometheus.CounterVec
	Outcomes             *prometheus.CounterVec
	Decisions            *prometheus.CounterVec
	OperatorCommands     *prometheus.CounterVec
	ErrorsTotal          prometheus.Counter
	RateLimited          prometheus.Counter
	UpdateProcessingTime prometheus.Histogram
}

// NewMetrics регистрирует метрики бота в reg; nil означает глобальный реестр.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Metrics{
		UpdatesProcessed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitbot_updates_processed_total",
			Help: "Telegram updates by kind",
		}, []string{"kind"}),

		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitbot_outcomes_total",
			Help: "Outcomes produced for inbound user messages",
		}, []string{"kind"}),

		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitbot_application_decisions_total",
			Help: "Operator decisions on applications",
		}, []string{"decision"}),

		OperatorCommands: f.NewCounterVec(prometheus.CounterOpts{
			Name: "recruitbot_operator_commands_total",
			Help: "Operator console commands",
		}, []string{"command"}),

		ErrorsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "recruitbot_handler_errors_total",
			Help: "Update handlers that failed or panicked",
		}),

		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "recruitbot_rate_limited_total",
			Help: "Messages dropped by the per-user rate limit",
		}),

		UpdateProcessingTime: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "recruitbot_update_processing_time_seconds",
			Help:    "Time spent processing updates",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
