package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Conversation metrics
	MessagesTotal      *prometheus.CounterVec // by intent: start, help, my_ip, lookup, ignored
	TelegramSendErrors *prometheus.CounterVec // by kind: message, document, chat_action

	// Geo lookup metrics
	IPLookupsTotal   *prometheus.CounterVec // by result: success, provider_fail, network_error, error
	IPLookupDuration prometheus.Histogram

	// Self-IP metrics
	SelfIPRequestsTotal *prometheus.CounterVec // by result: success, error

	// Map renderer metrics
	MapRendersTotal   *prometheus.CounterVec // by result: success, error
	MapRenderDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		MessagesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_messages_total",
				Help: "Total number of inbound messages by classified intent",
			},
			[]string{"intent"},
		),

		TelegramSendErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_telegram_send_errors_total",
				Help: "Total number of failed Telegram send operations",
			},
			[]string{"kind"},
		),

		IPLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "geoip_lookups_total",
				Help: "Total number of geo-IP lookups by result",
			},
			[]string{"result"},
		),

		IPLookupDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "geoip_lookup_duration_seconds",
				Help:    "Geo-IP provider request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),

		SelfIPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "selfip_requests_total",
				Help: "Total number of self-IP discovery requests by result",
			},
			[]string{"result"},
		),

		MapRendersTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "map_renders_total",
				Help: "Total number of map artifact renders by result",
			},
			[]string{"result"},
		),

		MapRenderDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "map_render_duration_seconds",
				Help:    "Map artifact render latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
