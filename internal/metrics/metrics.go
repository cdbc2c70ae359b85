package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// EventsGenerated — общее число сгенерированных покупок.
	EventsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "generator",
		Subsystem: "events",
		Name:      "generated_total",
		Help:      "Total number of synthetic purchase events generated",
	})

	// SerializeErrors — число ошибок сериализации записей.
	SerializeErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "generator",
		Subsystem: "events",
		Name:      "serialize_errors_total",
		Help:      "Total number of serialization errors",
	})

	// PublishErrors — число ошибок при публикации сообщений в Kafka.
	PublishErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "generator",
		Subsystem: "kafka",
		Name:      "publish_errors_total",
		Help:      "Total number of errors when publishing to Kafka",
	})

	// PublishLatency — гистограмма задержек от генерации до публикации.
	PublishLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "generator",
		Subsystem: "pipeline",
		Name:      "publish_latency_seconds",
		Help:      "Latency from generating an event to publishing to Kafka (seconds)",
		Buckets:   prometheus.DefBuckets,
	})
)

// Register регистрирует все метрики в заданном реестре.
// Можно вызвать без аргументов, чтобы зарегистрировать в DefaultRegisterer.
func Register(registerers ...prometheus.Registerer) {
	once.Do(func() {
		var reg prometheus.Registerer
		if len(registerers) > 0 && registerers[0] != nil {
			reg = registerers[0]
		} else {
			reg = prometheus.DefaultRegisterer
		}
		reg.MustRegister(
			EventsGenerated,
			SerializeErrors,
			PublishErrors,
			PublishLatency,
		)
	})
}
