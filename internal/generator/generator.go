// internal/generator/generator.go
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/YaganovValera/purchase-stream/internal/metrics"
	"github.com/YaganovValera/purchase-stream/internal/serializer"
	"github.com/YaganovValera/purchase-stream/pkg/kafka"
	"github.com/YaganovValera/purchase-stream/pkg/logger"
)

var tracer = otel.Tracer("generator")

// defaultRetailers — шесть источников транзакций из банковского демо.
var defaultRetailers = []string{
	"Billy Bob's Shop",
	"Tasty Pete's Burgers",
	"Mal-Wart",
	"Bikey Bikes",
	"Board Game Grove",
	"Food Emporium",
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// Config задаёт параметры генерации событий.
type Config struct {
	// TotalEvents — число итераций цикла; константа конфигурации,
	// не зависит от входных данных.
	TotalEvents int

	// MaxAccount — верхняя (включительная) граница индекса счёта.
	MaxAccount int

	// AmountMin/AmountMax — включительные границы суммы транзакции.
	// Отрицательные значения: событие моделирует списание.
	AmountMin int
	AmountMax int

	// Retailers — список источников транзакций.
	Retailers []string

	// MaxDelay — верхняя граница случайной паузы между итерациями.
	MaxDelay time.Duration
}

func (c *Config) applyDefaults() {
	if c.TotalEvents <= 0 {
		c.TotalEvents = 10000
	}
	if c.MaxAccount <= 0 {
		c.MaxAccount = 10
	}
	if c.AmountMin == 0 {
		c.AmountMin = -2500
	}
	if c.AmountMax == 0 {
		c.AmountMax = -1
	}
	if len(c.Retailers) == 0 {
		c.Retailers = defaultRetailers
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = time.Second
	}
}

func (c Config) validate() error {
	if c.AmountMin > c.AmountMax {
		return fmt.Errorf("generator: AmountMin must be <= AmountMax")
	}
	if c.AmountMax >= 0 {
		return fmt.Errorf("generator: amounts must be negative (debit)")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Generator
// -----------------------------------------------------------------------------

// Generator производит ограниченный поток синтетических покупок и публикует
// каждую в топик через внешний producer.
type Generator struct {
	cfg   Config
	topic string
	prod  kafka.Producer
	ser   serializer.Serializer
	src   Source
	now   func() time.Time
	log   *logger.Logger
}

// New создаёт Generator. src и now могут быть nil — тогда используются
// math/rand и time.Now.
func New(cfg Config, topic string, prod kafka.Producer, ser serializer.Serializer, src Source, log *logger.Logger) (*Generator, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if topic == "" {
		return nil, fmt.Errorf("generator: topic is required")
	}
	if src == nil {
		src = NewSource()
	}
	return &Generator{
		cfg:   cfg,
		topic: topic,
		prod:  prod,
		ser:   ser,
		src:   src,
		now:   time.Now,
		log:   log.Named("generator"),
	}, nil
}

// Run выполняет TotalEvents итераций: генерация → сериализация → публикация →
// случайная пауза. Любая ошибка сериализации или публикации завершает цикл
// (fail-fast, без ретраев на этом уровне).
func (g *Generator) Run(ctx context.Context) error {
	g.log.Info("generation started",
		zap.Int("total_events", g.cfg.TotalEvents),
		zap.String("topic", g.topic),
	)

	for i := 0; i < g.cfg.TotalEvents; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.produceOne(ctx); err != nil {
			return err
		}
		if err := g.sleep(ctx); err != nil {
			return err
		}
	}

	g.log.Info("generation complete", zap.Int("events", g.cfg.TotalEvents))
	return nil
}

// produceOne генерирует одно событие и доводит его до публикации.
func (g *Generator) produceOne(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ProduceEvent")
	defer span.End()

	evt := g.nextEvent()
	metrics.EventsGenerated.Inc()
	start := time.Now()

	// Диагностическая трасса каждой сгенерированной записи.
	g.log.Info("producing event",
		zap.String("account_id", evt.AccountID),
		zap.String("account_class", evt.AccountClass),
		zap.Int("transaction_amount", evt.TransactionAmount),
		zap.String("transaction_source", evt.TransactionSource),
		zap.Int64("timestamp", evt.Timestamp),
	)

	// Заголовки: формат сериализатора + свежий uuid на каждое сообщение.
	headers := make(map[string]string, len(g.ser.ExtraHeaders())+1)
	for k, v := range g.ser.ExtraHeaders() {
		headers[k] = v
	}
	msgID := uuid.NewString()
	headers["uuid"] = msgID
	span.SetAttributes(attribute.String("message.uuid", msgID))

	env, err := g.ser.Serialize(evt.AccountID, evt.Record(), headers)
	if err != nil {
		metrics.SerializeErrors.Inc()
		span.RecordError(err)
		return fmt.Errorf("serialize event: %w", err)
	}

	if err := g.prod.Publish(ctx, g.topic, env.Headers, env.Key, env.Value); err != nil {
		metrics.PublishErrors.Inc()
		span.RecordError(err)
		return fmt.Errorf("publish event: %w", err)
	}

	metrics.PublishLatency.Observe(time.Since(start).Seconds())
	return nil
}

// nextEvent конструирует событие; account_class детерминирован индексом счёта.
func (g *Generator) nextEvent() PurchaseEvent {
	account := g.src.Intn(g.cfg.MaxAccount + 1)
	return PurchaseEvent{
		AccountID:         FormatAccountID(account),
		AccountClass:      ClassForAccount(account),
		TransactionAmount: g.cfg.AmountMin + g.src.Intn(g.cfg.AmountMax-g.cfg.AmountMin+1),
		TransactionSource: g.cfg.Retailers[g.src.Intn(len(g.cfg.Retailers))],
		Timestamp:         g.now().UnixNano(),
	}
}

// sleep выдерживает случайную паузу из [0, MaxDelay) с учётом отмены ctx.
func (g *Generator) sleep(ctx context.Context) error {
	delay := time.Duration(g.src.Float64() * float64(g.cfg.MaxDelay))
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
