// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YaganovValera/purchase-stream/internal/config"
	"github.com/YaganovValera/purchase-stream/internal/generator"
	"github.com/YaganovValera/purchase-stream/internal/metrics"
	"github.com/YaganovValera/purchase-stream/internal/serializer"
	"github.com/YaganovValera/purchase-stream/pkg/backoff"
	"github.com/YaganovValera/purchase-stream/pkg/httpserver"
	"github.com/YaganovValera/purchase-stream/pkg/kafka"
	"github.com/YaganovValera/purchase-stream/pkg/logger"
	"github.com/YaganovValera/purchase-stream/pkg/telemetry"
)

// Run поднимает все зависимости и выполняет цикл генерации до конца
// или до первой невосстановимой ошибки.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	backoff.SetServiceLabel(cfg.ServiceName)
	kafka.SetServiceLabel(cfg.ServiceName)
	metrics.Register(nil)

	// Трассировка
	shutdownTracer, err := telemetry.InitTracer(ctx, telemetry.Config{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.ServiceName,
		ServiceVersion: cfg.ServiceVersion,
		Insecure:       cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer shutdownSafe(ctx, "telemetry", func() error { return shutdownTracer(ctx) }, log)

	// Kafka Producer: захватывается один раз на всё время цикла и
	// гарантированно освобождается на любом пути выхода.
	kafkaProd, err := kafka.New(ctx, kafka.Config{
		Brokers:        cfg.Kafka.Brokers,
		RequiredAcks:   cfg.Kafka.Acks,
		Timeout:        cfg.Kafka.Timeout,
		Compression:    cfg.Kafka.Compression,
		FlushFrequency: cfg.Kafka.FlushFrequency,
		FlushMessages:  cfg.Kafka.FlushMessages,
		Backoff:        cfg.Kafka.Backoff,
	}, log)
	if err != nil {
		return fmt.Errorf("kafka producer init: %w", err)
	}
	defer shutdownSafe(ctx, "kafka-producer", kafkaProd.Close, log)

	// Топик должен существовать до первой публикации.
	if err := kafkaProd.EnsureTopic(ctx, cfg.Kafka.Topic, cfg.Kafka.TopicPartitions, cfg.Kafka.TopicReplication); err != nil {
		return fmt.Errorf("ensure topic: %w", err)
	}

	gen, err := generator.New(
		generator.Config{
			TotalEvents: cfg.Generator.TotalEvents,
			MaxAccount:  cfg.Generator.MaxAccount,
			AmountMin:   cfg.Generator.AmountMin,
			AmountMax:   cfg.Generator.AmountMax,
			Retailers:   cfg.Generator.Retailers,
			MaxDelay:    cfg.Generator.MaxDelay,
		},
		cfg.Kafka.Topic,
		kafkaProd,
		serializer.NewTimeseries(),
		nil,
		log,
	)
	if err != nil {
		return fmt.Errorf("generator init: %w", err)
	}

	// HTTP-сервер наблюдаемости
	readiness := func() error { return kafkaProd.Ping(ctx) }
	httpSrv, err := httpserver.New(
		httpserver.Config{
			Addr:            fmt.Sprintf(":%d", cfg.HTTP.Port),
			ReadTimeout:     cfg.HTTP.ReadTimeout,
			WriteTimeout:    cfg.HTTP.WriteTimeout,
			IdleTimeout:     cfg.HTTP.IdleTimeout,
			ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
			MetricsPath:     cfg.HTTP.MetricsPath,
			HealthzPath:     cfg.HTTP.HealthzPath,
			ReadyzPath:      cfg.HTTP.ReadyzPath,
		},
		readiness,
		log,
		httpserver.RecoverMiddleware,
		httpserver.CORSMiddleware(),
	)
	if err != nil {
		return fmt.Errorf("httpserver init: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, runCtx := errgroup.WithContext(runCtx)
	g.Go(func() error { return httpSrv.Start(runCtx) })
	g.Go(func() error {
		// остановить HTTP-сервер, когда цикл генерации завершён
		defer cancel()
		return gen.Run(runCtx)
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			log.WithContext(ctx).Info("generator stopped by context")
			return nil
		}
		return err
	}
	return nil
}

// shutdownSafe оборачивает вызов Close()/Shutdown() с логированием
func shutdownSafe(ctx context.Context, name string, fn func() error, log *logger.Logger) {
	log.WithContext(ctx).Info(fmt.Sprintf("%s: shutting down", name))
	if err := fn(); err != nil {
		log.WithContext(ctx).Error(fmt.Sprintf("%s shutdown error", name), zap.Error(err))
	} else {
		log.WithContext(ctx).Info(fmt.Sprintf("%s: shutdown complete", name))
	}
}
