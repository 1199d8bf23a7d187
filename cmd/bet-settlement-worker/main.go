package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/match-bet-settlement/internal/bet-service/match"
	kpub "github.com/radieske/match-bet-settlement/internal/bet-service/producer"
	"github.com/radieske/match-bet-settlement/internal/bet-service/repo"
	"github.com/radieske/match-bet-settlement/internal/bet-service/service"
	"github.com/radieske/match-bet-settlement/internal/bet-settlement/consumer"
	"github.com/radieske/match-bet-settlement/internal/shared/cache"
	"github.com/radieske/match-bet-settlement/internal/shared/config"
	"github.com/radieske/match-bet-settlement/internal/shared/db"
	"github.com/radieske/match-bet-settlement/internal/shared/kafka"
	"github.com/radieske/match-bet-settlement/internal/shared/logger"
	"github.com/radieske/match-bet-settlement/internal/shared/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Postgres: mesma base de apostas do bet-service (schema migrado por ele)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka: consumer group bet-settlement + writers de eventos e DLQ
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicMatchUpdated, "bet-settlement")
	defer reader.Close()

	placedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer placedWriter.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()
	dlqWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchUpdatedDLQ)
	defer dlqWriter.Close()

	// Mesmo serviço de apostas do bet-service: a liquidação segue a mesma regra
	repository := repo.NewPostgres(pg)
	matches := match.NewCachedDirectory(
		match.New(cfg.MatchServiceURL, cfg.HTTPClientTimeout),
		rdb, cfg.MatchCacheTTL, log,
	)
	svc := service.New(log, repository, matches, kpub.NewKafkaPublisher(placedWriter, settledWriter), clockwork.NewRealClock())

	// Métricas Prometheus do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "settlement_messages_consumed_total", Help: "mensagens match_updated consumidas"})
	settled := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "settlement_bets_settled_total", Help: "apostas liquidadas pelo worker"}, []string{"status"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "settlement_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, settled, errorsBy)

	proc := &consumer.Processor{
		Log:        log,
		Reader:     reader,
		Bets:       repository,
		Settler:    svc,
		Cache:      matches,
		DLQ:        dlqWriter,
		OnConsumed: func() { consumed.Inc() },
		OnSettled:  func(status string) { settled.WithLabelValues(status).Inc() },
		OnError:    func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, func(ctx context.Context) error {
		if err := repository.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	log.Info("bet-settlement-worker started",
		zap.String("consume", cfg.TopicMatchUpdated),
		zap.String("dlq", cfg.TopicMatchUpdatedDLQ),
	)
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("processor stopped with error", zap.Error(err))
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	_ = metricsSrv.Shutdown(shutdownCtx)
	log.Info("bet-settlement-worker stopped")
}
