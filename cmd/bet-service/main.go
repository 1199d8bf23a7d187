package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	bhttp "github.com/radieske/match-bet-settlement/internal/bet-service/http"
	"github.com/radieske/match-bet-settlement/internal/bet-service/match"
	kpub "github.com/radieske/match-bet-settlement/internal/bet-service/producer"
	"github.com/radieske/match-bet-settlement/internal/bet-service/repo"
	"github.com/radieske/match-bet-settlement/internal/bet-service/service"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Postgres + migrations do schema de apostas
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()
	if err := db.Migrate(cfg.PostgresDSN, repo.Migrations, repo.MigrationsTable, log); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// Redis (cache de partidas encerradas)
	rdb, err := cache.ConnectRedis(ctx, cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writers (bet_placed / bet_settled)
	placedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer placedWriter.Close()
	settledWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer settledWriter.Close()

	// deps
	repository := repo.NewPostgres(pg)
	matches := match.NewCachedDirectory(
		match.New(cfg.MatchServiceURL, cfg.HTTPClientTimeout),
		rdb, cfg.MatchCacheTTL, log,
	)
	publ := kpub.NewKafkaPublisher(placedWriter, settledWriter)
	svc := service.New(log, repository, matches, publ, clockwork.NewRealClock())

	// HTTP público
	api := bhttp.NewServer(log, svc)
	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, func(ctx context.Context) error {
		if err := repository.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	go func() {
		log.Info("bet-service listening",
			zap.String("addr", apiSrv.Addr),
			zap.String("matchService", cfg.MatchServiceURL),
		)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = apiSrv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)
}
