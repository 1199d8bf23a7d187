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

	mhttp "github.com/radieske/match-bet-settlement/internal/match-service/http"
	kpub "github.com/radieske/match-bet-settlement/internal/match-service/producer"
	"github.com/radieske/match-bet-settlement/internal/match-service/repo"
	"github.com/radieske/match-bet-settlement/internal/match-service/service"
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

	// Postgres + migrations de times/partidas
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg", zap.Error(err))
	}
	defer pg.Close()
	if err := db.Migrate(cfg.PostgresDSN, repo.Migrations, repo.MigrationsTable, log); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	// Kafka writer (topic match_updated)
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicMatchUpdated)
	defer writer.Close()

	repository := repo.NewPostgres(pg)
	svc := service.New(log, repository, kpub.NewKafkaPublisher(writer), clockwork.NewRealClock())

	apiSrv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           mhttp.NewServer(log, svc).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, repository.Ping)

	go func() {
		log.Info("match-service listening", zap.String("addr", apiSrv.Addr))
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
