// Command etl runs one cleansing pass over a Traffy ticket export: it loads
// the Thailand geography reference, extracts and transforms every ticket,
// and writes the analysis-ready CSV (plus optional Kafka and Postgres
// sinks). The process exits non-zero if either barrier — input load or
// output write — fails; per-record degradations never abort the run.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/traffydata/ticket-etl/internal/adapter/csvfile"
	httpadapter "github.com/traffydata/ticket-etl/internal/adapter/http"
	kafkaadapter "github.com/traffydata/ticket-etl/internal/adapter/kafka"
	"github.com/traffydata/ticket-etl/internal/adapter/postgres"
	"github.com/traffydata/ticket-etl/internal/config"
	"github.com/traffydata/ticket-etl/internal/observability"
	"github.com/traffydata/ticket-etl/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, metrics); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	geoLoader := csvfile.NewGeoLoader(cfg.GeographyPath, logger)
	geo, dropped, err := geoLoader.Load(ctx)
	if err != nil {
		return err
	}
	metrics.ReferenceDistricts.Set(float64(geo.Len()))
	metrics.ParseFailures.WithLabelValues("reference_row").Add(float64(dropped))

	reader := csvfile.NewTicketReader(cfg.TicketsPath, logger)
	transformer := pipeline.NewTransformer(geo)

	loaders := []pipeline.Loader{csvfile.NewCleanWriter(cfg.OutputPath, logger)}

	if cfg.Kafka.Enabled {
		kw := kafkaadapter.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
		defer func() {
			if err := kw.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		loaders = append(loaders, kw)
		logger.Info("kafka sink enabled", "topic", cfg.Kafka.Topic)
	}

	if cfg.Postgres.Enabled {
		pw, err := postgres.NewWriter(cfg.Postgres.DSN, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := pw.Close(); err != nil {
				logger.Error("postgres writer close error", "error", err)
			}
		}()
		loaders = append(loaders, pw)
		logger.Info("postgres sink enabled")
	}

	p := pipeline.New(reader, transformer, loaders, logger, metrics, cfg.Workers)

	var srv *httpadapter.Server
	if cfg.HTTPAddr != "" {
		srv = httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
		}()
	}

	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("run complete",
		"tickets_in", summary.TicketsIn,
		"tickets_out", summary.TicketsOut,
		"comments_filtered", summary.CommentsFiltered,
		"null_coordinate_rows", summary.NullCoordinateRows,
		"imputed_latitudes", summary.ImputedLatitudes,
		"imputed_longitudes", summary.ImputedLongitudes,
		"invalid_timestamps", summary.InvalidTimestamps,
		"reference_rows_dropped", dropped,
	)
	return nil
}
