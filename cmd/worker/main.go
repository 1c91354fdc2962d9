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

	"github.com/kirillkom/chemical-safety-registry/internal/bootstrap"
	"github.com/kirillkom/chemical-safety-registry/internal/config"
	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/observability/logging"
	"github.com/kirillkom/chemical-safety-registry/internal/observability/metrics"
)

const serviceName = "registry-worker"

type sdsExtractor interface {
	ExtractAndStoreFromSDS(ctx context.Context, cas string) (*domain.GHSClassification, error)
}

type extractionRecorder interface {
	StartExtraction()
	FinishExtraction(duration time.Duration, status string)
}

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{Logger: logger})
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	timeout := time.Duration(cfg.WorkerExtractTimeoutSeconds) * time.Second
	handler := newSDSHandler(app.Hazards, workerMetrics, logger, timeout)

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	if err := app.Queue.SubscribeSDSUploaded(ctx, handler); err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}

// newSDSHandler extracts and stores GHS data for each uploaded SDS.
func newSDSHandler(
	extractor sdsExtractor,
	recorder extractionRecorder,
	logger *slog.Logger,
	timeout time.Duration,
) func(context.Context, string) error {
	return func(ctx context.Context, cas string) error {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		recorder.StartExtraction()
		cls, err := extractor.ExtractAndStoreFromSDS(ctx, cas)
		status := extractionStatus(err)
		recorder.FinishExtraction(time.Since(start), status)

		if err != nil {
			logger.Warn("sds_extraction_finished", "cas_number", cas, "status", status, "error", err)
			return err
		}
		logger.Info("sds_extraction_finished",
			"cas_number", cas,
			"status", status,
			"classification_id", cls.ID,
			"hazard_statements", len(cls.Hazard.HazardStatements),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}
}

func extractionStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsKind(err, domain.ErrSourceUnavailable):
		return "source_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
