package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/chemical-safety-registry/internal/config"
	"github.com/kirillkom/chemical-safety-registry/internal/core/nfpa"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
	"github.com/kirillkom/chemical-safety-registry/internal/core/usecase"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/extractor/pdftext"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/queue/nats"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/report/xlsx"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/resilience"
	"github.com/kirillkom/chemical-safety-registry/internal/infrastructure/storage/localfs"
)

type Options struct {
	Logger             *slog.Logger
	ResilienceObserver resilience.Observer
}

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Chemicals *usecase.ChemicalUseCase
	Hazards   *usecase.HazardExtractionUseCase
	NFPA      *usecase.NFPAUseCase
	SDS       *usecase.SDSIngestUseCase
	Reports   *usecase.HazardReportUseCase

	closeFn func()
}

// New wires the application. An invalid NFPA rule table is fatal.
func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	translator, err := nfpa.Load(cfg.NFPARulesPath)
	if err != nil {
		return nil, fmt.Errorf("load nfpa rules: %w", err)
	}
	logger.Info("nfpa_rules_loaded", "path", cfg.NFPARulesPath, "categories", translator.Categories())

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(
		resilience.DefaultPolicy(),
		resilience.WithLogger(logger),
		resilience.WithObserver(opts.ResilienceObserver),
	)
	queue, err := nats.New(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
		Logger:             logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	chemicalRepo := postgres.NewChemicalRepository(db)
	classificationRepo := postgres.NewClassificationRepository(db)
	sdsRepo := postgres.NewSDSFileRepository(db)

	nfpaUC := usecase.NewNFPAUseCase(translator, chemicalRepo)

	return &App{
		Config: cfg,
		Queue:  queue,

		Chemicals: usecase.NewChemicalUseCase(chemicalRepo),
		Hazards:   usecase.NewHazardExtractionUseCase(classificationRepo, sdsRepo, pdftext.NewExtractor(storage)),
		NFPA:      nfpaUC,
		SDS:       usecase.NewSDSIngestUseCase(chemicalRepo, sdsRepo, storage, queue),
		Reports:   usecase.NewHazardReportUseCase(chemicalRepo, nfpaUC, xlsx.NewWriter()),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
