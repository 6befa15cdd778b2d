package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/andy/printdesk/internal/config"
	"github.com/andy/printdesk/internal/fixtures"
	"github.com/andy/printdesk/internal/logging"
	"github.com/andy/printdesk/internal/repository"
	"github.com/andy/printdesk/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Logger *slog.Logger

	// Repositories
	ClientRepo  repository.ClientRepository
	QuoteRepo   repository.QuoteRepository
	InvoiceRepo repository.InvoiceRepository
	JobRepo     repository.JobRepository

	// Services
	ClientService  service.ClientService
	QuoteService   service.QuoteService
	InvoiceService service.InvoiceService
	JobService     service.JobService
	ReportService  service.ReportService
	CommandService service.CommandService

	clock     service.Clock
	logCloser io.Closer
}

// Options tweak how the container is built
type Options struct {
	// LogWriter receives logs when no log file is configured
	LogWriter io.Writer
	// Now overrides the clock, for tests
	Now service.Clock
}

// New creates a new App instance, initializing all dependencies
// It handles:
// 1. Loading config (file, then PRINTDESK_* environment)
// 2. Opening the log
// 3. Loading seed data
// 4. Creating repositories
// 5. Creating services
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg, Options{LogWriter: os.Stderr})
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	// Ensure all necessary directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, logCloser, err := logging.New(cfg.Log, opts.LogWriter)
	if err != nil {
		return nil, err
	}

	seed, err := loadSeed(cfg.Fixtures)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	logger.DebugContext(ctx, "seed loaded",
		slog.Int("clients", len(seed.Clients)),
		slog.Int("quotes", len(seed.Quotes)),
		slog.Int("invoices", len(seed.Invoices)),
		slog.Int("jobs", len(seed.Jobs)),
	)

	// Create repositories
	clientRepo := repository.NewClientRepo(seed.Clients)
	quoteRepo := repository.NewQuoteRepo(seed.Quotes)
	invoiceRepo := repository.NewInvoiceRepo(seed.Invoices)
	jobRepo := repository.NewJobRepo(seed.Jobs)

	// Create services with their dependencies
	clientService := service.NewClientService(clientRepo, quoteRepo, invoiceRepo)
	quoteService := service.NewQuoteService(quoteRepo, invoiceRepo, clientRepo, service.QuoteOptions{
		Prefix:    cfg.Numbering.QuotePrefix,
		ValidDays: cfg.Quote.ValidDays,
		Now:       opts.Now,
	})
	invoiceService := service.NewInvoiceService(invoiceRepo, quoteRepo, clientRepo, service.InvoiceOptions{
		Prefix:  cfg.Numbering.InvoicePrefix,
		DueDays: cfg.Invoice.DefaultDueDays,
		Now:     opts.Now,
	})
	jobService := service.NewJobService(jobRepo)
	reportService := service.NewReportService(invoiceRepo, quoteRepo, clientRepo, opts.Now)
	commandService := service.NewCommandService(logger, opts.Now)

	return &App{
		Config:         cfg,
		Logger:         logger,
		ClientRepo:     clientRepo,
		QuoteRepo:      quoteRepo,
		InvoiceRepo:    invoiceRepo,
		JobRepo:        jobRepo,
		ClientService:  clientService,
		QuoteService:   quoteService,
		InvoiceService: invoiceService,
		JobService:     jobService,
		ReportService:  reportService,
		CommandService: commandService,
		clock:          opts.Now,
		logCloser:      logCloser,
	}, nil
}

func loadSeed(path string) (*fixtures.Seed, error) {
	if path == "" {
		seed, err := fixtures.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load demo data: %w", err)
		}
		return seed, nil
	}
	seed, err := fixtures.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures %s: %w", path, err)
	}
	return seed, nil
}

// Now is the application clock
func (a *App) Now() time.Time {
	if a.clock == nil {
		return time.Now()
	}
	return a.clock()
}

// Close cleanly shuts down the application
func (a *App) Close() error {
	a.Logger.Debug("app closed")
	if a.logCloser != nil {
		return a.logCloser.Close()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
