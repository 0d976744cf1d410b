package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	httpadapter "cv-builder/internal/adapter/http"
	"cv-builder/internal/adapter/repository"
	"cv-builder/internal/config"
	"cv-builder/internal/domain"
	"cv-builder/internal/infrastructure/migration"
	"cv-builder/internal/model"
	"cv-builder/internal/usecase"
	"cv-builder/pkg/ai"
	"cv-builder/pkg/infrastructure"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

var serveSkipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start the HTTP server. Settings come from the environment (see internal/config).`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveSkipMigrations, "skip-migrations", false, "Do not apply schema migrations on start")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAuth(); err != nil {
		return err
	}

	logger, err := infrastructure.NewLogger(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := infrastructure.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if !serveSkipMigrations {
		if err := migration.RunMigrations(ctx, pool, logger); err != nil {
			return err
		}
	}

	library := usecase.NewLibrary(repository.NewCVRepo(pool), logger)
	exporter := newExporter(cfg, logger)
	sessions := usecase.NewSessions(cfg.SessionTTL)
	suggester := ai.NewSuggester(ai.NewClient(cfg.AIServiceURL, cfg.AITimeout, logger), logger)
	ids := model.NewIDSource()

	newWizard := func(p domain.Principal) *usecase.Wizard {
		return usecase.NewWizard(usecase.WizardConfig{
			Principal:   p,
			Persistence: library.For(p.UserID),
			Exporter:    exporter,
			Logger:      logger.With(zap.String("user_id", p.UserID.String())),
			Quiet:       cfg.AutosaveQuiet,
			IDs:         ids,
		})
	}

	app := httpadapter.NewApp(logger)
	h := httpadapter.NewHandler(httpadapter.Deps{
		Library:   library,
		Sessions:  sessions,
		NewWizard: newWizard,
		Suggester: suggester,
		Exporter:  exporter,
		Logger:    logger,
	})
	h.Register(app, httpadapter.NewAuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		sweepSessions(gCtx, sessions, logger)
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newExporter(cfg *config.Config, logger *zap.Logger) *usecase.Exporter {
	renderer := infrastructure.NewChromedpRenderer(cfg.ChromePath).WithTimeout(cfg.ExportTimeout)
	return usecase.NewExporter(renderer, pdfOptions(cfg), cfg.ExportDir, logger)
}

func pdfOptions(cfg *config.Config) infrastructure.PDFOptions {
	return infrastructure.PDFOptions{
		PageSize:     cfg.PDFPageSize,
		MarginInches: cfg.PDFMargin,
		Scale:        cfg.PDFScale,
	}
}

// sweepSessions drops idle wizard sessions until ctx ends.
func sweepSessions(ctx context.Context, sessions *usecase.Sessions, logger *zap.Logger) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := sessions.Sweep(); n > 0 {
				logger.Info("expired wizard sessions", zap.Int("count", n), zap.Int("open", sessions.Len()))
			}
		}
	}
}
