package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/ppx007/smart-attendance/internal/ai"
	"github.com/ppx007/smart-attendance/internal/config"
	"github.com/ppx007/smart-attendance/internal/export"
	"github.com/ppx007/smart-attendance/internal/importer"
	httpiface "github.com/ppx007/smart-attendance/internal/interfaces/http"
	"github.com/ppx007/smart-attendance/internal/nlp"
	"github.com/ppx007/smart-attendance/internal/report"
	"github.com/ppx007/smart-attendance/internal/repository"
	"github.com/ppx007/smart-attendance/pkg/database"
	"github.com/ppx007/smart-attendance/pkg/utils"
)

func main() {
	// .env is optional; environment variables win over the config file
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Smart Attendance System",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port),
		zap.String("nlp_mode", cfg.NLP.Mode))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Create output directory for exported reports
	if err := os.MkdirAll(cfg.Export.OutputDir, 0755); err != nil {
		logger.Fatal("Failed to create output directory", zap.Error(err))
	}

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db.DB, logger)
	recordRepo := repository.NewRecordRepository(db.DB, logger)

	// The model collaborator is wired only when a key is configured;
	// without it the processor runs the rule pipeline alone
	var generator nlp.TableGenerator
	if cfg.OpenAI.APIKey != "" {
		generator = ai.NewTableGenerator(ai.Config{
			APIKey:      cfg.OpenAI.APIKey,
			BaseURL:     cfg.OpenAI.BaseURL,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
		}, logger)
	}

	processor := nlp.NewProcessor(nlp.Options{
		Debug:         cfg.NLP.Debug,
		MinConfidence: cfg.NLP.MinConfidence,
		UseContext:    cfg.NLP.UseContext,
		Mode:          nlp.Mode(cfg.NLP.Mode),
	}, generator, logger)

	// Initialize report pipeline
	registry := report.NewRegistry()
	engine := report.NewEngine()
	sheetGenerator := report.NewGenerator(registry, engine, logger)

	imp := importer.NewImporter(logger)
	writer := export.NewExcelWriter(logger)

	kvLogger := utils.NewKVLogger(logger)
	handlers := httpiface.NewHandlers(
		processor,
		sheetGenerator,
		imp,
		writer,
		employeeRepo,
		recordRepo,
		cfg.Export.OutputDir,
		kvLogger,
	)

	server := httpiface.NewServer(httpiface.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, kvLogger)

	// Serve until interrupted
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("Server exited with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server exited successfully")
}
