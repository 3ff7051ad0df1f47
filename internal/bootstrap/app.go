package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"paper-summary-api/internal/ai"
	"paper-summary-api/internal/app"
	"paper-summary-api/internal/config"
	"paper-summary-api/internal/model"
	"paper-summary-api/internal/observability"
	"paper-summary-api/internal/platform/database"
	mysqlClient "paper-summary-api/internal/platform/mysql"
	postgresClient "paper-summary-api/internal/platform/postgres"
	rabbitmqClient "paper-summary-api/internal/platform/rabbitmq"
)

type App struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Metrics   *observability.Metrics
	DB        *gorm.DB
	MQConn    *amqp.Connection
	Publisher app.EventPublisher
	LLM       ai.Client

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
	})
	metrics := observability.NewMetrics()

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Publisher: app.NopPublisher{},
		StartedAt: time.Now(),
	}

	a.DB, err = openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.DB.AutoMigrate(model.AllModels()...); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("database ready")

	if cfg.RabbitMQ.URL != "" {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Publisher = rabbitmqClient.NewEventPublisher(a.MQConn, cfg.RabbitMQ.Exchange)
		logger.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("event publishing enabled")
	} else {
		logger.Info().Msg("rabbitmq url not set, domain events disabled")
	}

	client, err := ai.New(ctx, ai.Options{
		Provider: cfg.LLM.Provider,
		BaseURL:  cfg.LLM.BaseURL,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("init llm client failed: %w", err)
	}
	a.LLM = ai.Instrument(client, metrics)
	logger.Info().Str("provider", cfg.LLM.Provider).Str("model", cfg.LLM.Model).Msg("llm client ready")

	return a, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*gorm.DB, error) {
	pool := database.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute,
		Logger:          logger,
	}
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		return postgresClient.New(ctx, cfg.PostgresDSN(), pool)
	default:
		return mysqlClient.New(ctx, cfg.MySQLDSN(), pool)
	}
}

// HealthChecks returns one probe per external dependency.
func (a *App) HealthChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{
		"database": func(ctx context.Context) error {
			return database.Ping(ctx, a.DB)
		},
	}
	if a.MQConn != nil {
		checks["rabbitmq"] = func(context.Context) error {
			return rabbitmqClient.Healthy(a.MQConn)
		}
	}
	return checks
}

func (a *App) Close() error {
	var errs []error
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq: %w", err))
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
