package backend

import (
	"context"
	"errors"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case MemoryBackend:
		return f.createMemoryBackend(ctx, config)
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return f.withPublisher(ctx, config, repo), nil
	case PostgresBackend:
		repo, err := storage.NewPostgresRepository(config.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres repository: %w", err)
		}
		f.logger.InfoContext(ctx, "Initialized Postgres backend")
		return f.withPublisher(ctx, config, repo), nil
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createMemoryBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if config.AMQPURL != "" {
		f.logger.WarnContext(ctx, "AMQP is ignored with the memory backend: the mirror worker reads from a SQL database")
	}

	if config.DataFile == "" {
		f.logger.InfoContext(ctx, "Initialized memory backend without persistence")
		return &BackendResult{Ledger: memory.New()}, nil
	}

	store, err := memory.NewFromFile(config.DataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize memory backend: %w", err)
	}
	f.logger.InfoContext(ctx, "Initialized memory backend", "data_file", config.DataFile)
	return &BackendResult{Ledger: store}, nil
}

// withPublisher attaches the optional AMQP client. A broker that cannot be
// reached is logged and the backend runs without publishing.
func (f *DefaultFactory) withPublisher(ctx context.Context, config Config, repo *storage.SQLRepository) *BackendResult {
	result := &BackendResult{
		Ledger: repo,
		Checks: []HealthCheck{{Name: "database", Check: repo.Ping}},
	}

	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
			amqpClient = nil
		} else {
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
			result.Publisher = amqpClient
			result.Checks = append(result.Checks, HealthCheck{
				Name:  "amqp",
				Check: func(context.Context) error { return amqpClient.Ping() },
			})
		}
	}

	result.Cleanup = func() error {
		var errs []error
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				errs = append(errs, fmt.Errorf("amqp: %w", err))
			}
		}
		if err := repo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
		return errors.Join(errs...)
	}
	return result
}
