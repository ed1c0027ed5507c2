package backend

import (
	"context"

	"fintrack/internal/ledger"
	"fintrack/internal/services"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// HealthCheck probes one dependency for readiness endpoints.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// BackendResult contains the ledger, its optional event publisher and cleanup
type BackendResult struct {
	Ledger    ledger.Ledger
	Publisher services.EventPublisher // nil when AMQP is disabled
	Checks    []HealthCheck
	Cleanup   CleanupFunc
}

// Close runs Cleanup if set.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend creates a backend instance based on the provided config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	// Backend type
	Type BackendType

	// Memory backend snapshot file, empty for no persistence
	DataFile string

	// SQL backends
	SQLiteDBPath string
	PostgresURL  string

	// Optional event publishing, SQL backends only
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// BackendType represents the type of backend
type BackendType string

const (
	MemoryBackend   BackendType = "memory"
	SQLiteBackend   BackendType = "sqlite"
	PostgresBackend BackendType = "postgres"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend, PostgresBackend:
		return true
	default:
		return false
	}
}

// IsSQL reports whether the backend stores expenses in a database the worker can read.
func (bt BackendType) IsSQL() bool {
	return bt == SQLiteBackend || bt == PostgresBackend
}
