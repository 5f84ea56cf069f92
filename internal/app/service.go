// Package app wires the key-value backend, record store, and command
// router into the service the HTTP API depends on.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ringthegong/gong/internal/adapters/kvstore"
	"github.com/ringthegong/gong/internal/adapters/repository"
	"github.com/ringthegong/gong/internal/config"
	"github.com/ringthegong/gong/internal/domain/command"
	"github.com/ringthegong/gong/internal/domain/record"
	"github.com/ringthegong/gong/internal/domain/render"
	"github.com/ringthegong/gong/pkg/logger"
	"github.com/ringthegong/gong/pkg/metrics"
)

// Service implements the API dependencies for the slash-command handler.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   kvstore.Store
	records *repository.RecordStore
	router  *command.Router

	// Configuration
	verifyToken  string
	storeBackend string
	storePath    string
	now          func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithVerifyToken sets the shared secret expected on every slash command.
// Empty disables verification.
func WithVerifyToken(token string) Option {
	return func(s *Service) {
		s.verifyToken = token
	}
}

// WithStoreBackend selects the key-value backend by name (memory or
// sqlite) and, for sqlite, the database path.
func WithStoreBackend(backend, path string) Option {
	return func(s *Service) {
		if backend != "" {
			s.storeBackend = backend
		}
		if path != "" {
			s.storePath = path
		}
	}
}

// WithStore injects a prebuilt store, overriding the backend selection.
func WithStore(store kvstore.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock overrides the wall clock used for record stamping and month
// scoping.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeBackend: config.BackendMemory,
		storePath:    "gong.db",
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		switch s.storeBackend {
		case config.BackendSQLite:
			store, err := kvstore.NewSQLiteStore(ctx, s.storePath)
			if err != nil {
				return fmt.Errorf("open sqlite store: %w", err)
			}
			s.store = store
		default:
			s.store = kvstore.NewMemoryStore()
		}
	}

	s.records = repository.New(s.store, repository.WithLogger(s.logger))
	s.router = command.New(s.records, command.WithClock(s.now))

	s.started = true
	s.logger.Info(ctx, "gong service started", logger.String("backend", s.storeBackend))
	return nil
}

// Stop releases the store backend.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			s.logger.Error(context.Background(), "closing store failed", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "gong service stopped")
}

// Dispatch routes one slash command's text to a response message.
func (s *Service) Dispatch(ctx context.Context, text string) (render.Message, error) {
	return s.router.Dispatch(ctx, text)
}

// VerifyToken returns the configured shared secret, empty when the check
// is disabled.
func (s *Service) VerifyToken() string {
	return s.verifyToken
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"backend": s.storeBackend,
	}
	if !s.started {
		return stats
	}

	ctx := context.Background()
	month := record.MonthOf(s.now())
	stats["month"] = month
	for _, metric := range record.Metrics() {
		keys, err := s.store.Keys(ctx, record.KeyPrefix(month, metric))
		if err != nil {
			continue
		}
		stats[string(metric)+"Records"] = len(keys)
	}

	if mem, ok := s.store.(*kvstore.MemoryStore); ok {
		n := mem.Len()
		stats["storeKeys"] = n
		metrics.UpdateStoreKeys(n)
	}
	return stats
}
