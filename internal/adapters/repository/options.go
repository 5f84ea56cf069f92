package repository

import "github.com/ringthegong/gong/pkg/logger"

// Option applies a configuration option to the RecordStore.
type Option func(*RecordStore)

// WithLogger sets a custom logger for the record store.
func WithLogger(l logger.Logger) Option {
	return func(s *RecordStore) {
		if l != nil {
			s.logger = l
		}
	}
}
