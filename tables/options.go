package tables

import (
	"go.uber.org/zap"

	"github.com/zefrenchwan/standardnames.git/units"
)

// Option configures a table
type Option func(*Table)

// WithLogger sets the logger used to report warnings
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithCache shares a derived name cache between tables
func WithCache(cache *DerivedCache) Option {
	return func(t *Table) {
		if cache != nil {
			t.cache = cache
		}
	}
}

// WithRegistry sets the unit registry
func WithRegistry(registry *units.Registry) Option {
	return func(t *Table) {
		if registry != nil {
			t.registry = registry
		}
	}
}

// WithStrictUnits turns unparseable units into errors instead of warnings
func WithStrictUnits(strict bool) Option {
	return func(t *Table) {
		t.strictUnits = strict
	}
}
