package serving

import (
	"context"
	"slices"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/zefrenchwan/standardnames.git/storage"
	"github.com/zefrenchwan/standardnames.git/tables"
)

// RegisteredTable is a table in use and the base uri to serialize it with
type RegisteredTable struct {
	Table   *tables.Table
	BaseURI string
}

// TableRegistry keeps the tables in use, loading them from the store on first access.
// All tables share the same derived names cache
type TableRegistry struct {
	// mutex guards loaded and generation
	mutex sync.Mutex
	// loaded tables per key
	loaded map[string]RegisteredTable
	// generation changes on each Put or Remove
	generation uint64
	// dao to load tables from
	dao Store
	// cache is shared by loaded tables
	cache *tables.DerivedCache
	// logger for tables
	logger *zap.SugaredLogger
	// strictUnits is set on loaded tables
	strictUnits bool
}

// NewTableRegistry returns an empty registry, cache metrics go to registerer if not nil
func NewTableRegistry(dao Store, logger *zap.SugaredLogger, strictUnits bool, registerer prometheus.Registerer) (*TableRegistry, error) {
	var options []tables.CacheOption
	if registerer != nil {
		options = append(options, tables.WithCacheMetrics(registerer))
	}

	cache, errCache := tables.NewDerivedCache(options...)
	if errCache != nil {
		return nil, errCache
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &TableRegistry{
		loaded:      make(map[string]RegisteredTable),
		dao:         dao,
		cache:       cache,
		logger:      logger,
		strictUnits: strictUnits,
	}, nil
}

// ParseOptions returns the options to read a table that will be registered
func (r *TableRegistry) ParseOptions(baseURI string) storage.ParseOptions {
	return storage.ParseOptions{
		BaseURI:      baseURI,
		Logger:       r.logger,
		StrictUnits:  r.strictUnits,
		TableOptions: []tables.Option{tables.WithCache(r.cache)},
	}
}

// Get returns the table for key, loading it if not in use yet.
// The store is read without holding the lock, so a slow load does not block other tables
func (r *TableRegistry) Get(ctx context.Context, key string) (RegisteredTable, error) {
	r.mutex.Lock()
	registered, found := r.loaded[key]
	generation := r.generation
	r.mutex.Unlock()
	if found {
		return registered, nil
	}

	table, baseURI, err := r.dao.LoadTable(ctx, key, r.ParseOptions(""))
	if err != nil {
		return RegisteredTable{}, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	// another request loaded it first, table was never used
	if current, found := r.loaded[key]; found {
		return current, nil
	}

	registered = RegisteredTable{Table: table, BaseURI: baseURI}
	// tables changed while loading, the loaded one may be stale so it is served but not kept
	if generation != r.generation {
		return registered, nil
	}

	r.loaded[key] = registered
	r.logger.Infow("table loaded", "key", key, "names", len(table.StandardNames()))
	return registered, nil
}

// Loaded returns the keys of the tables in use, sorted
func (r *TableRegistry) Loaded() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	result := make([]string, 0, len(r.loaded))
	for key := range r.loaded {
		result = append(result, key)
	}

	slices.Sort(result)
	return result
}

// CacheSize returns the number of derived names in the shared cache
func (r *TableRegistry) CacheSize() int {
	return r.cache.Size()
}

// Put registers table for key, replacing the previous one
func (r *TableRegistry) Put(key string, table *tables.Table, baseURI string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if previous, found := r.loaded[key]; found && previous.Table != table {
		previous.Table.Release()
	}

	r.generation++
	r.loaded[key] = RegisteredTable{Table: table, BaseURI: baseURI}
}

// Remove forgets the table for key
func (r *TableRegistry) Remove(key string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.generation++
	if previous, found := r.loaded[key]; found {
		previous.Table.Release()
		delete(r.loaded, key)
	}
}

// StrictUnits returns true if loaded tables reject unparseable units
func (r *TableRegistry) StrictUnits() bool {
	return r.strictUnits
}
