package tables

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zefrenchwan/standardnames.git/nodes"
)

// DerivedCache memoizes derived standard names per table identifier.
// Entries stay until the table purges them
type DerivedCache struct {
	// mutex guards entries
	mutex sync.Mutex
	// entries links a table identifier to its derived standard names, per name
	entries map[string]map[string]nodes.StandardName
	// hits, misses and size are nil without metrics
	hits   prometheus.Counter
	misses prometheus.Counter
	size   prometheus.Gauge
}

// CacheOption configures a cache
type CacheOption func(*DerivedCache) error

// NewDerivedCache returns an empty cache
func NewDerivedCache(options ...CacheOption) (*DerivedCache, error) {
	result := &DerivedCache{entries: make(map[string]map[string]nodes.StandardName)}
	var globalErr error
	for _, option := range options {
		if err := option(result); err != nil {
			globalErr = errors.Join(globalErr, err)
		}
	}

	return result, globalErr
}

// WithCacheMetrics publishes hits, misses and size to registerer.
// Collectors already registered by another cache are shared
func WithCacheMetrics(registerer prometheus.Registerer) CacheOption {
	return func(c *DerivedCache) error {
		hits, errHits := registerCollector(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snt",
			Subsystem: "derived_cache",
			Name:      "hits_total",
			Help:      "Derived standard names served from the cache",
		}))

		misses, errMisses := registerCollector(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snt",
			Subsystem: "derived_cache",
			Name:      "misses_total",
			Help:      "Derived standard name lookups not in the cache",
		}))

		size, errSize := registerCollector(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "snt",
			Subsystem: "derived_cache",
			Name:      "entries",
			Help:      "Derived standard names in the cache",
		}))

		if err := errors.Join(errHits, errMisses, errSize); err != nil {
			return err
		}

		c.hits, c.misses, c.size = hits, misses, size
		return nil
	}
}

// registerCollector registers collector, or returns the one already registered
func registerCollector[C prometheus.Collector](registerer prometheus.Registerer, collector C) (C, error) {
	err := registerer.Register(collector)
	if err == nil {
		return collector, nil
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}

	var empty C
	return empty, err
}

// Get returns the derived standard name for a table and a name
func (c *DerivedCache) Get(tableId, name string) (nodes.StandardName, bool) {
	if c == nil {
		return nodes.StandardName{}, false
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	value, found := c.entries[tableId][name]
	if found && c.hits != nil {
		c.hits.Inc()
	} else if !found && c.misses != nil {
		c.misses.Inc()
	}

	return value, found
}

// Put stores a derived standard name for a table
func (c *DerivedCache) Put(tableId string, standardName nodes.StandardName) {
	if c == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.entries == nil {
		c.entries = make(map[string]map[string]nodes.StandardName)
	}

	if c.entries[tableId] == nil {
		c.entries[tableId] = make(map[string]nodes.StandardName)
	}

	if _, found := c.entries[tableId][standardName.Name]; !found && c.size != nil {
		c.size.Inc()
	}

	c.entries[tableId][standardName.Name] = standardName
}

// Purge removes all the entries of a table
func (c *DerivedCache) Purge(tableId string) {
	if c == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.size != nil {
		c.size.Sub(float64(len(c.entries[tableId])))
	}

	delete(c.entries, tableId)
}

// Len returns the number of entries for a table
func (c *DerivedCache) Len(tableId string) int {
	if c == nil {
		return 0
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	return len(c.entries[tableId])
}

// Size returns the number of entries for all tables
func (c *DerivedCache) Size() int {
	if c == nil {
		return 0
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	result := 0
	for _, names := range c.entries {
		result += len(names)
	}

	return result
}
