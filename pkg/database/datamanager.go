// Package database provides the document store behind every guild feature:
// a generic, cached, write-through DataManager per named JSON document plus
// the repositories built on top of it.
package database

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PancyStudios/ToothlessGo/pkg/logger"
	"github.com/PancyStudios/ToothlessGo/pkg/metrics"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

// Document names
const (
	DocGuilds    = "guilds"
	DocEconomy   = "economy"
	DocLevels    = "levels"
	DocWarns     = "warns"
	DocCooldowns = "cooldowns"
)

var (
	ErrUnknownSection    = errors.New("unknown configuration section")
	ErrInvalidPatch      = errors.New("invalid configuration patch")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to the same account")
)

// ChangeEvent describes a persisted mutation
type ChangeEvent struct {
	Document string
	GuildID  string
	UserID   string
}

// document is the untyped view of a DataManager the Store works with
type document interface {
	Name() string
	hydrate()
	flush() error
}

// Store owns the backend and every DataManager registered on it.
// Construct one per process (or per test) and inject it where needed.
type Store struct {
	backend Backend
	now     func() time.Time

	// Locks serializes composite operations spanning more than one document
	Locks *KeyedMutex

	mu        sync.RWMutex
	documents map[string]document
	listeners []func(ChangeEvent)
}

// StoreOption customizes a Store
type StoreOption func(*Store)

// WithClock overrides the clock used for timestamps and ids
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store over backend
func NewStore(backend Backend, opts ...StoreOption) *Store {
	s := &Store{
		backend:   backend,
		now:       time.Now,
		Locks:     NewKeyedMutex(),
		documents: make(map[string]document),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the underlying backend
func (s *Store) Backend() Backend {
	return s.backend
}

// Now returns the store clock's current time
func (s *Store) Now() time.Time {
	return s.now()
}

// Subscribe registers fn to be called after every persisted mutation.
// Listeners run synchronously and must not block.
func (s *Store) Subscribe(fn func(ChangeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(ev ChangeEvent) {
	s.mu.RLock()
	listeners := make([]func(ChangeEvent), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

func (s *Store) register(doc document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.documents[doc.Name()]; exists {
		panic(fmt.Sprintf("database: document %q registered twice", doc.Name()))
	}
	s.documents[doc.Name()] = doc
}

func (s *Store) snapshot() []document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.documents))
	for name := range s.documents {
		names = append(names, name)
	}
	sort.Strings(names)

	docs := make([]document, 0, len(names))
	for _, name := range names {
		docs = append(docs, s.documents[name])
	}
	return docs
}

// Preload hydrates every registered document concurrently
func (s *Store) Preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, doc := range s.snapshot() {
		doc := doc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc.hydrate()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	logger.System(fmt.Sprintf("Documentos precargados desde %s", s.backend), "DataManager")
	return nil
}

// Flush re-persists every hydrated document. It returns the first error
// encountered but always attempts every document.
func (s *Store) Flush() error {
	var first error
	for _, doc := range s.snapshot() {
		if err := doc.flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// DataManager provides cached, write-through access to one named document.
// The document is hydrated from the backend on first use; afterwards the
// in-memory value is authoritative and every mutation is saved before the
// call returns.
type DataManager[T any] struct {
	name       string
	store      *Store
	newDefault func() T

	mu     sync.Mutex
	loaded bool
	value  T
}

// NewDataManager registers a document called name on store
func NewDataManager[T any](store *Store, name string, newDefault func() T) *DataManager[T] {
	dm := &DataManager[T]{
		name:       name,
		store:      store,
		newDefault: newDefault,
	}
	store.register(dm)
	return dm
}

// Name returns the document name
func (dm *DataManager[T]) Name() string {
	return dm.name
}

// View runs fn with the current value under the document lock.
// fn must not retain the pointer.
func (dm *DataManager[T]) View(fn func(value *T)) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.ensureLoaded()
	fn(&dm.value)
}

// Update runs fn under the document lock and persists the document when fn
// reports a change. Save failures are logged, never returned.
func (dm *DataManager[T]) Update(fn func(value *T) bool) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.ensureLoaded()
	if fn(&dm.value) {
		_ = dm.save()
	}
}

// hydrate loads the document if it has not been loaded yet
func (dm *DataManager[T]) hydrate() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.ensureLoaded()
}

func (dm *DataManager[T]) flush() error {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	if !dm.loaded {
		return nil
	}
	return dm.save()
}

// ensureLoaded must be called with dm.mu held
func (dm *DataManager[T]) ensureLoaded() {
	if dm.loaded {
		return
	}
	dm.loaded = true
	dm.value = dm.load()
}

func (dm *DataManager[T]) load() T {
	data, ok, err := dm.store.backend.Load(dm.name)
	if err != nil {
		metrics.DocumentLoads.WithLabelValues(dm.name, metrics.ResultError).Inc()
		logger.Error(fmt.Sprintf("Error cargando '%s': %v. Se usará un documento vacío.", dm.name, err), "DataManager")
		return dm.newDefault()
	}
	if !ok {
		metrics.DocumentLoads.WithLabelValues(dm.name, metrics.ResultMissing).Inc()
		logger.Debug(fmt.Sprintf("'%s' no existe todavía, usando valores por defecto", dm.name), "DataManager")
		return dm.newDefault()
	}

	value := dm.newDefault()
	if err := json.Unmarshal(data, &value); err != nil {
		metrics.DocumentLoads.WithLabelValues(dm.name, metrics.ResultError).Inc()
		logger.Error(fmt.Sprintf("JSON inválido en '%s': %v. Se usará un documento vacío.", dm.name, err), "DataManager")
		return dm.newDefault()
	}

	metrics.DocumentLoads.WithLabelValues(dm.name, metrics.ResultOK).Inc()
	return value
}

// save must be called with dm.mu held
func (dm *DataManager[T]) save() error {
	start := time.Now()
	defer func() {
		metrics.SaveDuration.WithLabelValues(dm.name).Observe(time.Since(start).Seconds())
	}()

	data, err := json.MarshalIndent(dm.value, "", "  ")
	if err != nil {
		metrics.DocumentSaves.WithLabelValues(dm.name, metrics.ResultError).Inc()
		logger.Error(fmt.Sprintf("Error serializando '%s': %v", dm.name, err), "DataManager")
		return err
	}

	if err := dm.store.backend.Save(dm.name, data); err != nil {
		metrics.DocumentSaves.WithLabelValues(dm.name, metrics.ResultError).Inc()
		logger.Error(fmt.Sprintf("Error guardando '%s': %v", dm.name, err), "DataManager")
		return err
	}

	metrics.DocumentSaves.WithLabelValues(dm.name, metrics.ResultOK).Inc()
	return nil
}
