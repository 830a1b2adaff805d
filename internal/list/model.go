// Package list holds the recipe-list view state: the loaded collection,
// the resolved taxonomy, the active filter, and the derived display list.
package list

import (
	"context"
	"strings"
	"sync"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// State tracks the lifecycle of a list screen.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// TypeResolver yields the taxonomy without ever failing.
type TypeResolver interface {
	Resolve(ctx context.Context) []domain.RecipeType
}

// Model is the list view state. All methods are safe for concurrent use;
// observers are invoked outside the lock.
//
// Filtering quirks are intentional and kept from the shipped behavior:
// the type filter and the text query are separate recompute paths that do
// not compose. Setting a query filters the full collection by title and
// ignores the selected type; setting a filter discards the query.
type Model struct {
	mu        sync.Mutex
	resolver  TypeResolver
	store     domain.RecipeStore
	log       *logger.Logger
	state     State
	types     []domain.RecipeType
	recipes   []domain.Recipe
	filtered  []domain.Recipe
	filter    domain.TypeFilter
	observers []func()
}

// NewModel creates an uninitialized list model. Call LoadData to populate it.
func NewModel(resolver TypeResolver, store domain.RecipeStore, log *logger.Logger) *Model {
	return &Model{
		resolver: resolver,
		store:    store,
		log:      log,
		state:    StateUninitialized,
		filter:   domain.AllTypes(),
	}
}

// OnChange registers an observer invoked after every state recomputation.
func (m *Model) OnChange(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// State returns the current lifecycle state.
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LoadData resolves the taxonomy and loads the recipe collection, then
// recomputes the filtered list. The model passes through StateLoading and
// lands in StateReady once both lists are present.
func (m *Model) LoadData(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateLoading
	m.mu.Unlock()

	types := m.resolver.Resolve(ctx)

	recipes, err := m.store.LoadAll()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.types = types
	m.recipes = recipes
	m.state = StateReady
	m.applyFilterLocked()
	m.mu.Unlock()

	m.log.Debug("list: loaded %d recipes, %d types", len(recipes), len(types))
	m.notify()
	return nil
}

// Filters returns the selectable filters: "All" first, then one per
// taxonomy entry.
func (m *Model) Filters() []domain.TypeFilter {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.TypeFilter, 0, len(m.types)+1)
	out = append(out, domain.AllTypes())
	for _, t := range m.types {
		out = append(out, domain.TypeOf(t))
	}
	return out
}

// Types returns the resolved taxonomy without the synthetic "All" entry.
func (m *Model) Types() []domain.RecipeType {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RecipeType(nil), m.types...)
}

// SetFilter selects a type filter and recomputes the display list.
func (m *Model) SetFilter(f domain.TypeFilter) {
	m.mu.Lock()
	m.filter = f
	m.applyFilterLocked()
	m.mu.Unlock()
	m.notify()
}

// Filter returns the currently selected type filter.
func (m *Model) Filter() domain.TypeFilter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter
}

// SetQuery recomputes the display list by case-insensitive substring match
// on the title. An empty query yields the full collection. The selected
// type filter is not applied on this path.
func (m *Model) SetQuery(query string) {
	m.mu.Lock()
	if query == "" {
		m.filtered = append([]domain.Recipe(nil), m.recipes...)
	} else {
		q := strings.ToLower(query)
		m.filtered = m.filtered[:0:0]
		for _, r := range m.recipes {
			if strings.Contains(strings.ToLower(r.Title), q) {
				m.filtered = append(m.filtered, r)
			}
		}
	}
	m.mu.Unlock()
	m.notify()
}

// Recipes returns the current display list.
func (m *Model) Recipes() []domain.Recipe {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Recipe(nil), m.filtered...)
}

// Len returns the display list length.
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.filtered)
}

// Add stores a new recipe, then reloads and refilters.
func (m *Model) Add(r domain.Recipe) error {
	if err := m.store.Add(r); err != nil {
		return err
	}
	return m.reload()
}

// Update replaces a stored recipe, then reloads and refilters.
func (m *Model) Update(r domain.Recipe) error {
	if err := m.store.Update(r); err != nil {
		return err
	}
	return m.reload()
}

// Delete removes a stored recipe, then reloads and refilters.
func (m *Model) Delete(r domain.Recipe) error {
	if err := m.store.Delete(r); err != nil {
		return err
	}
	return m.reload()
}

// reload refreshes the collection from the store and re-runs the filter.
// The model stays in StateReady; mutations never return it to loading.
func (m *Model) reload() error {
	recipes, err := m.store.LoadAll()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.recipes = recipes
	m.applyFilterLocked()
	m.mu.Unlock()

	m.notify()
	return nil
}

// applyFilterLocked recomputes filtered from recipes and the active filter.
// Caller holds m.mu.
func (m *Model) applyFilterLocked() {
	if m.filter.IsAll() {
		m.filtered = append([]domain.Recipe(nil), m.recipes...)
		return
	}
	m.filtered = m.filtered[:0:0]
	for _, r := range m.recipes {
		if m.filter.Matches(&r) {
			m.filtered = append(m.filtered, r)
		}
	}
}

// notify invokes observers outside the lock so they can read the model.
func (m *Model) notify() {
	m.mu.Lock()
	obs := append([]func(){}, m.observers...)
	m.mu.Unlock()
	for _, fn := range obs {
		fn()
	}
}
