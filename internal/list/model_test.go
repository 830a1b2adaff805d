package list

import (
	"context"
	"reflect"
	"testing"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
	"github.com/zkamal/recipebox/internal/store"
)

// staticResolver satisfies TypeResolver with a fixed taxonomy.
type staticResolver struct {
	types []domain.RecipeType
}

func (r *staticResolver) Resolve(ctx context.Context) []domain.RecipeType {
	return r.types
}

var (
	typeX = domain.RecipeType{ID: "x", Name: "X"}
	typeY = domain.RecipeType{ID: "y", Name: "Y"}
)

func newTestModel(t *testing.T, recipes ...domain.Recipe) (*Model, *store.BadgerStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)

	s, err := store.Open(store.InMemoryConfig(), log)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	for _, r := range recipes {
		if err := s.Add(r); err != nil {
			t.Fatalf("seeding store: %v", err)
		}
	}

	resolver := &staticResolver{types: []domain.RecipeType{typeX, typeY}}
	return NewModel(resolver, s, log), s
}

func loadedModel(t *testing.T, recipes ...domain.Recipe) *Model {
	t.Helper()
	m, _ := newTestModel(t, recipes...)
	if err := m.LoadData(context.Background()); err != nil {
		t.Fatalf("loading data: %v", err)
	}
	return m
}

func typed(id, title string, rt domain.RecipeType) domain.Recipe {
	return domain.Recipe{
		ID:          id,
		Title:       title,
		Type:        rt,
		Ingredients: []string{"stuff"},
		Steps:       []string{"cook"},
	}
}

func titles(recipes []domain.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

func TestLifecycleStates(t *testing.T) {
	m, _ := newTestModel(t)

	if m.State() != StateUninitialized {
		t.Fatalf("expected uninitialized, got %s", m.State())
	}
	if err := m.LoadData(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.State() != StateReady {
		t.Fatalf("expected ready, got %s", m.State())
	}

	// Mutations keep the model ready; no round trip through loading.
	if err := m.Add(typed("r1", "Omelette", typeX)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if m.State() != StateReady {
		t.Fatalf("expected ready after mutation, got %s", m.State())
	}
}

func TestFiltersIncludeAllFirst(t *testing.T) {
	m := loadedModel(t)

	filters := m.Filters()
	if len(filters) != 3 {
		t.Fatalf("expected All + 2 types, got %d", len(filters))
	}
	if !filters[0].IsAll() {
		t.Fatal("expected the All filter first")
	}
	if got, _ := filters[1].Type(); got != typeX {
		t.Fatalf("expected %v second, got %v", typeX, got)
	}
}

func TestAllFilterReturnsFullList(t *testing.T) {
	m := loadedModel(t,
		typed("r1", "Omelette", typeX),
		typed("r2", "Laksa", typeY),
	)

	m.SetFilter(domain.AllTypes())
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Omelette", "Laksa"}) {
		t.Fatalf("expected full list in stored order, got %v", got)
	}
}

func TestTypeFilterKeepsRelativeOrder(t *testing.T) {
	m := loadedModel(t,
		typed("r1", "Omelette", typeX),
		typed("r2", "Fried Rice", typeX),
		typed("r3", "Laksa", typeY),
	)

	m.SetFilter(domain.TypeOf(typeX))
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Omelette", "Fried Rice"}) {
		t.Fatalf("expected the two x-typed recipes in order, got %v", got)
	}

	m.SetFilter(domain.TypeOf(typeY))
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Laksa"}) {
		t.Fatalf("expected only the y-typed recipe, got %v", got)
	}
}

func TestQueryMatchesCaseInsensitive(t *testing.T) {
	m := loadedModel(t,
		typed("r1", "Chicken Rice", typeX),
		typed("r2", "Fried Chicken", typeY),
		typed("r3", "Laksa", typeY),
	)

	m.SetQuery("chick")
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Chicken Rice", "Fried Chicken"}) {
		t.Fatalf("expected both chicken dishes, got %v", got)
	}

	m.SetQuery("LAKSA")
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Laksa"}) {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}

// The query path intentionally ignores the selected type filter, and an
// empty query restores the full unfiltered list. This pins the shipped
// behavior: the two recompute paths do not compose.
func TestQueryIgnoresSelectedTypeFilter(t *testing.T) {
	m := loadedModel(t,
		typed("r1", "Chicken Rice", typeX),
		typed("r2", "Fried Chicken", typeY),
	)

	m.SetFilter(domain.TypeOf(typeX))
	m.SetQuery("chicken")
	got := titles(m.Recipes())
	if !reflect.DeepEqual(got, []string{"Chicken Rice", "Fried Chicken"}) {
		t.Fatalf("query must search the full collection, got %v", got)
	}

	m.SetQuery("")
	got = titles(m.Recipes())
	if !reflect.DeepEqual(got, []string{"Chicken Rice", "Fried Chicken"}) {
		t.Fatalf("empty query must restore the full list, got %v", got)
	}
}

func TestZeroLengthTitleDoesNotBreakFiltering(t *testing.T) {
	// Imported out-of-band data may carry an empty title.
	m := loadedModel(t,
		typed("r1", "", typeX),
		typed("r2", "Laksa", typeY),
	)

	m.SetQuery("laksa")
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Laksa"}) {
		t.Fatalf("unexpected result: %v", got)
	}

	m.SetFilter(domain.TypeOf(typeX))
	if m.Len() != 1 {
		t.Fatalf("expected the untitled recipe to survive type filtering, got %d", m.Len())
	}
}

func TestMutationsReloadAndNotify(t *testing.T) {
	m := loadedModel(t, typed("r1", "Omelette", typeX))

	var notifications int
	m.OnChange(func() { notifications++ })

	if err := m.Add(typed("r2", "Laksa", typeY)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if notifications != 1 {
		t.Fatalf("expected 1 notification after add, got %d", notifications)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 recipes after add, got %d", m.Len())
	}

	edited := typed("r1", "Omelette Deluxe", typeX)
	if err := m.Update(edited); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := titles(m.Recipes()); got[0] != "Omelette Deluxe" {
		t.Fatalf("expected updated title first, got %v", got)
	}

	if err := m.Delete(edited); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Laksa"}) {
		t.Fatalf("expected only Laksa left, got %v", got)
	}
	if notifications != 3 {
		t.Fatalf("expected 3 notifications, got %d", notifications)
	}
}

func TestMutationRefiltersUnderActiveFilter(t *testing.T) {
	m := loadedModel(t, typed("r1", "Omelette", typeX))
	m.SetFilter(domain.TypeOf(typeY))

	if m.Len() != 0 {
		t.Fatalf("expected empty display list, got %d", m.Len())
	}
	if err := m.Add(typed("r2", "Laksa", typeY)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := titles(m.Recipes()); !reflect.DeepEqual(got, []string{"Laksa"}) {
		t.Fatalf("expected the new y-typed recipe to appear, got %v", got)
	}
}
