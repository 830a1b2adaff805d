package taxonomy

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/zkamal/recipebox/internal/domain"
)

// Compile-time interface check.
var _ domain.TypeSource = (*Bundled)(nil)

//go:embed recipetypes.json
var bundledJSON []byte

// Bundled is the read-only default taxonomy shipped with the application,
// the last stop of the fallback chain.
type Bundled struct {
	raw []byte
}

// NewBundled returns the default set compiled into the binary.
func NewBundled() *Bundled {
	return &Bundled{raw: bundledJSON}
}

// NewBundledFromJSON returns a bundled source over the given JSON document.
func NewBundledFromJSON(raw []byte) *Bundled {
	return &Bundled{raw: raw}
}

// Types decodes the bundled taxonomy.
func (b *Bundled) Types(ctx context.Context) ([]domain.RecipeType, error) {
	var types []domain.RecipeType
	if err := json.Unmarshal(b.raw, &types); err != nil {
		return nil, fmt.Errorf("taxonomy: decode bundled types: %w", err)
	}
	return types, nil
}
