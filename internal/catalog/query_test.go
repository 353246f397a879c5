package catalog

import (
	"testing"

	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryTextMatchesNameOrSKU(t *testing.T) {
	all := domain.SeedProducts()

	got := Query(all, Filter{Text: "legging"})
	require.Len(t, got, 1)
	assert.Equal(t, "Legging High Waist", got[0].Name)

	// SKU substring, case-insensitive
	got = Query(all, Filter{Text: "CORRIDA-CINZA"})
	require.Len(t, got, 1)
	assert.Equal(t, "Short de Corrida", got[0].Name)

	assert.Empty(t, Query(all, Filter{Text: "nonexistent"}))
}

func TestQueryCategoryIsExact(t *testing.T) {
	all := domain.SeedProducts()

	got := Query(all, Filter{Category: "shorts"})
	require.Len(t, got, 1)
	assert.Equal(t, "Short de Corrida", got[0].Name)

	// substring of a category is not a match
	assert.Empty(t, Query(all, Filter{Category: "short"}))
}

func TestQueryFiltersCompose(t *testing.T) {
	all := domain.SeedProducts()

	got := Query(all, Filter{Text: "camiseta", Category: "camisetas"})
	require.Len(t, got, 1)

	// both must hold
	assert.Empty(t, Query(all, Filter{Text: "camiseta", Category: "shorts"}))
}

func TestQueryEmptyFilterReturnsAll(t *testing.T) {
	all := domain.SeedProducts()
	assert.Len(t, Query(all, Filter{}), len(all))
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	all := domain.SeedProducts()
	snapshot := domain.SeedProducts()

	first := Query(all, Filter{Text: "legging"})
	second := Query(all, Filter{Text: "legging"})

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, all)
}

func TestCategories(t *testing.T) {
	all := domain.SeedProducts()
	assert.Equal(t, []string{"camisetas", "leggings", "tops", "shorts"}, Categories(all))

	all = append(all, domain.Product{Name: "Dup", Category: "tops"}, domain.Product{Name: "Blank"})
	assert.Equal(t, []string{"camisetas", "leggings", "tops", "shorts"}, Categories(all))
}
