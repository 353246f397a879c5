package catalog

import (
	"testing"
	"time"

	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*Store, *MemKV) {
	kv := NewMemKV()
	return NewStore(kv), kv
}

func TestLoadAllSeedsOnFirstUse(t *testing.T) {
	store, kv := newTestStore()

	list, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "Camiseta Fitness Pro", list[0].Name)
	assert.Equal(t, "camisetas-camiseta-fitness-pro-preto-m", list[0].SKU)

	// the seed was persisted, not just returned
	raw, err := kv.Get(ProductsKey)
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	again, err := store.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, list, again)
}

func TestLoadAllDoesNotReseedOnceNonEmpty(t *testing.T) {
	store, _ := newTestStore()

	only := []domain.Product{{
		ID: 99, Name: "Jaqueta Corta Vento", Category: "jaquetas",
		SalePrice: "199.90", CostPrice: "90.00", InitialStock: "3",
		CreatedAt: time.Now().UTC(),
	}}
	require.NoError(t, store.Overwrite(only))

	list, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(99), list[0].ID)
}

func TestLoadAllMalformedBlobDegradesToEmpty(t *testing.T) {
	store, kv := newTestStore()
	require.NoError(t, kv.Put(ProductsKey, []byte("{not json")))

	list, err := store.LoadAll()
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ProductsKey, loadErr.Key)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestAppendPersists(t *testing.T) {
	store, _ := newTestStore()

	p := domain.Product{
		ID: 1000, Name: "Top Alta Sustentacao", Category: "tops",
		SalePrice: "99.90", CostPrice: "45.00", InitialStock: "12",
		SKU:       domain.DeriveSKU("tops", "Top Alta Sustentacao", "Preto", "M"),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Append(p))

	list, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, list, 5) // four seeds plus the append
	assert.Equal(t, int64(1000), list[4].ID)
	assert.Equal(t, "tops-top-alta-sustentacao-preto-m", list[4].SKU)
}

func TestFindByID(t *testing.T) {
	store, _ := newTestStore()

	p, found, err := store.FindByID(2)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Legging High Waist", p.Name)

	_, found, err = store.FindByID(12345)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionFlag(t *testing.T) {
	store, kv := newTestStore()

	assert.False(t, store.LoggedIn())
	require.NoError(t, store.SetLoggedIn(true))
	assert.True(t, store.LoggedIn())

	// only the literal "true" counts as authenticated
	require.NoError(t, kv.Put(SessionKey, []byte("yes")))
	assert.False(t, store.LoggedIn())

	require.NoError(t, store.SetLoggedIn(false))
	assert.False(t, store.LoggedIn())
}

func TestQueueLifecycle(t *testing.T) {
	store, _ := newTestStore()

	queue, err := store.LoadQueue()
	require.NoError(t, err)
	assert.Empty(t, queue) // queue is never seeded

	require.NoError(t, store.AppendQueue(domain.Product{ID: 1, Name: "A", SalePrice: "10", CostPrice: "5"}))
	require.NoError(t, store.AppendQueue(domain.Product{ID: 2, Name: "B", SalePrice: "20", CostPrice: "8"}))

	queue, err = store.LoadQueue()
	require.NoError(t, err)
	require.Len(t, queue, 2)

	require.NoError(t, store.ClearQueue())
	queue, err = store.LoadQueue()
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestWebhookURLOverride(t *testing.T) {
	store, _ := newTestStore()

	url, err := store.WebhookURL()
	require.NoError(t, err)
	assert.Empty(t, url)

	require.NoError(t, store.SetWebhookURL("https://example.com/hook"))
	url, err = store.WebhookURL()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/hook", url)
}
