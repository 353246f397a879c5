package catalog

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Blob keys. The catalog is one JSON array under "produtos"; the session
// flag and the pending batch queue live beside it.
const (
	ProductsKey   = "produtos"
	SessionKey    = "isLoggedIn"
	QueueKey      = "fila"
	WebhookURLKey = "webhook_url"
)

// LoadError marks a malformed persisted blob. The store downgrades it to an
// empty list, callers surface a warning and keep going.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return "catalog: malformed blob " + e.Key + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Store is the durable product list over an injected KV port. Single-writer
// model: Append is a plain read-modify-write, concurrent writers from other
// processes are last-write-wins.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// LoadAll returns the persisted product list. The first load of an empty
// store seeds and persists the example products. A malformed blob yields an
// empty list plus a *LoadError instead of failing.
func (s *Store) LoadAll() ([]domain.Product, error) {
	raw, err := s.kv.Get(ProductsKey)
	if err != nil {
		return nil, errors.Wrap(err, "load products")
	}

	if len(raw) > 0 {
		var list []domain.Product
		if err := json.Unmarshal(raw, &list); err != nil {
			return []domain.Product{}, &LoadError{Key: ProductsKey, Err: err}
		}
		if len(list) > 0 {
			return list, nil
		}
	}

	seed := domain.SeedProducts()
	if err := s.Overwrite(seed); err != nil {
		return nil, err
	}
	zap.L().Info("seeded example products", zap.Int("count", len(seed)))
	return seed, nil
}

// Append reads the current list, appends the product and writes the list
// back. A malformed current blob is recovered as empty (with a warning), the
// append still lands.
func (s *Store) Append(p domain.Product) error {
	list, err := s.LoadAll()
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			return err
		}
		zap.L().Warn("recovering malformed catalog blob", zap.Error(err))
	}
	return s.Overwrite(append(list, p))
}

// Overwrite replaces the persisted product list.
func (s *Store) Overwrite(list []domain.Product) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "encode products")
	}
	return errors.Wrap(s.kv.Put(ProductsKey, raw), "write products")
}

// FindByID scans the stored list for a product id.
func (s *Store) FindByID(id int64) (domain.Product, bool, error) {
	list, err := s.LoadAll()
	if err != nil {
		return domain.Product{}, false, err
	}
	for _, p := range list {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

// LoggedIn reports whether the session flag blob holds the literal "true".
func (s *Store) LoggedIn() bool {
	raw, err := s.kv.Get(SessionKey)
	if err != nil {
		zap.L().Warn("read session flag", zap.Error(err))
		return false
	}
	return string(raw) == "true"
}

// SetLoggedIn writes or clears the session flag blob.
func (s *Store) SetLoggedIn(v bool) error {
	if v {
		return errors.Wrap(s.kv.Put(SessionKey, []byte("true")), "write session flag")
	}
	return errors.Wrap(s.kv.Delete(SessionKey), "clear session flag")
}

// LoadQueue returns the pending batch queue. Unlike the catalog it is never
// seeded; a malformed blob degrades to empty the same way.
func (s *Store) LoadQueue() ([]domain.Product, error) {
	raw, err := s.kv.Get(QueueKey)
	if err != nil {
		return nil, errors.Wrap(err, "load queue")
	}
	if len(raw) == 0 {
		return []domain.Product{}, nil
	}
	var list []domain.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		return []domain.Product{}, &LoadError{Key: QueueKey, Err: err}
	}
	return list, nil
}

// AppendQueue adds a validated draft to the pending batch queue.
func (s *Store) AppendQueue(p domain.Product) error {
	list, err := s.LoadQueue()
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			return err
		}
		zap.L().Warn("recovering malformed queue blob", zap.Error(err))
	}
	return s.OverwriteQueue(append(list, p))
}

// OverwriteQueue replaces the pending batch queue.
func (s *Store) OverwriteQueue(list []domain.Product) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return errors.Wrap(err, "encode queue")
	}
	return errors.Wrap(s.kv.Put(QueueKey, raw), "write queue")
}

// ClearQueue drops the pending batch queue.
func (s *Store) ClearQueue() error {
	return errors.Wrap(s.kv.Delete(QueueKey), "clear queue")
}

// WebhookURL returns the user-edited webhook URL override, or "" when the
// configured default applies.
func (s *Store) WebhookURL() (string, error) {
	raw, err := s.kv.Get(WebhookURLKey)
	if err != nil {
		return "", errors.Wrap(err, "load webhook url")
	}
	return string(raw), nil
}

// SetWebhookURL persists the user-edited webhook URL.
func (s *Store) SetWebhookURL(url string) error {
	return errors.Wrap(s.kv.Put(WebhookURLKey, []byte(url)), "write webhook url")
}
