package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ResendAction tags manual re-submissions of an already stored product.
const ResendAction = "reenvio_manual"

// Error is a failed webhook delivery. It never rolls back the local store
// write that triggered the send; callers surface it as a warning.
type Error struct {
	Endpoint string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Endpoint, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Notifier pushes product records to the automation webhook, best effort.
// No retry, no backoff. In opaque mode the response status is ignored and
// success only means the request was dispatched.
type Notifier struct {
	mu       sync.RWMutex
	endpoint string
	source   string
	timeout  time.Duration
	opaque   bool
}

func New(endpoint, source string, timeout time.Duration, opaque bool) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		source:   source,
		timeout:  timeout,
		opaque:   opaque,
	}
}

// Endpoint returns the current webhook URL.
func (n *Notifier) Endpoint() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.endpoint
}

// SetEndpoint swaps the webhook URL, the single user-editable setting.
func (n *Notifier) SetEndpoint(url string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.endpoint = url
}

// Send delivers a single product as a flat JSON body plus the timestamp and
// source tag.
func (n *Notifier) Send(ctx context.Context, p domain.Product) error {
	body, err := n.envelope(p, "")
	if err != nil {
		return err
	}
	return n.post(ctx, body)
}

// Resend delivers a stored product again, tagged as a manual resend.
func (n *Notifier) Resend(ctx context.Context, p domain.Product) error {
	body, err := n.envelope(p, ResendAction)
	if err != nil {
		return err
	}
	return n.post(ctx, body)
}

// SendBatch delivers the whole queue in one envelope.
func (n *Notifier) SendBatch(ctx context.Context, products []domain.Product) error {
	n.mu.RLock()
	source := n.source
	n.mu.RUnlock()
	return n.post(ctx, map[string]interface{}{
		"produtos":  products,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"source":    source,
	})
}

// envelope flattens the product fields into the wire body and adds the
// timestamp, source tag and optional action.
func (n *Notifier) envelope(p domain.Product, action string) (map[string]interface{}, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, errors.Wrap(err, "encode product")
	}
	body := make(map[string]interface{})
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.Wrap(err, "flatten product")
	}
	n.mu.RLock()
	body["source"] = n.source
	n.mu.RUnlock()
	body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if action != "" {
		body["action"] = action
	}
	return body, nil
}

func (n *Notifier) post(ctx context.Context, body interface{}) error {
	n.mu.RLock()
	endpoint := n.endpoint
	timeout := n.timeout
	opaque := n.opaque
	n.mu.RUnlock()

	df := gout.POST(endpoint).WithContext(ctx).SetJSON(body)
	if timeout > 0 {
		df = df.SetTimeout(timeout)
	}

	if opaque {
		// Dispatch only, the response is not inspected.
		if err := df.Do(); err != nil {
			return &Error{Endpoint: endpoint, Err: err}
		}
		return nil
	}

	var code int
	if err := df.Code(&code).Do(); err != nil {
		return &Error{Endpoint: endpoint, Err: err}
	}
	if code >= 400 {
		return &Error{Endpoint: endpoint, Err: errors.Errorf("webhook returned status %d", code)}
	}
	return nil
}
