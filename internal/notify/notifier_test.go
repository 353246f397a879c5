package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture struct {
	contentType string
	body        map[string]interface{}
}

func captureServer(t *testing.T, status int) (*httptest.Server, *capture) {
	t.Helper()
	cap := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&cap.body))
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, cap
}

func testProduct() domain.Product {
	return domain.Product{
		ID:           42,
		Name:         "Camiseta Fitness Pro",
		Category:     "camisetas",
		SalePrice:    "89.90",
		CostPrice:    "40.00",
		InitialStock: "25",
		SKU:          "camisetas-camiseta-fitness-pro-preto-m",
		CreatedAt:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestSendFlattensProductFields(t *testing.T) {
	srv, cap := captureServer(t, http.StatusOK)
	n := New(srv.URL, "perronifitwear-system", 5*time.Second, false)

	require.NoError(t, n.Send(context.Background(), testProduct()))

	assert.Contains(t, cap.contentType, "application/json")
	assert.Equal(t, "Camiseta Fitness Pro", cap.body["name"])
	assert.Equal(t, "89.90", cap.body["sale_price"])
	assert.Equal(t, "perronifitwear-system", cap.body["source"])
	assert.NotContains(t, cap.body, "action")

	ts, ok := cap.body["timestamp"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestResendTagsManualAction(t *testing.T) {
	srv, cap := captureServer(t, http.StatusOK)
	n := New(srv.URL, "perronifitwear-system", 5*time.Second, false)

	require.NoError(t, n.Resend(context.Background(), testProduct()))
	assert.Equal(t, ResendAction, cap.body["action"])
}

func TestSendBatchEnvelope(t *testing.T) {
	srv, cap := captureServer(t, http.StatusOK)
	n := New(srv.URL, "perronifitwear-system", 5*time.Second, false)

	batch := []domain.Product{testProduct(), testProduct()}
	require.NoError(t, n.SendBatch(context.Background(), batch))

	produtos, ok := cap.body["produtos"].([]interface{})
	require.True(t, ok)
	assert.Len(t, produtos, 2)
	assert.Equal(t, "perronifitwear-system", cap.body["source"])
	assert.Contains(t, cap.body, "timestamp")
}

func TestSendTransportFailure(t *testing.T) {
	// closed server: dial fails
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	n := New(url, "perronifitwear-system", 2*time.Second, false)
	err := n.Send(context.Background(), testProduct())
	require.Error(t, err)

	var notifyErr *Error
	require.ErrorAs(t, err, &notifyErr)
	assert.Equal(t, url, notifyErr.Endpoint)
}

func TestSendRejectedByEndpoint(t *testing.T) {
	srv, _ := captureServer(t, http.StatusInternalServerError)
	n := New(srv.URL, "perronifitwear-system", 5*time.Second, false)

	err := n.Send(context.Background(), testProduct())
	var notifyErr *Error
	require.ErrorAs(t, err, &notifyErr)
}

func TestOpaqueModeIgnoresResponseStatus(t *testing.T) {
	srv, cap := captureServer(t, http.StatusInternalServerError)
	n := New(srv.URL, "perronifitwear-system", 5*time.Second, true)

	// dispatched is all that success means in opaque mode
	require.NoError(t, n.Send(context.Background(), testProduct()))
	assert.Equal(t, "Camiseta Fitness Pro", cap.body["name"])
}

func TestSetEndpoint(t *testing.T) {
	n := New("https://n8n.perronifitwear.cloud/webhook/produtos", "perronifitwear-system", 0, false)
	assert.Equal(t, "https://n8n.perronifitwear.cloud/webhook/produtos", n.Endpoint())

	n.SetEndpoint("https://example.com/hook")
	assert.Equal(t, "https://example.com/hook", n.Endpoint())
}
