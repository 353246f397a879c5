package adminapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/perronifitwear/backoffice/internal/catalog"
	"github.com/perronifitwear/backoffice/internal/webserver"
	"go.uber.org/zap"
)

// registerQueueRoutes registers the batch-registration queue. Drafts pile up
// in the persisted queue and go out to the webhook as one envelope.
func registerQueueRoutes() {
	webserver.ApiGET("/products/queue", listQueue)
	webserver.ApiPOST("/products/queue", enqueueProduct)
	webserver.ApiPOST("/products/queue/send", sendQueue)
}

func listQueue(c echo.Context) error {
	queue, err := GetStore(c).LoadQueue()
	if err != nil {
		if _, soft := err.(*catalog.LoadError); !soft {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load queue", err.Error())
		}
		zap.L().Warn("queue blob malformed, listing empty", zap.Error(err))
	}
	return ok(c, queue)
}

func enqueueProduct(c echo.Context) error {
	p, err := bindDraft(c)
	if p == nil {
		return err
	}
	if err := GetStore(c).AppendQueue(*p); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to queue product", err.Error())
	}
	return ok(c, productRow{Product: *p, StockStatus: stockStatus(c, *p)})
}

// sendQueue flushes the whole queue in one webhook envelope. On dispatch
// the queued products land in the catalog and the queue is cleared; on
// failure the queue stays untouched for another attempt.
func sendQueue(c echo.Context) error {
	store := GetStore(c)
	queue, err := store.LoadQueue()
	if err != nil {
		if _, soft := err.(*catalog.LoadError); !soft {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load queue", err.Error())
		}
		zap.L().Warn("queue blob malformed, treating as empty", zap.Error(err))
	}
	if len(queue) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_QUEUE", "No products queued for sending", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()
	if err := GetNotifier(c).SendBatch(ctx, queue); err != nil {
		zap.L().Warn("batch send failed, queue preserved", zap.Int("count", len(queue)), zap.Error(err))
		return fail(c, http.StatusBadGateway, "NOTIFY_ERROR", "Failed to send queue to webhook", err.Error())
	}

	for _, p := range queue {
		if err := store.Append(p); err != nil {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to commit queued product", err.Error())
		}
	}
	if err := store.ClearQueue(); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to clear queue", err.Error())
	}

	zap.L().Info("queue sent", zap.Int("count", len(queue)))
	return ok(c, map[string]interface{}{"sent": len(queue)})
}
