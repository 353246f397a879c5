package adminapi

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/perronifitwear/backoffice/internal/webserver"
	"go.uber.org/zap"
)

type webhookPayload struct {
	URL string `json:"url" form:"url"`
}

func registerSettingRoutes() {
	webserver.ApiGET("/settings/webhook", getWebhookSetting)
	webserver.ApiPUT("/settings/webhook", updateWebhookSetting)
}

func getWebhookSetting(c echo.Context) error {
	return ok(c, map[string]interface{}{"url": GetNotifier(c).Endpoint()})
}

// updateWebhookSetting swaps the webhook URL, the single user-editable
// setting. The override persists across restarts.
func updateWebhookSetting(c echo.Context) error {
	var payload webhookPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting", err.Error())
	}

	raw := strings.TrimSpace(payload.URL)
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fail(c, http.StatusBadRequest, "INVALID_URL", "Webhook URL must be a valid http(s) URL", raw)
	}

	if err := GetStore(c).SetWebhookURL(raw); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to persist webhook URL", err.Error())
	}
	GetNotifier(c).SetEndpoint(raw)

	zap.L().Info("webhook url updated", zap.String("url", raw))
	return ok(c, map[string]interface{}{"url": raw})
}
