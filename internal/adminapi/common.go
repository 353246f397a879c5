package adminapi

import (
	"strconv"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/labstack/echo/v4"
	"github.com/perronifitwear/backoffice/config"
	"github.com/perronifitwear/backoffice/internal/catalog"
	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/perronifitwear/backoffice/internal/notify"
	"github.com/perronifitwear/backoffice/internal/webserver"
)

// Register wires every admin API route into the web server.
func Register() {
	registerAuthRoutes()
	registerProductRoutes()
	registerQueueRoutes()
	registerDashboardRoutes()
	registerSettingRoutes()
}

func GetConfig(c echo.Context) *config.AppConfig {
	return c.Get(webserver.ContextKeyConfig).(*config.AppConfig)
}

func GetStore(c echo.Context) *catalog.Store {
	return c.Get(webserver.ContextKeyStore).(*catalog.Store)
}

func GetNotifier(c echo.Context) *notify.Notifier {
	return c.Get(webserver.ContextKeyNotifier).(*notify.Notifier)
}

func GetBus(c echo.Context) EventBus.Bus {
	if bus, ok := c.Get(webserver.ContextKeyBus).(EventBus.Bus); ok {
		return bus
	}
	return nil
}

func GetNode(c echo.Context) *snowflake.Node {
	return c.Get(webserver.ContextKeyNode).(*snowflake.Node)
}

// stockStatus classifies at the configured low-stock threshold.
func stockStatus(c echo.Context, p domain.Product) string {
	return p.StockStatusAt(GetConfig(c).Catalog.LowStockThreshold)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(200, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(200, map[string]interface{}{
		"code":     0,
		"data":     rows,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, pageSize = 1, 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
