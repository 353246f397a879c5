package adminapi

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
	"github.com/perronifitwear/backoffice/internal/catalog"
	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/perronifitwear/backoffice/internal/webserver"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard", getDashboard)
}

type dashboardStats struct {
	TotalProducts int          `json:"total_products"`
	Active        int          `json:"active_products"`
	OutOfStock    int          `json:"out_of_stock"`
	LowStock      int          `json:"low_stock"`
	AverageTicket float64      `json:"average_ticket"`
	Recent        []productRow `json:"recent_products"`
}

func getDashboard(c echo.Context) error {
	all, err := GetStore(c).LoadAll()
	if err != nil {
		if _, soft := err.(*catalog.LoadError); !soft {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load products", err.Error())
		}
		zap.L().Warn("catalog blob malformed, dashboard over empty list", zap.Error(err))
	}

	d := dashboardStats{TotalProducts: len(all)}
	prices := make([]float64, 0, len(all))
	for _, p := range all {
		switch stockStatus(c, p) {
		case domain.StockOut:
			d.OutOfStock++
		case domain.StockLow:
			d.LowStock++
			d.Active++
		default:
			d.Active++
		}
		if v, err := cast.ToFloat64E(p.SalePrice); err == nil && v > 0 {
			prices = append(prices, v)
		}
	}
	if len(prices) > 0 {
		if mean, err := stats.Mean(prices); err == nil {
			d.AverageTicket = mean
		}
	}

	recent := make([]domain.Product, len(all))
	copy(recent, all)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 4 {
		recent = recent[:4]
	}
	d.Recent = make([]productRow, 0, len(recent))
	for _, p := range recent {
		d.Recent = append(d.Recent, productRow{Product: p, StockStatus: stockStatus(c, p)})
	}

	return ok(c, d)
}
