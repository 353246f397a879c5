package adminapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/perronifitwear/backoffice/internal/catalog"
	"github.com/perronifitwear/backoffice/internal/domain"
	"github.com/perronifitwear/backoffice/internal/notify"
	"github.com/perronifitwear/backoffice/internal/webserver"
	"go.uber.org/zap"
)

// EventProductSaved is published after a product lands in the catalog; the
// webhook push subscribes to it.
const EventProductSaved = "product.saved"

type productPayload struct {
	Name          string `json:"name" form:"name"`
	Description   string `json:"description" form:"description"`
	Category      string `json:"category" form:"category"`
	ProductType   string `json:"product_type" form:"product_type"`
	ImageURLs     string `json:"image_urls" form:"image_urls"`
	Tags          string `json:"tags" form:"tags"`
	SalePrice     string `json:"sale_price" form:"sale_price"`
	PromoPrice    string `json:"promo_price" form:"promo_price"`
	CostPrice     string `json:"cost_price" form:"cost_price"`
	ShippingCost  string `json:"shipping_cost" form:"shipping_cost"`
	Supplier      string `json:"supplier" form:"supplier"`
	InitialStock  string `json:"initial_stock" form:"initial_stock"`
	InfiniteStock bool   `json:"infinite_stock" form:"infinite_stock"`
	StockLocation string `json:"stock_location" form:"stock_location"`
	GTIN          string `json:"gtin" form:"gtin"`
	WeightG       string `json:"weight_g" form:"weight_g"`
	HeightCm      string `json:"height_cm" form:"height_cm"`
	WidthCm       string `json:"width_cm" form:"width_cm"`
	LengthCm      string `json:"length_cm" form:"length_cm"`
	Option1Name   string `json:"option1_name" form:"option1_name"`
	Option1Value  string `json:"option1_value" form:"option1_value"`
	Option2Name   string `json:"option2_name" form:"option2_name"`
	Option2Value  string `json:"option2_value" form:"option2_value"`
}

type productRow struct {
	domain.Product
	StockStatus string `json:"stock_status"`
}

// registerProductRoutes registers the catalog endpoints. No update or
// delete routes: stored products are immutable records.
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/categories", listCategories)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPOST("/products/:id/resend", resendProduct)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	store := GetStore(c)
	all, err := store.LoadAll()
	if err != nil {
		if _, soft := err.(*catalog.LoadError); !soft {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load products", err.Error())
		}
		zap.L().Warn("catalog blob malformed, listing empty", zap.Error(err))
	}

	filtered := catalog.Query(all, catalog.Filter{
		Text:     strings.TrimSpace(c.QueryParam("q")),
		Category: strings.TrimSpace(c.QueryParam("category")),
	})

	total := int64(len(filtered))
	lo := (page - 1) * pageSize
	if lo > len(filtered) {
		lo = len(filtered)
	}
	hi := lo + pageSize
	if hi > len(filtered) {
		hi = len(filtered)
	}

	rows := make([]productRow, 0, hi-lo)
	for _, p := range filtered[lo:hi] {
		rows = append(rows, productRow{Product: p, StockStatus: stockStatus(c, p)})
	}
	return paged(c, rows, total, page, pageSize)
}

// listCategories returns the distinct categories present in the catalog,
// the option set for the listing page's category filter.
func listCategories(c echo.Context) error {
	all, err := GetStore(c).LoadAll()
	if err != nil {
		if _, soft := err.(*catalog.LoadError); !soft {
			return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load products", err.Error())
		}
		zap.L().Warn("catalog blob malformed, no categories", zap.Error(err))
	}
	return ok(c, catalog.Categories(all))
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, found, err := GetStore(c).FindByID(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load products", err.Error())
	}
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, productRow{Product: p, StockStatus: stockStatus(c, p)})
}

func createProduct(c echo.Context) error {
	p, err := bindDraft(c)
	if p == nil {
		return err
	}

	if err := GetStore(c).Append(*p); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save product", err.Error())
	}

	// Local save is complete here; webhook delivery is best effort and
	// resolves asynchronously.
	if bus := GetBus(c); bus != nil {
		bus.Publish(EventProductSaved, *p)
	}

	return ok(c, productRow{Product: *p, StockStatus: stockStatus(c, *p)})
}

func resendProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, found, err := GetStore(c).FindByID(id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to load products", err.Error())
	}
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()
	if err := GetNotifier(c).Resend(ctx, p); err != nil {
		zap.L().Warn("manual resend failed", zap.Int64("id", p.ID), zap.Error(err))
		return fail(c, http.StatusBadGateway, "NOTIFY_ERROR", "Failed to resend product to webhook", err.Error())
	}
	return ok(c, map[string]interface{}{"id": p.ID, "resent": true})
}

// bindDraft parses a draft payload, validates it and promotes it into an
// acceptable product record with id, SKU, defaults and creation time set.
// A nil product means the draft was rejected and the 400 response has
// already been written; the error carries the response-write result, so
// callers must branch on the product, not the error.
func bindDraft(c echo.Context) (*domain.Product, error) {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p := domain.Product{
		Name:          strings.TrimSpace(payload.Name),
		Description:   payload.Description,
		Category:      strings.TrimSpace(payload.Category),
		ProductType:   strings.TrimSpace(payload.ProductType),
		ImageURLs:     payload.ImageURLs,
		Tags:          payload.Tags,
		SalePrice:     strings.TrimSpace(payload.SalePrice),
		PromoPrice:    strings.TrimSpace(payload.PromoPrice),
		CostPrice:     strings.TrimSpace(payload.CostPrice),
		ShippingCost:  strings.TrimSpace(payload.ShippingCost),
		Supplier:      payload.Supplier,
		InitialStock:  strings.TrimSpace(payload.InitialStock),
		InfiniteStock: payload.InfiniteStock,
		StockLocation: payload.StockLocation,
		GTIN:          payload.GTIN,
		WeightG:       payload.WeightG,
		HeightCm:      payload.HeightCm,
		WidthCm:       payload.WidthCm,
		LengthCm:      payload.LengthCm,
		Option1Name:   payload.Option1Name,
		Option1Value:  strings.TrimSpace(payload.Option1Value),
		Option2Name:   payload.Option2Name,
		Option2Value:  strings.TrimSpace(payload.Option2Value),
	}

	if err := domain.Validate(&p); err != nil {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	}

	if p.ProductType != "" &&
		p.ProductType != domain.ProductTypePhysical &&
		p.ProductType != domain.ProductTypeDigital {
		return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST",
			"Product type must be 'physical' or 'digital'", nil)
	}

	if cats := GetConfig(c).Catalog.Categories; len(cats) > 0 && p.Category != "" {
		if !containsString(cats, p.Category) {
			return nil, fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown category", p.Category)
		}
	}

	p.ApplyDefaults()
	p.ID = GetNode(c).Generate().Int64()
	p.SKU = domain.DeriveSKU(p.Category, p.Name, p.Option2Value, p.Option1Value)
	p.CreatedAt = time.Now().UTC()
	return &p, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// NotifySaved builds the EventBus subscriber bridging catalog saves to the
// webhook. Failures are warnings, the stored record is already committed.
func NotifySaved(notifier *notify.Notifier) func(domain.Product) {
	return func(p domain.Product) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := notifier.Send(ctx, p); err != nil {
			zap.L().Warn("webhook push failed", zap.Int64("id", p.ID), zap.Error(err))
			return
		}
		zap.L().Info("webhook push dispatched", zap.Int64("id", p.ID), zap.String("sku", p.SKU))
	}
}
