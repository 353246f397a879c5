package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Product type values accepted by the registration form.
const (
	ProductTypePhysical = "physical"
	ProductTypeDigital  = "digital"
)

// Stock status labels derived from the stored fields on every read.
const (
	StockUnlimited = "Unlimited"
	StockOut       = "Out of Stock"
	StockLow       = "Low Stock"
	StockIn        = "In Stock"
)

// LowStockThreshold marks the boundary between "Low Stock" and "In Stock".
const LowStockThreshold = 10

// Field defaults applied when the registration form leaves them empty.
const (
	DefaultStockLocation = "Headquarters"
	DefaultOption1Name   = "Size"
	DefaultOption2Name   = "Color"
)

// Product is a catalog entry with pricing, stock, and variant-option
// attributes. Prices and stock counts are carried as strings, which is the
// storage and wire representation; numeric interpretation happens in
// validation and stock classification.
type Product struct {
	ID            int64     `json:"id,string" form:"id"`
	Name          string    `json:"name" form:"name"`
	Description   string    `json:"description" form:"description"`
	Category      string    `json:"category" form:"category"`
	ProductType   string    `json:"product_type" form:"product_type"`
	ImageURLs     string    `json:"image_urls" form:"image_urls"`
	Tags          string    `json:"tags" form:"tags"`
	SalePrice     string    `json:"sale_price" form:"sale_price"`
	PromoPrice    string    `json:"promo_price" form:"promo_price"`
	CostPrice     string    `json:"cost_price" form:"cost_price"`
	ShippingCost  string    `json:"shipping_cost" form:"shipping_cost"`
	Supplier      string    `json:"supplier" form:"supplier"`
	InitialStock  string    `json:"initial_stock" form:"initial_stock"`
	InfiniteStock bool      `json:"infinite_stock" form:"infinite_stock"`
	StockLocation string    `json:"stock_location" form:"stock_location"`
	SKU           string    `json:"sku" form:"sku"`
	GTIN          string    `json:"gtin" form:"gtin"`
	WeightG       string    `json:"weight_g" form:"weight_g"`
	HeightCm      string    `json:"height_cm" form:"height_cm"`
	WidthCm       string    `json:"width_cm" form:"width_cm"`
	LengthCm      string    `json:"length_cm" form:"length_cm"`
	Option1Name   string    `json:"option1_name" form:"option1_name"`
	Option1Value  string    `json:"option1_value" form:"option1_value"`
	Option2Name   string    `json:"option2_name" form:"option2_name"`
	Option2Value  string    `json:"option2_value" form:"option2_value"`
	CreatedAt     time.Time `json:"created_at"`
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// DeriveSKU builds the product SKU from category, name and the two variant
// values, in that order. It returns "" until all four inputs are non-empty;
// otherwise the hyphen-joined concatenation is lowercased and whitespace
// runs collapse to single hyphens.
func DeriveSKU(category, name, option2Value, option1Value string) string {
	if strings.TrimSpace(category) == "" ||
		strings.TrimSpace(name) == "" ||
		strings.TrimSpace(option2Value) == "" ||
		strings.TrimSpace(option1Value) == "" {
		return ""
	}
	joined := category + "-" + name + "-" + option2Value + "-" + option1Value
	return whitespaceRuns.ReplaceAllString(strings.ToLower(joined), "-")
}

// StockStatus classifies the product's stock level at the default
// threshold. The result is never stored, it is recomputed from
// InfiniteStock and InitialStock on every read.
func (p Product) StockStatus() string {
	return p.StockStatusAt(LowStockThreshold)
}

// StockStatusAt classifies against a caller-provided low-stock boundary,
// the configured `catalog.low_stock_threshold`. Non-positive thresholds
// fall back to the default.
func (p Product) StockStatusAt(threshold int) string {
	if threshold <= 0 {
		threshold = LowStockThreshold
	}
	if p.InfiniteStock {
		return StockUnlimited
	}
	switch n := cast.ToInt(p.InitialStock); {
	case n == 0:
		return StockOut
	case n <= threshold:
		return StockLow
	default:
		return StockIn
	}
}

// ImageURLList splits the semicolon-delimited image URLs field.
func (p Product) ImageURLList() []string {
	return splitDelimited(p.ImageURLs)
}

// TagList splits the semicolon-delimited tags field.
func (p Product) TagList() []string {
	return splitDelimited(p.Tags)
}

func splitDelimited(s string) []string {
	out := make([]string, 0, 4)
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ApplyDefaults fills stock location and option axis names when left empty.
func (p *Product) ApplyDefaults() {
	if strings.TrimSpace(p.StockLocation) == "" {
		p.StockLocation = DefaultStockLocation
	}
	if strings.TrimSpace(p.Option1Name) == "" {
		p.Option1Name = DefaultOption1Name
	}
	if strings.TrimSpace(p.Option2Name) == "" {
		p.Option2Name = DefaultOption2Name
	}
}
