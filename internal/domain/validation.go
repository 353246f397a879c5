package domain

import (
	"errors"
	"strings"

	"github.com/spf13/cast"
)

// Validation failures for a draft product. A draft that passes Validate is
// ready to be appended to the catalog; none of these checks reach the store
// or the notifier.
var (
	ErrEmptyName         = errors.New("product name is required")
	ErrInvalidSalePrice  = errors.New("sale price must be a positive number")
	ErrInvalidCostPrice  = errors.New("cost price must be a positive number")
	ErrPromoPriceTooHigh = errors.New("promo price must be lower than sale price")
)

// Validate gates acceptance of a draft product. It is a pure check, the
// caller surfaces the failure to the user and aborts the save.
func Validate(p *Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	sale, err := cast.ToFloat64E(strings.TrimSpace(p.SalePrice))
	if err != nil || sale <= 0 {
		return ErrInvalidSalePrice
	}

	cost, err := cast.ToFloat64E(strings.TrimSpace(p.CostPrice))
	if err != nil || cost <= 0 {
		return ErrInvalidCostPrice
	}

	if promoRaw := strings.TrimSpace(p.PromoPrice); promoRaw != "" {
		promo, err := cast.ToFloat64E(promoRaw)
		if err == nil && promo > 0 && promo >= sale {
			return ErrPromoPriceTooHigh
		}
	}

	return nil
}
