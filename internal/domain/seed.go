package domain

import "time"

// SeedProducts returns the example records written once when the catalog
// blob is first empty. Literal data, matching the storefront's sample
// catalog exactly.
func SeedProducts() []Product {
	return []Product{
		{
			ID:            1,
			Name:          "Camiseta Fitness Pro",
			Category:      "camisetas",
			SalePrice:     "89.90",
			PromoPrice:    "69.90",
			InitialStock:  "25",
			InfiniteStock: false,
			SKU:           "camisetas-camiseta-fitness-pro-preto-m",
			StockLocation: DefaultStockLocation,
			Option1Name:   DefaultOption1Name,
			Option1Value:  "M",
			Option2Name:   DefaultOption2Name,
			Option2Value:  "Preto",
			CreatedAt:     time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:            2,
			Name:          "Legging High Waist",
			Category:      "leggings",
			SalePrice:     "129.90",
			PromoPrice:    "",
			InitialStock:  "0",
			InfiniteStock: false,
			SKU:           "leggings-legging-high-waist-azul-p",
			StockLocation: DefaultStockLocation,
			Option1Name:   DefaultOption1Name,
			Option1Value:  "P",
			Option2Name:   DefaultOption2Name,
			Option2Value:  "Azul",
			CreatedAt:     time.Date(2024, 1, 14, 15, 20, 0, 0, time.UTC),
		},
		{
			ID:            3,
			Name:          "Top Esportivo Basic",
			Category:      "tops",
			SalePrice:     "59.90",
			PromoPrice:    "",
			InitialStock:  "18",
			InfiniteStock: false,
			SKU:           "tops-top-esportivo-basic-rosa-g",
			StockLocation: DefaultStockLocation,
			Option1Name:   DefaultOption1Name,
			Option1Value:  "G",
			Option2Name:   DefaultOption2Name,
			Option2Value:  "Rosa",
			CreatedAt:     time.Date(2024, 1, 13, 9, 45, 0, 0, time.UTC),
		},
		{
			ID:            4,
			Name:          "Short de Corrida",
			Category:      "shorts",
			SalePrice:     "79.90",
			PromoPrice:    "59.90",
			InitialStock:  "7",
			InfiniteStock: false,
			SKU:           "shorts-short-de-corrida-cinza-m",
			StockLocation: DefaultStockLocation,
			Option1Name:   DefaultOption1Name,
			Option1Value:  "M",
			Option2Name:   DefaultOption2Name,
			Option2Value:  "Cinza",
			CreatedAt:     time.Date(2024, 1, 12, 14, 15, 0, 0, time.UTC),
		},
	}
}
