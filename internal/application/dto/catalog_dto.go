package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Brand        string          `json:"brand"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Sizes        []string        `json:"sizes,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
type UpdateProductRequest struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Brand    *string `json:"brand,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// UpdatePriceRequest body para la operación explícita de cambio de precio.
// El precio de venta nunca cambia como efecto secundario de una entrada de stock.
type UpdatePriceRequest struct {
	NewPrice  decimal.Decimal `json:"new_price"`
	ChangedBy string          `json:"changed_by,omitempty"`
}

// CreateVariantRequest body para POST /api/products/:id/variants.
type CreateVariantRequest struct {
	SKU   string `json:"sku"`
	Size  string `json:"size"`
	Color string `json:"color"`
}

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"` // warehouse | store
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}
