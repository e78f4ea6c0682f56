package models

import "github.com/shopspring/decimal"

// FrameCatalogEntry is one frame type with its sizes, as shown in the admin report
type FrameCatalogEntry struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Price decimal.Decimal    `json:"price"`
	Sizes []FrameCatalogSize `json:"sizes"`
}

// FrameCatalogSize is a size row in the admin report
type FrameCatalogSize struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
