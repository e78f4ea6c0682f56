package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable artwork. SizeIDs is always derived from FrameTypeIDs
// on the server and never read from client input.
type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	FrameTypeIDs    []string        `json:"frameTypes"`
	SubFrameTypeIDs []string        `json:"subFrameTypes"`
	SizeIDs         []string        `json:"sizes"`
	IsActive        bool            `json:"isActive"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductRequest represents the request body for creating or replacing a product.
// There is deliberately no sizes field.
type ProductRequest struct {
	Name            string          `json:"name" validate:"required,max=200"`
	Description     string          `json:"description" validate:"max=5000"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category" validate:"max=100"`
	ImageURL        string          `json:"imageUrl" validate:"omitempty,url"`
	FrameTypeIDs    []string        `json:"frameTypes" validate:"required,min=1,dive,uuid"`
	SubFrameTypeIDs []string        `json:"subFrameTypes" validate:"omitempty,dive,uuid"`
	IsActive        *bool           `json:"isActive,omitempty"`
}

// ProductFilterParams represents optional filter parameters for products
type ProductFilterParams struct {
	Category   *string
	ActiveOnly bool
}

// ImportRowError describes a spreadsheet row that could not be imported
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarizes a product spreadsheet import
type ImportResult struct {
	Total    int              `json:"total"`
	Imported int              `json:"imported"`
	Failed   int              `json:"failed"`
	Products []Product        `json:"products"`
	Errors   []ImportRowError `json:"errors"`
}
