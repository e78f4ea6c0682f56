package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FrameType is a top-level framing style. SubFrameTypeIDs and FrameSizeIDs mirror the
// forward references held by SubFrameType.FrameTypeID and FrameSize.FrameTypeID.
type FrameType struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	SubFrameTypeIDs []string        `json:"subFrameTypes"`
	FrameSizeIDs    []string        `json:"frameSizes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SubFrameType is a finish or variant of a FrameType
type SubFrameType struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	FrameTypeID string          `json:"frameType"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FrameSize is a physical dimension option of one FrameType.
// (Name, FrameTypeID) is unique.
type FrameSize struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	FrameTypeID string          `json:"frameType"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateFrameTypeRequest represents the request body for creating a frame type
// Example: {"name": "Classic Wood", "description": "Solid oak", "price": "200"}
type CreateFrameTypeRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Description string          `json:"description" validate:"max=2000"`
	Price       decimal.Decimal `json:"price"`
}

// UpdateFrameTypeRequest represents a partial update of a frame type
type UpdateFrameTypeRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// CreateSubFrameTypeRequest represents the request body for creating a sub-frame type
type CreateSubFrameTypeRequest struct {
	Name        string          `json:"name" validate:"required,max=120"`
	Price       decimal.Decimal `json:"price"`
	FrameTypeID string          `json:"frameType" validate:"required,uuid"`
	Images      []string        `json:"images" validate:"omitempty,dive,url"`
}

// UpdateSubFrameTypeRequest represents a partial update of a sub-frame type.
// The owning frame type cannot be changed.
type UpdateSubFrameTypeRequest struct {
	Name  *string          `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Price *decimal.Decimal `json:"price,omitempty"`
}

// CreateFrameSizeRequest represents the request body for creating a frame size
type CreateFrameSizeRequest struct {
	Name        string          `json:"name" validate:"required,max=60"`
	Price       decimal.Decimal `json:"price"`
	FrameTypeID string          `json:"frameType" validate:"required,uuid"`
}

// UpdateFrameSizeRequest represents a partial update of a frame size
type UpdateFrameSizeRequest struct {
	Name  *string          `json:"name,omitempty" validate:"omitempty,min=1,max=60"`
	Price *decimal.Decimal `json:"price,omitempty"`
}
