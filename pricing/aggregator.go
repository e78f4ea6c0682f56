package pricing

import (
	"github.com/shopspring/decimal"

	"frame-storefront/models"
)

// LineItem holds the resolved component prices of one configured line.
// A component is invalid when the entity it references could not be resolved.
type LineItem struct {
	Quantity          int
	IsCustom          bool
	BasePrice         decimal.NullDecimal
	FrameTypePrice    decimal.NullDecimal
	SubFrameTypePrice decimal.NullDecimal
	SizePrice         decimal.NullDecimal
}

// PriceOf returns the price, or zero for an absent or unresolved reference
func PriceOf(p decimal.NullDecimal) decimal.Decimal {
	if !p.Valid {
		return decimal.Zero
	}
	return p.Decimal
}

// UnitPrice sums the component prices of a line. Custom lines carry no base price.
func UnitPrice(item LineItem) decimal.Decimal {
	base := decimal.Zero
	if !item.IsCustom {
		base = PriceOf(item.BasePrice)
	}
	return base.
		Add(PriceOf(item.FrameTypePrice)).
		Add(PriceOf(item.SubFrameTypePrice)).
		Add(PriceOf(item.SizePrice))
}

// ComputeLineTotal returns UnitPrice * Quantity.
// Quantity is validated by callers; it is not clamped here.
func ComputeLineTotal(item LineItem) decimal.Decimal {
	return UnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// CartTotal sums the line totals of all items
func CartTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(ComputeLineTotal(item))
	}
	return total
}

// LineItemFromCart converts a priced cart line into an aggregator input
func LineItemFromCart(line models.CartLine) LineItem {
	return LineItem{
		Quantity:          line.Quantity,
		IsCustom:          line.IsCustom,
		BasePrice:         line.BasePrice,
		FrameTypePrice:    line.FrameTypePrice,
		SubFrameTypePrice: line.SubFrameTypePrice,
		SizePrice:         line.SizePrice,
	}
}

// PriceCart fills UnitPrice and LineTotal on every line and returns the subtotal
func PriceCart(lines []models.CartLine) decimal.Decimal {
	items := make([]LineItem, len(lines))
	for i := range lines {
		items[i] = LineItemFromCart(lines[i])
		lines[i].UnitPrice = UnitPrice(items[i])
		lines[i].LineTotal = ComputeLineTotal(items[i])
	}
	return CartTotal(items)
}
