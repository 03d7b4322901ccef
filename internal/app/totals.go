package app

import (
	"time"

	"github.com/shopspring/decimal"

	"billing-backend/internal/core"
)

// currencyScale is the rounding applied to every money amount before it is
// persisted, matching the numeric(12,2) columns in the schema.
const currencyScale = 2

// buildLineItems validates the inbound items and computes rounded line
// totals. It returns the items ready for persistence together with the sum
// of their line totals. All failures are *core.ValidationError values.
func buildLineItems(inputs []ItemInput) ([]core.LineItem, decimal.Decimal, error) {
	if len(inputs) == 0 {
		return nil, decimal.Zero, core.Validationf("at least one item is required")
	}

	items := make([]core.LineItem, 0, len(inputs))
	sum := decimal.Zero
	for i, in := range inputs {
		if in.ProductID == "" {
			return nil, decimal.Zero, core.Validationf("item %d: productId is required", i+1)
		}
		if in.Quantity <= 0 {
			return nil, decimal.Zero, core.Validationf("item %d: quantity must be a positive integer", i+1)
		}

		price, err := parseAmount(in.UnitPrice)
		if err != nil {
			return nil, decimal.Zero, core.Validationf("item %d: invalid unitPrice %q", i+1, in.UnitPrice)
		}

		lineTotal := price.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(currencyScale)
		if in.LineTotal != "" {
			supplied, err := parseAmount(in.LineTotal)
			if err != nil {
				return nil, decimal.Zero, core.Validationf("item %d: invalid lineTotal %q", i+1, in.LineTotal)
			}
			lineTotal = supplied.Round(currencyScale)
		}

		unit := in.Unit
		if unit == "" {
			unit = "unit"
		}

		items = append(items, core.LineItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Category:    in.Category,
			Unit:        unit,
			Quantity:    in.Quantity,
			UnitPrice:   price,
			LineTotal:   lineTotal,
		})
		sum = sum.Add(lineTotal)
	}
	return items, sum.Round(currencyScale), nil
}

// resolveGrandTotal returns the caller-supplied grand total when present
// (validated as a parseable amount), otherwise the computed sum.
func resolveGrandTotal(supplied string, computed decimal.Decimal) (decimal.Decimal, error) {
	if supplied == "" {
		return computed, nil
	}
	total, err := parseAmount(supplied)
	if err != nil {
		return decimal.Zero, core.Validationf("invalid grandTotal %q", supplied)
	}
	return total.Round(currencyScale), nil
}

// parseAmount parses a decimal string; empty means zero. Negative amounts
// are rejected — prices and totals are never negative in this system.
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, core.Validationf("amount %s is negative", s)
	}
	return d, nil
}

// parseDate accepts RFC 3339 timestamps or bare dates; empty means now.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, core.Validationf("invalid date %q (want RFC 3339 or YYYY-MM-DD)", s)
	}
	return t, nil
}
