package app

import (
	"billing-backend/internal/ai"
	"billing-backend/internal/core"
)

// CreateResult reports a successful header creation.
type CreateResult struct {
	ID         int    `json:"id"`
	BusinessID string `json:"businessId"`
}

// InsightsResult pairs the AI interpretation with the raw report it saw.
type InsightsResult struct {
	Report   string       `json:"report"`
	Insights *ai.Insights `json:"insights"`
}

// KPIResult is the stock dashboard payload.
type KPIResult struct {
	KPIs     *core.StockKPIs `json:"kpis"`
	LowStock []core.Product  `json:"low_stock"`
}
