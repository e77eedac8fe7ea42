package repository

import (
	"context"
	"time"
)

// CountWindow holds a total and the rows created in the current and previous month
type CountWindow struct {
	Total     int64
	ThisMonth int64
	LastMonth int64
}

// InvoiceRevenue sums invoice totals by payment state
type InvoiceRevenue struct {
	Paid        float64
	Outstanding float64
}

// AnalyticsRepository defines the aggregate queries behind the dashboard
type AnalyticsRepository interface {
	// CountWindow counts rows of table for the tenant in ctx. Month bounds
	// are [thisMonth, now) and [lastMonth, thisMonth).
	CountWindow(ctx context.Context, table string, lastMonth, thisMonth time.Time) (*CountWindow, error)
	InvoiceRevenue(ctx context.Context) (*InvoiceRevenue, error)
}
