package service

import (
	"context"
	"math"
	"time"

	"github.com/sangkips/quotedesk-api/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{analyticsRepo: analyticsRepo, now: time.Now}
}

// CountStat is a record count with its month over month movement
type CountStat struct {
	Total            int64   `json:"total"`
	ThisMonth        int64   `json:"this_month"`
	LastMonth        int64   `json:"last_month"`
	PercentageChange float64 `json:"percentage_change"`
}

// RevenueStat sums invoice totals by payment state
type RevenueStat struct {
	Paid        float64 `json:"paid"`
	Outstanding float64 `json:"outstanding"`
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	Customers  CountStat   `json:"customers"`
	Products   CountStat   `json:"products"`
	Quotations CountStat   `json:"quotations"`
	Invoices   CountStat   `json:"invoices"`
	Proposals  CountStat   `json:"proposals"`
	Revenue    RevenueStat `json:"revenue"`
}

// GetDashboardStats counts every record kind of the caller's tenant. The
// queries run concurrently and the first failure cancels the rest.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if _, err := tenantFromContext(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	stats := &DashboardStats{}
	targets := []struct {
		table string
		dst   *CountStat
	}{
		{"customers", &stats.Customers},
		{"products", &stats.Products},
		{"quotations", &stats.Quotations},
		{"invoices", &stats.Invoices},
		{"proposals", &stats.Proposals},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			window, err := s.analyticsRepo.CountWindow(gctx, target.table, lastMonth, thisMonth)
			if err != nil {
				return err
			}
			*target.dst = CountStat{
				Total:            window.Total,
				ThisMonth:        window.ThisMonth,
				LastMonth:        window.LastMonth,
				PercentageChange: PercentageChange(window.ThisMonth, window.LastMonth),
			}
			return nil
		})
	}
	g.Go(func() error {
		revenue, err := s.analyticsRepo.InvoiceRevenue(gctx)
		if err != nil {
			return err
		}
		stats.Revenue = RevenueStat{
			Paid:        math.Round(revenue.Paid*100) / 100,
			Outstanding: math.Round(revenue.Outstanding*100) / 100,
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// PercentageChange is the month over month movement rounded to one decimal.
// With nothing last month any growth counts as 100.
func PercentageChange(thisMonth, lastMonth int64) float64 {
	if lastMonth == 0 {
		if thisMonth > 0 {
			return 100
		}
		return 0
	}
	change := float64(thisMonth-lastMonth) / float64(lastMonth) * 100
	return math.Round(change*10) / 10
}
