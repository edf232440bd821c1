package stats

import (
	"context"
	"time"

	"resonance/database/repository"
	"resonance/models"
	"resonance/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RevenueStatuses are the order states whose amount counts as collected.
var RevenueStatuses = []models.OrderStatus{models.OrderPaid, models.OrderShipped, models.OrderDelivered}

// RevenueMonths is how many calendar months the revenue chart covers.
const RevenueMonths = 6

type StatsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

type DefaultStatsService struct {
	Stats    repository.StatsRepository
	Products repository.ProductRepository
	Blogs    repository.BlogRepository
	Events   repository.EventRepository
	Users    repository.UserRepository
	Now      func() time.Time
}

// Dashboard runs the independent counts concurrently.
func (s *DefaultStatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	now = now.UTC()
	since := time.Date(now.Year(), now.Month()-RevenueMonths+1, 1, 0, 0, 0, 0, time.UTC)

	out := &models.DashboardStats{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.Products, err = s.Products.Count(gctx); return })
	g.Go(func() (err error) { out.Blogs, err = s.Blogs.Count(gctx); return })
	g.Go(func() (err error) { out.Events, err = s.Events.Count(gctx); return })
	g.Go(func() (err error) { out.Customers, err = s.Users.CountByRole(gctx, utils.RoleCustomer); return })
	g.Go(func() (err error) { out.EnquiriesByStatus, err = s.Stats.EnquiryCounts(gctx, "status"); return })
	g.Go(func() (err error) { out.EnquiriesBySession, err = s.Stats.EnquiryCounts(gctx, "sessionType"); return })
	g.Go(func() (err error) { out.SlotsBooked, out.SlotsOpen, err = s.Stats.SlotCounts(gctx); return })
	g.Go(func() (err error) { out.Orders, out.Revenue, err = s.Stats.OrderTotals(gctx, RevenueStatuses); return })
	g.Go(func() error {
		months, err := s.Stats.RevenueByMonth(gctx, RevenueStatuses, since)
		if err != nil {
			return err
		}
		out.RevenueByMonth = fillMonths(months, since, RevenueMonths)
		return nil
	})
	if err := g.Wait(); err != nil {
		utils.GetLogger().Error("Failed to compute dashboard stats", zap.Error(err))
		return nil, err
	}
	return out, nil
}

// fillMonths returns one entry per month starting at since, with zeros for
// months that had no revenue.
func fillMonths(months []models.MonthlyRevenue, since time.Time, n int) []models.MonthlyRevenue {
	byMonth := make(map[string]models.MonthlyRevenue, len(months))
	for _, m := range months {
		byMonth[m.Month] = m
	}
	out := make([]models.MonthlyRevenue, 0, n)
	for i := 0; i < n; i++ {
		key := since.AddDate(0, i, 0).Format("2006-01")
		m, ok := byMonth[key]
		if !ok {
			m = models.MonthlyRevenue{Month: key}
		}
		out = append(out, m)
	}
	return out
}
