package report

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labakery/backend/internal/domain/catalog"
	"github.com/labakery/backend/internal/domain/finance"
	"github.com/labakery/backend/internal/domain/order"
	"github.com/labakery/backend/internal/domain/report"
	"github.com/labakery/backend/internal/domain/shared"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const dateLayout = "2006-01-02"

// FinancialReportRequest holds the financial report query
type FinancialReportRequest struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}

// ChartRequest holds the monthly chart query; zero Year means the current year
type ChartRequest struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// ChartResponse is the monthly sales chart of one year
type ChartResponse struct {
	Year   int                           `json:"year"`
	Months []report.MonthlyCategorySales `json:"months"`
}

// ReportService builds the back-office reports. Reports are computed from
// rows on every request; nothing is cached.
type ReportService struct {
	orderRepo   order.OrderRepository
	expenseRepo finance.ExpenseRepository
	productRepo catalog.ProductRepository
	loc         *time.Location
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportService creates a new ReportService reading calendar boundaries in loc
func NewReportService(
	orderRepo order.OrderRepository,
	expenseRepo finance.ExpenseRepository,
	productRepo catalog.ProductRepository,
	loc *time.Location,
	logger *zap.Logger,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		productRepo: productRepo,
		loc:         loc,
		logger:      logger,
		now:         time.Now,
	}
}

// Financial returns the income statement between two calendar days, both
// inclusive. Orders and expenses are loaded concurrently.
func (s *ReportService) Financial(ctx context.Context, req FinancialReportRequest) (*report.FinancialSummary, error) {
	start, err := s.parseDay(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := s.parseDay(req.End)
	if err != nil {
		return nil, err
	}
	r, err := report.NewDateRange(start, end, s.loc)
	if err != nil {
		return nil, err
	}

	var (
		orders   []*order.Order
		expenses []*finance.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orderRepo.FindCreatedBetween(gctx, r.Start, r.End, order.OrderStatusPaid)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.FindByDateRange(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := report.BuildFinancialSummary(orders, expenses, r)
	logger.L(ctx, s.logger).Debug("Financial report built",
		zap.String("start", req.Start),
		zap.String("end", req.End),
		zap.Int("orders", len(orders)),
		zap.Int("expenses", len(expenses)),
	)
	return &summary, nil
}

// Dashboard returns today's, this week's and this month's figures
func (s *ReportService) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	now := s.now().In(s.loc)
	orders, err := s.orderRepo.FindCreatedBetween(ctx, report.EarliestDashboardStart(now), now)
	if err != nil {
		return nil, err
	}
	dashboard := report.BuildDashboard(orders, now)
	return &dashboard, nil
}

// Chart returns paid sales per month, origin and product category for a year
func (s *ReportService) Chart(ctx context.Context, req ChartRequest) (*ChartResponse, error) {
	year := req.Year
	if year == 0 {
		year = s.now().In(s.loc).Year()
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, s.loc)
	r, err := report.NewDateRange(start, end, s.loc)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindCreatedBetween(ctx, r.Start, r.End, order.OrderStatusPaid)
	if err != nil {
		return nil, err
	}

	categories, err := s.productCategories(ctx, orders)
	if err != nil {
		return nil, err
	}

	return &ChartResponse{
		Year:   year,
		Months: report.BuildMonthlyChart(orders, categories, year, s.loc),
	}, nil
}

// productCategories resolves the category of every product sold in orders.
// Deleted products are absent from the map.
func (s *ReportService) productCategories(ctx context.Context, orders []*order.Order) (map[uuid.UUID]catalog.Category, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, o := range orders {
		for _, item := range o.Items {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	categories := make(map[uuid.UUID]catalog.Category, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		categories[p.ID] = p.Category
	}
	return categories, nil
}

func (s *ReportService) parseDay(v string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(v), s.loc)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}
	return d, nil
}
