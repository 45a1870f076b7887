package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/lukusafi/laundry-api/internal/domain/entity"
	"github.com/lukusafi/laundry-api/internal/domain/report"
	"github.com/lukusafi/laundry-api/internal/domain/repository"
	"github.com/lukusafi/laundry-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// AnalyticsCachePrefix namespaces every cached analytics result
const AnalyticsCachePrefix = "analytics:"

const recentOrdersLimit = 5

// AnalyticsService computes dashboard figures, charts and monthly reports
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	orderRepo     repository.OrderRepository
	expenseRepo   repository.ExpenseRepository
	cache         repository.Cache
	ttl           time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	orderRepo repository.OrderRepository,
	expenseRepo repository.ExpenseRepository,
	cache repository.Cache,
	ttl time.Duration,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		orderRepo:     orderRepo,
		expenseRepo:   expenseRepo,
		cache:         cache,
		ttl:           ttl,
		logger:        logger,
		now:           time.Now,
	}
}

// Dashboard holds the owner's headline figures
type Dashboard struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	Profit         decimal.Decimal `json:"profit"`
	TotalOrders    int64           `json:"totalOrders"`
	TotalCustomers int64           `json:"totalCustomers"`
	PendingOrders  int64           `json:"pendingOrders"`
	RecentOrders   []entity.Order  `json:"recentOrders"`
}

// GetDashboard returns the dashboard figures
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	return cached(ctx, s, AnalyticsCachePrefix+"dashboard", func() (*Dashboard, error) {
		return s.buildDashboard(ctx)
	})
}

func (s *AnalyticsService) buildDashboard(ctx context.Context) (*Dashboard, error) {
	revenue, err := s.analyticsRepo.SumPaidRevenue(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.analyticsRepo.SumExpenses(ctx)
	if err != nil {
		return nil, err
	}
	visits, err := s.analyticsRepo.CountVisits(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.analyticsRepo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.analyticsRepo.CountPendingOrders(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.orderRepo.Recent(ctx, recentOrdersLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []entity.Order{}
	}

	return &Dashboard{
		TotalRevenue:   revenue,
		TotalExpenses:  expenses,
		Profit:         revenue.Sub(expenses),
		TotalOrders:    visits,
		TotalCustomers: customers,
		PendingOrders:  pending,
		RecentOrders:   recent,
	}, nil
}

// RevenueChart returns paid revenue for each of the last 12 months, oldest first.
// Months without revenue are reported as zero.
func (s *AnalyticsService) RevenueChart(ctx context.Context) ([]repository.MonthlyAmount, error) {
	return cached(ctx, s, AnalyticsCachePrefix+"revenue-chart", func() ([]repository.MonthlyAmount, error) {
		now := s.now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -11, 0)

		rows, err := s.analyticsRepo.RevenueByMonth(ctx, start)
		if err != nil {
			return nil, err
		}
		byMonth := make(map[string]decimal.Decimal, len(rows))
		for _, r := range rows {
			byMonth[r.Month] = r.Amount
		}

		series := make([]repository.MonthlyAmount, 0, 12)
		for i := 0; i < 12; i++ {
			key := start.AddDate(0, i, 0).Format("2006-01")
			series = append(series, repository.MonthlyAmount{Month: key, Amount: byMonth[key]})
		}
		return series, nil
	})
}

// ExpensesChart returns total spend per expense category
func (s *AnalyticsService) ExpensesChart(ctx context.Context) ([]repository.CategoryAmount, error) {
	return cached(ctx, s, AnalyticsCachePrefix+"expenses-chart", func() ([]repository.CategoryAmount, error) {
		rows, err := s.analyticsRepo.ExpensesByCategory(ctx)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []repository.CategoryAmount{}
		}
		return rows, nil
	})
}

// MonthlyReport aggregates one calendar month. Zero month or year default to the current ones.
func (s *AnalyticsService) MonthlyReport(ctx context.Context, year, month int) (*report.MonthlyReport, error) {
	y, m, err := s.resolveMonth(year, month)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%sreport:%d-%02d", AnalyticsCachePrefix, y, int(m))
	return cached(ctx, s, key, func() (*report.MonthlyReport, error) {
		from, to := report.MonthRange(y, m)
		orders, err := s.orderRepo.ListByDateRange(ctx, from, to)
		if err != nil {
			return nil, err
		}
		expenses, err := s.expenseRepo.ListByDateRange(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return report.BuildMonthlyReport(y, m, orders, expenses), nil
	})
}

// ExportMonthlyReport renders the monthly report as an XLSX workbook
func (s *AnalyticsService) ExportMonthlyReport(ctx context.Context, year, month int) (*bytes.Buffer, string, error) {
	r, err := s.MonthlyReport(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	buf, err := MonthlyReportWorkbook(r)
	if err != nil {
		return nil, "", err
	}
	return buf, fmt.Sprintf("monthly-report-%s.xlsx", r.Month), nil
}

// MonthlyReportWorkbook lays a report out over Summary, Orders and Expenses sheets
func MonthlyReportWorkbook(r *report.MonthlyReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Month", r.Month},
		{"Revenue (paid)", r.Revenue.InexactFloat64()},
		{"Expenses", r.TotalExpenses.InexactFloat64()},
		{"Profit", r.Profit.InexactFloat64()},
		{"New customers", r.NewCustomers},
		{"Returning customers", r.ReturningCustomers},
		{"Customer visits", r.TotalOrders},
		{"Orders", r.OrderCount},
	}
	if err := writeRows(f, "Summary", summary); err != nil {
		return nil, err
	}
	if err := f.SetColStyle("Summary", "A", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth("Summary", "A", "B", 22); err != nil {
		return nil, err
	}

	orders := [][]any{{"Date", "Customer", "Service", "Weight (kg)", "Items", "Subtotal", "Discount", "Total", "Payment", "Status", "Transaction code"}}
	for _, o := range r.Orders {
		customer := ""
		if o.Customer != nil {
			customer = o.Customer.Name
		}
		orders = append(orders, []any{
			o.DateKey(),
			customer,
			o.ServiceType,
			o.Weight.InexactFloat64(),
			o.Items,
			o.Subtotal.InexactFloat64(),
			o.DiscountAmount.InexactFloat64(),
			o.TotalAmount.InexactFloat64(),
			string(o.PaymentStatus),
			string(o.Status),
			deref(o.TransactionCode),
		})
	}
	if err := addSheet(f, "Orders", orders, bold); err != nil {
		return nil, err
	}

	expenses := [][]any{{"Date", "Category", "Description", "Amount", "Transaction code"}}
	for _, e := range r.Expenses {
		expenses = append(expenses, []any{
			e.Date.Format(entity.DateLayout),
			string(e.Category),
			e.Description,
			e.Amount.InexactFloat64(),
			deref(e.TransactionCode),
		})
	}
	if err := addSheet(f, "Expenses", expenses, bold); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf, nil
}

func addSheet(f *excelize.File, name string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := writeRows(f, name, rows); err != nil {
		return err
	}
	if err := f.SetRowStyle(name, 1, 1, headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(name, "A", "K", 16)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func (s *AnalyticsService) resolveMonth(year, month int) (int, time.Month, error) {
	now := s.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, apperror.NewFieldError("month", "month must be between 1 and 12")
	}
	if year < 2000 || year > 9999 {
		return 0, 0, apperror.NewFieldError("year", "year is out of range")
	}
	return year, time.Month(month), nil
}

// cached loads key from the cache, computing and storing it on a miss.
// Cache failures are logged and fall through to the computation.
func cached[T any](ctx context.Context, s *AnalyticsService, key string, compute func() (T, error)) (T, error) {
	if s.cache != nil {
		var hit T
		found, err := s.cache.Get(ctx, key, &hit)
		if err != nil {
			s.logger.Warn("analytics cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			return hit, nil
		}
	}

	value, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
			s.logger.Warn("analytics cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

// invalidateAnalytics drops cached analytics after a write to customers, orders or expenses
func invalidateAnalytics(ctx context.Context, cache repository.Cache, logger *zap.Logger) {
	if cache == nil {
		return
	}
	if err := cache.InvalidatePrefix(ctx, AnalyticsCachePrefix); err != nil {
		logger.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
