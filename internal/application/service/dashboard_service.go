package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/domain/billing"
	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/internal/domain/repository"
	"github.com/printarts/billing-api/pkg/apperror"
)

const upcomingDueLimit = 5

// DashboardService builds the dues and revenue overview. Reads are plain
// snapshots; they are not linearized with in-flight billing writes.
type DashboardService struct {
	reportingRepo   repository.ReportingRepository
	transactionRepo repository.TransactionRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(reportingRepo repository.ReportingRepository, transactionRepo repository.TransactionRepository) *DashboardService {
	return &DashboardService{
		reportingRepo:   reportingRepo,
		transactionRepo: transactionRepo,
	}
}

// MonthlyPoint is one month of the revenue series
type MonthlyPoint struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
	Paid    decimal.Decimal `json:"paid"`
}

// Dashboard represents the dashboard payload
type Dashboard struct {
	AsOf              time.Time         `json:"as_of"`
	OverdueCustomers  []entity.Customer `json:"overdue_customers"`
	UpcomingDues      []entity.Customer `json:"upcoming_dues"`
	MonthlySeries     []MonthlyPoint    `json:"monthly_series"`
	TotalOutstanding  decimal.Decimal   `json:"total_outstanding"`
	OverdueCount      int               `json:"overdue_count"`
	PeriodRevenue     decimal.Decimal   `json:"period_revenue"`
	PeriodTransaction int64             `json:"period_transactions"`
}

// BuildDashboard assembles the overview as of the given date: overdue
// customers, the five nearest upcoming dues and a monthly revenue series over
// the last monthsBack calendar months. Empty months emit zero points.
func (s *DashboardService) BuildDashboard(ctx context.Context, asOf time.Time, monthsBack int) (*Dashboard, error) {
	if monthsBack <= 0 {
		return nil, apperror.NewInvalidInputError("Months must be positive")
	}

	windows := billing.MonthWindows(asOf, monthsBack)

	overdue, err := s.reportingRepo.ListOverdueCustomers(ctx, asOf)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.reportingRepo.ListUpcomingDue(ctx, asOf, upcomingDueLimit)
	if err != nil {
		return nil, err
	}

	// One range query covers every window; the windows partition the range.
	txns, err := s.transactionRepo.ListBetween(ctx, windows[0].Start, windows[len(windows)-1].End)
	if err != nil {
		return nil, err
	}

	series := make([]MonthlyPoint, 0, len(windows))
	periodRevenue := decimal.Zero
	for _, w := range windows {
		point := MonthlyPoint{
			Month:   w.Label(),
			Revenue: decimal.Zero,
			Paid:    decimal.Zero,
		}
		for i := range txns {
			if !w.Contains(txns[i].TransactionDate) {
				continue
			}
			point.Revenue = point.Revenue.Add(txns[i].Amount)
			if txns[i].Status == enum.TransactionStatusPaid {
				point.Paid = point.Paid.Add(txns[i].Amount)
			}
		}
		periodRevenue = periodRevenue.Add(point.Revenue)
		series = append(series, point)
	}

	totalOutstanding := decimal.Zero
	for i := range overdue {
		totalOutstanding = totalOutstanding.Add(overdue[i].OutstandingBalance)
	}

	return &Dashboard{
		AsOf:              asOf,
		OverdueCustomers:  overdue,
		UpcomingDues:      upcoming,
		MonthlySeries:     series,
		TotalOutstanding:  totalOutstanding,
		OverdueCount:      len(overdue),
		PeriodRevenue:     periodRevenue,
		PeriodTransaction: int64(len(txns)),
	}, nil
}
