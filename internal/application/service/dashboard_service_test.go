package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/pkg/apperror"
)

type stubReportingRepo struct {
	overdue  []entity.Customer
	upcoming []entity.Customer
}

func (r *stubReportingRepo) ListOverdueCustomers(ctx context.Context, asOf time.Time) ([]entity.Customer, error) {
	return r.overdue, nil
}

func (r *stubReportingRepo) ListUpcomingDue(ctx context.Context, asOf time.Time, limit int) ([]entity.Customer, error) {
	if len(r.upcoming) > limit {
		return r.upcoming[:limit], nil
	}
	return r.upcoming, nil
}

func dashTxn(date time.Time, amount string, status enum.TransactionStatus) entity.Transaction {
	return entity.Transaction{
		ID:              uuid.New(),
		ItemName:        "Prints",
		Amount:          decimal.RequireFromString(amount),
		Status:          status,
		TransactionDate: date,
	}
}

func TestBuildDashboardMonthlySeries(t *testing.T) {
	asOf := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := newMemoryBilling()
	for _, txn := range []entity.Transaction{
		dashTxn(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), "100", enum.TransactionStatusPaid),
		dashTxn(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "50", enum.TransactionStatusPending),
		dashTxn(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), "200", enum.TransactionStatusPaid),
		// Outside the three-month window, must not be counted
		dashTxn(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "999", enum.TransactionStatusPaid),
	} {
		copied := txn
		store.txns[txn.ID] = &copied
	}

	svc := NewDashboardService(&stubReportingRepo{}, store)
	dash, err := svc.BuildDashboard(context.Background(), asOf, 3)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	if len(dash.MonthlySeries) != 3 {
		t.Fatalf("series length = %d, want 3", len(dash.MonthlySeries))
	}

	wantLabels := []string{"Jan 2024", "Feb 2024", "Mar 2024"}
	wantRevenue := []string{"150", "0", "200"}
	wantPaid := []string{"100", "0", "200"}
	for i, point := range dash.MonthlySeries {
		if point.Month != wantLabels[i] {
			t.Errorf("month %d = %q, want %q", i, point.Month, wantLabels[i])
		}
		if !point.Revenue.Equal(decimal.RequireFromString(wantRevenue[i])) {
			t.Errorf("revenue %d = %s, want %s", i, point.Revenue, wantRevenue[i])
		}
		if !point.Paid.Equal(decimal.RequireFromString(wantPaid[i])) {
			t.Errorf("paid %d = %s, want %s", i, point.Paid, wantPaid[i])
		}
	}

	if !dash.PeriodRevenue.Equal(decimal.NewFromInt(350)) {
		t.Errorf("period revenue = %s, want 350", dash.PeriodRevenue)
	}
	if dash.PeriodTransaction != 3 {
		t.Errorf("period transactions = %d, want 3", dash.PeriodTransaction)
	}
}

func TestBuildDashboardOverdueTotals(t *testing.T) {
	asOf := time.Now()
	overdue := []entity.Customer{
		{ID: uuid.New(), Name: "A", OutstandingBalance: decimal.NewFromInt(120)},
		{ID: uuid.New(), Name: "B", OutstandingBalance: decimal.NewFromInt(30)},
	}
	// Upcoming dues are selected by due date alone; a settled customer with a
	// future due date stays in the list.
	upcoming := make([]entity.Customer, 7)
	for i := range upcoming {
		upcoming[i] = entity.Customer{ID: uuid.New(), OutstandingBalance: decimal.Zero}
	}

	svc := NewDashboardService(&stubReportingRepo{overdue: overdue, upcoming: upcoming}, newMemoryBilling())
	dash, err := svc.BuildDashboard(context.Background(), asOf, 1)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}

	if dash.OverdueCount != 2 {
		t.Errorf("overdue count = %d, want 2", dash.OverdueCount)
	}
	if !dash.TotalOutstanding.Equal(decimal.NewFromInt(150)) {
		t.Errorf("total outstanding = %s, want 150", dash.TotalOutstanding)
	}
	if len(dash.UpcomingDues) != upcomingDueLimit {
		t.Errorf("upcoming dues = %d, want %d", len(dash.UpcomingDues), upcomingDueLimit)
	}
	for i := range dash.UpcomingDues {
		if !dash.UpcomingDues[i].OutstandingBalance.IsZero() {
			t.Errorf("upcoming due %d filtered or mutated by balance", i)
		}
	}
}

func TestBuildDashboardRejectsNonPositiveMonths(t *testing.T) {
	svc := NewDashboardService(&stubReportingRepo{}, newMemoryBilling())

	for _, months := range []int{0, -3} {
		_, err := svc.BuildDashboard(context.Background(), time.Now(), months)
		if !apperror.IsInvalidInput(err) {
			t.Errorf("monthsBack=%d: expected invalid input, got %v", months, err)
		}
	}
}
