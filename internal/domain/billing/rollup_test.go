package billing

import (
	"testing"
	"time"

	"github.com/printarts/billing-api/internal/domain/entity"
)

func txn(amount, balance string, date time.Time) entity.Transaction {
	return entity.Transaction{
		Amount:          dec(amount),
		Balance:         dec(balance),
		TransactionDate: date,
	}
}

func TestComputeRollup_OverpaymentsDoNotOffsetDebt(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	txns := []entity.Transaction{
		txn("100", "100", day),
		txn("80", "-20", day.AddDate(0, 0, 1)),
		txn("50", "50", day.AddDate(0, 0, 2)),
	}

	r := ComputeRollup(txns)

	if r.TotalTransactions != 3 {
		t.Errorf("total transactions = %d, want 3", r.TotalTransactions)
	}
	if !r.TotalSpent.Equal(dec("230")) {
		t.Errorf("total spent = %s, want 230", r.TotalSpent)
	}
	if !r.OutstandingBalance.Equal(dec("150")) {
		t.Errorf("outstanding balance = %s, want 150 (negative balances must not offset)", r.OutstandingBalance)
	}
	want := day.AddDate(0, 0, 2)
	if r.LastTransactionDate == nil || !r.LastTransactionDate.Equal(want) {
		t.Errorf("last transaction date = %v, want %v", r.LastTransactionDate, want)
	}
}

func TestComputeRollup_EmptySet(t *testing.T) {
	r := ComputeRollup(nil)

	if r.TotalTransactions != 0 {
		t.Errorf("total transactions = %d, want 0", r.TotalTransactions)
	}
	if !r.TotalSpent.IsZero() || !r.OutstandingBalance.IsZero() {
		t.Errorf("empty set must roll up to zero, got spent=%s outstanding=%s", r.TotalSpent, r.OutstandingBalance)
	}
	if r.LastTransactionDate != nil {
		t.Errorf("last transaction date = %v, want nil", r.LastTransactionDate)
	}
}

func TestComputeRollup_Idempotent(t *testing.T) {
	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	txns := []entity.Transaction{
		txn("12.34", "12.34", day),
		txn("56.78", "-1.22", day.AddDate(0, 0, 5)),
	}

	first := ComputeRollup(txns)
	second := ComputeRollup(txns)

	if first.TotalTransactions != second.TotalTransactions ||
		!first.TotalSpent.Equal(second.TotalSpent) ||
		!first.OutstandingBalance.Equal(second.OutstandingBalance) {
		t.Fatalf("recomputation over the same set diverged: %+v vs %+v", first, second)
	}
	if !first.LastTransactionDate.Equal(*second.LastTransactionDate) {
		t.Fatalf("last transaction date diverged: %v vs %v", first.LastTransactionDate, second.LastTransactionDate)
	}
}

func TestComputeRollup_OutstandingNeverNegative(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txns := []entity.Transaction{
		txn("10", "-10", day),
		txn("20", "-5", day),
	}

	r := ComputeRollup(txns)
	if r.OutstandingBalance.IsNegative() {
		t.Errorf("outstanding balance = %s, must be >= 0", r.OutstandingBalance)
	}
	if !r.OutstandingBalance.IsZero() {
		t.Errorf("outstanding balance = %s, want 0 when every balance is negative", r.OutstandingBalance)
	}
}

func TestRollupApply(t *testing.T) {
	day := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	c := entity.Customer{
		TotalTransactions:  99,
		TotalSpent:         dec("9999"),
		OutstandingBalance: dec("9999"),
	}

	r := ComputeRollup([]entity.Transaction{txn("40", "15", day)})
	r.Apply(&c)

	if c.TotalTransactions != 1 || !c.TotalSpent.Equal(dec("40")) || !c.OutstandingBalance.Equal(dec("15")) {
		t.Errorf("apply left stale rollup on customer: %+v", c)
	}
	if c.LastTransactionDate == nil || !c.LastTransactionDate.Equal(day) {
		t.Errorf("last transaction date = %v, want %v", c.LastTransactionDate, day)
	}
}
