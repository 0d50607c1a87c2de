package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/domain/entity"
)

// Rollup holds the aggregate statistics cached on a customer row. All fields
// are derivable from the customer's transaction set; recomputing over the
// same set always yields the same snapshot.
type Rollup struct {
	TotalTransactions   int64
	TotalSpent          decimal.Decimal
	OutstandingBalance  decimal.Decimal
	LastTransactionDate *time.Time
}

// ComputeRollup aggregates a customer's full transaction set. Negative
// balances (overpayments) do not offset other transactions' debt, so the
// outstanding balance is always >= 0.
func ComputeRollup(transactions []entity.Transaction) Rollup {
	r := Rollup{
		TotalSpent:         decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}

	for i := range transactions {
		t := &transactions[i]
		r.TotalTransactions++
		r.TotalSpent = r.TotalSpent.Add(t.Amount)
		if t.Balance.IsPositive() {
			r.OutstandingBalance = r.OutstandingBalance.Add(t.Balance)
		}
		if r.LastTransactionDate == nil || t.TransactionDate.After(*r.LastTransactionDate) {
			d := t.TransactionDate
			r.LastTransactionDate = &d
		}
	}

	return r
}

// Apply writes the rollup snapshot onto the customer entity.
func (r Rollup) Apply(c *entity.Customer) {
	c.TotalTransactions = r.TotalTransactions
	c.TotalSpent = r.TotalSpent
	c.OutstandingBalance = r.OutstandingBalance
	c.LastTransactionDate = r.LastTransactionDate
}
