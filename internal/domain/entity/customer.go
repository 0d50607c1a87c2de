package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer represents a billed customer.
//
// The rollup columns (TotalTransactions, TotalSpent, OutstandingBalance,
// LastTransactionDate) are a cache derived from the customer's transaction
// set. They are refreshed inside the same database transaction as any write
// to an owned billing transaction and must never be treated as a source of
// truth on their own.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Phone     *string        `gorm:"size:50" json:"phone,omitempty"`
	Address   *string        `gorm:"type:text" json:"address,omitempty"`
	DueDate   *time.Time     `gorm:"type:date" json:"due_date,omitempty"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Rollup cache
	TotalTransactions   int64           `gorm:"default:0" json:"total_transactions"`
	TotalSpent          decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"total_spent"`
	OutstandingBalance  decimal.Decimal `gorm:"type:numeric(14,2);default:0" json:"outstanding_balance"`
	LastTransactionDate *time.Time      `json:"last_transaction_date,omitempty"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CustomerID" json:"-"`
}

// IsOverdueAt reports whether the customer is overdue as of the given date:
// the due date has passed and there is still an outstanding balance.
func (c *Customer) IsOverdueAt(asOf time.Time) bool {
	return c.DueDate != nil && c.DueDate.Before(asOf) && c.OutstandingBalance.IsPositive()
}

// MarshalJSON adds the derived is_overdue flag to API responses
func (c Customer) MarshalJSON() ([]byte, error) {
	type Alias Customer
	return json.Marshal(&struct {
		Alias
		IsOverdue bool `json:"is_overdue"`
	}{
		Alias:     Alias(c),
		IsOverdue: c.IsOverdueAt(time.Now()),
	})
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
