package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printarts/billing-api/internal/domain/enum"
)

// Transaction represents a single billable job (print run, design work,
// lamination and so on). It belongs to exactly one customer OR is a walk-in
// identified only by a free-text name; never both, never neither.
//
// Amount and Balance are derived by the pricing engine from the raw fields
// and persisted for query efficiency. Any raw-field edit triggers a full
// recompute; the recomputation is authoritative.
type Transaction struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	WalkInName *string    `gorm:"size:255" json:"walk_in_name,omitempty"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`

	ItemName        string                 `gorm:"size:255;not null" json:"item_name"`
	Quantity        int                    `gorm:"not null" json:"quantity"`
	UnitPrice       decimal.Decimal        `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	DiscountPercent decimal.Decimal        `gorm:"type:numeric(5,2);default:0" json:"discount_percent"`
	DiscountFlat    decimal.Decimal        `gorm:"type:numeric(14,2);default:0" json:"discount_flat"`
	TaxClass        enum.TaxClass          `gorm:"default:0" json:"tax_class"`
	Paid            decimal.Decimal        `gorm:"type:numeric(14,2);default:0" json:"paid"`
	Amount          decimal.Decimal        `gorm:"type:numeric(14,2);default:0" json:"amount"`
	Balance         decimal.Decimal        `gorm:"type:numeric(14,2);default:0" json:"balance"`
	InvoiceNo       string                 `gorm:"size:100;uniqueIndex;not null" json:"invoice_no"`
	TransactionDate time.Time              `gorm:"type:date;not null;index" json:"transaction_date"`
	Status          enum.TransactionStatus `gorm:"default:1" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// IsWalkIn reports whether the transaction has no stored customer link.
func (t *Transaction) IsWalkIn() bool {
	return t.CustomerID == nil
}

// BillToName returns the name the transaction is billed to: the linked
// customer's name when loaded, otherwise the walk-in name.
func (t *Transaction) BillToName() string {
	if t.Customer != nil {
		return t.Customer.Name
	}
	if t.WalkInName != nil {
		return *t.WalkInName
	}
	return ""
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
