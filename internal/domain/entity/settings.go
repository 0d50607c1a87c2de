package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printarts/billing-api/internal/domain/enum"
)

// BusinessSettings is the single process-wide configuration record: branding
// and tax defaults read by receipt rendering and exports. Stored as one row;
// the application loads it into an immutable snapshot at startup and swaps
// the snapshot on update rather than mutating shared state per request.
type BusinessSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BusinessName    string        `gorm:"size:255;default:'Print Arts'" json:"business_name"`
	Address         string        `gorm:"type:text" json:"address"`
	Phone           string        `gorm:"size:50" json:"phone"`
	Email           string        `gorm:"size:255" json:"email"`
	TaxID           string        `gorm:"size:50" json:"tax_id"`
	Currency        string        `gorm:"size:10;default:'INR'" json:"currency"`
	DefaultTaxClass enum.TaxClass `gorm:"default:0" json:"default_tax_class"`
	ReceiptFooter   string        `gorm:"type:text" json:"receipt_footer"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *BusinessSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BusinessSettings model
func (BusinessSettings) TableName() string {
	return "business_settings"
}

// ReceiptProfile is the immutable snapshot of settings handed to the receipt
// and export collaborators.
type ReceiptProfile struct {
	BusinessName string
	Address      string
	Phone        string
	TaxID        string
	Currency     string
	Footer       string
}

// Profile builds the immutable receipt profile from the stored settings.
func (s *BusinessSettings) Profile() ReceiptProfile {
	return ReceiptProfile{
		BusinessName: s.BusinessName,
		Address:      s.Address,
		Phone:        s.Phone,
		TaxID:        s.TaxID,
		Currency:     s.Currency,
		Footer:       s.ReceiptFooter,
	}
}
