package repository

import (
	"context"
	"time"

	"github.com/printarts/billing-api/internal/domain/entity"
)

// ReportingRepository defines the read-only queries behind the dashboard.
// Reads take a plain snapshot; they are not linearized with in-flight writes.
type ReportingRepository interface {
	// ListOverdueCustomers returns customers whose due date is before asOf
	// and whose outstanding balance is positive.
	ListOverdueCustomers(ctx context.Context, asOf time.Time) ([]entity.Customer, error)
	// ListUpcomingDue returns customers with a due date at or after asOf,
	// ordered ascending by due date, limited to the nearest limit entries.
	ListUpcomingDue(ctx context.Context, asOf time.Time, limit int) ([]entity.Customer, error)
}
