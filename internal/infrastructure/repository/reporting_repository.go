package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/printarts/billing-api/internal/domain/entity"
	domainRepo "github.com/printarts/billing-api/internal/domain/repository"
)

type reportingRepository struct {
	db *gorm.DB
}

// NewReportingRepository creates a new reporting repository
func NewReportingRepository(db *gorm.DB) domainRepo.ReportingRepository {
	return &reportingRepository{db: db}
}

func (r *reportingRepository) ListOverdueCustomers(ctx context.Context, asOf time.Time) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND outstanding_balance > 0", asOf).
		Order("due_date ASC").
		Find(&customers).Error
	return customers, err
}

func (r *reportingRepository) ListUpcomingDue(ctx context.Context, asOf time.Time, limit int) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date >= ?", asOf).
		Order("due_date ASC").
		Limit(limit).
		Find(&customers).Error
	return customers, err
}
