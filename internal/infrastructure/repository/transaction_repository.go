package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/printarts/billing-api/internal/domain/entity"
	domainRepo "github.com/printarts/billing-api/internal/domain/repository"
	"github.com/printarts/billing-api/pkg/apperror"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) GetWithCustomer(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).Preload("Customer").First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Transaction{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.From != nil {
		query = query.Where("transaction_date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("transaction_date < ?", *params.To)
	}
	if params.Search != "" {
		query = query.Where("item_name ILIKE ? OR invoice_no ILIKE ? OR walk_in_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("transaction_date DESC, created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("transaction_date DESC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("transaction_date >= ? AND transaction_date < ?", from, to).
		Order("transaction_date ASC").
		Find(&txns).Error
	return txns, err
}

// --- Billing unit of work ---

type billingUnitOfWork struct {
	db *gorm.DB
}

// NewBillingUnitOfWork creates the atomic write scope for billing operations
func NewBillingUnitOfWork(db *gorm.DB) domainRepo.BillingUnitOfWork {
	return &billingUnitOfWork{db: db}
}

type billingScope struct {
	tx       *gorm.DB
	customer *entity.Customer
}

func (s *billingScope) Customer() *entity.Customer {
	return s.customer
}

func (s *billingScope) CreateTransaction(txn *entity.Transaction) error {
	return s.tx.Create(txn).Error
}

func (s *billingScope) UpdateTransaction(txn *entity.Transaction) error {
	return s.tx.Save(txn).Error
}

func (s *billingScope) DeleteTransaction(id uuid.UUID) error {
	return s.tx.Delete(&entity.Transaction{}, "id = ?", id).Error
}

func (s *billingScope) CustomerTransactions() ([]entity.Transaction, error) {
	if s.customer == nil {
		return nil, nil
	}
	var txns []entity.Transaction
	err := s.tx.Where("customer_id = ?", s.customer.ID).Find(&txns).Error
	return txns, err
}

func (s *billingScope) SaveCustomerRollup(customer *entity.Customer) error {
	return s.tx.Model(customer).
		Select("total_transactions", "total_spent", "outstanding_balance", "last_transaction_date", "updated_at").
		Updates(map[string]interface{}{
			"total_transactions":    customer.TotalTransactions,
			"total_spent":           customer.TotalSpent,
			"outstanding_balance":   customer.OutstandingBalance,
			"last_transaction_date": customer.LastTransactionDate,
			"updated_at":            time.Now(),
		}).Error
}

// InCustomerScope locks the customer row FOR UPDATE so concurrent billing
// writes for the same customer serialize; writes for different customers
// only touch their own rows and proceed in parallel.
func (u *billingUnitOfWork) InCustomerScope(ctx context.Context, customerID uuid.UUID, fn func(scope domainRepo.BillingScope) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer entity.Customer
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, "id = ?", customerID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NewNotFoundError("Customer")
		}
		if err != nil {
			return err
		}
		return fn(&billingScope{tx: tx, customer: &customer})
	})
	return mapConcurrencyError(err)
}

func (u *billingUnitOfWork) InWalkInScope(ctx context.Context, fn func(scope domainRepo.BillingScope) error) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&billingScope{tx: tx})
	})
	return mapConcurrencyError(err)
}

// mapConcurrencyError translates Postgres serialization failures and
// deadlocks into a conflict error the service layer retries once.
func mapConcurrencyError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return apperror.NewConflictError("Concurrent update on customer account")
		}
	}
	return err
}
