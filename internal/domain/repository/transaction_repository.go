package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/pkg/pagination"
)

// TransactionFilterParams holds list filters for transactions
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.TransactionStatus
	From       *time.Time
	To         *time.Time
	Search     string
}

// TransactionRepository defines read access to transactions. All writes go
// through BillingUnitOfWork so a transaction and its owning customer's
// rollup always commit together.
type TransactionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	// GetWithCustomer loads a transaction with its customer preloaded.
	GetWithCustomer(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	// ListByCustomer returns the full transaction set owned by a customer.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error)
	// ListBetween returns transactions dated in [from, to), for reporting
	// and export.
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Transaction, error)
}

// BillingScope exposes the writes available inside one atomic billing unit
// of work. Implementations bind every method to the same database
// transaction.
type BillingScope interface {
	// Customer returns the locked customer row, or nil in a walk-in scope.
	Customer() *entity.Customer
	CreateTransaction(txn *entity.Transaction) error
	UpdateTransaction(txn *entity.Transaction) error
	DeleteTransaction(id uuid.UUID) error
	// CustomerTransactions returns the customer's full current transaction
	// set as visible inside this unit of work.
	CustomerTransactions() ([]entity.Transaction, error)
	// SaveCustomerRollup persists refreshed rollup columns on the locked
	// customer row.
	SaveCustomerRollup(customer *entity.Customer) error
}

// BillingUnitOfWork executes billing writes atomically: the transaction
// record and the owning customer's rollup commit together, or neither does.
type BillingUnitOfWork interface {
	// InCustomerScope runs fn inside one database transaction with the
	// customer row locked FOR UPDATE, serializing concurrent writers to the
	// same customer. Returns a not-found error when the customer does not
	// exist; a serialization or deadlock failure surfaces as a conflict
	// error for the caller to retry.
	InCustomerScope(ctx context.Context, customerID uuid.UUID, fn func(scope BillingScope) error) error
	// InWalkInScope runs fn inside one database transaction without a
	// customer lock. Walk-in transactions have no rollup to maintain.
	InWalkInScope(ctx context.Context, fn func(scope BillingScope) error) error
}
