package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/printarts/billing-api/internal/domain/billing"
	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/internal/domain/repository"
	"github.com/printarts/billing-api/pkg/apperror"
	"github.com/printarts/billing-api/pkg/pagination"
	"github.com/printarts/billing-api/pkg/utils"
)

// TransactionService handles billing transaction operations. Every write goes
// through the billing unit of work so the transaction record and the owning
// customer's rollup commit together.
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	uow             repository.BillingUnitOfWork
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository, uow repository.BillingUnitOfWork) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		uow:             uow,
	}
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	CustomerID      *uuid.UUID
	WalkInName      *string
	CreatedBy       uuid.UUID
	ItemName        string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountFlat    decimal.Decimal
	TaxClass        enum.TaxClass
	Paid            decimal.Decimal
	TransactionDate *time.Time
}

// CreateTransaction prices and records a new billing transaction. The record
// belongs to exactly one customer or is a walk-in with a free-text name,
// never both.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if err := validateBillTo(input.CustomerID, input.WalkInName); err != nil {
		return nil, err
	}
	if input.ItemName == "" {
		return nil, apperror.NewInvalidInputError("Item name is required")
	}

	totals, err := billing.ComputeTotals(billing.PricingInput{
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		DiscountPercent: input.DiscountPercent,
		DiscountFlat:    input.DiscountFlat,
		TaxClass:        input.TaxClass,
		Paid:            input.Paid,
	})
	if err != nil {
		return nil, err
	}

	txnDate := time.Now()
	if input.TransactionDate != nil {
		txnDate = *input.TransactionDate
	}

	txn := &entity.Transaction{
		CustomerID:      input.CustomerID,
		WalkInName:      input.WalkInName,
		CreatedBy:       input.CreatedBy,
		ItemName:        input.ItemName,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		DiscountPercent: input.DiscountPercent,
		DiscountFlat:    input.DiscountFlat,
		TaxClass:        input.TaxClass,
		Paid:            input.Paid,
		Amount:          totals.Amount,
		Balance:         totals.Balance,
		InvoiceNo:       utils.GenerateInvoiceNo(),
		TransactionDate: txnDate,
		Status:          deriveStatus(totals.Balance),
	}

	err = s.inBillingScope(ctx, input.CustomerID, func(scope repository.BillingScope) error {
		if err := scope.CreateTransaction(txn); err != nil {
			return err
		}
		return refreshRollup(scope)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invoice_no": txn.InvoiceNo,
		"amount":     txn.Amount,
	}).Info("Transaction recorded")

	return txn, nil
}

// GetTransaction retrieves a transaction with its customer preloaded
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.transactionRepo.GetWithCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// ListTransactions lists transactions with filters and pagination
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}

	txns, total, err := s.transactionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, pag), nil
}

// UpdateTransactionInput represents the update transaction input. Only raw
// fields are writable; totals are always recomputed.
type UpdateTransactionInput struct {
	ID              uuid.UUID
	ItemName        *string
	Quantity        *int
	UnitPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
	DiscountFlat    *decimal.Decimal
	TaxClass        *enum.TaxClass
	Paid            *decimal.Decimal
	TransactionDate *time.Time
}

// UpdateTransaction applies raw-field edits and reprices the transaction.
// The stored Amount and Balance are replaced wholesale by the recomputation.
func (s *TransactionService) UpdateTransaction(ctx context.Context, input *UpdateTransactionInput) (*entity.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	var updated *entity.Transaction
	err = s.inBillingScope(ctx, existing.CustomerID, func(scope repository.BillingScope) error {
		txn, err := currentCopy(scope, existing)
		if err != nil {
			return err
		}

		if input.ItemName != nil {
			txn.ItemName = *input.ItemName
		}
		if input.Quantity != nil {
			txn.Quantity = *input.Quantity
		}
		if input.UnitPrice != nil {
			txn.UnitPrice = *input.UnitPrice
		}
		if input.DiscountPercent != nil {
			txn.DiscountPercent = *input.DiscountPercent
		}
		if input.DiscountFlat != nil {
			txn.DiscountFlat = *input.DiscountFlat
		}
		if input.TaxClass != nil {
			txn.TaxClass = *input.TaxClass
		}
		if input.Paid != nil {
			txn.Paid = *input.Paid
		}
		if input.TransactionDate != nil {
			txn.TransactionDate = *input.TransactionDate
		}

		totals, err := billing.ComputeTotals(billing.PricingInput{
			Quantity:        txn.Quantity,
			UnitPrice:       txn.UnitPrice,
			DiscountPercent: txn.DiscountPercent,
			DiscountFlat:    txn.DiscountFlat,
			TaxClass:        txn.TaxClass,
			Paid:            txn.Paid,
		})
		if err != nil {
			return err
		}
		txn.Amount = totals.Amount
		txn.Balance = totals.Balance
		txn.Status = deriveStatus(totals.Balance)

		if err := scope.UpdateTransaction(txn); err != nil {
			return err
		}
		updated = txn
		return refreshRollup(scope)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RecordPayment adds a payment against a transaction's balance. The paid
// amount accumulates; the transaction flips to paid once the balance reaches
// zero or below.
func (s *TransactionService) RecordPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*entity.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperror.NewInvalidInputError("Payment amount must be positive")
	}

	existing, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	var updated *entity.Transaction
	err = s.inBillingScope(ctx, existing.CustomerID, func(scope repository.BillingScope) error {
		txn, err := currentCopy(scope, existing)
		if err != nil {
			return err
		}

		txn.Paid = txn.Paid.Add(amount)
		txn.Balance = txn.Amount.Sub(txn.Paid)
		txn.Status = deriveStatus(txn.Balance)

		if err := scope.UpdateTransaction(txn); err != nil {
			return err
		}
		updated = txn
		return refreshRollup(scope)
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"invoice_no": updated.InvoiceNo,
		"paid":       amount,
		"balance":    updated.Balance,
	}).Info("Payment recorded")

	return updated, nil
}

// DeleteTransaction removes a transaction and refreshes the owning
// customer's rollup in the same commit.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	existing, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFoundError("Transaction")
	}

	return s.inBillingScope(ctx, existing.CustomerID, func(scope repository.BillingScope) error {
		if err := scope.DeleteTransaction(id); err != nil {
			return err
		}
		return refreshRollup(scope)
	})
}

// inBillingScope routes the write through the right unit of work and retries
// once when the database reports a serialization or deadlock conflict.
func (s *TransactionService) inBillingScope(ctx context.Context, customerID *uuid.UUID, fn func(scope repository.BillingScope) error) error {
	run := func() error {
		if customerID != nil {
			return s.uow.InCustomerScope(ctx, *customerID, fn)
		}
		return s.uow.InWalkInScope(ctx, fn)
	}

	err := run()
	if apperror.IsConflict(err) {
		logrus.WithError(err).Warn("Billing write conflict, retrying once")
		err = run()
	}
	return err
}

// refreshRollup recomputes the locked customer's aggregates from its full
// transaction set as visible inside the unit of work. No-op for walk-ins.
func refreshRollup(scope repository.BillingScope) error {
	customer := scope.Customer()
	if customer == nil {
		return nil
	}

	txns, err := scope.CustomerTransactions()
	if err != nil {
		return err
	}

	billing.ComputeRollup(txns).Apply(customer)
	return scope.SaveCustomerRollup(customer)
}

// currentCopy re-reads the transaction inside the scope so edits apply to the
// row as committed, not to a stale pre-lock snapshot. Walk-in rows have no
// customer lock; the pre-read copy is used directly.
func currentCopy(scope repository.BillingScope, preRead *entity.Transaction) (*entity.Transaction, error) {
	if scope.Customer() == nil {
		return preRead, nil
	}

	txns, err := scope.CustomerTransactions()
	if err != nil {
		return nil, err
	}
	for i := range txns {
		if txns[i].ID == preRead.ID {
			return &txns[i], nil
		}
	}
	return nil, apperror.NewNotFoundError("Transaction")
}

func validateBillTo(customerID *uuid.UUID, walkInName *string) error {
	hasCustomer := customerID != nil
	hasWalkIn := walkInName != nil && *walkInName != ""
	if hasCustomer == hasWalkIn {
		return apperror.NewInvalidInputError("Provide exactly one of customer_id or walk_in_name")
	}
	return nil
}

func deriveStatus(balance decimal.Decimal) enum.TransactionStatus {
	if balance.LessThanOrEqual(decimal.Zero) {
		return enum.TransactionStatusPaid
	}
	return enum.TransactionStatusPending
}
