package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/internal/domain/repository"
	"github.com/printarts/billing-api/pkg/apperror"
)

// memoryBilling is an in-memory stand-in for the transaction store and the
// billing unit of work, sharing one backing map so rollup refreshes observe
// writes made in the same scope.
type memoryBilling struct {
	customers map[uuid.UUID]*entity.Customer
	txns      map[uuid.UUID]*entity.Transaction

	// conflicts injects this many conflict failures before a scope succeeds
	conflicts int
	scopeRuns int
}

func newMemoryBilling() *memoryBilling {
	return &memoryBilling{
		customers: make(map[uuid.UUID]*entity.Customer),
		txns:      make(map[uuid.UUID]*entity.Transaction),
	}
}

func (m *memoryBilling) addCustomer(name string) *entity.Customer {
	c := &entity.Customer{ID: uuid.New(), Name: name, Active: true}
	m.customers[c.ID] = c
	return c
}

// --- repository.TransactionRepository ---

func (m *memoryBilling) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, ok := m.txns[id]
	if !ok {
		return nil, nil
	}
	copied := *t
	return &copied, nil
}

func (m *memoryBilling) GetWithCustomer(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, err := m.GetByID(ctx, id)
	if err != nil || t == nil {
		return t, err
	}
	if t.CustomerID != nil {
		t.Customer = m.customers[*t.CustomerID]
	}
	return t, nil
}

func (m *memoryBilling) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var out []entity.Transaction
	for _, t := range m.txns {
		if params.CustomerID != nil && (t.CustomerID == nil || *t.CustomerID != *params.CustomerID) {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (m *memoryBilling) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, t := range m.txns {
		if t.CustomerID != nil && *t.CustomerID == customerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *memoryBilling) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, t := range m.txns {
		if !t.TransactionDate.Before(from) && t.TransactionDate.Before(to) {
			out = append(out, *t)
		}
	}
	return out, nil
}

// --- repository.BillingUnitOfWork ---

type memoryScope struct {
	store    *memoryBilling
	customer *entity.Customer
}

func (s *memoryScope) Customer() *entity.Customer { return s.customer }

func (s *memoryScope) CreateTransaction(txn *entity.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	copied := *txn
	s.store.txns[txn.ID] = &copied
	return nil
}

func (s *memoryScope) UpdateTransaction(txn *entity.Transaction) error {
	copied := *txn
	s.store.txns[txn.ID] = &copied
	return nil
}

func (s *memoryScope) DeleteTransaction(id uuid.UUID) error {
	delete(s.store.txns, id)
	return nil
}

func (s *memoryScope) CustomerTransactions() ([]entity.Transaction, error) {
	if s.customer == nil {
		return nil, nil
	}
	return s.store.ListByCustomer(context.Background(), s.customer.ID)
}

func (s *memoryScope) SaveCustomerRollup(customer *entity.Customer) error {
	copied := *customer
	s.store.customers[customer.ID] = &copied
	return nil
}

func (m *memoryBilling) InCustomerScope(ctx context.Context, customerID uuid.UUID, fn func(scope repository.BillingScope) error) error {
	m.scopeRuns++
	if m.conflicts > 0 {
		m.conflicts--
		return apperror.NewConflictError("Concurrent update on customer account")
	}
	customer, ok := m.customers[customerID]
	if !ok {
		return apperror.NewNotFoundError("Customer")
	}
	copied := *customer
	return fn(&memoryScope{store: m, customer: &copied})
}

func (m *memoryBilling) InWalkInScope(ctx context.Context, fn func(scope repository.BillingScope) error) error {
	m.scopeRuns++
	if m.conflicts > 0 {
		m.conflicts--
		return apperror.NewConflictError("Concurrent update on customer account")
	}
	return fn(&memoryScope{store: m})
}

func newTestService(store *memoryBilling) *TransactionService {
	return NewTransactionService(store, store)
}

func createInput(customerID *uuid.UUID, qty int, price, paid string) *CreateTransactionInput {
	input := &CreateTransactionInput{
		CustomerID: customerID,
		CreatedBy:  uuid.New(),
		ItemName:   "Business cards",
		Quantity:   qty,
		UnitPrice:  decimal.RequireFromString(price),
		Paid:       decimal.RequireFromString(paid),
		TaxClass:   enum.TaxClassNone,
	}
	if customerID == nil {
		name := "Walk-in"
		input.WalkInName = &name
	}
	return input
}

func TestCreateTransactionRequiresExactlyOneBillTo(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")
	name := "Someone"

	tests := []struct {
		name       string
		customerID *uuid.UUID
		walkIn     *string
	}{
		{"neither set", nil, nil},
		{"both set", &customer.ID, &name},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTransaction(context.Background(), &CreateTransactionInput{
				CustomerID: tt.customerID,
				WalkInName: tt.walkIn,
				CreatedBy:  uuid.New(),
				ItemName:   "Flyers",
				Quantity:   1,
				UnitPrice:  decimal.NewFromInt(100),
			})
			if !apperror.IsInvalidInput(err) {
				t.Fatalf("expected invalid input error, got %v", err)
			}
		})
	}
}

func TestCreateTransactionRefreshesRollup(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")

	txn, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 1, "100", "40"))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if txn.Status != enum.TransactionStatusPending {
		t.Errorf("status = %v, want pending", txn.Status)
	}
	if !txn.Balance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("balance = %s, want 60", txn.Balance)
	}

	got := store.customers[customer.ID]
	if got.TotalTransactions != 1 {
		t.Errorf("total transactions = %d, want 1", got.TotalTransactions)
	}
	if !got.TotalSpent.Equal(decimal.NewFromInt(100)) {
		t.Errorf("total spent = %s, want 100", got.TotalSpent)
	}
	if !got.OutstandingBalance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("outstanding = %s, want 60", got.OutstandingBalance)
	}
	if got.LastTransactionDate == nil {
		t.Error("last transaction date not set")
	}
}

func TestCreateTransactionFullyPaid(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")

	txn, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 2, "50", "100"))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if txn.Status != enum.TransactionStatusPaid {
		t.Errorf("status = %v, want paid", txn.Status)
	}
	if !store.customers[customer.ID].OutstandingBalance.IsZero() {
		t.Errorf("outstanding = %s, want 0", store.customers[customer.ID].OutstandingBalance)
	}
}

func TestCreateTransactionUnknownCustomer(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	missing := uuid.New()

	_, err := svc.CreateTransaction(context.Background(), createInput(&missing, 1, "10", "0"))
	appErr := apperror.GetAppError(err)
	if appErr.Code != 404 {
		t.Fatalf("expected 404, got %d (%v)", appErr.Code, err)
	}
}

func TestCreateTransactionRetriesConflictOnce(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")

	store.conflicts = 1
	if _, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 1, "10", "0")); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if store.scopeRuns != 2 {
		t.Errorf("scope runs = %d, want 2", store.scopeRuns)
	}

	store.scopeRuns = 0
	store.conflicts = 2
	_, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 1, "10", "0"))
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict after second failure, got %v", err)
	}
	if store.scopeRuns != 2 {
		t.Errorf("scope runs = %d, want 2 (one retry only)", store.scopeRuns)
	}
}

func TestRecordPaymentSettlesBalance(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")

	txn, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 1, "200", "50"))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	updated, err := svc.RecordPayment(context.Background(), txn.ID, decimal.NewFromInt(150))
	if err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if !updated.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", updated.Balance)
	}
	if updated.Status != enum.TransactionStatusPaid {
		t.Errorf("status = %v, want paid", updated.Status)
	}
	if !store.customers[customer.ID].OutstandingBalance.IsZero() {
		t.Errorf("outstanding = %s, want 0", store.customers[customer.ID].OutstandingBalance)
	}
}

func TestRecordPaymentRejectsNonPositiveAmount(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)

	_, err := svc.RecordPayment(context.Background(), uuid.New(), decimal.Zero)
	if !apperror.IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUpdateTransactionRecomputesTotals(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")

	txn, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 1, "100", "0"))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	qty := 3
	updated, err := svc.UpdateTransaction(context.Background(), &UpdateTransactionInput{
		ID:       txn.ID,
		Quantity: &qty,
	})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}

	if !updated.Amount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("amount = %s, want 300", updated.Amount)
	}
	if !store.customers[customer.ID].TotalSpent.Equal(decimal.NewFromInt(300)) {
		t.Errorf("rollup total spent = %s, want 300", store.customers[customer.ID].TotalSpent)
	}
}

func TestDeleteTransactionRefreshesRollup(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)
	customer := store.addCustomer("Asha Printers")

	txn, err := svc.CreateTransaction(context.Background(), createInput(&customer.ID, 1, "100", "0"))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	if err := svc.DeleteTransaction(context.Background(), txn.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}

	got := store.customers[customer.ID]
	if got.TotalTransactions != 0 {
		t.Errorf("total transactions = %d, want 0", got.TotalTransactions)
	}
	if !got.OutstandingBalance.IsZero() {
		t.Errorf("outstanding = %s, want 0", got.OutstandingBalance)
	}
}

func TestCreateWalkInSkipsRollup(t *testing.T) {
	store := newMemoryBilling()
	svc := newTestService(store)

	txn, err := svc.CreateTransaction(context.Background(), createInput(nil, 1, "75", "75"))
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if !txn.IsWalkIn() {
		t.Error("expected walk-in transaction")
	}
	if len(store.customers) != 0 {
		t.Error("walk-in write must not touch customer rows")
	}
}
