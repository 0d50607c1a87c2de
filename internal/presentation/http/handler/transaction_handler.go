package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/application/service"
	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/internal/domain/repository"
	"github.com/printarts/billing-api/internal/presentation/http/dto/response"
	"github.com/printarts/billing-api/pkg/pagination"
)

// TransactionHandler handles billing transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// transactionRequest is the shared body for create and update. Decimal fields
// arrive as JSON numbers or strings; shopspring handles both.
type transactionRequest struct {
	CustomerID      *string          `json:"customer_id"`
	WalkInName      *string          `json:"walk_in_name"`
	ItemName        string           `json:"item_name"`
	Quantity        int              `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	DiscountFlat    decimal.Decimal  `json:"discount_flat"`
	TaxClass        string           `json:"tax_class"`
	Paid            decimal.Decimal  `json:"paid"`
	TransactionDate string           `json:"transaction_date"`
}

// Create handles recording a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req transactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	taxClass, ok := enum.ParseTaxClass(req.TaxClass)
	if !ok {
		response.BadRequest(c, "Invalid tax class")
		return
	}

	txnDate, err := parseDate(req.TransactionDate)
	if err != nil {
		response.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		CustomerID:      customerID,
		WalkInName:      req.WalkInName,
		CreatedBy:       *userID,
		ItemName:        req.ItemName,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		DiscountFlat:    req.DiscountFlat,
		TaxClass:        taxClass,
		Paid:            req.Paid,
		TransactionDate: txnDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction recorded successfully", txn)
}

// List handles listing transactions with filters
func (h *TransactionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := uuid.Parse(customerIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		params.CustomerID = &customerID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseTransactionStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	params.From = from

	to, err := parseDate(c.Query("to"))
	if err != nil {
		response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}
	params.To = to

	result, err := h.transactionService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get handles getting a single transaction
func (h *TransactionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.transactionService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// Update handles editing a transaction's raw fields; totals are recomputed
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req struct {
		ItemName        *string          `json:"item_name"`
		Quantity        *int             `json:"quantity"`
		UnitPrice       *decimal.Decimal `json:"unit_price"`
		DiscountPercent *decimal.Decimal `json:"discount_percent"`
		DiscountFlat    *decimal.Decimal `json:"discount_flat"`
		TaxClass        *string          `json:"tax_class"`
		Paid            *decimal.Decimal `json:"paid"`
		TransactionDate *string          `json:"transaction_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateTransactionInput{
		ID:              id,
		ItemName:        req.ItemName,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
		DiscountFlat:    req.DiscountFlat,
		Paid:            req.Paid,
	}

	if req.TaxClass != nil {
		taxClass, ok := enum.ParseTaxClass(*req.TaxClass)
		if !ok {
			response.BadRequest(c, "Invalid tax class")
			return
		}
		input.TaxClass = &taxClass
	}

	if req.TransactionDate != nil {
		txnDate, err := parseDate(*req.TransactionDate)
		if err != nil || txnDate == nil {
			response.BadRequest(c, "Invalid transaction date, expected YYYY-MM-DD")
			return
		}
		input.TransactionDate = txnDate
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", txn)
}

// Pay handles recording a payment against a transaction
func (h *TransactionHandler) Pay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.transactionService.RecordPayment(c.Request.Context(), id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", txn)
}

// Delete handles removing a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
