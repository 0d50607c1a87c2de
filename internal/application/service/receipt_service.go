package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/printarts/billing-api/internal/domain/billing"
	"github.com/printarts/billing-api/internal/domain/entity"
	"github.com/printarts/billing-api/internal/domain/repository"
	"github.com/printarts/billing-api/pkg/apperror"
	"github.com/printarts/billing-api/pkg/printer"
)

// ReceiptService composes receipts from finalized transactions and sends
// them to the thermal printer.
type ReceiptService struct {
	printer         printer.Printer
	transactionRepo repository.TransactionRepository
	settingsService *SettingsService
	printerType     string
	charWidth       int
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	p printer.Printer,
	transactionRepo repository.TransactionRepository,
	settingsService *SettingsService,
	printerType string,
	charWidth int,
) *ReceiptService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &ReceiptService{
		printer:         p,
		transactionRepo: transactionRepo,
		settingsService: settingsService,
		printerType:     printerType,
		charWidth:       charWidth,
	}
}

// PrinterStatus returns the current printer status information
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// BuildReceipt composes a receipt value object from a transaction and the
// business settings snapshot. The line breakdown is recomputed from the raw
// fields; the printed total always matches the stored amount.
func (s *ReceiptService) BuildReceipt(ctx context.Context, transactionID uuid.UUID) (*entity.Receipt, error) {
	txn, err := s.transactionRepo.GetWithCustomer(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
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
		return nil, err
	}

	profile := s.settingsService.Profile()

	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			BusinessName: profile.BusinessName,
			Address:      profile.Address,
			Phone:        profile.Phone,
			TaxID:        profile.TaxID,
		},
		InvoiceNo: txn.InvoiceNo,
		Date:      txn.TransactionDate.Format("2006-01-02"),
		BilledTo:  txn.BillToName(),
		ItemName:  txn.ItemName,
		Quantity:  txn.Quantity,
		UnitPrice: txn.UnitPrice,
		Subtotal:  totals.Subtotal,
		Discount:  totals.Discount,
		TaxLabel:  txn.TaxClass.Label(),
		Tax:       totals.Tax,
		Total:     txn.Amount,
		Paid:      txn.Paid,
		Balance:   txn.Balance,
		Currency:  profile.Currency,
		Footer:    profile.Footer,
	}, nil
}

// PrintReceipt builds a transaction's receipt and sends it to the printer.
// The receipt is returned either way so the handler can serve it as JSON
// when no printer is configured.
func (s *ReceiptService) PrintReceipt(ctx context.Context, transactionID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	data := s.FormatReceipt(receipt)
	if err := s.printer.Print(data); err != nil {
		logrus.WithError(err).WithField("invoice_no", receipt.InvoiceNo).Error("Printer error")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes
func (s *ReceiptService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.charWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("GSTIN: %s", r.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceNo).
		KeyValue("Date:", r.Date)
	if r.BilledTo != "" {
		doc.KeyValue("Billed to:", r.BilledTo)
	}

	doc.Separator('-')

	doc.Text(r.ItemName).
		TextF("  %d x %s", r.Quantity, r.UnitPrice.StringFixed(2))

	doc.Separator('-')

	doc.KeyValue("Subtotal:", r.Subtotal.StringFixed(2))
	if r.Discount.IsPositive() {
		doc.KeyValue("Discount:", "-"+r.Discount.StringFixed(2))
	}
	if r.Tax.IsPositive() {
		doc.KeyValue(r.TaxLabel+":", r.Tax.StringFixed(2))
	}
	doc.SetBold(true).
		KeyValue("TOTAL ("+r.Currency+"):", r.Total.StringFixed(2)).
		SetBold(false)

	doc.KeyValue("Paid:", r.Paid.StringFixed(2))
	if r.Balance.IsPositive() {
		doc.KeyValue("Balance due:", r.Balance.StringFixed(2))
	}

	doc.Separator('-')

	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			Text(r.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
