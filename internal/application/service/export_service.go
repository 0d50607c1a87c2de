package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/printarts/billing-api/internal/domain/repository"
)

// ExportService produces XLSX downloads of transaction records
type ExportService struct {
	transactionRepo repository.TransactionRepository
	settingsService *SettingsService
}

// NewExportService creates a new export service
func NewExportService(transactionRepo repository.TransactionRepository, settingsService *SettingsService) *ExportService {
	return &ExportService{
		transactionRepo: transactionRepo,
		settingsService: settingsService,
	}
}

// ExportTransactions writes every transaction dated in [from, to) to an XLSX
// workbook and returns its bytes with a suggested filename.
func (s *ExportService) ExportTransactions(ctx context.Context, from, to time.Time) (*bytes.Buffer, string, error) {
	txns, err := s.transactionRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, "", err
	}

	profile := s.settingsService.Profile()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Transactions"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Invoice No", "Date", "Billed To", "Item", "Quantity", "Unit Price",
		"Discount %", "Discount Flat", "Tax Class", "Paid", "Amount",
		"Balance", "Status", "Currency",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err == nil {
		lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", lastCell, headerStyle)
	}

	for i := range txns {
		t := &txns[i]
		row := i + 2
		values := []interface{}{
			t.InvoiceNo,
			t.TransactionDate.Format("2006-01-02"),
			t.BillToName(),
			t.ItemName,
			t.Quantity,
			t.UnitPrice.InexactFloat64(),
			t.DiscountPercent.InexactFloat64(),
			t.DiscountFlat.InexactFloat64(),
			t.TaxClass.String(),
			t.Paid.InexactFloat64(),
			t.Amount.InexactFloat64(),
			t.Balance.InexactFloat64(),
			t.Status.String(),
			profile.Currency,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "D", 18)
	f.SetColWidth(sheet, "E", "N", 12)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to build export: %w", err)
	}

	filename := fmt.Sprintf("transactions_%s_%s.xlsx",
		from.Format("20060102"), to.Format("20060102"))

	return buf, filename, nil
}
