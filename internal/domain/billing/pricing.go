package billing

import (
	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/domain/enum"
	"github.com/printarts/billing-api/pkg/apperror"
)

var (
	hundred = decimal.NewFromInt(100)

	// gstRate is the flat 18% applied for both GST labels. CGST-SGST is
	// nominally a 9%+9% split but the split never changes the total, so a
	// single rate is shared by both classes.
	gstRate = decimal.NewFromFloat(0.18)
)

// PricingInput holds the raw line-item fields a transaction is priced from.
type PricingInput struct {
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountFlat    decimal.Decimal
	TaxClass        enum.TaxClass
	Paid            decimal.Decimal
}

// Totals is the result of pricing a transaction. Amount is rounded to two
// decimal places (bankers rounding); Balance may be negative on overpayment.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Taxable  decimal.Decimal
	Tax      decimal.Decimal
	Amount   decimal.Decimal
	Balance  decimal.Decimal
}

// ComputeTotals prices a transaction from its raw fields. Pure and
// deterministic: same inputs always produce the same totals, so it is safe
// to re-run on every raw-field edit and treat the result as authoritative.
func ComputeTotals(in PricingInput) (*Totals, error) {
	if in.Quantity <= 0 {
		return nil, apperror.NewInvalidInputError("Quantity must be positive")
	}
	if in.UnitPrice.IsNegative() {
		return nil, apperror.NewInvalidInputError("Unit price cannot be negative")
	}
	if in.DiscountPercent.IsNegative() || in.DiscountFlat.IsNegative() {
		return nil, apperror.NewInvalidInputError("Discounts cannot be negative")
	}
	if in.Paid.IsNegative() {
		return nil, apperror.NewInvalidInputError("Paid amount cannot be negative")
	}

	subtotal := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

	// Discount may never exceed the subtotal: excess is truncated, not an error.
	discount := subtotal.Mul(in.DiscountPercent).Div(hundred).Add(in.DiscountFlat)
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}

	taxable := subtotal.Sub(discount)

	tax := decimal.Zero
	if in.TaxClass.Taxable() {
		tax = taxable.Mul(gstRate)
	}

	amount := taxable.Add(tax).RoundBank(2)
	balance := amount.Sub(in.Paid)

	return &Totals{
		Subtotal: subtotal,
		Discount: discount,
		Taxable:  taxable,
		Tax:      tax,
		Amount:   amount,
		Balance:  balance,
	}, nil
}
