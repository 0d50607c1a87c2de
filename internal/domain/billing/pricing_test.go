package billing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/printarts/billing-api/internal/domain/enum"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTotals_Scenarios(t *testing.T) {
	cases := []struct {
		name        string
		in          PricingInput
		wantAmount  string
		wantBalance string
	}{
		{
			name: "percent discount no tax",
			in: PricingInput{
				Quantity:        10,
				UnitPrice:       dec("5.00"),
				DiscountPercent: dec("10"),
				DiscountFlat:    decimal.Zero,
				TaxClass:        enum.TaxClassNone,
				Paid:            decimal.Zero,
			},
			wantAmount:  "45",
			wantBalance: "45",
		},
		{
			name: "cgst_sgst with partial payment",
			in: PricingInput{
				Quantity:  2,
				UnitPrice: dec("100"),
				TaxClass:  enum.TaxClassCGSTSGST,
				Paid:      dec("50"),
			},
			wantAmount:  "236",
			wantBalance: "186",
		},
		{
			name: "igst taxes at the same flat rate",
			in: PricingInput{
				Quantity:  2,
				UnitPrice: dec("100"),
				TaxClass:  enum.TaxClassIGST,
				Paid:      dec("50"),
			},
			wantAmount:  "236",
			wantBalance: "186",
		},
		{
			name: "flat discount clamped to subtotal",
			in: PricingInput{
				Quantity:     10,
				UnitPrice:    dec("5.00"),
				DiscountFlat: dec("1000"),
				TaxClass:     enum.TaxClassCGSTSGST,
			},
			wantAmount:  "0",
			wantBalance: "0",
		},
		{
			name: "overpayment leaves negative balance",
			in: PricingInput{
				Quantity:  1,
				UnitPrice: dec("100"),
				TaxClass:  enum.TaxClassNone,
				Paid:      dec("120"),
			},
			wantAmount:  "100",
			wantBalance: "-20",
		},
		{
			name: "zero unit price is allowed",
			in: PricingInput{
				Quantity:  5,
				UnitPrice: decimal.Zero,
				TaxClass:  enum.TaxClassIGST,
			},
			wantAmount:  "0",
			wantBalance: "0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ComputeTotals(tc.in)
			if err != nil {
				t.Fatalf("ComputeTotals error: %v", err)
			}
			if !got.Amount.Equal(dec(tc.wantAmount)) {
				t.Errorf("amount = %s, want %s", got.Amount, tc.wantAmount)
			}
			if !got.Balance.Equal(dec(tc.wantBalance)) {
				t.Errorf("balance = %s, want %s", got.Balance, tc.wantBalance)
			}
			if got.Taxable.IsNegative() {
				t.Errorf("taxable = %s, must never be negative", got.Taxable)
			}
			if !got.Balance.Equal(got.Amount.Sub(tc.in.Paid)) {
				t.Errorf("balance %s does not equal amount %s minus paid %s", got.Balance, got.Amount, tc.in.Paid)
			}
		})
	}
}

func TestComputeTotals_InvalidInput(t *testing.T) {
	cases := []struct {
		name string
		in   PricingInput
	}{
		{"zero quantity", PricingInput{Quantity: 0, UnitPrice: dec("10")}},
		{"negative quantity", PricingInput{Quantity: -3, UnitPrice: dec("10")}},
		{"negative unit price", PricingInput{Quantity: 1, UnitPrice: dec("-1")}},
		{"negative percent discount", PricingInput{Quantity: 1, UnitPrice: dec("10"), DiscountPercent: dec("-5")}},
		{"negative flat discount", PricingInput{Quantity: 1, UnitPrice: dec("10"), DiscountFlat: dec("-5")}},
		{"negative paid", PricingInput{Quantity: 1, UnitPrice: dec("10"), Paid: dec("-1")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ComputeTotals(tc.in); err == nil {
				t.Fatal("expected invalid input error, got nil")
			}
		})
	}
}

func TestComputeTotals_Deterministic(t *testing.T) {
	in := PricingInput{
		Quantity:        7,
		UnitPrice:       dec("13.37"),
		DiscountPercent: dec("12.5"),
		DiscountFlat:    dec("3"),
		TaxClass:        enum.TaxClassCGSTSGST,
		Paid:            dec("25"),
	}

	first, err := ComputeTotals(in)
	if err != nil {
		t.Fatalf("ComputeTotals error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ComputeTotals(in)
		if err != nil {
			t.Fatalf("ComputeTotals error on run %d: %v", i, err)
		}
		if !again.Amount.Equal(first.Amount) || !again.Balance.Equal(first.Balance) {
			t.Fatalf("run %d produced %s/%s, first run produced %s/%s",
				i, again.Amount, again.Balance, first.Amount, first.Balance)
		}
	}
}

func TestComputeTotals_BankersRounding(t *testing.T) {
	// 18% of 0.25 is 0.045: half-to-even rounds 0.295 up to the even
	// neighbor 0.30 rather than down to 0.29.
	got, err := ComputeTotals(PricingInput{
		Quantity:  1,
		UnitPrice: dec("0.25"),
		TaxClass:  enum.TaxClassIGST,
	})
	if err != nil {
		t.Fatalf("ComputeTotals error: %v", err)
	}
	if got.Amount.String() != "0.3" {
		t.Errorf("amount = %s, want 0.3 (round half to even)", got.Amount)
	}

	// 0.305 sits halfway as well and rounds down to the even digit.
	got, err = ComputeTotals(PricingInput{
		Quantity:  1,
		UnitPrice: dec("0.305"),
		TaxClass:  enum.TaxClassNone,
	})
	if err != nil {
		t.Fatalf("ComputeTotals error: %v", err)
	}
	if got.Amount.String() != "0.3" {
		t.Errorf("amount = %s, want 0.3 (round half to even)", got.Amount)
	}
}

func TestComputeTotals_DiscountNeverExceedsSubtotal(t *testing.T) {
	cases := []PricingInput{
		{Quantity: 1, UnitPrice: dec("50"), DiscountPercent: dec("100"), DiscountFlat: dec("10")},
		{Quantity: 3, UnitPrice: dec("9.99"), DiscountPercent: dec("200")},
		{Quantity: 2, UnitPrice: dec("1"), DiscountFlat: dec("1.50")},
	}
	for _, in := range cases {
		got, err := ComputeTotals(in)
		if err != nil {
			t.Fatalf("ComputeTotals(%+v) error: %v", in, err)
		}
		if got.Discount.GreaterThan(got.Subtotal) {
			t.Errorf("discount %s exceeds subtotal %s", got.Discount, got.Subtotal)
		}
		if got.Taxable.IsNegative() {
			t.Errorf("taxable %s went negative for input %+v", got.Taxable, in)
		}
	}
}
