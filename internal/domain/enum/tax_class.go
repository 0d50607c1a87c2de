package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TaxClass selects which tax computation applies to a transaction.
// CGST-SGST and IGST carry the same flat rate; the split is a labeling
// detail on receipts, not a rate difference.
type TaxClass int

const (
	TaxClassNone     TaxClass = 0
	TaxClassCGSTSGST TaxClass = 1
	TaxClassIGST     TaxClass = 2
)

func (t TaxClass) String() string {
	names := [...]string{"none", "cgst_sgst", "igst"}
	if int(t) < 0 || int(t) >= len(names) {
		return "none"
	}
	return names[t]
}

// Label returns the human-readable tax label printed on receipts.
func (t TaxClass) Label() string {
	switch t {
	case TaxClassCGSTSGST:
		return "CGST 9% + SGST 9%"
	case TaxClassIGST:
		return "IGST 18%"
	default:
		return "No Tax"
	}
}

// Taxable reports whether the class attracts tax at all.
func (t TaxClass) Taxable() bool {
	return t == TaxClassCGSTSGST || t == TaxClassIGST
}

func (t TaxClass) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TaxClass) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = TaxClass(i)
		return nil
	}
	switch str {
	case "none":
		*t = TaxClassNone
	case "cgst_sgst":
		*t = TaxClassCGSTSGST
	case "igst":
		*t = TaxClassIGST
	}
	return nil
}

func (t TaxClass) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *TaxClass) Scan(value interface{}) error {
	if value == nil {
		*t = TaxClassNone
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = TaxClass(v)
	case int:
		*t = TaxClass(v)
	}
	return nil
}

// ParseTaxClass converts a wire string into a TaxClass.
// Unknown values report ok=false.
func ParseTaxClass(s string) (TaxClass, bool) {
	switch s {
	case "", "none":
		return TaxClassNone, true
	case "cgst_sgst":
		return TaxClassCGSTSGST, true
	case "igst":
		return TaxClassIGST, true
	}
	return TaxClassNone, false
}
