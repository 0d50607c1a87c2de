package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// TransactionStatus represents the payment lifecycle of a transaction
type TransactionStatus int

const (
	TransactionStatusDraft   TransactionStatus = 0
	TransactionStatusPending TransactionStatus = 1
	TransactionStatusPaid    TransactionStatus = 2
	TransactionStatusOverdue TransactionStatus = 3
)

func (s TransactionStatus) String() string {
	names := [...]string{"draft", "pending", "paid", "overdue"}
	if int(s) < 0 || int(s) >= len(names) {
		return "draft"
	}
	return names[s]
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	switch str {
	case "draft":
		*s = TransactionStatusDraft
	case "pending":
		*s = TransactionStatusPending
	case "paid":
		*s = TransactionStatusPaid
	case "overdue":
		*s = TransactionStatusOverdue
	}
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}

// ParseTransactionStatus converts a wire string into a TransactionStatus.
func ParseTransactionStatus(str string) (TransactionStatus, bool) {
	switch str {
	case "draft":
		return TransactionStatusDraft, true
	case "pending":
		return TransactionStatusPending, true
	case "paid":
		return TransactionStatusPaid, true
	case "overdue":
		return TransactionStatusOverdue, true
	}
	return TransactionStatusDraft, false
}
