package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BillStatus represents the lifecycle status of a bill
type BillStatus string

const (
	BillStatusDraft   BillStatus = "draft"
	BillStatusSaved   BillStatus = "saved"
	BillStatusPrinted BillStatus = "printed"
)

// IsValid reports whether s is one of the known statuses
func (s BillStatus) IsValid() bool {
	switch s {
	case BillStatusDraft, BillStatusSaved, BillStatusPrinted:
		return true
	}
	return false
}

// IsFinal reports whether the bill has left the draft state
func (s BillStatus) IsFinal() bool {
	return s == BillStatusSaved || s == BillStatusPrinted
}

func (s BillStatus) String() string {
	return string(s)
}

// ParseBillStatus converts a raw value into a BillStatus
func ParseBillStatus(raw string) (BillStatus, error) {
	s := BillStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown bill status %q", raw)
	}
	return s, nil
}

func (s *BillStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseBillStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s BillStatus) Value() (driver.Value, error) {
	if s == "" {
		return string(BillStatusDraft), nil
	}
	return string(s), nil
}

func (s *BillStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = BillStatusDraft
	case string:
		*s = BillStatus(v)
	case []byte:
		*s = BillStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into BillStatus", value)
	}
	return nil
}
