package enum

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PaymentMethod is how a bill was settled
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

// PaymentMethodNotSpecified is the display label for bills without a method
const PaymentMethodNotSpecified = "Not Specified"

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// ParsePaymentMethod accepts any casing of cash, card or upi
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	if !m.IsValid() {
		return "", fmt.Errorf("unknown payment method %q (use cash, card or upi)", raw)
	}
	return m, nil
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Label is the display form of the method, e.g. "Upi". A Caser keeps
// state, so each call gets its own.
func (m PaymentMethod) Label() string {
	return cases.Title(language.English).String(string(m))
}

// PaymentMethodLabel labels an optional method, using "Not Specified" when absent
func PaymentMethodLabel(m *PaymentMethod) string {
	if m == nil || *m == "" {
		return PaymentMethodNotSpecified
	}
	return m.Label()
}
