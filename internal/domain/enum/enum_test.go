package enum

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" UPI ")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodUPI, m)

	_, err = ParsePaymentMethod("cheque")
	assert.Error(t, err)
}

func TestPaymentMethodLabel(t *testing.T) {
	upi := PaymentMethodUPI
	assert.Equal(t, "Upi", PaymentMethodLabel(&upi))
	assert.Equal(t, "Cash", PaymentMethodCash.Label())
	assert.Equal(t, PaymentMethodNotSpecified, PaymentMethodLabel(nil))
}

func TestPaymentMethodLabel_Concurrent(t *testing.T) {
	methods := []PaymentMethod{PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI}
	want := []string{"Cash", "Card", "Upi"}

	var wg sync.WaitGroup
	for g := 0; g < 32; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m := methods[(g+i)%len(methods)]
				if got := PaymentMethodLabel(&m); got != want[(g+i)%len(methods)] {
					t.Errorf("label of %s = %q", m, got)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

func TestBillStatus(t *testing.T) {
	assert.False(t, BillStatusDraft.IsFinal())
	assert.True(t, BillStatusSaved.IsFinal())
	assert.True(t, BillStatusPrinted.IsFinal())

	var s BillStatus
	require.NoError(t, json.Unmarshal([]byte(`"printed"`), &s))
	assert.Equal(t, BillStatusPrinted, s)
	assert.Error(t, json.Unmarshal([]byte(`"void"`), &s))

	v, err := BillStatus("").Value()
	require.NoError(t, err)
	assert.Equal(t, "draft", v)
}
