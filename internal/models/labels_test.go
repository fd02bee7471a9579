package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPaymentStatusLabel(t *testing.T) {
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		payment Payment
		want    string
	}{
		{"оплачен", Payment{Status: PaymentStatusPaid, DueDate: now.Add(-240 * time.Hour)}, PaymentLabelPaid},
		{"просрочен", Payment{Status: PaymentStatusPending, DueDate: now.Add(-time.Minute)}, PaymentLabelOverdue},
		{"скоро срок", Payment{Status: PaymentStatusPending, DueDate: now.Add(71 * time.Hour)}, PaymentLabelDueSoon},
		{"ожидает", Payment{Status: PaymentStatusPending, DueDate: now.Add(73 * time.Hour)}, PaymentLabelPending},
		{"ошибка", Payment{Status: PaymentStatusFailed, DueDate: now}, PaymentStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payment.StatusLabel(now, DefaultDueSoonWindow))
		})
	}
}

func TestContractSignatureStatus(t *testing.T) {
	tests := []struct {
		creator, brand bool
		want           string
	}{
		{false, false, ContractLabelPendingSignatures},
		{true, false, ContractLabelPendingBrand},
		{false, true, ContractLabelPendingCreator},
		{true, true, ContractLabelFullyExecuted},
	}

	for _, tt := range tests {
		c := ContractWithDetails{Contract: Contract{CreatorSigned: tt.creator, BrandSigned: tt.brand}}
		c.Decorate()
		assert.Equal(t, tt.want, c.SignatureLabel)
		assert.Equal(t, tt.creator && tt.brand, c.IsFullyExecuted)
	}
}

func TestOfferAgreedAmount(t *testing.T) {
	offer := Offer{Amount: decimal.NewFromInt(1000), Status: OfferStatusPending}
	assert.True(t, offer.AgreedAmount().Equal(decimal.NewFromInt(1000)))

	offer.CounterAmount = decimal.NewNullDecimal(decimal.NewFromInt(1300))
	assert.True(t, offer.AgreedAmount().Equal(decimal.NewFromInt(1000)))

	offer.Status = OfferStatusCountered
	assert.True(t, offer.AgreedAmount().Equal(decimal.NewFromInt(1300)))
}

func TestUserFullName(t *testing.T) {
	first, last := "Sarah", "Johnson"
	assert.Equal(t, "Sarah Johnson", (&User{FirstName: &first, LastName: &last}).FullName())
	assert.Equal(t, "Sarah", (&User{FirstName: &first}).FullName())
	assert.Equal(t, "", (&User{}).FullName())
}
