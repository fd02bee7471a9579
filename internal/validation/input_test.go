package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"положительная", "1500.00", false},
		{"минимальная", "0.01", false},
		{"ноль", "0", true},
		{"отрицательная", "-5", true},
		{"граница", "99999999.99", false},
		{"больше границы", "100000000", true},
		{"доли цента", "0.001", true},
		{"доли цента у крупной суммы", "10.555", true},
		{"лишние нули", "1.500", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount("сумма", decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, ValidateBudget(decimal.Zero))
	assert.NoError(t, ValidateBudget(decimal.NewFromInt(50000)))
	assert.Error(t, ValidateBudget(decimal.NewFromInt(-1)))
	assert.Error(t, ValidateBudget(decimal.RequireFromString("0.005")))
	assert.NoError(t, ValidateBudget(decimal.RequireFromString("1200.50")))
}

func TestValidateFollowersRange(t *testing.T) {
	assert.NoError(t, ValidateFollowersRange(nil, nil))
	assert.NoError(t, ValidateFollowersRange(intPtr(1000), intPtr(1000)))
	assert.Error(t, ValidateFollowersRange(intPtr(-1), nil))
	assert.Error(t, ValidateFollowersRange(intPtr(5000), intPtr(1000)))
}

func TestValidateEngagementRate(t *testing.T) {
	assert.NoError(t, ValidateEngagementRate(decimal.RequireFromString("4.2")))
	assert.NoError(t, ValidateEngagementRate(decimal.NewFromInt(100)))
	assert.Error(t, ValidateEngagementRate(decimal.RequireFromString("100.01")))
	assert.Error(t, ValidateEngagementRate(decimal.RequireFromString("-0.1")))
}

func TestValidateTags(t *testing.T) {
	assert.NoError(t, ValidateTags([]string{"fitness", "wellness"}))
	assert.Error(t, ValidateTags([]string{"fitness", "Fitness"}))
	assert.Error(t, ValidateTags([]string{" "}))
	assert.Error(t, ValidateTags([]string{strings.Repeat("a", MaxTagLength+1)}))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("sarah_fitness"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("sarah.fitness"))
	assert.Error(t, ValidateUsername(""))
}

func TestValidateExternalLink(t *testing.T) {
	assert.NoError(t, ValidateExternalLink(nil))
	assert.NoError(t, ValidateExternalLink(strPtr("https://nike.com")))
	assert.Error(t, ValidateExternalLink(strPtr("ftp://nike.com")))
	assert.Error(t, ValidateExternalLink(strPtr("https://")))
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage(nil))
	assert.NoError(t, ValidateMessage(strPtr("Would love to work with you")))
	assert.Error(t, ValidateMessage(strPtr(strings.Repeat("x", MaxMessageLength+1))))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("1234567890"))
	assert.Error(t, ValidatePassword(strings.Repeat("a1", 37)))
}
