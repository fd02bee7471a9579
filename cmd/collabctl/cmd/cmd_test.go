package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/collabhub-backend/internal/models"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"migrate", "seed", "overdue"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("database-url"))

	migrate, _, err := root.Find([]string{"migrate"})
	require.NoError(t, err)
	assert.NotNil(t, migrate.Flags().Lookup("dir"))
}

func TestPrintOverdue_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printOverdue(&buf, nil, time.Now()))
	assert.Contains(t, buf.String(), "Просроченных платежей нет")
}

func TestPrintOverdue_Table(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	var p models.PaymentWithDetails
	p.ID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	p.Amount = decimal.RequireFromString("1500.5")
	p.Status = models.PaymentStatusPending
	p.DueDate = now.Add(-72 * time.Hour)
	p.Contract.Offer.Campaign.Name = "Summer Run"
	p.Contract.Offer.Creator.DisplayName = "Sarah Johnson"

	var buf bytes.Buffer
	require.NoError(t, printOverdue(&buf, []models.PaymentWithDetails{p}, now))

	out := buf.String()
	assert.Contains(t, out, "PAYMENT")
	assert.Contains(t, out, "1500.50")
	assert.Contains(t, out, "2024-05-17")
	assert.Contains(t, out, "Summer Run")
	assert.Contains(t, out, "Sarah Johnson")
	assert.Contains(t, out, " 3 ")
}
