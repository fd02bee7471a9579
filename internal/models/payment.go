package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultDueSoonWindow окно, в котором неоплаченный платёж считается срочным.
const DefaultDueSoonWindow = 72 * time.Hour

// Payment описывает платёж по договору.
type Payment struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	ContractID uuid.UUID       `db:"contract_id" json:"contract_id"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	Status     string          `db:"status" json:"status"`
	DueDate    time.Time       `db:"due_date" json:"due_date"`
	PaidAt     *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// StatusLabel вычисляет подпись платежа относительно момента now.
func (p *Payment) StatusLabel(now time.Time, dueSoon time.Duration) string {
	switch p.Status {
	case PaymentStatusPaid:
		return PaymentLabelPaid
	case PaymentStatusPending:
		if p.DueDate.Before(now) {
			return PaymentLabelOverdue
		}
		if p.DueDate.Sub(now) < dueSoon {
			return PaymentLabelDueSoon
		}
		return PaymentLabelPending
	default:
		return p.Status
	}
}

// ContractWithOffer договор с оффером для вложения в платёж.
type ContractWithOffer struct {
	Contract
	Offer OfferWithDetails `db:"offer" json:"offer"`
}

// PaymentWithDetails платёж вместе с договором и сторонами сделки.
type PaymentWithDetails struct {
	Payment
	Contract ContractWithOffer `db:"contract" json:"contract"`
	Label    string            `db:"-" json:"status_label"`
}

// PaymentFilter задаёт выборку платежей.
type PaymentFilter struct {
	CreatorID *uuid.UUID
	BrandID   *uuid.UUID
	Status    string
}

// PerformanceReport содержит метрики кампании по договору.
type PerformanceReport struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	ContractID     uuid.UUID       `db:"contract_id" json:"contract_id"`
	Reach          int             `db:"reach" json:"reach"`
	Impressions    int             `db:"impressions" json:"impressions"`
	Engagement     int             `db:"engagement" json:"engagement"`
	Clicks         int             `db:"clicks" json:"clicks"`
	EngagementRate decimal.Decimal `db:"engagement_rate" json:"engagement_rate"`
	ROI            decimal.Decimal `db:"roi" json:"roi"`
	GeneratedAt    time.Time       `db:"generated_at" json:"generated_at"`
}
