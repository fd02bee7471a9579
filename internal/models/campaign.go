package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign описывает рекламную кампанию бренда.
type Campaign struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	BrandID     uuid.UUID       `db:"brand_id" json:"brand_id"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description,omitempty"`
	Objective   *string         `db:"objective" json:"objective,omitempty"`
	Budget      decimal.Decimal `db:"budget" json:"budget"`
	Status      string          `db:"status" json:"status"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// CampaignWithBrand кампания вместе с брендом-владельцем.
type CampaignWithBrand struct {
	Campaign
	Brand Brand `db:"brand" json:"brand"`
}

// Offer описывает предложение бренда автору в рамках кампании.
type Offer struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	CampaignID     uuid.UUID           `db:"campaign_id" json:"campaign_id"`
	CreatorID      uuid.UUID           `db:"creator_id" json:"creator_id"`
	Amount         decimal.Decimal     `db:"amount" json:"amount"`
	Message        *string             `db:"message" json:"message,omitempty"`
	Status         string              `db:"status" json:"status"`
	CounterAmount  decimal.NullDecimal `db:"counter_amount" json:"counter_amount"`
	CounterMessage *string             `db:"counter_message" json:"counter_message,omitempty"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updated_at"`
}

// AgreedAmount возвращает сумму, на которой стороны сошлись:
// встречную сумму для countered и исходную во всех остальных случаях.
func (o *Offer) AgreedAmount() decimal.Decimal {
	if o.Status == OfferStatusCountered && o.CounterAmount.Valid {
		return o.CounterAmount.Decimal
	}
	return o.Amount
}

// OfferWithDetails оффер с автором и кампанией.
type OfferWithDetails struct {
	Offer
	Creator  Creator           `db:"creator" json:"creator"`
	Campaign CampaignWithBrand `db:"campaign" json:"campaign"`
}

// OfferFilter задаёт выборку офферов по стороне сделки.
type OfferFilter struct {
	CreatorID  *uuid.UUID
	BrandID    *uuid.UUID
	CampaignID *uuid.UUID
	Status     string
}
