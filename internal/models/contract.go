package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract фиксирует договорённость по офферу и подписи сторон.
type Contract struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	OfferID         uuid.UUID       `db:"offer_id" json:"offer_id"`
	FinalAmount     decimal.Decimal `db:"final_amount" json:"final_amount"`
	Terms           string          `db:"terms" json:"terms"`
	CreatorSigned   bool            `db:"creator_signed" json:"creator_signed"`
	BrandSigned     bool            `db:"brand_signed" json:"brand_signed"`
	CreatorSignedAt *time.Time      `db:"creator_signed_at" json:"creator_signed_at,omitempty"`
	BrandSignedAt   *time.Time      `db:"brand_signed_at" json:"brand_signed_at,omitempty"`
	PDFURL          *string         `db:"pdf_url" json:"pdf_url,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// FullyExecuted истинно, когда договор подписали обе стороны.
func (c *Contract) FullyExecuted() bool {
	return c.CreatorSigned && c.BrandSigned
}

// SignatureStatus возвращает подпись состояния подписей для интерфейса.
func (c *Contract) SignatureStatus() string {
	switch {
	case c.CreatorSigned && c.BrandSigned:
		return ContractLabelFullyExecuted
	case c.CreatorSigned:
		return ContractLabelPendingBrand
	case c.BrandSigned:
		return ContractLabelPendingCreator
	default:
		return ContractLabelPendingSignatures
	}
}

// SignedBy проверяет, подписал ли договор участник с указанной ролью.
func (c *Contract) SignedBy(role string) bool {
	switch role {
	case RoleCreator:
		return c.CreatorSigned
	case RoleBrand:
		return c.BrandSigned
	}
	return false
}

// ContractWithDetails договор вместе с оффером, автором и кампанией.
type ContractWithDetails struct {
	Contract
	Offer           OfferWithDetails `db:"offer" json:"offer"`
	IsFullyExecuted bool             `db:"-" json:"fully_executed"`
	SignatureLabel  string           `db:"-" json:"signature_status"`
}

// Decorate заполняет вычисляемые поля ответа.
func (c *ContractWithDetails) Decorate() {
	c.IsFullyExecuted = c.FullyExecuted()
	c.SignatureLabel = c.SignatureStatus()
}

// ContractFilter задаёт выборку договоров по стороне сделки.
type ContractFilter struct {
	CreatorID *uuid.UUID
	BrandID   *uuid.UUID
}

// ContractParties содержит пользователей обеих сторон договора.
type ContractParties struct {
	ContractID    uuid.UUID `db:"contract_id"`
	CreatorID     uuid.UUID `db:"creator_id"`
	CreatorUserID uuid.UUID `db:"creator_user_id"`
	BrandID       uuid.UUID `db:"brand_id"`
	BrandUserID   uuid.UUID `db:"brand_user_id"`
}

// Involves проверяет, является ли пользователь стороной договора.
func (p *ContractParties) Involves(userID uuid.UUID) bool {
	return p.CreatorUserID == userID || p.BrandUserID == userID
}
