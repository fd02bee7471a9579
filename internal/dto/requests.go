package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RegisterRequest тело POST /auth/register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// LoginRequest тело POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest тело POST /auth/refresh и /auth/logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AssignRoleRequest тело POST /user/role.
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateCreatorRequest тело PUT /creators/me.
type UpdateCreatorRequest struct {
	DisplayName     *string          `json:"display_name"`
	Bio             *string          `json:"bio"`
	Niche           *string          `json:"niche"`
	FollowersCount  *int             `json:"followers_count"`
	EngagementRate  *decimal.Decimal `json:"engagement_rate"`
	AverageRate     *decimal.Decimal `json:"average_rate"`
	Location        *string          `json:"location"`
	ProfileImageURL *string          `json:"profile_image_url"`
	Tags            []string         `json:"tags"`
}

// UpdateBrandRequest тело PUT /brands/me.
type UpdateBrandRequest struct {
	CompanyName *string `json:"company_name"`
	Industry    *string `json:"industry"`
	Description *string `json:"description"`
	Website     *string `json:"website"`
	LogoURL     *string `json:"logo_url"`
}

// CreateCampaignRequest тело POST /campaigns.
type CreateCampaignRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description *string         `json:"description"`
	Objective   *string         `json:"objective"`
	Budget      decimal.Decimal `json:"budget"`
	Status      string          `json:"status"`
}

// UpdateCampaignRequest тело PATCH /campaigns/:id.
type UpdateCampaignRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Objective   *string          `json:"objective"`
	Budget      *decimal.Decimal `json:"budget"`
	Status      *string          `json:"status"`
}

// CreateOfferRequest тело POST /offers. creator_ids создаёт оффер каждому автору.
type CreateOfferRequest struct {
	CampaignID uuid.UUID       `json:"campaign_id" binding:"required"`
	CreatorID  *uuid.UUID      `json:"creator_id"`
	CreatorIDs []uuid.UUID     `json:"creator_ids"`
	Amount     decimal.Decimal `json:"amount"`
	Message    *string         `json:"message"`
}

// Creators собирает авторов из одиночного и пакетного полей.
func (r CreateOfferRequest) Creators() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.CreatorIDs)+1)
	if r.CreatorID != nil {
		ids = append(ids, *r.CreatorID)
	}
	return append(ids, r.CreatorIDs...)
}

// UpdateOfferRequest тело PATCH /offers/:id.
type UpdateOfferRequest struct {
	Status         *string          `json:"status"`
	Amount         *decimal.Decimal `json:"amount"`
	Message        *string          `json:"message"`
	CounterAmount  *decimal.Decimal `json:"counter_amount"`
	CounterMessage *string          `json:"counter_message"`
}

// CreateContractRequest тело POST /contracts.
type CreateContractRequest struct {
	OfferID     uuid.UUID        `json:"offer_id" binding:"required"`
	FinalAmount *decimal.Decimal `json:"final_amount"`
	Terms       *string          `json:"terms"`
}

// CreatePaymentIntentRequest тело POST /create-payment-intent.
type CreatePaymentIntentRequest struct {
	PaymentID uuid.UUID        `json:"payment_id" binding:"required"`
	Amount    *decimal.Decimal `json:"amount"`
}
