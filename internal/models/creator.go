package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Creator описывает профиль автора контента.
type Creator struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          uuid.UUID       `db:"user_id" json:"user_id"`
	Username        string          `db:"username" json:"username"`
	DisplayName     string          `db:"display_name" json:"display_name"`
	Bio             *string         `db:"bio" json:"bio,omitempty"`
	Niche           string          `db:"niche" json:"niche"`
	FollowersCount  int             `db:"followers_count" json:"followers_count"`
	EngagementRate  decimal.Decimal `db:"engagement_rate" json:"engagement_rate"`
	AverageRate     decimal.Decimal `db:"average_rate" json:"average_rate"`
	Location        *string         `db:"location" json:"location,omitempty"`
	ProfileImageURL *string         `db:"profile_image_url" json:"profile_image_url,omitempty"`
	Tags            pq.StringArray  `db:"tags" json:"tags"`
	IsActive        bool            `db:"is_active" json:"is_active"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// CreatorFilter задаёт параметры поиска авторов.
type CreatorFilter struct {
	Niche        string
	MinFollowers *int
	MaxFollowers *int
	Location     string
	Limit        int
	Offset       int
}

// Brand описывает профиль рекламодателя.
type Brand struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	CompanyName string    `db:"company_name" json:"company_name"`
	Industry    *string   `db:"industry" json:"industry,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	Website     *string   `db:"website" json:"website,omitempty"`
	LogoURL     *string   `db:"logo_url" json:"logo_url,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
