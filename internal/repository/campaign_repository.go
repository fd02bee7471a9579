package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/repository/common"
)

// ErrCampaignNotFound возвращается, когда кампания не найдена.
var ErrCampaignNotFound = fmt.Errorf("campaign: %w", common.ErrNotFound)

// CampaignRepository работает с таблицей campaigns.
type CampaignRepository struct {
	db *sqlx.DB
}

// NewCampaignRepository создаёт экземпляр репозитория.
func NewCampaignRepository(db *sqlx.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create сохраняет кампанию.
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (brand_id, name, description, objective, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		campaign.BrandID,
		campaign.Name,
		campaign.Description,
		campaign.Objective,
		campaign.Budget,
		campaign.Status,
	).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt); err != nil {
		return fmt.Errorf("campaign repository: create %w", err)
	}

	return nil
}

// GetByID возвращает кампанию по идентификатору.
func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return common.GetByID[models.Campaign](ctx, r.db, "campaigns", id, ErrCampaignNotFound)
}

// ListByBrand возвращает кампании бренда, новые первыми.
func (r *CampaignRepository) ListByBrand(ctx context.Context, brandID uuid.UUID) ([]models.Campaign, error) {
	query := `SELECT ` + strings.Join(campaignColumnList, ", ") + ` FROM campaigns WHERE brand_id = $1 ORDER BY created_at DESC`

	campaigns := []models.Campaign{}
	if err := r.db.SelectContext(ctx, &campaigns, query, brandID); err != nil {
		return nil, fmt.Errorf("campaign repository: list by brand %w", err)
	}

	return campaigns, nil
}

// Update сохраняет изменяемые поля кампании.
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $2, description = $3, objective = $4, budget = $5, status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + strings.Join(campaignColumnList, ", ")

	if err := r.db.GetContext(
		ctx, campaign, query,
		campaign.ID,
		campaign.Name,
		campaign.Description,
		campaign.Objective,
		campaign.Budget,
		campaign.Status,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCampaignNotFound
		}
		return fmt.Errorf("campaign repository: update %w", err)
	}

	return nil
}
