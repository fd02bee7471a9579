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

// ErrOfferNotFound возвращается, когда оффер не найден.
var ErrOfferNotFound = fmt.Errorf("offer: %w", common.ErrNotFound)

const insertOfferQuery = `
	INSERT INTO offers (campaign_id, creator_id, amount, message, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at
`

// OfferRepository работает с таблицей offers.
type OfferRepository struct {
	db *sqlx.DB
}

// NewOfferRepository создаёт экземпляр репозитория.
func NewOfferRepository(db *sqlx.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

// Create сохраняет оффер.
func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	if err := r.db.QueryRowxContext(
		ctx, insertOfferQuery,
		offer.CampaignID, offer.CreatorID, offer.Amount, offer.Message, offer.Status,
	).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt); err != nil {
		return fmt.Errorf("offer repository: create %w", err)
	}

	return nil
}

// CreateBatch сохраняет несколько офферов одной транзакцией.
func (r *OfferRepository) CreateBatch(ctx context.Context, offers []*models.Offer) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, offer := range offers {
			if err := tx.QueryRowxContext(
				ctx, insertOfferQuery,
				offer.CampaignID, offer.CreatorID, offer.Amount, offer.Message, offer.Status,
			).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt); err != nil {
				return fmt.Errorf("offer repository: create batch %w", err)
			}
		}
		return nil
	})
}

// GetByID возвращает оффер по идентификатору.
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	return common.GetByID[models.Offer](ctx, r.db, "offers", id, ErrOfferNotFound)
}

// GetDetails возвращает оффер вместе с автором, кампанией и брендом.
func (r *OfferRepository) GetDetails(ctx context.Context, id uuid.UUID) (*models.OfferWithDetails, error) {
	query := `SELECT ` + offerDetailsColumns("") + ` FROM offers o ` + offerDetailsJoins + ` WHERE o.id = $1`

	var offer models.OfferWithDetails
	if err := r.db.GetContext(ctx, &offer, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfferNotFound
		}
		return nil, fmt.Errorf("offer repository: get details %w", err)
	}

	return &offer, nil
}

// List возвращает офферы стороны сделки с фильтром по статусу.
func (r *OfferRepository) List(ctx context.Context, filter models.OfferFilter) ([]models.OfferWithDetails, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.CreatorID != nil {
		conditions = append(conditions, fmt.Sprintf("o.creator_id = $%d", argIndex))
		args = append(args, *filter.CreatorID)
		argIndex++
	}
	if filter.BrandID != nil {
		conditions = append(conditions, fmt.Sprintf("cp.brand_id = $%d", argIndex))
		args = append(args, *filter.BrandID)
		argIndex++
	}
	if filter.CampaignID != nil {
		conditions = append(conditions, fmt.Sprintf("o.campaign_id = $%d", argIndex))
		args = append(args, *filter.CampaignID)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argIndex))
		args = append(args, filter.Status)
	}

	query := `SELECT ` + offerDetailsColumns("") + ` FROM offers o ` + offerDetailsJoins
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY o.created_at DESC`

	offers := []models.OfferWithDetails{}
	if err := r.db.SelectContext(ctx, &offers, query, args...); err != nil {
		return nil, fmt.Errorf("offer repository: list %w", err)
	}

	return offers, nil
}

// Update сохраняет изменяемые поля оффера. Последняя запись выигрывает.
func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	query := `
		UPDATE offers
		SET amount = $2, message = $3, status = $4, counter_amount = $5, counter_message = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + strings.Join(offerColumnList, ", ")

	if err := r.db.GetContext(
		ctx, offer, query,
		offer.ID,
		offer.Amount,
		offer.Message,
		offer.Status,
		offer.CounterAmount,
		offer.CounterMessage,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOfferNotFound
		}
		return fmt.Errorf("offer repository: update %w", err)
	}

	return nil
}
