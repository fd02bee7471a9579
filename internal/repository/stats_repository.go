package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/collabhub-backend/internal/models"
)

// StatsRepository считает агрегаты для дашбордов автора и бренда.
type StatsRepository struct {
	db *sqlx.DB
}

// NewStatsRepository создаёт экземпляр репозитория.
func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// CreatorStats считает заработок автора. monthStart задаёт начало текущего месяца.
// Активные сделки это принятые офферы.
func (r *StatsRepository) CreatorStats(ctx context.Context, creatorID uuid.UUID, monthStart time.Time) (*models.CreatorStats, error) {
	query := `
		SELECT
			COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'paid'), 0) AS total_earned,
			COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'paid' AND p.paid_at >= $2), 0) AS this_month_earnings,
			COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'pending'), 0) AS pending_amount,
			(SELECT COUNT(*) FROM offers WHERE creator_id = $1 AND status = 'pending') AS pending_offers,
			(SELECT COUNT(*) FROM offers WHERE creator_id = $1 AND status = 'accepted') AS active_deals
		FROM payments p
		JOIN contracts k ON k.id = p.contract_id
		JOIN offers o ON o.id = k.offer_id
		WHERE o.creator_id = $1
	`

	var stats models.CreatorStats
	if err := r.db.GetContext(ctx, &stats, query, creatorID, monthStart); err != nil {
		return nil, fmt.Errorf("stats repository: creator stats %w", err)
	}

	return &stats, nil
}

// BrandStats считает расходы и результаты бренда. Расходы включают все платежи
// по договорам бренда, в том числе ещё не оплаченные.
func (r *StatsRepository) BrandStats(ctx context.Context, brandID uuid.UUID) (*models.BrandStats, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(p.amount), 0)
				FROM payments p
				JOIN contracts k ON k.id = p.contract_id
				JOIN offers o ON o.id = k.offer_id
				JOIN campaigns cp ON cp.id = o.campaign_id
				WHERE cp.brand_id = $1) AS total_spend,
			COALESCE(SUM(pr.reach), 0) AS total_reach,
			COALESCE(SUM(pr.engagement), 0) AS total_engagement,
			COALESCE(ROUND(AVG(pr.roi), 2), 0) AS average_roi,
			(SELECT COUNT(*) FROM campaigns WHERE brand_id = $1 AND status = 'active') AS active_campaigns
		FROM performance_reports pr
		JOIN contracts k ON k.id = pr.contract_id
		JOIN offers o ON o.id = k.offer_id
		JOIN campaigns cp ON cp.id = o.campaign_id
		WHERE cp.brand_id = $1
	`

	var stats models.BrandStats
	if err := r.db.GetContext(ctx, &stats, query, brandID); err != nil {
		return nil, fmt.Errorf("stats repository: brand stats %w", err)
	}

	return &stats, nil
}
