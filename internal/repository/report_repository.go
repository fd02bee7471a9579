package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/collabhub-backend/internal/models"
)

// ReportRepository работает с таблицей performance_reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository создаёт экземпляр репозитория.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// ListByContract возвращает отчёты по договору, новые первыми.
func (r *ReportRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.PerformanceReport, error) {
	query := `SELECT ` + strings.Join(reportColumnList, ", ") + ` FROM performance_reports WHERE contract_id = $1 ORDER BY generated_at DESC`

	reports := []models.PerformanceReport{}
	if err := r.db.SelectContext(ctx, &reports, query, contractID); err != nil {
		return nil, fmt.Errorf("report repository: list by contract %w", err)
	}

	return reports, nil
}

// insertReport сохраняет отчёт внутри переданной транзакции.
func insertReport(ctx context.Context, tx *sqlx.Tx, report *models.PerformanceReport) error {
	query := `
		INSERT INTO performance_reports (contract_id, reach, impressions, engagement, clicks, engagement_rate, roi, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	if err := tx.QueryRowxContext(
		ctx, query,
		report.ContractID,
		report.Reach,
		report.Impressions,
		report.Engagement,
		report.Clicks,
		report.EngagementRate,
		report.ROI,
		report.GeneratedAt,
	).Scan(&report.ID); err != nil {
		return fmt.Errorf("report repository: create %w", err)
	}

	return nil
}
