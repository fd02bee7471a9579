package service

import (
	"context"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

// ReportRepository описывает чтение отчётов по договору.
type ReportRepository interface {
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]models.PerformanceReport, error)
}

// PartiesLookup загружает стороны договора.
type PartiesLookup interface {
	GetParties(ctx context.Context, contractID uuid.UUID) (*models.ContractParties, error)
}

// MetricsGenerator формирует метрики отчёта по оплаченному договору.
type MetricsGenerator interface {
	Generate(contractID uuid.UUID) *models.PerformanceReport
}

// RandomMetrics синтезирует правдоподобные метрики кампании.
// Реальная аналитика соцсетей не подключена.
type RandomMetrics struct{}

// Generate возвращает отчёт со случайными значениями в фиксированных диапазонах.
func (RandomMetrics) Generate(contractID uuid.UUID) *models.PerformanceReport {
	return &models.PerformanceReport{
		ContractID:     contractID,
		Reach:          100000 + rand.IntN(50000),
		Impressions:    150000 + rand.IntN(75000),
		Engagement:     5000 + rand.IntN(5000),
		Clicks:         500 + rand.IntN(1000),
		EngagementRate: decimal.New(int64(300+rand.IntN(300)), -2),
		ROI:            decimal.New(int64(200+rand.IntN(300)), -2),
	}
}

// ReportService отдаёт отчёты об эффективности сторонам договора.
type ReportService struct {
	repo    ReportRepository
	parties PartiesLookup
}

// NewReportService создаёт сервис отчётов.
func NewReportService(repo ReportRepository, parties PartiesLookup) *ReportService {
	return &ReportService{repo: repo, parties: parties}
}

// ListReports возвращает отчёты договора, если пользователь его сторона.
func (s *ReportService) ListReports(ctx context.Context, userID, contractID uuid.UUID) ([]models.PerformanceReport, error) {
	parties, err := s.parties.GetParties(ctx, contractID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrContractNotFound, apperror.ErrContractNotFound)
	}
	if !parties.Involves(userID) {
		return nil, apperror.ErrNotParty
	}

	reports, err := s.repo.ListByContract(ctx, contractID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return reports, nil
}
