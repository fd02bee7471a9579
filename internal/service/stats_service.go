package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
)

// DefaultStatsTTL время жизни закэшированной статистики.
const DefaultStatsTTL = time.Minute

// StatsRepository описывает агрегаты для дашбордов.
type StatsRepository interface {
	CreatorStats(ctx context.Context, creatorID uuid.UUID, monthStart time.Time) (*models.CreatorStats, error)
	BrandStats(ctx context.Context, brandID uuid.UUID) (*models.BrandStats, error)
}

// StatsService считает статистику дашборда по роли пользователя.
type StatsService struct {
	repo   StatsRepository
	actors ActorResolver
	cache  *CacheService
	ttl    time.Duration
	now    func() time.Time
}

// NewStatsService создаёт сервис статистики. cache может быть nil.
func NewStatsService(repo StatsRepository, actors ActorResolver, cache *CacheService, ttl time.Duration) *StatsService {
	if ttl <= 0 {
		ttl = DefaultStatsTTL
	}
	return &StatsService{
		repo:   repo,
		actors: actors,
		cache:  cache,
		ttl:    ttl,
		now:    time.Now,
	}
}

// GetStats возвращает *models.CreatorStats для автора и *models.BrandStats для бренда.
func (s *StatsService) GetStats(ctx context.Context, userID uuid.UUID) (interface{}, error) {
	if s.cache == nil {
		return s.compute(ctx, userID)
	}
	return s.cache.GetOrSet(ctx, StatsCacheKey(userID), s.ttl, func() (interface{}, error) {
		return s.compute(ctx, userID)
	})
}

func (s *StatsService) compute(ctx context.Context, userID uuid.UUID) (interface{}, error) {
	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsCreator():
		stats, err := s.repo.CreatorStats(ctx, actor.Creator.ID, monthStart(s.now()))
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return stats, nil
	case actor.IsBrand():
		stats, err := s.repo.BrandStats(ctx, actor.Brand.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return stats, nil
	default:
		return nil, apperror.ErrRoleRequired
	}
}

func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
