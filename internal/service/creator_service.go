package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

const (
	defaultCreatorsLimit = 50
	maxCreatorsLimit     = 100
)

// CreatorRepository описывает поиск авторов.
type CreatorRepository interface {
	List(ctx context.Context, filter models.CreatorFilter) ([]models.Creator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Creator, error)
}

// CreatorService отвечает за каталог авторов.
type CreatorService struct {
	repo CreatorRepository
}

// NewCreatorService создаёт сервис каталога авторов.
func NewCreatorService(repo CreatorRepository) *CreatorService {
	return &CreatorService{repo: repo}
}

// ListCreators возвращает активных авторов по фильтрам.
func (s *CreatorService) ListCreators(ctx context.Context, filter models.CreatorFilter) ([]models.Creator, error) {
	if err := validation.ValidateFollowersRange(filter.MinFollowers, filter.MaxFollowers); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	filter.Niche = strings.TrimSpace(filter.Niche)
	filter.Location = strings.TrimSpace(filter.Location)
	if filter.Limit <= 0 {
		filter.Limit = defaultCreatorsLimit
	}
	if filter.Limit > maxCreatorsLimit {
		filter.Limit = maxCreatorsLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	creators, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return creators, nil
}

// GetCreator возвращает автора по идентификатору.
func (s *CreatorService) GetCreator(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	creator, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrCreatorNotFound, apperror.ErrCreatorNotFound)
	}
	return creator, nil
}
