package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

// CampaignRepository описывает операции с кампаниями.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	ListByBrand(ctx context.Context, brandID uuid.UUID) ([]models.Campaign, error)
	Update(ctx context.Context, campaign *models.Campaign) error
}

// CampaignService управляет кампаниями бренда.
type CampaignService struct {
	repo   CampaignRepository
	actors ActorResolver
}

// CreateCampaignInput данные новой кампании.
type CreateCampaignInput struct {
	Name        string
	Description *string
	Objective   *string
	Budget      decimal.Decimal
	Status      string
}

// UpdateCampaignInput частичное обновление кампании.
type UpdateCampaignInput struct {
	Name        *string
	Description *string
	Objective   *string
	Budget      *decimal.Decimal
	Status      *string
}

// NewCampaignService создаёт сервис кампаний.
func NewCampaignService(repo CampaignRepository, actors ActorResolver) *CampaignService {
	return &CampaignService{repo: repo, actors: actors}
}

// ListCampaigns возвращает кампании бренда текущего пользователя.
func (s *CampaignService) ListCampaigns(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return nil, err
	}

	campaigns, err := s.repo.ListByBrand(ctx, brand.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return campaigns, nil
}

// CreateCampaign создаёт кампанию от имени бренда текущего пользователя.
func (s *CampaignService) CreateCampaign(ctx context.Context, userID uuid.UUID, in CreateCampaignInput) (*models.Campaign, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateCampaignName(in.Name); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateDescription("описание кампании", in.Description); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateBudget(in.Budget); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	status := in.Status
	if status == "" {
		status = models.CampaignStatusDraft
	}
	if !models.IsValidCampaignStatus(status) {
		return nil, apperror.Validation("недопустимый статус кампании")
	}

	campaign := &models.Campaign{
		BrandID:     brand.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Objective:   in.Objective,
		Budget:      in.Budget,
		Status:      status,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, apperror.Internal(err)
	}

	return campaign, nil
}

// GetCampaign возвращает кампанию, если она принадлежит бренду пользователя.
func (s *CampaignService) GetCampaign(ctx context.Context, userID, campaignID uuid.UUID) (*models.Campaign, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ownedCampaign(ctx, brand, campaignID)
}

// UpdateCampaign частично обновляет кампанию бренда.
func (s *CampaignService) UpdateCampaign(ctx context.Context, userID, campaignID uuid.UUID, in UpdateCampaignInput) (*models.Campaign, error) {
	brand, err := s.requireBrand(ctx, userID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.ownedCampaign(ctx, brand, campaignID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateCampaignName(*in.Name); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		campaign.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		if err := validation.ValidateDescription("описание кампании", in.Description); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		campaign.Description = in.Description
	}
	if in.Objective != nil {
		campaign.Objective = in.Objective
	}
	if in.Budget != nil {
		if err := validation.ValidateBudget(*in.Budget); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		campaign.Budget = *in.Budget
	}
	if in.Status != nil {
		if !models.IsValidCampaignStatus(*in.Status) {
			return nil, apperror.Validation("недопустимый статус кампании")
		}
		campaign.Status = *in.Status
	}

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, mapRepoError(err, repository.ErrCampaignNotFound, apperror.ErrCampaignNotFound)
	}

	return campaign, nil
}

func (s *CampaignService) requireBrand(ctx context.Context, userID uuid.UUID) (*models.Brand, error) {
	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsBrand() {
		return nil, apperror.ErrBrandOnly
	}
	return actor.Brand, nil
}

func (s *CampaignService) ownedCampaign(ctx context.Context, brand *models.Brand, campaignID uuid.UUID) (*models.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrCampaignNotFound, apperror.ErrCampaignNotFound)
	}
	if campaign.BrandID != brand.ID {
		return nil, apperror.ErrForbidden
	}
	return campaign, nil
}
