package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

// OfferRepository описывает операции с офферами.
type OfferRepository interface {
	Create(ctx context.Context, offer *models.Offer) error
	CreateBatch(ctx context.Context, offers []*models.Offer) error
	GetDetails(ctx context.Context, id uuid.UUID) (*models.OfferWithDetails, error)
	List(ctx context.Context, filter models.OfferFilter) ([]models.OfferWithDetails, error)
	Update(ctx context.Context, offer *models.Offer) error
}

// CampaignLookup загружает кампанию для проверки владельца.
type CampaignLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
}

// CreatorLookup загружает профиль автора.
type CreatorLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Creator, error)
}

// OfferService управляет офферами и переговорами по ним.
type OfferService struct {
	repo      OfferRepository
	campaigns CampaignLookup
	creators  CreatorLookup
	actors    ActorResolver
	notifier  Notifier
	cache     StatsInvalidator
}

// CreateOfferInput данные оффера. Несколько авторов дают по офферу на каждого.
type CreateOfferInput struct {
	CampaignID uuid.UUID
	CreatorIDs []uuid.UUID
	Amount     decimal.Decimal
	Message    *string
}

// UpdateOfferInput изменения оффера. Пустые поля не меняются.
type UpdateOfferInput struct {
	Status         *string
	Amount         *decimal.Decimal
	Message        *string
	CounterAmount  *decimal.Decimal
	CounterMessage *string
}

// NewOfferService создаёт сервис офферов. notifier и cache могут быть nil.
func NewOfferService(
	repo OfferRepository,
	campaigns CampaignLookup,
	creators CreatorLookup,
	actors ActorResolver,
	notifier Notifier,
	cache StatsInvalidator,
) *OfferService {
	return &OfferService{
		repo:      repo,
		campaigns: campaigns,
		creators:  creators,
		actors:    actors,
		notifier:  notifier,
		cache:     cache,
	}
}

// ListOffers возвращает офферы автора или офферы по кампаниям бренда.
func (s *OfferService) ListOffers(ctx context.Context, userID uuid.UUID, status string) ([]models.OfferWithDetails, error) {
	if status != "" && !models.IsValidOfferStatus(status) {
		return nil, apperror.Validation("недопустимый статус оффера")
	}

	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := models.OfferFilter{Status: status}
	switch {
	case actor.IsCreator():
		filter.CreatorID = &actor.Creator.ID
	case actor.IsBrand():
		filter.BrandID = &actor.Brand.ID
	default:
		return nil, apperror.ErrRoleRequired
	}

	offers, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return offers, nil
}

// CreateOffers отправляет оффер одному или нескольким авторам в статусе pending.
func (s *OfferService) CreateOffers(ctx context.Context, userID uuid.UUID, in CreateOfferInput) ([]*models.Offer, error) {
	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !actor.IsBrand() {
		return nil, apperror.ErrBrandOnly
	}

	if err := validation.ValidateAmount("сумма оффера", in.Amount); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidateMessage(in.Message); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	creatorIDs := uniqueIDs(in.CreatorIDs)
	if len(creatorIDs) == 0 {
		return nil, apperror.Validation("не указан автор")
	}

	campaign, err := s.campaigns.GetByID(ctx, in.CampaignID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrCampaignNotFound, apperror.ErrCampaignNotFound)
	}
	if !actor.OwnsBrand(campaign.BrandID) {
		return nil, apperror.ErrForbidden
	}

	creators := make([]*models.Creator, 0, len(creatorIDs))
	offers := make([]*models.Offer, 0, len(creatorIDs))
	for _, creatorID := range creatorIDs {
		creator, err := s.creators.GetByID(ctx, creatorID)
		if err != nil {
			return nil, mapRepoError(err, repository.ErrCreatorNotFound, apperror.ErrCreatorNotFound)
		}
		creators = append(creators, creator)
		offers = append(offers, &models.Offer{
			CampaignID: campaign.ID,
			CreatorID:  creator.ID,
			Amount:     in.Amount,
			Message:    in.Message,
			Status:     models.OfferStatusPending,
		})
	}

	if len(offers) == 1 {
		err = s.repo.Create(ctx, offers[0])
	} else {
		err = s.repo.CreateBatch(ctx, offers)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	for i, offer := range offers {
		notify(s.notifier, creators[i].UserID, models.EventOfferNew, offer)
		invalidateStats(s.cache, creators[i].UserID)
	}
	invalidateStats(s.cache, actor.UserID())

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"campaign_id": campaign.ID,
			"brand_id":    campaign.BrandID,
			"count":       len(offers),
		}).Info("offer service: офферы отправлены")
	}

	return offers, nil
}

// UpdateOffer меняет статус и условия оффера. Допустим любой переход между статусами,
// встречное предложение требует положительной встречной суммы.
func (s *OfferService) UpdateOffer(ctx context.Context, userID, offerID uuid.UUID, in UpdateOfferInput) (*models.OfferWithDetails, error) {
	details, err := s.repo.GetDetails(ctx, offerID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrOfferNotFound, apperror.ErrOfferNotFound)
	}

	creatorUserID := details.Creator.UserID
	brandUserID := details.Campaign.Brand.UserID
	if userID != creatorUserID && userID != brandUserID {
		return nil, apperror.ErrNotParty
	}

	offer := details.Offer
	if in.Status != nil {
		if !models.IsValidOfferStatus(*in.Status) {
			return nil, apperror.Validation("недопустимый статус оффера")
		}
		offer.Status = *in.Status
	}
	if in.Amount != nil {
		if err := validation.ValidateAmount("сумма оффера", *in.Amount); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		offer.Amount = *in.Amount
	}
	if in.Message != nil {
		if err := validation.ValidateMessage(in.Message); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		offer.Message = in.Message
	}
	if in.CounterAmount != nil {
		if err := validation.ValidateAmount("встречная сумма", *in.CounterAmount); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		offer.CounterAmount = decimal.NewNullDecimal(*in.CounterAmount)
	}
	if in.CounterMessage != nil {
		if err := validation.ValidateMessage(in.CounterMessage); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		offer.CounterMessage = in.CounterMessage
	}

	if offer.Status == models.OfferStatusCountered && (!offer.CounterAmount.Valid || !offer.CounterAmount.Decimal.IsPositive()) {
		return nil, apperror.Validation("для встречного предложения укажите counter_amount больше нуля")
	}

	if err := s.repo.Update(ctx, &offer); err != nil {
		return nil, mapRepoError(err, repository.ErrOfferNotFound, apperror.ErrOfferNotFound)
	}
	details.Offer = offer

	counterparty := brandUserID
	if userID == brandUserID {
		counterparty = creatorUserID
	}
	notify(s.notifier, counterparty, models.EventOfferUpdated, offer)
	invalidateStats(s.cache, creatorUserID, brandUserID)

	return details, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
