package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

const (
	// DefaultPaymentDueDays срок оплаты договора по умолчанию.
	DefaultPaymentDueDays = 7
	defaultContractTerms  = "Standard influencer partnership terms and conditions apply."
)

// ContractRepository описывает операции с договорами.
type ContractRepository interface {
	CreateWithPayment(ctx context.Context, contract *models.Contract, payment *models.Payment) error
	GetDetails(ctx context.Context, id uuid.UUID) (*models.ContractWithDetails, error)
	List(ctx context.Context, filter models.ContractFilter) ([]models.ContractWithDetails, error)
	Sign(ctx context.Context, id uuid.UUID, role string, at time.Time) (*models.Contract, error)
	GetParties(ctx context.Context, contractID uuid.UUID) (*models.ContractParties, error)
}

// OfferDetailsLookup загружает оффер со сторонами сделки.
type OfferDetailsLookup interface {
	GetDetails(ctx context.Context, id uuid.UUID) (*models.OfferWithDetails, error)
}

// ContractService управляет договорами и их подписанием.
type ContractService struct {
	repo     ContractRepository
	offers   OfferDetailsLookup
	actors   ActorResolver
	notifier Notifier
	cache    StatsInvalidator
	dueDays  int
	now      func() time.Time
}

// CreateContractInput данные нового договора.
type CreateContractInput struct {
	OfferID     uuid.UUID
	FinalAmount *decimal.Decimal
	Terms       *string
}

// ContractCreated договор вместе с созданным по нему платежом.
type ContractCreated struct {
	Contract *models.ContractWithDetails
	Payment  *models.Payment
}

// NewContractService создаёт сервис договоров. dueDays задаёт срок оплаты в днях.
func NewContractService(
	repo ContractRepository,
	offers OfferDetailsLookup,
	actors ActorResolver,
	notifier Notifier,
	cache StatsInvalidator,
	dueDays int,
) *ContractService {
	if dueDays <= 0 {
		dueDays = DefaultPaymentDueDays
	}
	return &ContractService{
		repo:     repo,
		offers:   offers,
		actors:   actors,
		notifier: notifier,
		cache:    cache,
		dueDays:  dueDays,
		now:      time.Now,
	}
}

// ListContracts возвращает договоры, в которых участвует пользователь.
func (s *ContractService) ListContracts(ctx context.Context, userID uuid.UUID) ([]models.ContractWithDetails, error) {
	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	var filter models.ContractFilter
	switch {
	case actor.IsCreator():
		filter.CreatorID = &actor.Creator.ID
	case actor.IsBrand():
		filter.BrandID = &actor.Brand.ID
	default:
		return nil, apperror.ErrRoleRequired
	}

	contracts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range contracts {
		contracts[i].Decorate()
	}
	return contracts, nil
}

// CreateContract оформляет договор по офферу и ставит платёж со сроком оплаты.
// Сумма по умолчанию берётся из встречного предложения, если оффер в статусе countered.
func (s *ContractService) CreateContract(ctx context.Context, userID uuid.UUID, in CreateContractInput) (*ContractCreated, error) {
	offer, err := s.offers.GetDetails(ctx, in.OfferID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrOfferNotFound, apperror.ErrOfferNotFound)
	}

	creatorUserID := offer.Creator.UserID
	brandUserID := offer.Campaign.Brand.UserID
	if userID != creatorUserID && userID != brandUserID {
		return nil, apperror.ErrNotParty
	}

	finalAmount := offer.AgreedAmount()
	if in.FinalAmount != nil {
		finalAmount = *in.FinalAmount
	}
	if err := validation.ValidateAmount("итоговая сумма", finalAmount); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	terms := defaultContractTerms
	if in.Terms != nil && strings.TrimSpace(*in.Terms) != "" {
		if err := validation.ValidateDescription("условия договора", in.Terms); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		terms = strings.TrimSpace(*in.Terms)
	}

	now := s.now()
	contract := &models.Contract{
		OfferID:     offer.ID,
		FinalAmount: finalAmount,
		Terms:       terms,
	}
	payment := &models.Payment{
		Amount:  finalAmount,
		Status:  models.PaymentStatusPending,
		DueDate: now.AddDate(0, 0, s.dueDays),
	}

	if err := s.repo.CreateWithPayment(ctx, contract, payment); err != nil {
		return nil, apperror.Internal(err)
	}

	details := &models.ContractWithDetails{Contract: *contract, Offer: *offer}
	details.Decorate()

	counterparty := brandUserID
	if userID == brandUserID {
		counterparty = creatorUserID
	}
	notify(s.notifier, counterparty, models.EventContractCreated, details)
	invalidateStats(s.cache, creatorUserID, brandUserID)

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"contract_id": contract.ID,
			"offer_id":    offer.ID,
			"payment_id":  payment.ID,
		}).Info("contract service: договор создан")
	}

	return &ContractCreated{Contract: details, Payment: payment}, nil
}

// SignContract ставит подпись стороны пользователя. Роль подписанта определяется
// по участию в договоре; повторная подпись возвращает договор без изменений.
func (s *ContractService) SignContract(ctx context.Context, userID, contractID uuid.UUID) (*models.ContractWithDetails, error) {
	parties, err := s.repo.GetParties(ctx, contractID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrContractNotFound, apperror.ErrContractNotFound)
	}
	if !parties.Involves(userID) {
		return nil, apperror.ErrNotParty
	}

	role := models.RoleBrand
	counterparty := parties.CreatorUserID
	if userID == parties.CreatorUserID {
		role = models.RoleCreator
		counterparty = parties.BrandUserID
	}

	details, err := s.repo.GetDetails(ctx, contractID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrContractNotFound, apperror.ErrContractNotFound)
	}
	if details.SignedBy(role) {
		details.Decorate()
		return details, nil
	}

	signed, err := s.repo.Sign(ctx, contractID, role, s.now())
	if err != nil {
		return nil, mapRepoError(err, repository.ErrContractNotFound, apperror.ErrContractNotFound)
	}
	details.Contract = *signed
	details.Decorate()

	notify(s.notifier, counterparty, models.EventContractSigned, details)
	invalidateStats(s.cache, parties.CreatorUserID, parties.BrandUserID)

	return details, nil
}
