package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

// PaymentRepository описывает операции с платежами.
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentWithDetails, error)
	ListOverdue(ctx context.Context, now time.Time) ([]models.PaymentWithDetails, error)
	MarkPaidWithReport(ctx context.Context, paymentID uuid.UUID, paidAt time.Time, report *models.PerformanceReport) (*models.Payment, error)
}

// PaymentIntentRequest параметры намерения оплаты у платёжного провайдера.
type PaymentIntentRequest struct {
	AmountCents int64
	Metadata    map[string]string
}

// PaymentIntent результат создания намерения оплаты.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

// PaymentGateway создаёт намерения оплаты у внешнего провайдера.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
}

// PaymentService управляет платежами по договорам.
type PaymentService struct {
	repo     PaymentRepository
	parties  PartiesLookup
	actors   ActorResolver
	metrics  MetricsGenerator
	gateway  PaymentGateway
	notifier Notifier
	cache    StatsInvalidator
	dueSoon  time.Duration
	now      func() time.Time
}

// PaymentServiceOptions необязательные зависимости PaymentService.
type PaymentServiceOptions struct {
	Metrics  MetricsGenerator
	Gateway  PaymentGateway
	Notifier Notifier
	Cache    StatsInvalidator
	DueSoon  time.Duration
}

// CreateIntentInput данные для оплаты платежа картой.
type CreateIntentInput struct {
	PaymentID uuid.UUID
	Amount    *decimal.Decimal
}

// MarkPaidResult оплаченный платёж и сформированный отчёт.
type MarkPaidResult struct {
	Payment *models.Payment           `json:"payment"`
	Report  *models.PerformanceReport `json:"report"`
}

// NewPaymentService создаёт сервис платежей. Без Gateway оплата картой недоступна.
func NewPaymentService(repo PaymentRepository, parties PartiesLookup, actors ActorResolver, opts PaymentServiceOptions) *PaymentService {
	if opts.Metrics == nil {
		opts.Metrics = RandomMetrics{}
	}
	if opts.DueSoon <= 0 {
		opts.DueSoon = models.DefaultDueSoonWindow
	}
	return &PaymentService{
		repo:     repo,
		parties:  parties,
		actors:   actors,
		metrics:  opts.Metrics,
		gateway:  opts.Gateway,
		notifier: opts.Notifier,
		cache:    opts.Cache,
		dueSoon:  opts.DueSoon,
		now:      time.Now,
	}
}

// ListPayments возвращает платежи пользователя с вычисленной подписью статуса.
func (s *PaymentService) ListPayments(ctx context.Context, userID uuid.UUID, status string) ([]models.PaymentWithDetails, error) {
	if status != "" && !models.IsValidPaymentStatus(status) {
		return nil, apperror.Validation("недопустимый статус платежа")
	}

	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := models.PaymentFilter{Status: status}
	switch {
	case actor.IsCreator():
		filter.CreatorID = &actor.Creator.ID
	case actor.IsBrand():
		filter.BrandID = &actor.Brand.ID
	default:
		return nil, apperror.ErrRoleRequired
	}

	payments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.label(payments)
	return payments, nil
}

// ListOverdue возвращает неоплаченные платежи с истёкшим сроком.
func (s *PaymentService) ListOverdue(ctx context.Context) ([]models.PaymentWithDetails, error) {
	payments, err := s.repo.ListOverdue(ctx, s.now())
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.label(payments)
	return payments, nil
}

// MarkPaid отмечает платёж оплаченным и формирует отчёт об эффективности.
// Отметить оплату может только бренд, которому принадлежит договор.
func (s *PaymentService) MarkPaid(ctx context.Context, userID, paymentID uuid.UUID) (*MarkPaidResult, error) {
	parties, payment, err := s.ownedPayment(ctx, userID, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentStatusPaid {
		return nil, apperror.ErrPaymentAlreadyPaid
	}

	report := s.metrics.Generate(payment.ContractID)
	paid, err := s.repo.MarkPaidWithReport(ctx, paymentID, s.now(), report)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPaymentAlreadyPaid):
			return nil, apperror.ErrPaymentAlreadyPaid
		case errors.Is(err, repository.ErrPaymentNotFound):
			return nil, apperror.ErrPaymentNotFound
		}
		return nil, apperror.Internal(err)
	}

	notify(s.notifier, parties.CreatorUserID, models.EventPaymentPaid, paid)
	invalidateStats(s.cache, parties.CreatorUserID, parties.BrandUserID)

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"payment_id":  paid.ID,
			"contract_id": paid.ContractID,
			"report_id":   report.ID,
		}).Info("payment service: платёж оплачен, отчёт сформирован")
	}

	return &MarkPaidResult{Payment: paid, Report: report}, nil
}

// CreatePaymentIntent создаёт намерение оплаты платежа у провайдера.
// Сумма в запросе переопределяет сумму платежа.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, userID uuid.UUID, in CreateIntentInput) (*PaymentIntent, error) {
	if s.gateway == nil {
		return nil, apperror.ErrPaymentsDisabled
	}

	parties, payment, err := s.ownedPayment(ctx, userID, in.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentStatusPaid {
		return nil, apperror.ErrPaymentAlreadyPaid
	}

	amount := payment.Amount
	if in.Amount != nil {
		amount = *in.Amount
	}
	if err := validation.ValidateAmount("сумма платежа", amount); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, PaymentIntentRequest{
		AmountCents: AmountToCents(amount),
		Metadata: map[string]string{
			"payment_id": payment.ID.String(),
			"brand_id":   parties.BrandID.String(),
		},
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось создать платёж у провайдера")
	}

	return intent, nil
}

// AmountToCents переводит сумму в минимальные единицы валюты с округлением.
func AmountToCents(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func (s *PaymentService) ownedPayment(ctx context.Context, userID, paymentID uuid.UUID) (*models.ContractParties, *models.Payment, error) {
	actor, err := s.actors.ResolveActor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsBrand() {
		return nil, nil, apperror.ErrBrandOnly
	}

	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, nil, mapRepoError(err, repository.ErrPaymentNotFound, apperror.ErrPaymentNotFound)
	}

	parties, err := s.parties.GetParties(ctx, payment.ContractID)
	if err != nil {
		return nil, nil, mapRepoError(err, repository.ErrContractNotFound, apperror.ErrContractNotFound)
	}
	if !actor.OwnsBrand(parties.BrandID) {
		return nil, nil, apperror.ErrForbidden
	}

	return parties, payment, nil
}

func (s *PaymentService) label(payments []models.PaymentWithDetails) {
	now := s.now()
	for i := range payments {
		payments[i].Label = payments[i].StatusLabel(now, s.dueSoon)
	}
}
