package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

type mockContractRepo struct {
	mock.Mock
}

func (m *mockContractRepo) CreateWithPayment(ctx context.Context, contract *models.Contract, payment *models.Payment) error {
	args := m.Called(ctx, contract, payment)
	contract.ID = uuid.New()
	payment.ID = uuid.New()
	payment.ContractID = contract.ID
	return args.Error(0)
}

func (m *mockContractRepo) GetDetails(ctx context.Context, id uuid.UUID) (*models.ContractWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractWithDetails), args.Error(1)
}

func (m *mockContractRepo) List(ctx context.Context, filter models.ContractFilter) ([]models.ContractWithDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContractWithDetails), args.Error(1)
}

func (m *mockContractRepo) Sign(ctx context.Context, id uuid.UUID, role string, at time.Time) (*models.Contract, error) {
	args := m.Called(ctx, id, role, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Contract), args.Error(1)
}

func (m *mockContractRepo) GetParties(ctx context.Context, contractID uuid.UUID) (*models.ContractParties, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContractParties), args.Error(1)
}

type contractTestDeps struct {
	repo     *mockContractRepo
	offers   *mockOfferRepo
	notifier *recordingNotifier
	cache    *recordingCache
	brand    *Actor
	creator  *Actor
	now      time.Time
	service  *ContractService
}

func newContractTestDeps() *contractTestDeps {
	d := &contractTestDeps{
		repo:     new(mockContractRepo),
		offers:   new(mockOfferRepo),
		notifier: &recordingNotifier{},
		cache:    &recordingCache{},
		brand:    newBrandActor(),
		creator:  newCreatorActor(),
		now:      time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	actors := stubActors{d.brand.UserID(): d.brand, d.creator.UserID(): d.creator}
	d.service = NewContractService(d.repo, d.offers, actors, d.notifier, d.cache, 0)
	d.service.now = func() time.Time { return d.now }
	return d
}

func (d *contractTestDeps) parties(contractID uuid.UUID) *models.ContractParties {
	return &models.ContractParties{
		ContractID:    contractID,
		CreatorID:     d.creator.Creator.ID,
		CreatorUserID: d.creator.UserID(),
		BrandID:       d.brand.Brand.ID,
		BrandUserID:   d.brand.UserID(),
	}
}

func TestContractService_CreateContract_UsesCounterAmount(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	offer.Amount = decimal.NewFromInt(1000)
	offer.Status = models.OfferStatusCountered
	offer.CounterAmount = decimal.NewNullDecimal(decimal.NewFromInt(1250))

	d.offers.On("GetDetails", ctx, offer.ID).Return(offer, nil)
	d.repo.On("CreateWithPayment", ctx, mock.AnythingOfType("*models.Contract"), mock.AnythingOfType("*models.Payment")).Return(nil)

	created, err := d.service.CreateContract(ctx, d.brand.UserID(), CreateContractInput{OfferID: offer.ID})

	require.NoError(t, err)
	assert.True(t, created.Contract.FinalAmount.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, defaultContractTerms, created.Contract.Terms)
	assert.False(t, created.Contract.CreatorSigned)
	assert.False(t, created.Contract.BrandSigned)
	assert.Equal(t, models.ContractLabelPendingSignatures, created.Contract.SignatureLabel)

	assert.Equal(t, models.PaymentStatusPending, created.Payment.Status)
	assert.True(t, created.Payment.Amount.Equal(created.Contract.FinalAmount))
	assert.Equal(t, d.now.AddDate(0, 0, DefaultPaymentDueDays), created.Payment.DueDate)
	assert.Equal(t, created.Contract.ID, created.Payment.ContractID)

	require.Len(t, d.notifier.events, 1)
	assert.Equal(t, d.creator.UserID(), d.notifier.events[0].userID)
	assert.Equal(t, models.EventContractCreated, d.notifier.events[0].event)
}

func TestContractService_CreateContract_ExplicitAmountAndTerms(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	offer.Amount = decimal.NewFromInt(1000)

	d.offers.On("GetDetails", ctx, offer.ID).Return(offer, nil)
	d.repo.On("CreateWithPayment", ctx, mock.AnythingOfType("*models.Contract"), mock.AnythingOfType("*models.Payment")).Return(nil)

	amount := decimal.RequireFromString("900.50")
	terms := "  Two posts and one story  "
	created, err := d.service.CreateContract(ctx, d.creator.UserID(), CreateContractInput{
		OfferID:     offer.ID,
		FinalAmount: &amount,
		Terms:       &terms,
	})

	require.NoError(t, err)
	assert.True(t, created.Contract.FinalAmount.Equal(amount))
	assert.Equal(t, "Two posts and one story", created.Contract.Terms)
	assert.Equal(t, d.brand.UserID(), d.notifier.events[0].userID)
}

func TestContractService_CreateContract_NotParty(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	d.offers.On("GetDetails", ctx, offer.ID).Return(offer, nil)

	_, err := d.service.CreateContract(ctx, uuid.New(), CreateContractInput{OfferID: offer.ID})

	assert.ErrorIs(t, err, apperror.ErrNotParty)
	d.repo.AssertNotCalled(t, "CreateWithPayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestContractService_CreateContract_OfferNotFound(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	id := uuid.New()
	d.offers.On("GetDetails", ctx, id).Return(nil, repository.ErrOfferNotFound)

	_, err := d.service.CreateContract(ctx, d.brand.UserID(), CreateContractInput{OfferID: id})

	assert.ErrorIs(t, err, apperror.ErrOfferNotFound)
}

func TestContractService_SignContract_CreatorThenBrand(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	contract := models.Contract{ID: uuid.New(), OfferID: offer.ID, FinalAmount: decimal.NewFromInt(500)}

	d.repo.On("GetParties", ctx, contract.ID).Return(d.parties(contract.ID), nil)
	d.repo.On("GetDetails", ctx, contract.ID).Return(&models.ContractWithDetails{Contract: contract, Offer: *offer}, nil).Once()

	signedAt := d.now
	creatorSigned := contract
	creatorSigned.CreatorSigned = true
	creatorSigned.CreatorSignedAt = &signedAt
	d.repo.On("Sign", ctx, contract.ID, models.RoleCreator, d.now).Return(&creatorSigned, nil)

	result, err := d.service.SignContract(ctx, d.creator.UserID(), contract.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractLabelPendingBrand, result.SignatureLabel)
	assert.False(t, result.IsFullyExecuted)
	assert.Equal(t, models.EventContractSigned, d.notifier.events[0].event)
	assert.Equal(t, d.brand.UserID(), d.notifier.events[0].userID)

	d.repo.On("GetDetails", ctx, contract.ID).Return(&models.ContractWithDetails{Contract: creatorSigned, Offer: *offer}, nil).Once()
	fully := creatorSigned
	fully.BrandSigned = true
	fully.BrandSignedAt = &signedAt
	d.repo.On("Sign", ctx, contract.ID, models.RoleBrand, d.now).Return(&fully, nil)

	result, err = d.service.SignContract(ctx, d.brand.UserID(), contract.ID)
	require.NoError(t, err)
	assert.True(t, result.IsFullyExecuted)
	assert.Equal(t, models.ContractLabelFullyExecuted, result.SignatureLabel)
}

func TestContractService_SignContract_AlreadySigned(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	firstSigned := d.now.Add(-time.Hour)
	contract := models.Contract{ID: uuid.New(), OfferID: offer.ID, BrandSigned: true, BrandSignedAt: &firstSigned}

	d.repo.On("GetParties", ctx, contract.ID).Return(d.parties(contract.ID), nil)
	d.repo.On("GetDetails", ctx, contract.ID).Return(&models.ContractWithDetails{Contract: contract, Offer: *offer}, nil)

	result, err := d.service.SignContract(ctx, d.brand.UserID(), contract.ID)

	require.NoError(t, err)
	assert.Equal(t, firstSigned, *result.BrandSignedAt)
	assert.Equal(t, models.ContractLabelPendingCreator, result.SignatureLabel)
	assert.Empty(t, d.notifier.events)
	d.repo.AssertNotCalled(t, "Sign", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestContractService_SignContract_Outsider(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	id := uuid.New()
	d.repo.On("GetParties", ctx, id).Return(d.parties(id), nil)

	_, err := d.service.SignContract(ctx, uuid.New(), id)

	assert.ErrorIs(t, err, apperror.ErrNotParty)
}

func TestContractService_ListContracts_Decorates(t *testing.T) {
	d := newContractTestDeps()
	ctx := context.Background()
	rows := []models.ContractWithDetails{
		{Contract: models.Contract{ID: uuid.New(), CreatorSigned: true, BrandSigned: true}},
	}
	d.repo.On("List", ctx, models.ContractFilter{CreatorID: &d.creator.Creator.ID}).Return(rows, nil)

	contracts, err := d.service.ListContracts(ctx, d.creator.UserID())

	require.NoError(t, err)
	require.Len(t, contracts, 1)
	assert.True(t, contracts[0].IsFullyExecuted)
	assert.Equal(t, models.ContractLabelFullyExecuted, contracts[0].SignatureLabel)
}
