package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

type mockOfferRepo struct {
	mock.Mock
}

func (m *mockOfferRepo) Create(ctx context.Context, offer *models.Offer) error {
	args := m.Called(ctx, offer)
	offer.ID = uuid.New()
	return args.Error(0)
}

func (m *mockOfferRepo) CreateBatch(ctx context.Context, offers []*models.Offer) error {
	args := m.Called(ctx, offers)
	for _, offer := range offers {
		offer.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockOfferRepo) GetDetails(ctx context.Context, id uuid.UUID) (*models.OfferWithDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OfferWithDetails), args.Error(1)
}

func (m *mockOfferRepo) List(ctx context.Context, filter models.OfferFilter) ([]models.OfferWithDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OfferWithDetails), args.Error(1)
}

func (m *mockOfferRepo) Update(ctx context.Context, offer *models.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

type mockCampaignLookup struct {
	mock.Mock
}

func (m *mockCampaignLookup) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

type mockCreatorLookup struct {
	mock.Mock
}

func (m *mockCreatorLookup) GetByID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Creator), args.Error(1)
}

type offerTestDeps struct {
	repo      *mockOfferRepo
	campaigns *mockCampaignLookup
	creators  *mockCreatorLookup
	notifier  *recordingNotifier
	cache     *recordingCache
	brand     *Actor
	creator   *Actor
	service   *OfferService
}

func newOfferTestDeps() *offerTestDeps {
	d := &offerTestDeps{
		repo:      new(mockOfferRepo),
		campaigns: new(mockCampaignLookup),
		creators:  new(mockCreatorLookup),
		notifier:  &recordingNotifier{},
		cache:     &recordingCache{},
		brand:     newBrandActor(),
		creator:   newCreatorActor(),
	}
	actors := stubActors{d.brand.UserID(): d.brand, d.creator.UserID(): d.creator}
	d.service = NewOfferService(d.repo, d.campaigns, d.creators, actors, d.notifier, d.cache)
	return d
}

func TestOfferService_CreateOffers_Pending(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	campaign := &models.Campaign{ID: uuid.New(), BrandID: d.brand.Brand.ID}

	d.campaigns.On("GetByID", ctx, campaign.ID).Return(campaign, nil)
	d.creators.On("GetByID", ctx, d.creator.Creator.ID).Return(d.creator.Creator, nil)
	d.repo.On("Create", ctx, mock.MatchedBy(func(o *models.Offer) bool {
		return o.Status == models.OfferStatusPending && o.Amount.Equal(decimal.NewFromInt(1500))
	})).Return(nil)

	offers, err := d.service.CreateOffers(ctx, d.brand.UserID(), CreateOfferInput{
		CampaignID: campaign.ID,
		CreatorIDs: []uuid.UUID{d.creator.Creator.ID},
		Amount:     decimal.NewFromInt(1500),
	})

	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, models.OfferStatusPending, offers[0].Status)
	assert.NotEqual(t, uuid.Nil, offers[0].ID)
	require.Len(t, d.notifier.events, 1)
	assert.Equal(t, d.creator.UserID(), d.notifier.events[0].userID)
	assert.Equal(t, models.EventOfferNew, d.notifier.events[0].event)
	d.repo.AssertExpectations(t)
}

func TestOfferService_CreateOffers_Bulk(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	campaign := &models.Campaign{ID: uuid.New(), BrandID: d.brand.Brand.ID}
	second := &models.Creator{ID: uuid.New(), UserID: uuid.New()}

	d.campaigns.On("GetByID", ctx, campaign.ID).Return(campaign, nil)
	d.creators.On("GetByID", ctx, d.creator.Creator.ID).Return(d.creator.Creator, nil)
	d.creators.On("GetByID", ctx, second.ID).Return(second, nil)
	d.repo.On("CreateBatch", ctx, mock.AnythingOfType("[]*models.Offer")).Return(nil)

	offers, err := d.service.CreateOffers(ctx, d.brand.UserID(), CreateOfferInput{
		CampaignID: campaign.ID,
		CreatorIDs: []uuid.UUID{d.creator.Creator.ID, second.ID, d.creator.Creator.ID},
		Amount:     decimal.NewFromInt(800),
	})

	require.NoError(t, err)
	assert.Len(t, offers, 2)
	assert.Len(t, d.notifier.events, 2)
	d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOfferService_CreateOffers_Validation(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()

	_, err := d.service.CreateOffers(ctx, d.brand.UserID(), CreateOfferInput{
		CampaignID: uuid.New(),
		CreatorIDs: []uuid.UUID{uuid.New()},
		Amount:     decimal.Zero,
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = d.service.CreateOffers(ctx, d.brand.UserID(), CreateOfferInput{
		CampaignID: uuid.New(),
		Amount:     decimal.NewFromInt(10),
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_CreateOffers_CreatorForbidden(t *testing.T) {
	d := newOfferTestDeps()

	_, err := d.service.CreateOffers(context.Background(), d.creator.UserID(), CreateOfferInput{
		CampaignID: uuid.New(),
		CreatorIDs: []uuid.UUID{d.creator.Creator.ID},
		Amount:     decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, apperror.ErrBrandOnly)
}

func TestOfferService_CreateOffers_ForeignCampaign(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	campaign := &models.Campaign{ID: uuid.New(), BrandID: uuid.New()}
	d.campaigns.On("GetByID", ctx, campaign.ID).Return(campaign, nil)

	_, err := d.service.CreateOffers(ctx, d.brand.UserID(), CreateOfferInput{
		CampaignID: campaign.ID,
		CreatorIDs: []uuid.UUID{d.creator.Creator.ID},
		Amount:     decimal.NewFromInt(10),
	})

	assert.True(t, apperror.IsForbidden(err))
}

func TestOfferService_CreateOffers_UnknownCreator(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	campaign := &models.Campaign{ID: uuid.New(), BrandID: d.brand.Brand.ID}
	missing := uuid.New()
	d.campaigns.On("GetByID", ctx, campaign.ID).Return(campaign, nil)
	d.creators.On("GetByID", ctx, missing).Return(nil, repository.ErrCreatorNotFound)

	_, err := d.service.CreateOffers(ctx, d.brand.UserID(), CreateOfferInput{
		CampaignID: campaign.ID,
		CreatorIDs: []uuid.UUID{missing},
		Amount:     decimal.NewFromInt(10),
	})

	assert.ErrorIs(t, err, apperror.ErrCreatorNotFound)
}

func TestOfferService_ListOffers_FilterByRole(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()

	d.repo.On("List", ctx, models.OfferFilter{CreatorID: &d.creator.Creator.ID, Status: models.OfferStatusPending}).
		Return([]models.OfferWithDetails{}, nil)
	d.repo.On("List", ctx, models.OfferFilter{BrandID: &d.brand.Brand.ID}).
		Return([]models.OfferWithDetails{{}}, nil)

	creatorOffers, err := d.service.ListOffers(ctx, d.creator.UserID(), models.OfferStatusPending)
	require.NoError(t, err)
	assert.Empty(t, creatorOffers)

	brandOffers, err := d.service.ListOffers(ctx, d.brand.UserID(), "")
	require.NoError(t, err)
	assert.Len(t, brandOffers, 1)

	_, err = d.service.ListOffers(ctx, d.brand.UserID(), "archived")
	assert.True(t, apperror.IsValidation(err))
}

func TestOfferService_UpdateOffer_CounterRequiresAmount(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	d.repo.On("GetDetails", ctx, offer.ID).Return(offer, nil)

	status := models.OfferStatusCountered
	_, err := d.service.UpdateOffer(ctx, d.creator.UserID(), offer.ID, UpdateOfferInput{Status: &status})

	assert.True(t, apperror.IsValidation(err))
	d.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestOfferService_UpdateOffer_Counter(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	offer.Amount = decimal.NewFromInt(1000)
	d.repo.On("GetDetails", ctx, offer.ID).Return(offer, nil)
	d.repo.On("Update", ctx, mock.AnythingOfType("*models.Offer")).Return(nil)

	status := models.OfferStatusCountered
	counter := decimal.NewFromInt(1400)
	updated, err := d.service.UpdateOffer(ctx, d.creator.UserID(), offer.ID, UpdateOfferInput{
		Status:        &status,
		CounterAmount: &counter,
	})

	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusCountered, updated.Status)
	assert.True(t, updated.AgreedAmount().Equal(counter))
	require.Len(t, d.notifier.events, 1)
	assert.Equal(t, d.brand.UserID(), d.notifier.events[0].userID)
	assert.Equal(t, models.EventOfferUpdated, d.notifier.events[0].event)
	assert.ElementsMatch(t, []uuid.UUID{d.creator.UserID(), d.brand.UserID()}, d.cache.invalidated)
}

func TestOfferService_UpdateOffer_AnyTransition(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	offer.Status = models.OfferStatusRejected
	d.repo.On("GetDetails", ctx, offer.ID).Return(offer, nil)
	d.repo.On("Update", ctx, mock.AnythingOfType("*models.Offer")).Return(nil)

	status := models.OfferStatusAccepted
	updated, err := d.service.UpdateOffer(ctx, d.brand.UserID(), offer.ID, UpdateOfferInput{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, updated.Status)
	assert.Equal(t, d.creator.UserID(), d.notifier.events[0].userID)
}

func TestOfferService_UpdateOffer_NotParty(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	offer := offerFixture(d.brand, d.creator)
	d.repo.On("GetDetails", ctx, offer.ID).Return(offer, nil)

	status := models.OfferStatusAccepted
	_, err := d.service.UpdateOffer(ctx, uuid.New(), offer.ID, UpdateOfferInput{Status: &status})

	assert.ErrorIs(t, err, apperror.ErrNotParty)
}

func TestOfferService_UpdateOffer_NotFound(t *testing.T) {
	d := newOfferTestDeps()
	ctx := context.Background()
	id := uuid.New()
	d.repo.On("GetDetails", ctx, id).Return(nil, repository.ErrOfferNotFound)

	_, err := d.service.UpdateOffer(ctx, d.brand.UserID(), id, UpdateOfferInput{})

	assert.True(t, apperror.IsNotFound(err))
}
