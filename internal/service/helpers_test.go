package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
)

// stubActors возвращает заранее подготовленных пользователей.
type stubActors map[uuid.UUID]*Actor

func (s stubActors) ResolveActor(ctx context.Context, userID uuid.UUID) (*Actor, error) {
	if actor, ok := s[userID]; ok {
		return actor, nil
	}
	return nil, apperror.ErrUnauthorized
}

func newBrandActor() *Actor {
	role := models.RoleBrand
	user := &models.User{ID: uuid.New(), Email: "brand@example.com", Role: &role}
	return &Actor{User: user, Brand: &models.Brand{ID: uuid.New(), UserID: user.ID, CompanyName: "Nike"}}
}

func newCreatorActor() *Actor {
	role := models.RoleCreator
	user := &models.User{ID: uuid.New(), Email: "creator@example.com", Role: &role}
	return &Actor{User: user, Creator: &models.Creator{ID: uuid.New(), UserID: user.ID, Username: "sarah"}}
}

type sentEvent struct {
	userID uuid.UUID
	event  string
}

// recordingNotifier запоминает отправленные события.
type recordingNotifier struct {
	mu     sync.Mutex
	events []sentEvent
}

func (n *recordingNotifier) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sentEvent{userID: userID, event: event})
	return nil
}

// recordingCache запоминает сброшенных пользователей.
type recordingCache struct {
	invalidated []uuid.UUID
}

func (c *recordingCache) InvalidateStats(userIDs ...uuid.UUID) {
	c.invalidated = append(c.invalidated, userIDs...)
}

// offerFixture собирает оффер между брендом и автором.
func offerFixture(brand, creator *Actor) *models.OfferWithDetails {
	campaign := models.CampaignWithBrand{
		Campaign: models.Campaign{ID: uuid.New(), BrandID: brand.Brand.ID, Name: "Spring", Status: models.CampaignStatusActive},
		Brand:    *brand.Brand,
	}
	return &models.OfferWithDetails{
		Offer: models.Offer{
			ID:         uuid.New(),
			CampaignID: campaign.ID,
			CreatorID:  creator.Creator.ID,
			Status:     models.OfferStatusPending,
		},
		Creator:  *creator.Creator,
		Campaign: campaign,
	}
}
