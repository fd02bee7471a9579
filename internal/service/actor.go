package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

// Actor текущий пользователь вместе с профилем его роли.
// Роль берётся из базы, а не из токена: токен мог быть выпущен до выбора роли.
type Actor struct {
	User    *models.User
	Creator *models.Creator
	Brand   *models.Brand
}

// ActorResolver загружает текущего пользователя по идентификатору из токена.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (*Actor, error)
}

// Notifier доставляет событие пользователю в реальном времени.
type Notifier interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// StatsInvalidator сбрасывает закэшированную статистику.
type StatsInvalidator interface {
	InvalidateStats(userIDs ...uuid.UUID)
}

// notify отправляет событие, если доставка настроена. Ошибка только логируется.
func notify(notifier Notifier, userID uuid.UUID, event string, data any) {
	if notifier == nil {
		return
	}
	if err := notifier.BroadcastToUser(userID, event, data); err != nil && logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id": userID,
			"event":   event,
			"error":   err.Error(),
		}).Warn("не удалось отправить уведомление")
	}
}

func invalidateStats(cache StatsInvalidator, userIDs ...uuid.UUID) {
	if cache != nil {
		cache.InvalidateStats(userIDs...)
	}
}

// UserID возвращает идентификатор пользователя.
func (a *Actor) UserID() uuid.UUID {
	return a.User.ID
}

// Role возвращает роль пользователя.
func (a *Actor) Role() string {
	return a.User.RoleValue()
}

// IsBrand истинно, если у пользователя есть профиль бренда.
func (a *Actor) IsBrand() bool {
	return a.Brand != nil
}

// IsCreator истинно, если у пользователя есть профиль автора.
func (a *Actor) IsCreator() bool {
	return a.Creator != nil
}

// OwnsCreator проверяет, что профиль автора принадлежит пользователю.
func (a *Actor) OwnsCreator(creatorID uuid.UUID) bool {
	return a.Creator != nil && a.Creator.ID == creatorID
}

// OwnsBrand проверяет, что профиль бренда принадлежит пользователю.
func (a *Actor) OwnsBrand(brandID uuid.UUID) bool {
	return a.Brand != nil && a.Brand.ID == brandID
}

// mapRepoError переводит sentinel-ошибку репозитория в ошибку приложения.
func mapRepoError(err error, sentinel error, appErr *apperror.AppError) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sentinel) {
		return appErr
	}
	var existing *apperror.AppError
	if errors.As(err, &existing) {
		return err
	}
	return apperror.Internal(err)
}

// wrapInternal оборачивает неожиданную ошибку, сохраняя уже типизированные.
func wrapInternal(err error) error {
	if err == nil {
		return nil
	}
	var existing *apperror.AppError
	if errors.As(err, &existing) {
		return err
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperror.ErrUserNotFound
	}
	return apperror.Internal(err)
}
