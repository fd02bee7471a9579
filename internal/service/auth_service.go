package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

// AuthRepository описывает зависимости AuthService от слоя хранилища.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, refreshToken string) error
	UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error
	ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error)
	DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error
}

// ProfileProvider загружает и создаёт профиль роли пользователя.
type ProfileProvider interface {
	GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) (*UserProfile, error)
}

// AuthService инкапсулирует бизнес-логику регистрации и аутентификации.
type AuthService struct {
	repo         AuthRepository
	profiles     ProfileProvider
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// LoginInput содержит данные для входа.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User      *models.User
	Profile   *UserProfile
	TokenPair *TokenPair
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthRepository, profiles ProfileProvider, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		profiles:     profiles,
		tokenManager: tokenManager,
	}
}

// Register создаёт нового пользователя. Если роль указана сразу,
// назначает её и создаёт профиль по умолчанию.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta map[string]string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if in.Role != "" && !models.IsValidRole(in.Role) {
		return nil, apperror.Validation("роль должна быть brand или creator")
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.ErrEmailTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, apperror.Internal(err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("auth service: не удалось захешировать пароль: %w", err))
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(passHash),
		FirstName:    optionalString(in.FirstName),
		LastName:     optionalString(in.LastName),
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	profile := &UserProfile{User: user}
	if in.Role != "" && s.profiles != nil {
		assigned, err := s.profiles.AssignRole(ctx, user.ID, in.Role)
		if err != nil {
			return nil, err
		}
		profile = assigned
		user = assigned.User
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:      user,
		Profile:   profile,
		TokenPair: tokenPair,
	}, nil
}

// Login проверяет учётные данные и возвращает токены.
func (s *AuthService) Login(ctx context.Context, in LoginInput, meta map[string]string) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, apperror.Internal(err)
	}

	if !user.IsActive {
		return nil, apperror.New(apperror.ErrCodeForbidden, "аккаунт заблокирован")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	// Ошибка обновления last_login_at не прерывает вход
	if err := s.repo.UpdateLastLoginAt(ctx, user.ID); err != nil && logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		}).Warn("auth service: не удалось обновить last_login_at")
	}

	tokenPair, err := s.issueSession(ctx, user, meta)
	if err != nil {
		return nil, err
	}

	profile := &UserProfile{User: user}
	if s.profiles != nil {
		loaded, err := s.profiles.GetUserProfile(ctx, user.ID)
		if err == nil {
			profile = loaded
		} else if logger.Log != nil {
			logger.Log.WithField("user_id", user.ID).WithError(err).Warn("auth service: профиль не загружен")
		}
	}

	return &AuthResult{
		User:      user,
		Profile:   profile,
		TokenPair: tokenPair,
	}, nil
}

// Refresh выпускает новую пару токенов.
func (s *AuthService) Refresh(ctx context.Context, oldToken string, meta map[string]string) (*TokenPair, error) {
	claims, err := s.tokenManager.ParseRefresh(oldToken)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "refresh токен невалиден")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeUnauthorized, "некорректный subject токена")
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrUserNotFound, apperror.ErrUnauthorized)
	}

	if err := s.repo.DeleteSession(ctx, oldToken); err != nil {
		return nil, mapRepoError(err, repository.ErrSessionNotFound, apperror.ErrUnauthorized)
	}

	return s.issueSession(ctx, user, meta)
}

// Logout удаляет сессию refresh токена. Неизвестный токен не считается ошибкой.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repo.DeleteSession(ctx, refreshToken); err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		return apperror.Internal(err)
	}
	return nil
}

// ListSessions возвращает список активных сессий пользователя.
func (s *AuthService) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	sessions, err := s.repo.ListSessions(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return sessions, nil
}

// DeleteSession удаляет сессию по идентификатору.
func (s *AuthService) DeleteSession(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error {
	err := s.repo.DeleteSessionByID(ctx, sessionID, userID)
	return mapRepoError(err, repository.ErrSessionNotFound, apperror.New(apperror.ErrCodeNotFound, "сессия не найдена"))
}

// AccessTTL возвращает время жизни access токена для cookie.
func (s *AuthService) AccessTTL() int {
	return int(s.tokenManager.AccessTTL().Seconds())
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User, meta map[string]string) (*TokenPair, error) {
	tokenPair, _, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	if meta != nil {
		if ua, ok := meta["user_agent"]; ok {
			session.UserAgent = &ua
		}
		if ip, ok := meta["ip"]; ok {
			session.IPAddress = &ip
		}
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	return tokenPair, nil
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
