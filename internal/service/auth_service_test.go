package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

// mockAuthRepository реализует AuthRepository для тестов.
type mockAuthRepository struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthRepository) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, ok := m.sessions[refreshToken]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(m.sessions, refreshToken)
	return nil
}

func (m *mockAuthRepository) ListSessions(ctx context.Context, userID uuid.UUID) ([]models.Session, error) {
	sessions := []models.Session{}
	for _, s := range m.sessions {
		if s.UserID == userID {
			sessions = append(sessions, *s)
		}
	}
	return sessions, nil
}

func (m *mockAuthRepository) DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID uuid.UUID) error {
	for token, s := range m.sessions {
		if s.ID == sessionID && s.UserID == userID {
			delete(m.sessions, token)
			return nil
		}
	}
	return repository.ErrSessionNotFound
}

func (m *mockAuthRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

// stubProfileProvider назначает роль в памяти.
type stubProfileProvider struct {
	repo *mockAuthRepository
}

func (s *stubProfileProvider) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrUserNotFound
	}
	profile := &UserProfile{User: user}
	if user.HasRole(models.RoleBrand) {
		profile.Brand = &models.Brand{ID: uuid.New(), UserID: userID, CompanyName: "Acme"}
	}
	return profile, nil
}

func (s *stubProfileProvider) AssignRole(ctx context.Context, userID uuid.UUID, role string) (*UserProfile, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.ErrUserNotFound
	}
	user.Role = &role
	return s.GetUserProfile(ctx, userID)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, &stubProfileProvider{repo: repo}, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:     "Test@Example.com",
		Password:  "password123",
		FirstName: "Test",
	}, map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}
	if res.User.Email != "test@example.com" {
		t.Fatalf("email должен быть приведён к нижнему регистру, получили %s", res.User.Email)
	}
	if res.User.Role != nil {
		t.Fatalf("роль не должна назначаться без запроса")
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}

	loginRes, err := service.Login(ctx, LoginInput{
		Email:    "test@example.com",
		Password: "password123",
	}, nil)
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("ожидался access токен")
	}
	if loginRes.Profile == nil || loginRes.Profile.User.ID != res.User.ID {
		t.Fatalf("ожидался профиль пользователя")
	}
}

func TestAuthService_RegisterWithRole(t *testing.T) {
	repo := newMockAuthRepository()
	service := NewAuthService(repo, &stubProfileProvider{repo: repo}, NewTokenManager("a", "r", time.Minute, time.Hour))

	res, err := service.Register(context.Background(), RegisterInput{
		Email:    "brand@example.com",
		Password: "password123",
		Role:     models.RoleBrand,
	}, nil)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if !res.User.HasRole(models.RoleBrand) {
		t.Fatalf("ожидалась роль brand")
	}
	if res.Profile.Brand == nil {
		t.Fatalf("ожидался профиль бренда")
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	repo := newMockAuthRepository()
	service := NewAuthService(repo, nil, NewTokenManager("a", "r", time.Minute, time.Hour))
	ctx := context.Background()

	cases := map[string]RegisterInput{
		"bad email":    {Email: "not-an-email", Password: "password123"},
		"weak":         {Email: "a@example.com", Password: "short"},
		"unknown role": {Email: "a@example.com", Password: "password123", Role: "admin"},
	}
	for name, in := range cases {
		if _, err := service.Register(ctx, in, nil); !apperror.IsValidation(err) {
			t.Fatalf("%s: ожидалась ошибка валидации, получили %v", name, err)
		}
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	repo := newMockAuthRepository()
	service := NewAuthService(repo, nil, NewTokenManager("a", "r", time.Minute, time.Hour))
	ctx := context.Background()

	in := RegisterInput{Email: "dup@example.com", Password: "password123"}
	if _, err := service.Register(ctx, in, nil); err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if _, err := service.Register(ctx, in, nil); !apperror.IsConflict(err) {
		t.Fatalf("ожидался конфликт, получили %v", err)
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	repo := newMockAuthRepository()
	service := NewAuthService(repo, nil, NewTokenManager("a", "r", time.Minute, time.Hour))
	ctx := context.Background()

	if _, err := service.Register(ctx, RegisterInput{Email: "u@example.com", Password: "password123"}, nil); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	_, err := service.Login(ctx, LoginInput{Email: "u@example.com", Password: "password124"}, nil)
	if apperror.StatusOf(err) != 401 {
		t.Fatalf("ожидался 401, получили %v", err)
	}

	_, err = service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password123"}, nil)
	if apperror.StatusOf(err) != 401 {
		t.Fatalf("ожидался 401 для неизвестного email, получили %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthRepository()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, nil, tokenManager)

	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	role := models.RoleCreator
	user := &models.User{
		ID:           uuid.New(),
		Email:        "user@example.com",
		PasswordHash: string(hash),
		Role:         &role,
	}
	repo.usersByEmail[user.Email] = user
	repo.usersByID[user.ID] = user

	tokenPair, accessExp, refreshExp, err := tokenManager.GeneratePair(user)
	if err != nil {
		t.Fatalf("не удалось сгенерировать токены: %v", err)
	}
	if accessExp.After(refreshExp) {
		t.Fatalf("access должен истекать раньше refresh")
	}

	repo.sessions[tokenPair.RefreshToken] = &models.Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresAt:    refreshExp,
	}

	newPair, err := service.Refresh(ctx, tokenPair.RefreshToken, nil)
	if err != nil {
		t.Fatalf("refresh вернул ошибку: %v", err)
	}

	if newPair.RefreshToken == tokenPair.RefreshToken {
		t.Fatalf("ожидался новый refresh токен")
	}

	// Старый токен уже отозван
	if _, err := service.Refresh(ctx, tokenPair.RefreshToken, nil); apperror.StatusOf(err) != 401 {
		t.Fatalf("повторное использование refresh токена должно давать 401, получили %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := newMockAuthRepository()
	service := NewAuthService(repo, nil, NewTokenManager("a", "r", time.Minute, time.Hour))
	ctx := context.Background()

	res, err := service.Register(ctx, RegisterInput{Email: "out@example.com", Password: "password123"}, nil)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if err := service.Logout(ctx, res.TokenPair.RefreshToken); err != nil {
		t.Fatalf("logout вернул ошибку: %v", err)
	}
	if len(repo.sessions) != 0 {
		t.Fatalf("сессия должна быть удалена")
	}
	if err := service.Logout(ctx, res.TokenPair.RefreshToken); err != nil {
		t.Fatalf("повторный logout не должен падать: %v", err)
	}
}
