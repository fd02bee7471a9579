package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

type memProfileUsers struct {
	users map[uuid.UUID]*models.User
}

func (m *memProfileUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memProfileUsers) AssignRole(ctx context.Context, userID uuid.UUID, role string) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if user.Role != nil && *user.Role != role {
		return nil, repository.ErrRoleAlreadySet
	}
	user.Role = &role
	copied := *user
	return &copied, nil
}

func (m *memProfileUsers) UpdateProfileImage(ctx context.Context, userID uuid.UUID, url string) error {
	user, ok := m.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.ProfileImageURL = &url
	return nil
}

type memCreators struct {
	byUser map[uuid.UUID]*models.Creator
	taken  map[string]bool
}

func (m *memCreators) Create(ctx context.Context, creator *models.Creator) error {
	if m.taken[creator.Username] {
		return repository.ErrUsernameTaken
	}
	creator.ID = uuid.New()
	m.taken[creator.Username] = true
	m.byUser[creator.UserID] = creator
	return nil
}

func (m *memCreators) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Creator, error) {
	creator, ok := m.byUser[userID]
	if !ok {
		return nil, repository.ErrCreatorNotFound
	}
	copied := *creator
	return &copied, nil
}

func (m *memCreators) UsernameExists(ctx context.Context, username string) (bool, error) {
	return m.taken[username], nil
}

func (m *memCreators) Update(ctx context.Context, creator *models.Creator) error {
	if _, ok := m.byUser[creator.UserID]; !ok {
		return repository.ErrCreatorNotFound
	}
	copied := *creator
	m.byUser[creator.UserID] = &copied
	return nil
}

type memBrands struct {
	byUser map[uuid.UUID]*models.Brand
}

func (m *memBrands) Create(ctx context.Context, brand *models.Brand) error {
	brand.ID = uuid.New()
	m.byUser[brand.UserID] = brand
	return nil
}

func (m *memBrands) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Brand, error) {
	brand, ok := m.byUser[userID]
	if !ok {
		return nil, repository.ErrBrandNotFound
	}
	copied := *brand
	return &copied, nil
}

func (m *memBrands) Update(ctx context.Context, brand *models.Brand) error {
	if _, ok := m.byUser[brand.UserID]; !ok {
		return repository.ErrBrandNotFound
	}
	copied := *brand
	m.byUser[brand.UserID] = &copied
	return nil
}

type profileTestDeps struct {
	users    *memProfileUsers
	creators *memCreators
	brands   *memBrands
	service  *ProfileService
}

func newProfileTestDeps() *profileTestDeps {
	d := &profileTestDeps{
		users:    &memProfileUsers{users: map[uuid.UUID]*models.User{}},
		creators: &memCreators{byUser: map[uuid.UUID]*models.Creator{}, taken: map[string]bool{}},
		brands:   &memBrands{byUser: map[uuid.UUID]*models.Brand{}},
	}
	d.service = NewProfileService(d.users, d.creators, d.brands)
	return d
}

func (d *profileTestDeps) addUser(firstName, lastName string) *models.User {
	user := &models.User{ID: uuid.New(), Email: strings.ToLower(firstName) + "@example.com", IsActive: true}
	if firstName != "" {
		user.FirstName = &firstName
	}
	if lastName != "" {
		user.LastName = &lastName
	}
	d.users.users[user.ID] = user
	return user
}

func TestProfileService_AssignRole_CreatorDefaults(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Sarah", "Johnson")

	profile, err := d.service.AssignRole(context.Background(), user.ID, models.RoleCreator)

	require.NoError(t, err)
	require.NotNil(t, profile.Creator)
	assert.Nil(t, profile.Brand)
	assert.Equal(t, models.RoleCreator, profile.User.RoleValue())
	assert.Equal(t, "sarah", profile.Creator.Username)
	assert.Equal(t, "Sarah Johnson", profile.Creator.DisplayName)
	assert.Equal(t, defaultCreatorNiche, profile.Creator.Niche)
	assert.Equal(t, defaultCreatorFollowers, profile.Creator.FollowersCount)
	assert.True(t, profile.Creator.EngagementRate.Equal(decimal.RequireFromString("3.5")))
	assert.True(t, profile.Creator.AverageRate.Equal(decimal.NewFromInt(500)))
}

func TestProfileService_AssignRole_UsernameCollision(t *testing.T) {
	d := newProfileTestDeps()
	d.creators.taken["sarah"] = true
	user := d.addUser("Sarah", "")

	profile, err := d.service.AssignRole(context.Background(), user.ID, models.RoleCreator)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(profile.Creator.Username, "sarah_"))
	assert.Len(t, profile.Creator.Username, len("sarah_")+6)
	assert.Equal(t, "Sarah", profile.Creator.DisplayName)
}

func TestProfileService_AssignRole_BrandDefaults(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("", "")

	profile, err := d.service.AssignRole(context.Background(), user.ID, models.RoleBrand)

	require.NoError(t, err)
	require.NotNil(t, profile.Brand)
	assert.Equal(t, defaultCompanyName, profile.Brand.CompanyName)
	assert.Equal(t, defaultIndustry, *profile.Brand.Industry)
}

func TestProfileService_AssignRole_Idempotent(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Acme", "")
	ctx := context.Background()

	first, err := d.service.AssignRole(ctx, user.ID, models.RoleBrand)
	require.NoError(t, err)

	second, err := d.service.AssignRole(ctx, user.ID, models.RoleBrand)
	require.NoError(t, err)
	assert.Equal(t, first.Brand.ID, second.Brand.ID)
	assert.Len(t, d.brands.byUser, 1)

	_, err = d.service.AssignRole(ctx, user.ID, models.RoleCreator)
	assert.ErrorIs(t, err, apperror.ErrRoleAlreadySet)
}

func TestProfileService_AssignRole_Invalid(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Bob", "")

	_, err := d.service.AssignRole(context.Background(), user.ID, "admin")

	assert.True(t, apperror.IsValidation(err))
}

func TestProfileService_ResolveActor(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Nike", "")
	ctx := context.Background()

	_, err := d.service.AssignRole(ctx, user.ID, models.RoleBrand)
	require.NoError(t, err)

	actor, err := d.service.ResolveActor(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, actor.IsBrand())
	assert.False(t, actor.IsCreator())

	_, err = d.service.ResolveActor(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestProfileService_UpdateCreator(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Mike", "Chen")
	ctx := context.Background()
	_, err := d.service.AssignRole(ctx, user.ID, models.RoleCreator)
	require.NoError(t, err)

	niche := "Technology"
	followers := 250000
	rate := decimal.RequireFromString("5.8")
	updated, err := d.service.UpdateCreator(ctx, user.ID, UpdateCreatorInput{
		Niche:          &niche,
		FollowersCount: &followers,
		EngagementRate: &rate,
		Tags:           []string{" tech ", "gadgets"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Technology", updated.Niche)
	assert.Equal(t, 250000, updated.FollowersCount)
	assert.Equal(t, []string{"tech", "gadgets"}, []string(updated.Tags))

	tooHigh := decimal.NewFromInt(150)
	_, err = d.service.UpdateCreator(ctx, user.ID, UpdateCreatorInput{EngagementRate: &tooHigh})
	assert.True(t, apperror.IsValidation(err))
}

func TestProfileService_UpdateCreator_NoProfile(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Ann", "")

	_, err := d.service.UpdateCreator(context.Background(), user.ID, UpdateCreatorInput{})

	assert.ErrorIs(t, err, apperror.ErrProfileNotFound)
}

func TestProfileService_UpdateProfileImage_SyncsCreator(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Emma", "")
	ctx := context.Background()
	_, err := d.service.AssignRole(ctx, user.ID, models.RoleCreator)
	require.NoError(t, err)

	require.NoError(t, d.service.UpdateProfileImage(ctx, user.ID, "/media/avatars/emma.png"))

	assert.Equal(t, "/media/avatars/emma.png", *d.users.users[user.ID].ProfileImageURL)
	assert.Equal(t, "/media/avatars/emma.png", *d.creators.byUser[user.ID].ProfileImageURL)
}

func TestProfileService_UpdateBrand(t *testing.T) {
	d := newProfileTestDeps()
	user := d.addUser("Nike", "")
	ctx := context.Background()
	_, err := d.service.SetupBrand(ctx, user.ID)
	require.NoError(t, err)

	website := "https://nike.com"
	name := "Nike Inc."
	brand, err := d.service.UpdateBrand(ctx, user.ID, UpdateBrandInput{CompanyName: &name, Website: &website})
	require.NoError(t, err)
	assert.Equal(t, "Nike Inc.", brand.CompanyName)

	bad := "javascript:alert(1)"
	_, err = d.service.UpdateBrand(ctx, user.ID, UpdateBrandInput{Website: &bad})
	assert.True(t, apperror.IsValidation(err))
}
