package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
	"github.com/ignatzorin/collabhub-backend/internal/validation"
)

// Значения профиля по умолчанию при выборе роли.
const (
	defaultCompanyName      = "My Company"
	defaultIndustry         = "Technology"
	defaultBrandDescription = "A growing company looking for influencer partnerships"
	defaultCreatorUsername  = "creator"
	defaultCreatorName      = "Creator"
	defaultCreatorBio       = "Content creator passionate about engaging with audiences"
	defaultCreatorNiche     = "Lifestyle"
	defaultCreatorFollowers = 10000
	defaultCreatorLocation  = "United States"
	usernameAttempts        = 5
)

var (
	defaultEngagementRate = decimal.RequireFromString("3.5")
	defaultAverageRate    = decimal.NewFromInt(500)
	usernameCleaner       = regexp.MustCompile(`[^a-z0-9_]+`)
)

// ProfileUserRepository описывает операции с пользователями, нужные ProfileService.
type ProfileUserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) (*models.User, error)
	UpdateProfileImage(ctx context.Context, userID uuid.UUID, url string) error
}

// ProfileCreatorRepository описывает операции с профилями авторов.
type ProfileCreatorRepository interface {
	Create(ctx context.Context, creator *models.Creator) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Creator, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, creator *models.Creator) error
}

// ProfileBrandRepository описывает операции с профилями брендов.
type ProfileBrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
}

// UserProfile пользователь вместе с профилем выбранной роли.
type UserProfile struct {
	User    *models.User    `json:"user"`
	Creator *models.Creator `json:"creator,omitempty"`
	Brand   *models.Brand   `json:"brand,omitempty"`
}

// ProfileService управляет ролью пользователя и профилями автора и бренда.
type ProfileService struct {
	users    ProfileUserRepository
	creators ProfileCreatorRepository
	brands   ProfileBrandRepository
}

// UpdateCreatorInput частичное обновление профиля автора.
type UpdateCreatorInput struct {
	DisplayName     *string
	Bio             *string
	Niche           *string
	FollowersCount  *int
	EngagementRate  *decimal.Decimal
	AverageRate     *decimal.Decimal
	Location        *string
	ProfileImageURL *string
	Tags            []string
}

// UpdateBrandInput частичное обновление профиля бренда.
type UpdateBrandInput struct {
	CompanyName *string
	Industry    *string
	Description *string
	Website     *string
	LogoURL     *string
}

// NewProfileService создаёт сервис профилей.
func NewProfileService(users ProfileUserRepository, creators ProfileCreatorRepository, brands ProfileBrandRepository) *ProfileService {
	return &ProfileService{users: users, creators: creators, brands: brands}
}

// GetUserProfile возвращает пользователя и профиль его роли, если он уже создан.
func (s *ProfileService) GetUserProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrUserNotFound, apperror.ErrUserNotFound)
	}

	profile := &UserProfile{User: user}
	switch user.RoleValue() {
	case models.RoleCreator:
		creator, err := s.creators.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrCreatorNotFound) {
			return nil, apperror.Internal(err)
		}
		profile.Creator = creator
	case models.RoleBrand:
		brand, err := s.brands.GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, repository.ErrBrandNotFound) {
			return nil, apperror.Internal(err)
		}
		profile.Brand = brand
	}

	return profile, nil
}

// ResolveActor загружает текущего пользователя и профиль его роли.
func (s *ProfileService) ResolveActor(ctx context.Context, userID uuid.UUID) (*Actor, error) {
	profile, err := s.GetUserProfile(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	return &Actor{User: profile.User, Creator: profile.Creator, Brand: profile.Brand}, nil
}

// AssignRole назначает роль и создаёт профиль по умолчанию, если его ещё нет.
// Роль выбирается один раз: повторный выбор той же роли ничего не меняет.
func (s *ProfileService) AssignRole(ctx context.Context, userID uuid.UUID, role string) (*UserProfile, error) {
	if !models.IsValidRole(role) {
		return nil, apperror.Validation("роль должна быть brand или creator")
	}

	user, err := s.users.AssignRole(ctx, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRoleAlreadySet):
			return nil, apperror.ErrRoleAlreadySet
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Internal(err)
	}

	profile := &UserProfile{User: user}
	switch role {
	case models.RoleBrand:
		brand, err := s.ensureBrand(ctx, user)
		if err != nil {
			return nil, err
		}
		profile.Brand = brand
	case models.RoleCreator:
		creator, err := s.ensureCreator(ctx, user)
		if err != nil {
			return nil, err
		}
		profile.Creator = creator
	}

	return profile, nil
}

// SetupBrand назначает роль бренда и создаёт профиль компании.
func (s *ProfileService) SetupBrand(ctx context.Context, userID uuid.UUID) (*UserProfile, error) {
	return s.AssignRole(ctx, userID, models.RoleBrand)
}

// UpdateCreator обновляет профиль автора текущего пользователя.
func (s *ProfileService) UpdateCreator(ctx context.Context, userID uuid.UUID, in UpdateCreatorInput) (*models.Creator, error) {
	creator, err := s.creators.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrCreatorNotFound, apperror.ErrProfileNotFound)
	}

	if in.DisplayName != nil {
		if err := validation.ValidateDisplayName(*in.DisplayName); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(in.Bio); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.Bio = in.Bio
	}
	if in.Niche != nil {
		if err := validation.ValidateNonEmpty("ниша", *in.Niche); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.Niche = strings.TrimSpace(*in.Niche)
	}
	if in.FollowersCount != nil {
		if *in.FollowersCount < 0 {
			return nil, apperror.Validation("количество подписчиков не может быть отрицательным")
		}
		creator.FollowersCount = *in.FollowersCount
	}
	if in.EngagementRate != nil {
		if err := validation.ValidateEngagementRate(*in.EngagementRate); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.EngagementRate = *in.EngagementRate
	}
	if in.AverageRate != nil {
		if err := validation.ValidateBudget(*in.AverageRate); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.AverageRate = *in.AverageRate
	}
	if in.Location != nil {
		if err := validation.ValidateLocation(in.Location); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.Location = in.Location
	}
	if in.ProfileImageURL != nil {
		if err := validation.ValidateExternalLink(in.ProfileImageURL); err != nil && !strings.HasPrefix(*in.ProfileImageURL, "/media/") {
			return nil, apperror.Validation(err.Error())
		}
		creator.ProfileImageURL = in.ProfileImageURL
	}
	if in.Tags != nil {
		if err := validation.ValidateTags(in.Tags); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		creator.Tags = normalizeTags(in.Tags)
	}

	if err := s.creators.Update(ctx, creator); err != nil {
		return nil, mapRepoError(err, repository.ErrCreatorNotFound, apperror.ErrProfileNotFound)
	}

	return creator, nil
}

// UpdateBrand обновляет профиль бренда текущего пользователя.
func (s *ProfileService) UpdateBrand(ctx context.Context, userID uuid.UUID, in UpdateBrandInput) (*models.Brand, error) {
	brand, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return nil, mapRepoError(err, repository.ErrBrandNotFound, apperror.ErrProfileNotFound)
	}

	if in.CompanyName != nil {
		if err := validation.ValidateCompanyName(*in.CompanyName); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		brand.CompanyName = strings.TrimSpace(*in.CompanyName)
	}
	if in.Industry != nil {
		brand.Industry = in.Industry
	}
	if in.Description != nil {
		if err := validation.ValidateDescription("описание", in.Description); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		brand.Description = in.Description
	}
	if in.Website != nil {
		if err := validation.ValidateExternalLink(in.Website); err != nil {
			return nil, apperror.Validation(err.Error())
		}
		brand.Website = in.Website
	}
	if in.LogoURL != nil {
		if err := validation.ValidateExternalLink(in.LogoURL); err != nil && !strings.HasPrefix(*in.LogoURL, "/media/") {
			return nil, apperror.Validation(err.Error())
		}
		brand.LogoURL = in.LogoURL
	}

	if err := s.brands.Update(ctx, brand); err != nil {
		return nil, mapRepoError(err, repository.ErrBrandNotFound, apperror.ErrProfileNotFound)
	}

	return brand, nil
}

// UpdateProfileImage сохраняет ссылку на аватар пользователя и его профиля автора.
func (s *ProfileService) UpdateProfileImage(ctx context.Context, userID uuid.UUID, url string) error {
	if err := s.users.UpdateProfileImage(ctx, userID, url); err != nil {
		return mapRepoError(err, repository.ErrUserNotFound, apperror.ErrUserNotFound)
	}

	creator, err := s.creators.GetByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCreatorNotFound) {
		return nil
	}
	if err != nil {
		return apperror.Internal(err)
	}

	creator.ProfileImageURL = &url
	if err := s.creators.Update(ctx, creator); err != nil {
		return mapRepoError(err, repository.ErrCreatorNotFound, apperror.ErrProfileNotFound)
	}
	return nil
}

// UpdateBrandLogo сохраняет ссылку на логотип бренда пользователя.
func (s *ProfileService) UpdateBrandLogo(ctx context.Context, userID uuid.UUID, url string) error {
	brand, err := s.brands.GetByUserID(ctx, userID)
	if err != nil {
		return mapRepoError(err, repository.ErrBrandNotFound, apperror.ErrBrandOnly)
	}

	brand.LogoURL = &url
	if err := s.brands.Update(ctx, brand); err != nil {
		return mapRepoError(err, repository.ErrBrandNotFound, apperror.ErrProfileNotFound)
	}
	return nil
}

func (s *ProfileService) ensureBrand(ctx context.Context, user *models.User) (*models.Brand, error) {
	existing, err := s.brands.GetByUserID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrBrandNotFound) {
		return nil, apperror.Internal(err)
	}

	companyName := defaultCompanyName
	if user.FirstName != nil && strings.TrimSpace(*user.FirstName) != "" {
		companyName = strings.TrimSpace(*user.FirstName)
	}
	industry := defaultIndustry
	description := defaultBrandDescription

	brand := &models.Brand{
		UserID:      user.ID,
		CompanyName: companyName,
		Industry:    &industry,
		Description: &description,
	}
	if err := s.brands.Create(ctx, brand); err != nil {
		return nil, apperror.Internal(err)
	}

	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"user_id":  user.ID,
			"brand_id": brand.ID,
		}).Info("profile service: создан профиль бренда")
	}

	return brand, nil
}

func (s *ProfileService) ensureCreator(ctx context.Context, user *models.User) (*models.Creator, error) {
	existing, err := s.creators.GetByUserID(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrCreatorNotFound) {
		return nil, apperror.Internal(err)
	}

	firstName := defaultCreatorName
	if user.FirstName != nil && strings.TrimSpace(*user.FirstName) != "" {
		firstName = strings.TrimSpace(*user.FirstName)
	}
	displayName := firstName
	if user.LastName != nil && strings.TrimSpace(*user.LastName) != "" {
		displayName += " " + strings.TrimSpace(*user.LastName)
	}
	bio := defaultCreatorBio
	location := defaultCreatorLocation

	base := creatorUsernameBase(user.FirstName)
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		username := base
		if attempt > 0 {
			username = base + "_" + uuid.NewString()[:6]
		} else {
			taken, err := s.creators.UsernameExists(ctx, username)
			if err != nil {
				return nil, apperror.Internal(err)
			}
			if taken {
				continue
			}
		}

		creator := &models.Creator{
			UserID:         user.ID,
			Username:       username,
			DisplayName:    displayName,
			Bio:            &bio,
			Niche:          defaultCreatorNiche,
			FollowersCount: defaultCreatorFollowers,
			EngagementRate: defaultEngagementRate,
			AverageRate:    defaultAverageRate,
			Location:       &location,
			Tags:           []string{},
		}
		err := s.creators.Create(ctx, creator)
		if errors.Is(err, repository.ErrUsernameTaken) {
			continue
		}
		if err != nil {
			return nil, apperror.Internal(err)
		}

		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"user_id":    user.ID,
				"creator_id": creator.ID,
				"username":   creator.Username,
			}).Info("profile service: создан профиль автора")
		}
		return creator, nil
	}

	return nil, apperror.New(apperror.ErrCodeConflict, "не удалось подобрать свободный username")
}

// creatorUsernameBase строит username из имени пользователя.
func creatorUsernameBase(firstName *string) string {
	if firstName == nil {
		return defaultCreatorUsername
	}
	name := usernameCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(*firstName)), "")
	if validation.ValidateUsername(name) != nil {
		return defaultCreatorUsername
	}
	return name
}

func normalizeTags(tags []string) []string {
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		result = append(result, strings.TrimSpace(tag))
	}
	return result
}
