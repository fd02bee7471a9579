package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/collabhub-backend/internal/logger"
	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/pkg/apperror"
	"github.com/ignatzorin/collabhub-backend/internal/repository"
)

const (
	// SeedPassword пароль всех демо-аккаунтов.
	SeedPassword    = "password123"
	seedImageParams = "w=150&h=150&fit=crop&crop=face"
)

// SeedRepository описывает массовое создание демо-аккаунтов.
type SeedRepository interface {
	Seed(ctx context.Context, accounts []repository.SeedAccount) (int, error)
}

// SeedResult итог заполнения демо-данными.
type SeedResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// SeedService создаёт демонстрационных авторов и бренд.
type SeedService struct {
	repo SeedRepository
}

// NewSeedService создаёт сервис демо-данных.
func NewSeedService(repo SeedRepository) *SeedService {
	return &SeedService{repo: repo}
}

type seedCreator struct {
	email, firstName, lastName, username, bio, niche, location, image string
	followers                                                         int
	engagement                                                        string
	rate                                                              int64
	tags                                                              []string
}

var seedCreators = []seedCreator{
	{
		email: "sarah@example.com", firstName: "Sarah", lastName: "Johnson", username: "sarah_lifestyle",
		bio:   "Lifestyle content creator sharing daily inspiration and wellness tips",
		niche: "Lifestyle", location: "Los Angeles, CA", followers: 85000, engagement: "4.2", rate: 1200,
		image: "https://images.unsplash.com/photo-1494790108755-2616b612b5bc?" + seedImageParams,
		tags:  []string{"lifestyle", "wellness", "fashion", "travel"},
	},
	{
		email: "mike@example.com", firstName: "Mike", lastName: "Chen", username: "mike_fitness",
		bio:   "Fitness coach helping people achieve their health goals",
		niche: "Fitness", location: "New York, NY", followers: 120000, engagement: "5.8", rate: 2000,
		image: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?" + seedImageParams,
		tags:  []string{"fitness", "health", "workout", "nutrition"},
	},
	{
		email: "emma@example.com", firstName: "Emma", lastName: "Rodriguez", username: "emma_foodie",
		bio:   "Food blogger showcasing delicious recipes and restaurant reviews",
		niche: "Food", location: "Miami, FL", followers: 95000, engagement: "6.1", rate: 1500,
		image: "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?" + seedImageParams,
		tags:  []string{"food", "recipes", "restaurants", "cooking"},
	},
	{
		email: "alex@example.com", firstName: "Alex", lastName: "Thompson", username: "alex_tech",
		bio:   "Tech reviewer covering the latest gadgets and innovations",
		niche: "Technology", location: "San Francisco, CA", followers: 200000, engagement: "3.9", rate: 3500,
		image: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?" + seedImageParams,
		tags:  []string{"technology", "gadgets", "reviews", "innovation"},
	},
	{
		email: "maya@example.com", firstName: "Maya", lastName: "Patel", username: "maya_travel",
		bio:   "Travel enthusiast sharing adventures from around the globe",
		niche: "Travel", location: "Austin, TX", followers: 150000, engagement: "4.7", rate: 2500,
		image: "https://images.unsplash.com/photo-1489424731084-a5d8b219a5bb?" + seedImageParams,
		tags:  []string{"travel", "adventure", "culture", "photography"},
	},
}

// Seed создаёт пять демо-авторов и бренд Nike. Существующие email пропускаются,
// поэтому повторный вызов безопасен.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	accounts, err := DemoAccounts()
	if err != nil {
		return nil, apperror.Internal(err)
	}

	created, err := s.repo.Seed(ctx, accounts)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	result := &SeedResult{Created: created, Skipped: len(accounts) - created}
	if logger.Log != nil {
		logger.Log.WithFields(map[string]interface{}{
			"created": result.Created,
			"skipped": result.Skipped,
		}).Info("seed service: демо-данные загружены")
	}

	return result, nil
}

// DemoAccounts собирает демо-аккаунты с захешированным общим паролем.
func DemoAccounts() ([]repository.SeedAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("seed service: хеширование пароля %w", err)
	}
	passwordHash := string(hash)

	creatorRole := models.RoleCreator
	brandRole := models.RoleBrand

	accounts := make([]repository.SeedAccount, 0, len(seedCreators)+1)
	for _, c := range seedCreators {
		c := c
		accounts = append(accounts, repository.SeedAccount{
			User: models.User{
				Email:           c.email,
				PasswordHash:    passwordHash,
				FirstName:       &c.firstName,
				LastName:        &c.lastName,
				ProfileImageURL: &c.image,
				Role:            &creatorRole,
			},
			Creator: &models.Creator{
				Username:        c.username,
				DisplayName:     c.firstName + " " + c.lastName,
				Bio:             &c.bio,
				Niche:           c.niche,
				FollowersCount:  c.followers,
				EngagementRate:  decimal.RequireFromString(c.engagement),
				AverageRate:     decimal.NewFromInt(c.rate),
				Location:        &c.location,
				ProfileImageURL: &c.image,
				Tags:            c.tags,
				IsActive:        true,
			},
		})
	}

	firstName, lastName := "Brand", "Manager"
	industry := "Sportswear"
	description := "Global leader in athletic footwear and apparel"
	website := "https://nike.com"
	logo := "https://logos-world.net/wp-content/uploads/2020/04/Nike-Logo.png"
	accounts = append(accounts, repository.SeedAccount{
		User: models.User{
			Email:        "brand@nike.com",
			PasswordHash: passwordHash,
			FirstName:    &firstName,
			LastName:     &lastName,
			Role:         &brandRole,
		},
		Brand: &models.Brand{
			CompanyName: "Nike",
			Industry:    &industry,
			Description: &description,
			Website:     &website,
			LogoURL:     &logo,
		},
	})

	return accounts, nil
}
