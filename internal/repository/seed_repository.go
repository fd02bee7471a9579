package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/repository/common"
)

const seedCreatorInsert = `INSERT INTO creators (user_id, username, display_name, bio, niche, followers_count,
	engagement_rate, average_rate, location, profile_image_url, tags, is_active)`

// seedCreatorConflict пропускает демо-профиль, если его username уже занят.
const seedCreatorConflict = `ON CONFLICT (username) DO NOTHING`

// SeedAccount демо-пользователь вместе с профилем роли.
type SeedAccount struct {
	User    models.User
	Creator *models.Creator
	Brand   *models.Brand
}

// SeedRepository заполняет базу демонстрационными данными.
type SeedRepository struct {
	db *sqlx.DB
}

// NewSeedRepository создаёт экземпляр репозитория.
func NewSeedRepository(db *sqlx.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// Seed создаёт аккаунты одной транзакцией. Пользователи с уже занятым email
// пропускаются вместе с профилями, профили с занятым username не создаются.
// Возвращает число созданных аккаунтов.
func (r *SeedRepository) Seed(ctx context.Context, accounts []SeedAccount) (int, error) {
	created := 0

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		creators := common.NewBatchInserter(tx, seedCreatorInsert, 12, len(accounts)).
			WithSuffix(seedCreatorConflict)

		for i := range accounts {
			account := &accounts[i]
			userQuery := `
				INSERT INTO users (email, password_hash, first_name, last_name, profile_image_url, role, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, TRUE)
				ON CONFLICT (email) DO NOTHING
				RETURNING id
			`
			err := tx.QueryRowxContext(
				ctx, userQuery,
				account.User.Email,
				account.User.PasswordHash,
				account.User.FirstName,
				account.User.LastName,
				account.User.ProfileImageURL,
				account.User.Role,
			).Scan(&account.User.ID)
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			if err != nil {
				return fmt.Errorf("seed repository: create user %w", err)
			}
			created++

			if c := account.Creator; c != nil {
				c.UserID = account.User.ID
				if err := creators.Add(ctx,
					c.UserID, c.Username, c.DisplayName, c.Bio, c.Niche, c.FollowersCount,
					c.EngagementRate, c.AverageRate, c.Location, c.ProfileImageURL, c.Tags, true,
				); err != nil {
					return fmt.Errorf("seed repository: create creator %w", err)
				}
			}

			if b := account.Brand; b != nil {
				b.UserID = account.User.ID
				brandQuery := `
					INSERT INTO brands (user_id, company_name, industry, description, website, logo_url)
					VALUES ($1, $2, $3, $4, $5, $6)
					RETURNING id, created_at
				`
				if err := tx.QueryRowxContext(
					ctx, brandQuery,
					b.UserID, b.CompanyName, b.Industry, b.Description, b.Website, b.LogoURL,
				).Scan(&b.ID, &b.CreatedAt); err != nil {
					return fmt.Errorf("seed repository: create brand %w", err)
				}
			}
		}

		if err := creators.Flush(ctx); err != nil {
			return fmt.Errorf("seed repository: flush creators %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}
