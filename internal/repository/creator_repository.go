package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/repository/common"
)

var (
	// ErrCreatorNotFound возвращается, когда профиль автора не найден.
	ErrCreatorNotFound = fmt.Errorf("creator: %w", common.ErrNotFound)
	// ErrUsernameTaken возвращается при конфликте username.
	ErrUsernameTaken = fmt.Errorf("creator username: %w", common.ErrAlreadyExists)
)

// CreatorRepository работает с таблицей creators.
type CreatorRepository struct {
	db *sqlx.DB
}

// NewCreatorRepository создаёт экземпляр репозитория.
func NewCreatorRepository(db *sqlx.DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

// Create сохраняет профиль автора.
func (r *CreatorRepository) Create(ctx context.Context, creator *models.Creator) error {
	query := `
		INSERT INTO creators (user_id, username, display_name, bio, niche, followers_count, engagement_rate,
			average_rate, location, profile_image_url, tags, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE)
		RETURNING id, is_active, created_at
	`

	tags := creator.Tags
	if tags == nil {
		tags = pq.StringArray{}
	}

	if err := r.db.QueryRowxContext(
		ctx, query,
		creator.UserID,
		creator.Username,
		creator.DisplayName,
		creator.Bio,
		creator.Niche,
		creator.FollowersCount,
		creator.EngagementRate,
		creator.AverageRate,
		creator.Location,
		creator.ProfileImageURL,
		tags,
	).Scan(&creator.ID, &creator.IsActive, &creator.CreatedAt); err != nil {
		if isUniqueViolation(err, "creators_username_key") {
			return ErrUsernameTaken
		}
		return fmt.Errorf("creator repository: create %w", err)
	}
	creator.Tags = tags

	return nil
}

// GetByID возвращает автора по идентификатору.
func (r *CreatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Creator, error) {
	return common.GetByID[models.Creator](ctx, r.db, "creators", id, ErrCreatorNotFound)
}

// GetByUserID возвращает профиль автора, привязанный к пользователю.
func (r *CreatorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Creator, error) {
	return common.GetByField[models.Creator](ctx, r.db, "creators", "user_id", userID, ErrCreatorNotFound)
}

// UsernameExists проверяет, занят ли username.
func (r *CreatorRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM creators WHERE username = $1)`, username); err != nil {
		return false, fmt.Errorf("creator repository: username exists %w", err)
	}
	return exists, nil
}

// List возвращает активных авторов по фильтрам ниши, аудитории и локации.
func (r *CreatorRepository) List(ctx context.Context, filter models.CreatorFilter) ([]models.Creator, error) {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Niche != "" {
		conditions = append(conditions, fmt.Sprintf("niche = $%d", argIndex))
		args = append(args, filter.Niche)
		argIndex++
	}
	if filter.MinFollowers != nil {
		conditions = append(conditions, fmt.Sprintf("followers_count >= $%d", argIndex))
		args = append(args, *filter.MinFollowers)
		argIndex++
	}
	if filter.MaxFollowers != nil {
		conditions = append(conditions, fmt.Sprintf("followers_count <= $%d", argIndex))
		args = append(args, *filter.MaxFollowers)
		argIndex++
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Location+"%")
		argIndex++
	}

	query := `SELECT ` + strings.Join(creatorColumnList, ", ") + ` FROM creators WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY followers_count DESC, created_at`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	creators := []models.Creator{}
	if err := r.db.SelectContext(ctx, &creators, query, args...); err != nil {
		return nil, fmt.Errorf("creator repository: list %w", err)
	}

	return creators, nil
}

// Update сохраняет изменяемые поля профиля автора.
func (r *CreatorRepository) Update(ctx context.Context, creator *models.Creator) error {
	query := `
		UPDATE creators
		SET display_name = $2, bio = $3, niche = $4, followers_count = $5, engagement_rate = $6,
			average_rate = $7, location = $8, profile_image_url = $9, tags = $10
		WHERE id = $1
		RETURNING ` + strings.Join(creatorColumnList, ", ")

	tags := creator.Tags
	if tags == nil {
		tags = pq.StringArray{}
	}

	if err := r.db.GetContext(
		ctx, creator, query,
		creator.ID,
		creator.DisplayName,
		creator.Bio,
		creator.Niche,
		creator.FollowersCount,
		creator.EngagementRate,
		creator.AverageRate,
		creator.Location,
		creator.ProfileImageURL,
		tags,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCreatorNotFound
		}
		return fmt.Errorf("creator repository: update %w", err)
	}

	return nil
}

// isUniqueViolation проверяет, что ошибка вызвана нарушением уникального индекса.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == "23505" && (constraint == "" || pqErr.Constraint == constraint)
}
