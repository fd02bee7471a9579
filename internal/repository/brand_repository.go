package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/repository/common"
)

// ErrBrandNotFound возвращается, когда профиль бренда не найден.
var ErrBrandNotFound = fmt.Errorf("brand: %w", common.ErrNotFound)

// BrandRepository работает с таблицей brands.
type BrandRepository struct {
	db *sqlx.DB
}

// NewBrandRepository создаёт экземпляр репозитория.
func NewBrandRepository(db *sqlx.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create сохраняет профиль бренда.
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (user_id, company_name, industry, description, website, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		brand.UserID, brand.CompanyName, brand.Industry, brand.Description, brand.Website, brand.LogoURL,
	).Scan(&brand.ID, &brand.CreatedAt); err != nil {
		return fmt.Errorf("brand repository: create %w", err)
	}

	return nil
}

// GetByID возвращает бренд по идентификатору.
func (r *BrandRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Brand, error) {
	return common.GetByID[models.Brand](ctx, r.db, "brands", id, ErrBrandNotFound)
}

// GetByUserID возвращает бренд, привязанный к пользователю.
func (r *BrandRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Brand, error) {
	return common.GetByField[models.Brand](ctx, r.db, "brands", "user_id", userID, ErrBrandNotFound)
}

// Update сохраняет изменяемые поля профиля бренда.
func (r *BrandRepository) Update(ctx context.Context, brand *models.Brand) error {
	query := `
		UPDATE brands
		SET company_name = $2, industry = $3, description = $4, website = $5, logo_url = $6
		WHERE id = $1
		RETURNING ` + strings.Join(brandColumnList, ", ")

	if err := r.db.GetContext(
		ctx, brand, query,
		brand.ID, brand.CompanyName, brand.Industry, brand.Description, brand.Website, brand.LogoURL,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBrandNotFound
		}
		return fmt.Errorf("brand repository: update %w", err)
	}

	return nil
}
