package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/collabhub-backend/internal/models"
	"github.com/ignatzorin/collabhub-backend/internal/repository/common"
)

var (
	// ErrContractNotFound возвращается, когда договор не найден.
	ErrContractNotFound = fmt.Errorf("contract: %w", common.ErrNotFound)
	// ErrInvalidSignerRole возвращается для роли, которая не может подписывать договор.
	ErrInvalidSignerRole = errors.New("invalid signer role")
)

// signColumns сопоставляет роль подписанта с колонками флага и времени подписи.
var signColumns = map[string][2]string{
	models.RoleCreator: {"creator_signed", "creator_signed_at"},
	models.RoleBrand:   {"brand_signed", "brand_signed_at"},
}

// ContractRepository работает с таблицей contracts.
type ContractRepository struct {
	db *sqlx.DB
}

// NewContractRepository создаёт экземпляр репозитория.
func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// CreateWithPayment сохраняет договор и первый платёж по нему в одной транзакции.
func (r *ContractRepository) CreateWithPayment(ctx context.Context, contract *models.Contract, payment *models.Payment) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		contractQuery := `
			INSERT INTO contracts (offer_id, final_amount, terms, pdf_url)
			VALUES ($1, $2, $3, $4)
			RETURNING id, creator_signed, brand_signed, created_at
		`
		if err := tx.QueryRowxContext(
			ctx, contractQuery,
			contract.OfferID, contract.FinalAmount, contract.Terms, contract.PDFURL,
		).Scan(&contract.ID, &contract.CreatorSigned, &contract.BrandSigned, &contract.CreatedAt); err != nil {
			return fmt.Errorf("contract repository: create %w", err)
		}

		payment.ContractID = contract.ID
		paymentQuery := `
			INSERT INTO payments (contract_id, amount, status, due_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`
		if err := tx.QueryRowxContext(
			ctx, paymentQuery,
			payment.ContractID, payment.Amount, payment.Status, payment.DueDate,
		).Scan(&payment.ID, &payment.CreatedAt); err != nil {
			return fmt.Errorf("contract repository: create payment %w", err)
		}

		return nil
	})
}

// GetByID возвращает договор по идентификатору.
func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return common.GetByID[models.Contract](ctx, r.db, "contracts", id, ErrContractNotFound)
}

// GetDetails возвращает договор вместе с оффером и сторонами.
func (r *ContractRepository) GetDetails(ctx context.Context, id uuid.UUID) (*models.ContractWithDetails, error) {
	query := `SELECT ` + contractDetailsColumns() + ` FROM contracts k
		JOIN offers o ON o.id = k.offer_id ` + offerDetailsJoins + ` WHERE k.id = $1`

	var contract models.ContractWithDetails
	if err := r.db.GetContext(ctx, &contract, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("contract repository: get details %w", err)
	}

	return &contract, nil
}

// List возвращает договоры стороны сделки.
func (r *ContractRepository) List(ctx context.Context, filter models.ContractFilter) ([]models.ContractWithDetails, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if filter.CreatorID != nil {
		conditions = append(conditions, fmt.Sprintf("o.creator_id = $%d", argIndex))
		args = append(args, *filter.CreatorID)
		argIndex++
	}
	if filter.BrandID != nil {
		conditions = append(conditions, fmt.Sprintf("cp.brand_id = $%d", argIndex))
		args = append(args, *filter.BrandID)
	}

	query := `SELECT ` + contractDetailsColumns() + ` FROM contracts k
		JOIN offers o ON o.id = k.offer_id ` + offerDetailsJoins
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY k.created_at DESC`

	contracts := []models.ContractWithDetails{}
	if err := r.db.SelectContext(ctx, &contracts, query, args...); err != nil {
		return nil, fmt.Errorf("contract repository: list %w", err)
	}

	return contracts, nil
}

// Sign выставляет подпись стороны с указанной ролью.
// Время первой подписи сохраняется при повторном вызове.
func (r *ContractRepository) Sign(ctx context.Context, id uuid.UUID, role string, at time.Time) (*models.Contract, error) {
	cols, ok := signColumns[role]
	if !ok {
		return nil, ErrInvalidSignerRole
	}

	query := fmt.Sprintf(`
		UPDATE contracts
		SET %[1]s = TRUE, %[2]s = COALESCE(%[2]s, $2)
		WHERE id = $1
		RETURNING %[3]s`, cols[0], cols[1], strings.Join(contractColumnList, ", "))

	var contract models.Contract
	if err := r.db.GetContext(ctx, &contract, query, id, at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("contract repository: sign %w", err)
	}

	return &contract, nil
}

// GetParties возвращает пользователей обеих сторон договора.
func (r *ContractRepository) GetParties(ctx context.Context, contractID uuid.UUID) (*models.ContractParties, error) {
	query := `
		SELECT k.id AS contract_id, cr.id AS creator_id, cr.user_id AS creator_user_id,
			b.id AS brand_id, b.user_id AS brand_user_id
		FROM contracts k
		JOIN offers o ON o.id = k.offer_id
		JOIN creators cr ON cr.id = o.creator_id
		JOIN campaigns cp ON cp.id = o.campaign_id
		JOIN brands b ON b.id = cp.brand_id
		WHERE k.id = $1
	`

	var parties models.ContractParties
	if err := r.db.GetContext(ctx, &parties, query, contractID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("contract repository: get parties %w", err)
	}

	return &parties, nil
}

// contractDetailsColumns колонки договора с вложенным оффером.
func contractDetailsColumns() string {
	return common.SelectAs("k", "", contractColumnList) + ", " + offerDetailsColumns("offer.")
}
