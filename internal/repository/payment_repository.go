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
	// ErrPaymentNotFound возвращается, когда платёж не найден.
	ErrPaymentNotFound = fmt.Errorf("payment: %w", common.ErrNotFound)
	// ErrPaymentAlreadyPaid возвращается при повторной отметке оплаты.
	ErrPaymentAlreadyPaid = fmt.Errorf("payment already paid: %w", common.ErrConflict)
)

// PaymentRepository работает с таблицами payments и performance_reports.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository создаёт экземпляр репозитория.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetByID возвращает платёж по идентификатору.
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return common.GetByID[models.Payment](ctx, r.db, "payments", id, ErrPaymentNotFound)
}

// List возвращает платежи стороны сделки с фильтром по статусу.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.PaymentWithDetails, error) {
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
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argIndex))
		args = append(args, filter.Status)
	}

	query := paymentDetailsQuery()
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY p.due_date ASC, p.created_at DESC`

	payments := []models.PaymentWithDetails{}
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("payment repository: list %w", err)
	}

	return payments, nil
}

// ListOverdue возвращает неоплаченные платежи с истёкшим сроком.
func (r *PaymentRepository) ListOverdue(ctx context.Context, now time.Time) ([]models.PaymentWithDetails, error) {
	query := paymentDetailsQuery() + ` WHERE p.status = $1 AND p.due_date < $2 ORDER BY p.due_date ASC`

	payments := []models.PaymentWithDetails{}
	if err := r.db.SelectContext(ctx, &payments, query, models.PaymentStatusPending, now); err != nil {
		return nil, fmt.Errorf("payment repository: list overdue %w", err)
	}

	return payments, nil
}

// MarkPaidWithReport отмечает платёж оплаченным и сохраняет отчёт по договору
// в одной транзакции. Повторная оплата возвращает ErrPaymentAlreadyPaid.
func (r *PaymentRepository) MarkPaidWithReport(ctx context.Context, paymentID uuid.UUID, paidAt time.Time, report *models.PerformanceReport) (*models.Payment, error) {
	var payment models.Payment

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var current models.Payment
		lockQuery := `SELECT ` + strings.Join(paymentColumnList, ", ") + ` FROM payments WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &current, lockQuery, paymentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("payment repository: lock %w", err)
		}
		if current.Status == models.PaymentStatusPaid {
			return ErrPaymentAlreadyPaid
		}

		updateQuery := `
			UPDATE payments
			SET status = $2, paid_at = $3
			WHERE id = $1
			RETURNING ` + strings.Join(paymentColumnList, ", ")
		if err := tx.GetContext(ctx, &payment, updateQuery, paymentID, models.PaymentStatusPaid, paidAt); err != nil {
			return fmt.Errorf("payment repository: mark paid %w", err)
		}

		report.ContractID = payment.ContractID
		report.GeneratedAt = paidAt
		if err := insertReport(ctx, tx, report); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// paymentDetailsQuery собирает SELECT платежа с договором, оффером и сторонами.
func paymentDetailsQuery() string {
	columns := strings.Join([]string{
		common.SelectAs("p", "", paymentColumnList),
		common.SelectAs("k", "contract.", contractColumnList),
		offerDetailsColumns("contract.offer."),
	}, ", ")

	return `SELECT ` + columns + ` FROM payments p
		JOIN contracts k ON k.id = p.contract_id
		JOIN offers o ON o.id = k.offer_id ` + offerDetailsJoins
}
