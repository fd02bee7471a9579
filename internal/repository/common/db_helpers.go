package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// GetByID загружает строку таблицы по первичному ключу.
// Если строки нет, возвращает notFoundErr репозитория.
func GetByID[T any](ctx context.Context, db *sqlx.DB, table string, id interface{}, notFoundErr error) (*T, error) {
	return GetByField[T](ctx, db, table, "id", id, notFoundErr)
}

// GetByField загружает строку по значению уникальной колонки.
func GetByField[T any](ctx context.Context, db *sqlx.DB, table, field string, value interface{}, notFoundErr error) (*T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", table, field)

	if err := db.GetContext(ctx, &entity, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundErr
		}
		return nil, fmt.Errorf("get %s by %s: %w", table, field, err)
	}

	return &entity, nil
}

// BatchInserter копит строки и вставляет их одним INSERT с несколькими VALUES.
type BatchInserter struct {
	tx        *sqlx.Tx
	query     string
	suffix    string
	batchSize int
	columns   int
	rows      int
	values    []interface{}
}

// NewBatchInserter создаёт вставку для запроса вида "INSERT INTO t (a, b)".
// Батч уходит в базу, как только набирается batchSize строк.
func NewBatchInserter(tx *sqlx.Tx, baseQuery string, columns int, batchSize int) *BatchInserter {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &BatchInserter{
		tx:        tx,
		query:     baseQuery,
		batchSize: batchSize,
		columns:   columns,
		values:    make([]interface{}, 0, batchSize*columns),
	}
}

// WithSuffix добавляет хвост после VALUES, например ON CONFLICT.
func (bi *BatchInserter) WithSuffix(suffix string) *BatchInserter {
	bi.suffix = suffix
	return bi
}

// Add ставит строку в очередь.
func (bi *BatchInserter) Add(ctx context.Context, rowValues ...interface{}) error {
	if len(rowValues) != bi.columns {
		return fmt.Errorf("batch insert: expected %d values, got %d", bi.columns, len(rowValues))
	}

	bi.values = append(bi.values, rowValues...)
	bi.rows++

	if bi.rows >= bi.batchSize {
		return bi.Flush(ctx)
	}
	return nil
}

// Flush вставляет накопленные строки. Пустой буфер ничего не делает.
func (bi *BatchInserter) Flush(ctx context.Context) error {
	if bi.rows == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(bi.query)
	b.WriteString(" VALUES ")
	for i := 0; i < bi.rows; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j := 0; j < bi.columns; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", i*bi.columns+j+1)
		}
		b.WriteByte(')')
	}
	if bi.suffix != "" {
		b.WriteByte(' ')
		b.WriteString(bi.suffix)
	}

	if _, err := bi.tx.ExecContext(ctx, b.String(), bi.values...); err != nil {
		return fmt.Errorf("batch insert: %w", err)
	}

	bi.values = bi.values[:0]
	bi.rows = 0
	return nil
}

// WithTransaction выполняет fn в транзакции. Ошибка или паника в fn
// откатывают транзакцию, иначе она коммитится.
func WithTransaction(ctx context.Context, db *sqlx.DB, fn func(*sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
