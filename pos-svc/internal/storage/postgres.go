package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"foodpos/pos-svc/internal/domain"

	"github.com/lib/pq"
)

const foreignKeyViolation = "23503"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

// translate maps driver errors onto the domain taxonomy.
func translate(err error, entity string, id int) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(entity, id)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
		return fmt.Errorf("%s %d is referenced by other records: %w", entity, id, domain.ErrConflict)
	}
	return err
}

// expectOne turns a zero row count into a not found error.
func expectOne(result sql.Result, entity string, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound(entity, id)
	}
	return nil
}

func int64s(ids []int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}
