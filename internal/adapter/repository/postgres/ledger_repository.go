package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/club_membership/internal/core/domain"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append inserts the transaction and moves the membership balance in one
// database transaction. Balance checks are the caller's business; a debit
// here may overdraw.
func (r *LedgerRepository) Append(ctx context.Context, t *domain.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer dbTx.Rollback()

	delta := t.Amount
	if t.Type == domain.TransactionDebit {
		delta = -t.Amount
	}

	result, err := dbTx.ExecContext(ctx,
		`UPDATE memberships SET balance = balance + $1 WHERE id = $2`,
		delta, t.MembershipID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership %s: %w", t.MembershipID, domain.ErrNotFound)
	}

	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO transactions (id, membership_id, amount, type, description, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.MembershipID, t.Amount, t.Type, t.Description, t.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return dbTx.Commit()
}

func (r *LedgerRepository) CurrentBalance(ctx context.Context, membershipID uuid.UUID) (float64, error) {
	var balance float64
	err := r.db.QueryRowContext(ctx,
		`SELECT balance FROM memberships WHERE id = $1`, membershipID,
	).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("membership %s: %w", membershipID, domain.ErrNotFound)
		}
		return 0, err
	}

	return balance, nil
}

func (r *LedgerRepository) ListByMembership(ctx context.Context, membershipID uuid.UUID) ([]domain.Transaction, error) {
	query := `
	SELECT id, membership_id, amount, type, description, created_at
	FROM transactions
	WHERE membership_id = $1
	ORDER BY created_at, id
	`

	return r.queryTransactions(ctx, query, membershipID)
}

func (r *LedgerRepository) List(ctx context.Context) ([]domain.Transaction, error) {
	query := `
	SELECT id, membership_id, amount, type, description, created_at
	FROM transactions
	ORDER BY created_at, id
	`

	return r.queryTransactions(ctx, query)
}

func (r *LedgerRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.MembershipID, &t.Amount, &t.Type, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}
