package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/club_membership/internal/core/domain"
)

type MembershipRepository struct {
	db *sql.DB
}

func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
	INSERT INTO memberships (id, officer_name, officer_email, officer_designation, membership_type, start_date, end_date, status, balance, card_number, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.OfficerName,
		m.OfficerEmail,
		m.OfficerDesignation,
		m.MembershipType,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.Balance,
		m.CardNumber,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert membership: %w", err)
	}

	return nil
}

// GetByID returns the membership with its transaction and booking views
// filled in from their own tables. The embedded lists are derived reads,
// the tables stay the source of truth.
func (r *MembershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Membership, error) {
	query := `
	SELECT id, officer_name, officer_email, officer_designation, membership_type, start_date, end_date, status, balance, card_number, created_at
	FROM memberships
	WHERE id = $1
	`

	var m domain.Membership
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.OfficerName,
		&m.OfficerEmail,
		&m.OfficerDesignation,
		&m.MembershipType,
		&m.StartDate,
		&m.EndDate,
		&m.Status,
		&m.Balance,
		&m.CardNumber,
		&m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("membership %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	transactions, err := r.transactionsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Transactions = transactions

	bookings, err := r.bookingsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Bookings = bookings

	return &m, nil
}

// List returns membership summaries without the embedded views.
func (r *MembershipRepository) List(ctx context.Context) ([]domain.Membership, error) {
	query := `
	SELECT id, officer_name, officer_email, officer_designation, membership_type, start_date, end_date, status, balance, card_number, created_at
	FROM memberships
	ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var memberships []domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(
			&m.ID,
			&m.OfficerName,
			&m.OfficerEmail,
			&m.OfficerDesignation,
			&m.MembershipType,
			&m.StartDate,
			&m.EndDate,
			&m.Status,
			&m.Balance,
			&m.CardNumber,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}

		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

func (r *MembershipRepository) Update(ctx context.Context, m *domain.Membership) error {
	query := `
	UPDATE memberships
	SET officer_name = $1, officer_email = $2, officer_designation = $3, membership_type = $4, start_date = $5, end_date = $6, status = $7
	WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		m.OfficerName,
		m.OfficerEmail,
		m.OfficerDesignation,
		m.MembershipType,
		m.StartDate,
		m.EndDate,
		m.Status,
		m.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership %s: %w", m.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the membership and everything it owns in one database
// transaction.
func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE membership_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE membership_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete bookings: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership %s: %w", id, domain.ErrNotFound)
	}

	return tx.Commit()
}

func (r *MembershipRepository) transactionsFor(ctx context.Context, membershipID uuid.UUID) ([]domain.Transaction, error) {
	query := `
	SELECT id, membership_id, amount, type, description, created_at
	FROM transactions
	WHERE membership_id = $1
	ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, membershipID)
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

func (r *MembershipRepository) bookingsFor(ctx context.Context, membershipID uuid.UUID) ([]domain.Booking, error) {
	query := bookingSelect + `
	WHERE membership_id = $1
	ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, membershipID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *b)
	}

	return bookings, rows.Err()
}
