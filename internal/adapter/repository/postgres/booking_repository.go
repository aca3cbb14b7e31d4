package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports"
)

const bookingSelect = `
	SELECT id, membership_id, application_no, username, email, officer_designation, phone_number, guest_type,
	       service_name, service_type, check_in, check_out, event_date, number_of_days,
	       building, floor, room_type, room_number, room_id,
	       total_cost, payment_status, status, rejection_reason, is_checkout, last_check_out, created_at
	FROM bookings`

const bookingInsert = `
	INSERT INTO bookings (id, membership_id, application_no, username, email, officer_designation, phone_number, guest_type,
	                      service_name, service_type, check_in, check_out, event_date, number_of_days,
	                      building, floor, room_type, room_number, room_id,
	                      total_cost, payment_status, status, rejection_reason, is_checkout, last_check_out, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var checkIn, checkOut, eventDate, lastCheckOut sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.MembershipID,
		&b.ApplicationNo,
		&b.Username,
		&b.Email,
		&b.OfficerDesignation,
		&b.PhoneNumber,
		&b.GuestType,
		&b.ServiceName,
		&b.ServiceType,
		&checkIn,
		&checkOut,
		&eventDate,
		&b.NumberOfDays,
		&b.Building,
		&b.Floor,
		&b.RoomType,
		&b.RoomNumber,
		&b.RoomID,
		&b.TotalCost,
		&b.PaymentStatus,
		&b.Status,
		&b.RejectionReason,
		&b.IsCheckout,
		&lastCheckOut,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if checkIn.Valid {
		b.CheckIn = &checkIn.Time
	}
	if checkOut.Valid {
		b.CheckOut = &checkOut.Time
	}
	if eventDate.Valid {
		b.EventDate = &eventDate.Time
	}
	if lastCheckOut.Valid {
		b.LastCheckOut = &lastCheckOut.Time
	}

	return &b, nil
}

func bookingArgs(b *domain.Booking) []any {
	return []any{
		b.ID,
		b.MembershipID,
		b.ApplicationNo,
		b.Username,
		b.Email,
		b.OfficerDesignation,
		b.PhoneNumber,
		b.GuestType,
		b.ServiceName,
		b.ServiceType,
		nullTime(b.CheckIn),
		nullTime(b.CheckOut),
		nullTime(b.EventDate),
		b.NumberOfDays,
		b.Building,
		b.Floor,
		b.RoomType,
		b.RoomNumber,
		b.RoomID,
		b.TotalCost,
		b.PaymentStatus,
		b.Status,
		b.RejectionReason,
		b.IsCheckout,
		nullTime(b.LastCheckOut),
		b.CreatedAt,
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if _, err := r.db.ExecContext(ctx, bookingInsert, bookingArgs(b)...); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// CreateConfirmedWithDebit inserts a confirmed booking, its debit
// transaction and the balance decrement as one unit. The balance guard in
// the UPDATE keeps a concurrent writer from overdrawing the membership.
func (r *BookingRepository) CreateConfirmedWithDebit(ctx context.Context, b *domain.Booking, debit *domain.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer dbTx.Rollback()

	if err := applyDebit(ctx, dbTx, debit); err != nil {
		return err
	}

	if _, err := dbTx.ExecContext(ctx, bookingInsert, bookingArgs(b)...); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return dbTx.Commit()
}

// ConfirmWithDebit moves a pending booking to confirmed and posts its
// debit in one unit. If the debit fails, the booking row stays pending.
func (r *BookingRepository) ConfirmWithDebit(ctx context.Context, b *domain.Booking, debit *domain.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer dbTx.Rollback()

	if err := applyDebit(ctx, dbTx, debit); err != nil {
		return err
	}

	result, err := dbTx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, payment_status = $2 WHERE id = $3 AND status = $4`,
		domain.BookingConfirmed, domain.PaymentPaid, b.ID, domain.BookingPending,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("booking %s is not pending: %w", b.ID, domain.ErrInvalidState)
	}

	return dbTx.Commit()
}

func applyDebit(ctx context.Context, dbTx *sql.Tx, debit *domain.Transaction) error {
	result, err := dbTx.ExecContext(ctx,
		`UPDATE memberships SET balance = balance - $1 WHERE id = $2 AND balance >= $1`,
		debit.Amount, debit.MembershipID,
	)
	if err != nil {
		return fmt.Errorf("failed to debit membership: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("membership %s: %w", debit.MembershipID, domain.ErrInsufficientBalance)
	}

	if _, err := dbTx.ExecContext(ctx,
		`INSERT INTO transactions (id, membership_id, amount, type, description, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		debit.ID, debit.MembershipID, debit.Amount, debit.Type, debit.Description, debit.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert debit transaction: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, bookingSelect+` WHERE id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter ports.BookingFilter) ([]domain.Booking, error) {
	query := bookingSelect
	var args []any

	if filter.MembershipID != nil {
		args = append(args, *filter.MembershipID)
		query += fmt.Sprintf(" WHERE membership_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clause := " WHERE"
		if len(args) > 1 {
			clause = " AND"
		}
		query += fmt.Sprintf("%s status = $%d", clause, len(args))
	}
	query += " ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `
	UPDATE bookings
	SET phone_number = $1, guest_type = $2, check_in = $3, check_out = $4, event_date = $5, number_of_days = $6,
	    status = $7, payment_status = $8, rejection_reason = $9, is_checkout = $10, last_check_out = $11
	WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		b.PhoneNumber,
		b.GuestType,
		nullTime(b.CheckIn),
		nullTime(b.CheckOut),
		nullTime(b.EventDate),
		b.NumberOfDays,
		b.Status,
		b.PaymentStatus,
		b.RejectionReason,
		b.IsCheckout,
		nullTime(b.LastCheckOut),
		b.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("booking %s: %w", b.ID, domain.ErrNotFound)
	}

	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("booking %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// CountRoomOverlaps counts live stay bookings holding roomID over a date
// range that intersects [checkIn, checkOut). Same-day stays occupy the
// room for one night, hence the GREATEST on the stored range.
func (r *BookingRepository) CountRoomOverlaps(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error) {
	if !checkOut.After(checkIn) {
		checkOut = checkIn.AddDate(0, 0, 1)
	}

	query := `
	SELECT COUNT(*)
	FROM bookings
	WHERE room_id = $1
	  AND status IN ($2, $3)
	  AND check_in < $4
	  AND GREATEST(check_out, check_in + INTERVAL '1 day') > $5
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, roomID, domain.BookingPending, domain.BookingConfirmed, checkOut, checkIn).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
