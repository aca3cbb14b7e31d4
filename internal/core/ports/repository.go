package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/club_membership/internal/core/domain"
)

type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Membership, error)
	List(ctx context.Context) ([]domain.Membership, error)
	Update(ctx context.Context, m *domain.Membership) error
	// Delete removes the membership and its owned transactions and bookings.
	Delete(ctx context.Context, id uuid.UUID) error
}

type LedgerRepository interface {
	// Append inserts the transaction and applies its signed amount to the
	// owning membership's balance in a single database transaction.
	// Returns domain.ErrNotFound if the membership does not resolve.
	Append(ctx context.Context, tx *domain.Transaction) error
	ListByMembership(ctx context.Context, membershipID uuid.UUID) ([]domain.Transaction, error)
	List(ctx context.Context) ([]domain.Transaction, error)
	CurrentBalance(ctx context.Context, membershipID uuid.UUID) (float64, error)
}

type BookingFilter struct {
	MembershipID *uuid.UUID
	Status       *domain.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	// CreateConfirmedWithDebit inserts the booking and posts its debit
	// transaction (including the balance decrement) as one unit. The debit
	// is guarded by balance >= amount; on a failed guard nothing is written
	// and domain.ErrInsufficientBalance is returned.
	CreateConfirmedWithDebit(ctx context.Context, b *domain.Booking, debit *domain.Transaction) error
	// ConfirmWithDebit moves a pending booking to confirmed/Paid and posts
	// its debit transaction as one unit, with the same balance guard.
	ConfirmWithDebit(ctx context.Context, b *domain.Booking, debit *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountRoomOverlaps reports pending or confirmed stay bookings holding
	// roomID with a date range overlapping [checkIn, checkOut).
	CountRoomOverlaps(ctx context.Context, roomID string, checkIn, checkOut time.Time) (int, error)
}

type ServiceRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	// EnsureDefaults seeds the catalog when it is empty.
	EnsureDefaults(ctx context.Context, services []domain.Service) error
}

// EventPublisher emits engine events to interested collaborators
// (notifications, audit). Best effort; publish failures are not fatal.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
