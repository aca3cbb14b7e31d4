package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports"
)

type CreateBookingRequest struct {
	MembershipID string `json:"membership_id"`
	ServiceName  string `json:"service_name"`
	PhoneNumber  string `json:"phone_number"`
	GuestType    string `json:"guest_type"`

	// Stay services
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Building   string `json:"building"`
	Floor      string `json:"floor"`
	RoomType   string `json:"room_type"`
	RoomNumber string `json:"room_number"`

	// Everything else
	EventDate string `json:"event_date"`

	// EnterPending records the booking without payment, awaiting an
	// explicit confirm or reject.
	EnterPending bool `json:"enter_pending"`
}

type EditBookingRequest struct {
	PhoneNumber *string `json:"phone_number"`
	GuestType   *string `json:"guest_type"`
	CheckIn     *string `json:"check_in"`
	CheckOut    *string `json:"check_out"`
	EventDate   *string `json:"event_date"`
}

// Quote is the result of the validate-and-price phase. Nothing has been
// written when a quote comes back.
type Quote struct {
	ServiceName  string  `json:"service_name"`
	NumberOfDays int     `json:"number_of_days"`
	TotalCost    float64 `json:"total_cost"`
	Balance      float64 `json:"balance"`
	Affordable   bool    `json:"affordable"`
}

// BookingService drives the booking lifecycle and coordinates the ledger
// debit that accompanies a confirmation.
type BookingService struct {
	memberships ports.MembershipRepository
	bookings    ports.BookingRepository
	services    ports.ServiceRepository
	inventory   *domain.RoomInventory
	cache       *redis.Client
	pub         ports.EventPublisher
	locks       *MemberLocks
}

func NewBookingService(
	memberships ports.MembershipRepository,
	bookings ports.BookingRepository,
	services ports.ServiceRepository,
	inventory *domain.RoomInventory,
	cache *redis.Client,
	pub ports.EventPublisher,
	locks *MemberLocks,
) *BookingService {
	return &BookingService{
		memberships: memberships,
		bookings:    bookings,
		services:    services,
		inventory:   inventory,
		cache:       cache,
		pub:         pub,
		locks:       locks,
	}
}

// buildDraft validates the request and assembles an unsaved booking with
// its cost. Shared by Quote and Create so both phases apply identical
// rules.
func (s *BookingService) buildDraft(ctx context.Context, req CreateBookingRequest) (*domain.Membership, *domain.Booking, error) {
	membershipID, err := uuid.Parse(req.MembershipID)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid membership id: %w", domain.ErrValidation)
	}

	m, err := s.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(req.ServiceName) == "" {
		return nil, nil, fmt.Errorf("service is required: %w", domain.ErrValidation)
	}

	svc, err := s.services.GetByName(ctx, req.ServiceName)
	if err != nil {
		return nil, nil, err
	}

	if strings.TrimSpace(req.GuestType) == "" {
		return nil, nil, fmt.Errorf("guest type is required: %w", domain.ErrValidation)
	}

	b := &domain.Booking{
		MembershipID:       m.ID,
		Username:           m.OfficerName,
		Email:              m.OfficerEmail,
		OfficerDesignation: m.OfficerDesignation,
		PhoneNumber:        req.PhoneNumber,
		GuestType:          req.GuestType,
		ServiceName:        svc.Name,
		ServiceType:        svc.Type,
		NumberOfDays:       1,
	}

	if svc.IsStay() {
		if req.CheckIn == "" {
			return nil, nil, fmt.Errorf("check-in date is required: %w", domain.ErrValidation)
		}
		if req.CheckOut == "" {
			return nil, nil, fmt.Errorf("check-out date is required: %w", domain.ErrValidation)
		}
		checkIn, err := parseDate(req.CheckIn)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid check-in date: %w", domain.ErrValidation)
		}
		checkOut, err := parseDate(req.CheckOut)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid check-out date: %w", domain.ErrValidation)
		}
		if checkIn.After(checkOut) {
			return nil, nil, fmt.Errorf("check-in after check-out: %w", domain.ErrValidation)
		}
		if req.Building == "" || req.Floor == "" || req.RoomType == "" || req.RoomNumber == "" {
			return nil, nil, fmt.Errorf("room selection is incomplete: %w", domain.ErrValidation)
		}

		var sel domain.RoomSelection
		if err := sel.SelectBuilding(s.inventory, req.Building); err != nil {
			return nil, nil, err
		}
		if err := sel.SelectFloor(s.inventory, req.Floor); err != nil {
			return nil, nil, err
		}
		if err := sel.SelectRoomType(s.inventory, req.RoomType); err != nil {
			return nil, nil, err
		}
		if err := sel.SelectRoomNumber(s.inventory, req.RoomNumber); err != nil {
			return nil, nil, err
		}

		b.CheckIn = &checkIn
		b.CheckOut = &checkOut
		b.EventDate = &checkIn
		b.NumberOfDays = StayNights(&checkIn, &checkOut, 1)
		b.Building = sel.Building
		b.Floor = sel.Floor
		b.RoomType = sel.RoomType
		b.RoomNumber = sel.RoomNumber
		b.RoomID = sel.RoomID()
	} else {
		if req.EventDate == "" {
			return nil, nil, fmt.Errorf("event date is required: %w", domain.ErrValidation)
		}
		eventDate, err := parseDate(req.EventDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid event date: %w", domain.ErrValidation)
		}
		b.EventDate = &eventDate
	}

	b.TotalCost = ComputeCost(svc, b.NumberOfDays)
	return m, b, nil
}

// Quote runs phase one of the reservation workflow: validate the request,
// resolve the room path and price it. No state is mutated.
func (s *BookingService) Quote(ctx context.Context, req CreateBookingRequest) (*Quote, error) {
	m, b, err := s.buildDraft(ctx, req)
	if err != nil {
		return nil, err
	}
	return &Quote{
		ServiceName:  b.ServiceName,
		NumberOfDays: b.NumberOfDays,
		TotalCost:    b.TotalCost,
		Balance:      m.Balance,
		Affordable:   m.Balance >= b.TotalCost,
	}, nil
}

// Create runs both phases as a unit. The immediate path creates the
// booking already confirmed and posts the debit atomically; with
// EnterPending set, the booking is stored pending and no funds move until
// Confirm.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	_, b, err := s.buildDraft(ctx, req)
	if err != nil {
		return nil, err
	}

	if b.IsStay() {
		overlaps, err := s.bookings.CountRoomOverlaps(ctx, b.RoomID, *b.CheckIn, *b.CheckOut)
		if err != nil {
			return nil, err
		}
		if overlaps > 0 {
			return nil, fmt.Errorf("room %s is already reserved for those dates: %w", b.RoomID, domain.ErrRoomUnavailable)
		}
	}

	b.ID = uuid.New()
	b.ApplicationNo = domain.NewApplicationNo()
	b.CreatedAt = time.Now()

	if req.EnterPending {
		b.Status = domain.BookingPending
		b.PaymentStatus = domain.PaymentPending
		if err := s.bookings.Create(ctx, b); err != nil {
			return nil, err
		}
		s.invalidate(ctx, b.MembershipID)
		return b, nil
	}

	s.locks.Lock(b.MembershipID)
	defer s.locks.Unlock(b.MembershipID)

	// Balance re-read under the lock, not the one from validation.
	m, err := s.memberships.GetByID(ctx, b.MembershipID)
	if err != nil {
		return nil, err
	}
	if m.Balance < b.TotalCost {
		return nil, fmt.Errorf("balance %.2f below cost %.2f: %w", m.Balance, b.TotalCost, domain.ErrInsufficientBalance)
	}

	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.PaymentPaid

	if err := s.bookings.CreateConfirmedWithDebit(ctx, b, s.debitFor(b)); err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.MembershipID)
	s.publish(ctx, "booking.confirmed", b)
	return b, nil
}

// Confirm transitions a pending booking to confirmed, debiting the
// membership. The affordability check runs again here because the balance
// may have moved since the booking was taken.
func (s *BookingService) Confirm(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsPending() {
		return nil, fmt.Errorf("booking is %s: %w", b.Status, domain.ErrInvalidState)
	}

	s.locks.Lock(b.MembershipID)
	defer s.locks.Unlock(b.MembershipID)

	m, err := s.memberships.GetByID(ctx, b.MembershipID)
	if err != nil {
		return nil, err
	}
	if m.Balance < b.TotalCost {
		return nil, fmt.Errorf("balance %.2f below cost %.2f: %w", m.Balance, b.TotalCost, domain.ErrInsufficientBalance)
	}

	b.Status = domain.BookingConfirmed
	b.PaymentStatus = domain.PaymentPaid

	if err := s.bookings.ConfirmWithDebit(ctx, b, s.debitFor(b)); err != nil {
		// The booking row was not touched, keep the in-memory copy in step.
		b.Status = domain.BookingPending
		b.PaymentStatus = domain.PaymentPending
		return nil, err
	}

	s.invalidate(ctx, b.MembershipID)
	s.publish(ctx, "booking.confirmed", b)
	return b, nil
}

// Reject transitions a pending booking to rejected. No funds were taken
// for a pending booking, so the ledger is untouched.
func (s *BookingService) Reject(ctx context.Context, id uuid.UUID, reason string) (*domain.Booking, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("rejection reason is required: %w", domain.ErrValidation)
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.IsPending() {
		return nil, fmt.Errorf("booking is %s: %w", b.Status, domain.ErrInvalidState)
	}

	b.Status = domain.BookingRejected
	b.RejectionReason = reason

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.MembershipID)
	s.publish(ctx, "booking.rejected", b)
	return b, nil
}

// CheckOut marks a confirmed stay booking as checked out. No ledger
// effect.
func (s *BookingService) CheckOut(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed || !b.IsStay() {
		return nil, fmt.Errorf("only confirmed stay bookings can check out: %w", domain.ErrInvalidState)
	}
	if b.IsCheckout {
		return nil, fmt.Errorf("booking already checked out: %w", domain.ErrInvalidState)
	}

	now := time.Now()
	b.IsCheckout = true
	b.LastCheckOut = &now

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.MembershipID)
	return b, nil
}

// Edit mutates non-lifecycle fields only. Status, payment status and total
// cost never change here; the number of days is re-derived from the
// patched dates, keeping the prior value when the pair is incomplete.
func (s *BookingService) Edit(ctx context.Context, id uuid.UUID, req EditBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PhoneNumber != nil {
		b.PhoneNumber = *req.PhoneNumber
	}
	if req.GuestType != nil {
		b.GuestType = *req.GuestType
	}
	if req.CheckIn != nil {
		checkIn, err := parseDate(*req.CheckIn)
		if err != nil {
			return nil, fmt.Errorf("invalid check-in date: %w", domain.ErrValidation)
		}
		b.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, err := parseDate(*req.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("invalid check-out date: %w", domain.ErrValidation)
		}
		b.CheckOut = &checkOut
	}
	if req.EventDate != nil {
		eventDate, err := parseDate(*req.EventDate)
		if err != nil {
			return nil, fmt.Errorf("invalid event date: %w", domain.ErrValidation)
		}
		b.EventDate = &eventDate
	}

	b.NumberOfDays = StayNights(b.CheckIn, b.CheckOut, b.NumberOfDays)

	if err := s.bookings.Update(ctx, b); err != nil {
		return nil, err
	}

	s.invalidate(ctx, b.MembershipID)
	return b, nil
}

// Delete removes a booking. Posted transactions are never reversed.
func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, b.MembershipID)
	return nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, filter ports.BookingFilter) ([]domain.Booking, error) {
	return s.bookings.List(ctx, filter)
}

func (s *BookingService) debitFor(b *domain.Booking) *domain.Transaction {
	return &domain.Transaction{
		ID:           uuid.New(),
		MembershipID: b.MembershipID,
		Amount:       b.TotalCost,
		Type:         domain.TransactionDebit,
		Description:  fmt.Sprintf("%s booking", b.ServiceName),
		CreatedAt:    time.Now(),
	}
}

func (s *BookingService) publish(ctx context.Context, key string, b *domain.Booking) {
	if s.pub == nil {
		return
	}
	_ = s.pub.PublishJSON(ctx, key, map[string]any{
		"booking_id":     b.ID.String(),
		"application_no": b.ApplicationNo,
		"membership_id":  b.MembershipID.String(),
		"service_name":   b.ServiceName,
		"total_cost":     b.TotalCost,
		"status":         string(b.Status),
	})
}

func (s *BookingService) invalidate(ctx context.Context, membershipID uuid.UUID) {
	keys := []string{cacheKeyMemberships, fmt.Sprintf(cacheKeyMembership, membershipID)}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate membership cache: %v", err)
	}
}
