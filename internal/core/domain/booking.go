package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingRejected  BookingStatus = "rejected"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

// Booking is a reservation of a service against a membership. Requester
// fields are snapshots taken at creation time, not live links to the
// membership record. Room fields are only set for stay bookings.
type Booking struct {
	ID            uuid.UUID
	MembershipID  uuid.UUID
	ApplicationNo string

	Username           string
	Email              string
	OfficerDesignation string
	PhoneNumber        string
	GuestType          string

	ServiceName string
	ServiceType ServiceType

	CheckIn      *time.Time
	CheckOut     *time.Time
	EventDate    *time.Time
	NumberOfDays int

	Building   string
	Floor      string
	RoomType   string
	RoomNumber string
	RoomID     string

	TotalCost       float64
	PaymentStatus   PaymentStatus
	Status          BookingStatus
	RejectionReason string

	IsCheckout   bool
	LastCheckOut *time.Time

	CreatedAt time.Time
}

func (b *Booking) IsPending() bool {
	return b.Status == BookingPending
}

func (b *Booking) IsStay() bool {
	return b.ServiceType == ServiceStay
}
