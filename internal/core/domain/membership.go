package domain

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type MembershipType string

const (
	MembershipMonthly MembershipType = "monthly"
	MembershipYearly  MembershipType = "yearly"
)

type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipExpired MembershipStatus = "expired"
	MembershipPending MembershipStatus = "pending"
)

// Membership is a prepaid account belonging to one officer. Balance is kept
// in sync with the transaction ledger; Transactions and Bookings are derived
// read views filled in by the repository, never written back.
type Membership struct {
	ID                 uuid.UUID
	OfficerName        string
	OfficerEmail       string
	OfficerDesignation string
	MembershipType     MembershipType
	StartDate          time.Time
	EndDate            time.Time
	Status             MembershipStatus
	Balance            float64
	CardNumber         string
	CreatedAt          time.Time

	Transactions []Transaction
	Bookings     []Booking
}

func (m *Membership) IsActive() bool {
	return m.Status == MembershipActive
}

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// Transaction is an immutable ledger entry. Amount is always positive;
// the type decides the sign applied to the membership balance.
type Transaction struct {
	ID           uuid.UUID
	MembershipID uuid.UUID
	Amount       float64
	Type         TransactionType
	Description  string
	CreatedAt    time.Time
}

// NewCardNumber produces a human-readable card number like SPT-2024-4817.
// Cosmetic only, uniqueness is not guaranteed.
func NewCardNumber() string {
	return fmt.Sprintf("SPT-%d-%04d", time.Now().Year(), 1000+rand.Intn(9000))
}

// NewApplicationNo produces a booking application number like APP-2024-317.
func NewApplicationNo() string {
	return fmt.Sprintf("APP-%d-%03d", time.Now().Year(), 100+rand.Intn(900))
}
