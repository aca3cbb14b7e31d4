package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports"
)

const dateLayout = "2006-01-02"

const membershipCacheTTL = 5 * time.Minute

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

type EnrollmentRequest struct {
	OfficerName        string  `json:"officer_name"`
	OfficerEmail       string  `json:"officer_email"`
	OfficerDesignation string  `json:"officer_designation"`
	MembershipType     string  `json:"membership_type"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	InitialDeposit     float64 `json:"initial_deposit"`
}

type UpdateMembershipRequest struct {
	OfficerName        *string `json:"officer_name"`
	OfficerEmail       *string `json:"officer_email"`
	OfficerDesignation *string `json:"officer_designation"`
	MembershipType     *string `json:"membership_type"`
	StartDate          *string `json:"start_date"`
	EndDate            *string `json:"end_date"`
	Status             *string `json:"status"`
}

type MembershipService struct {
	memberships ports.MembershipRepository
	ledger      *LedgerService
	cache       *redis.Client
}

func NewMembershipService(memberships ports.MembershipRepository, ledger *LedgerService, cache *redis.Client) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		ledger:      ledger,
		cache:       cache,
	}
}

// Enroll creates a membership with a generated card number. The initial
// deposit, when present, is recorded as the first credit transaction so the
// ledger stays the source of balance truth from day one.
func (s *MembershipService) Enroll(ctx context.Context, req EnrollmentRequest) (*domain.Membership, error) {
	if strings.TrimSpace(req.OfficerName) == "" {
		return nil, fmt.Errorf("officer name is required: %w", domain.ErrValidation)
	}
	if strings.TrimSpace(req.OfficerEmail) == "" {
		return nil, fmt.Errorf("officer email is required: %w", domain.ErrValidation)
	}
	mType := domain.MembershipType(req.MembershipType)
	if mType != domain.MembershipMonthly && mType != domain.MembershipYearly {
		return nil, fmt.Errorf("unknown membership type %q: %w", req.MembershipType, domain.ErrValidation)
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", domain.ErrValidation)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", domain.ErrValidation)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date before start date: %w", domain.ErrValidation)
	}
	if req.InitialDeposit < 0 {
		return nil, fmt.Errorf("negative deposit: %w", domain.ErrInvalidAmount)
	}

	m := &domain.Membership{
		ID:                 uuid.New(),
		OfficerName:        req.OfficerName,
		OfficerEmail:       req.OfficerEmail,
		OfficerDesignation: req.OfficerDesignation,
		MembershipType:     mType,
		StartDate:          start,
		EndDate:            end,
		Status:             domain.MembershipActive,
		CardNumber:         domain.NewCardNumber(),
		CreatedAt:          time.Now(),
	}

	if err := s.memberships.Create(ctx, m); err != nil {
		return nil, err
	}

	if req.InitialDeposit > 0 {
		// Post invalidates the cache on its way out.
		tx, err := s.ledger.Post(ctx, m.ID, req.InitialDeposit, domain.TransactionCredit, "Initial membership deposit")
		if err != nil {
			return nil, err
		}
		m.Balance = req.InitialDeposit
		m.Transactions = append(m.Transactions, *tx)
	} else {
		s.invalidate(ctx, m.ID)
	}

	return m, nil
}

// Get returns the membership with its embedded transaction and booking
// views, served from the cache when warm.
func (s *MembershipService) Get(ctx context.Context, id uuid.UUID) (*domain.Membership, error) {
	key := fmt.Sprintf(cacheKeyMembership, id)
	if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
		var m domain.Membership
		if err := json.Unmarshal([]byte(cached), &m); err == nil {
			return &m, nil
		}
	}

	m, err := s.memberships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(m); err == nil {
		if err := s.cache.Set(ctx, key, data, membershipCacheTTL).Err(); err != nil {
			log.Printf("Failed to cache membership %s: %v", id, err)
		}
	}

	return m, nil
}

func (s *MembershipService) List(ctx context.Context) ([]domain.Membership, error) {
	return s.memberships.List(ctx)
}

// Update applies administrative edits. Balance is never edited here, only
// the ledger moves it.
func (s *MembershipService) Update(ctx context.Context, id uuid.UUID, req UpdateMembershipRequest) (*domain.Membership, error) {
	m, err := s.memberships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OfficerName != nil {
		m.OfficerName = *req.OfficerName
	}
	if req.OfficerEmail != nil {
		m.OfficerEmail = *req.OfficerEmail
	}
	if req.OfficerDesignation != nil {
		m.OfficerDesignation = *req.OfficerDesignation
	}
	if req.MembershipType != nil {
		mType := domain.MembershipType(*req.MembershipType)
		if mType != domain.MembershipMonthly && mType != domain.MembershipYearly {
			return nil, fmt.Errorf("unknown membership type %q: %w", *req.MembershipType, domain.ErrValidation)
		}
		m.MembershipType = mType
	}
	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid start date: %w", domain.ErrValidation)
		}
		m.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid end date: %w", domain.ErrValidation)
		}
		m.EndDate = end
	}
	if req.Status != nil {
		status := domain.MembershipStatus(*req.Status)
		switch status {
		case domain.MembershipActive, domain.MembershipExpired, domain.MembershipPending:
			m.Status = status
		default:
			return nil, fmt.Errorf("unknown membership status %q: %w", *req.Status, domain.ErrValidation)
		}
	}

	if err := s.memberships.Update(ctx, m); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return m, nil
}

// Delete removes the membership together with its owned transactions and
// bookings.
func (s *MembershipService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.memberships.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *MembershipService) invalidate(ctx context.Context, membershipID uuid.UUID) {
	keys := []string{cacheKeyMemberships, fmt.Sprintf(cacheKeyMembership, membershipID)}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate membership cache: %v", err)
	}
}
