package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/ports"
)

const (
	cacheKeyMemberships = "memberships"
	cacheKeyMembership  = "membership:%s"
)

// LedgerService owns the append-only transaction ledger. Every append keeps
// the owning membership's balance equal to sum(credits) - sum(debits).
type LedgerService struct {
	ledger ports.LedgerRepository
	cache  *redis.Client
	pub    ports.EventPublisher
	locks  *MemberLocks
}

func NewLedgerService(ledger ports.LedgerRepository, cache *redis.Client, pub ports.EventPublisher, locks *MemberLocks) *LedgerService {
	return &LedgerService{
		ledger: ledger,
		cache:  cache,
		pub:    pub,
		locks:  locks,
	}
}

// Post appends a transaction and applies it to the membership balance.
// It does not enforce a non-negative balance: administrative corrections
// may legitimately overdraw. Affordability checks belong to the booking
// flows, before they reach the ledger.
func (s *LedgerService) Post(ctx context.Context, membershipID uuid.UUID, amount float64, txType domain.TransactionType, description string) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive: %w", domain.ErrInvalidAmount)
	}
	if txType != domain.TransactionCredit && txType != domain.TransactionDebit {
		return nil, fmt.Errorf("unknown transaction type %q: %w", txType, domain.ErrValidation)
	}

	s.locks.Lock(membershipID)
	defer s.locks.Unlock(membershipID)

	tx := &domain.Transaction{
		ID:           uuid.New(),
		MembershipID: membershipID,
		Amount:       amount,
		Type:         txType,
		Description:  description,
		CreatedAt:    time.Now(),
	}

	if err := s.ledger.Append(ctx, tx); err != nil {
		return nil, err
	}

	s.invalidate(ctx, membershipID)

	if s.pub != nil {
		_ = s.pub.PublishJSON(ctx, "transaction.posted", map[string]any{
			"transaction_id": tx.ID.String(),
			"membership_id":  membershipID.String(),
			"amount":         amount,
			"type":           string(txType),
		})
	}

	return tx, nil
}

func (s *LedgerService) Balance(ctx context.Context, membershipID uuid.UUID) (float64, error) {
	return s.ledger.CurrentBalance(ctx, membershipID)
}

// ListTransactions returns ledger entries in insertion order, optionally
// filtered to one membership.
func (s *LedgerService) ListTransactions(ctx context.Context, membershipID *uuid.UUID) ([]domain.Transaction, error) {
	if membershipID != nil {
		return s.ledger.ListByMembership(ctx, *membershipID)
	}
	return s.ledger.List(ctx)
}

func (s *LedgerService) invalidate(ctx context.Context, membershipID uuid.UUID) {
	keys := []string{cacheKeyMemberships, fmt.Sprintf(cacheKeyMembership, membershipID)}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate membership cache: %v", err)
	}
}
