package services

import (
	"sync"

	"github.com/google/uuid"
)

// MemberLocks serializes ledger-mutating operations per membership so two
// concurrent confirms cannot both pass the affordability check. Mutexes are
// created on first use and kept for the process lifetime.
type MemberLocks struct {
	mu sync.Map
}

func NewMemberLocks() *MemberLocks {
	return &MemberLocks{}
}

func (l *MemberLocks) Lock(membershipID uuid.UUID) {
	v, _ := l.mu.LoadOrStore(membershipID, &sync.Mutex{})
	v.(*sync.Mutex).Lock()
}

func (l *MemberLocks) Unlock(membershipID uuid.UUID) {
	v, ok := l.mu.Load(membershipID)
	if !ok {
		return
	}
	v.(*sync.Mutex).Unlock()
}
