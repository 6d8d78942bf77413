package store

import (
	"context"
	"sync"

	"selo/internal/credential/models"
	id "selo/pkg/domain"
)

// InMemoryStore keeps the initial implementation lightweight and testable.
// It intentionally favors clarity over performance.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *rec
	s.records = append(s.records, &saved)
	return nil
}

func (s *InMemoryStore) FindLatest(_ context.Context, wallet id.WalletAddress, field models.Field) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.records) - 1; i >= 0; i-- {
		rec := s.records[i]
		if rec.Wallet == wallet && rec.Credential.Field == field {
			found := *rec
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *InMemoryStore) FindByCredentialID(_ context.Context, credentialID string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.Credential.Credential.ID == credentialID {
			found := *rec
			return &found, nil
		}
	}
	return nil, ErrNotFound
}
