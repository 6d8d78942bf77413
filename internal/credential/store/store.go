// Package store persists issued credentials for later retrieval. Nothing in
// the issuance or verification path depends on reads from here; storage exists
// so holders can fetch a credential again after the generation session ends.
package store

import (
	"context"
	"time"

	"selo/internal/credential/models"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
)

// ErrNotFound keeps storage-specific not found errors consistent across
// implementations.
var ErrNotFound = dErrors.New(dErrors.CodeNotFound, "credential not found")

// Record is one persisted credential together with its issuance context.
type Record struct {
	Wallet     id.WalletAddress
	BundleID   id.BundleID
	Credential models.FieldCredential
	StoredAt   time.Time
}

// Store is the credential repository. Re-issuance appends; it never updates a
// previous record.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	// FindLatest returns the most recently stored credential for (wallet, field).
	FindLatest(ctx context.Context, wallet id.WalletAddress, field models.Field) (*Record, error)
	// FindByCredentialID looks a credential up by its urn:uuid document id.
	FindByCredentialID(ctx context.Context, credentialID string) (*Record, error)
}
