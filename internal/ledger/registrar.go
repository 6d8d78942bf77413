// Package ledger registers issued proofs with an on-chain registry. This is a
// best-effort side channel: issuance and verification are correct without it,
// so callers treat failures here as degradation, never as a reason to fail a
// generation session.
package ledger

import (
	"context"

	"selo/internal/credential/models"
	id "selo/pkg/domain"
)

// Registration describes one proof registration request.
type Registration struct {
	Wallet     id.WalletAddress
	Field      models.Field
	ProofHex   string
	ClaimValue string
}

// Registrar submits proof registrations and returns a transaction reference.
type Registrar interface {
	Register(ctx context.Context, reg Registration) (txRef string, err error)
}

// NoopRegistrar accepts everything and returns an empty reference. Used when
// no ledger endpoint is configured.
type NoopRegistrar struct{}

func (NoopRegistrar) Register(context.Context, Registration) (string, error) {
	return "", nil
}
