package service

import (
	"context"

	"selo/internal/credential/models"
	"selo/internal/credential/store"
	"selo/internal/ledger"
	id "selo/pkg/domain"
	"selo/pkg/platform/audit"
)

// ProofBuilder produces a proof artifact for one field value.
type ProofBuilder interface {
	Build(ctx context.Context, field models.Field, value string) (models.ProofArtifact, error)
}

// CredentialComposer wraps an artifact into a field credential.
type CredentialComposer interface {
	Compose(ctx context.Context, field models.Field, value string, wallet id.WalletAddress, artifact models.ProofArtifact) models.FieldCredential
}

// CredentialVerifier renders a verdict over one presented credential.
type CredentialVerifier interface {
	Verify(ctx context.Context, cred models.FieldCredential) models.VerificationVerdict
}

// AuditPublisher emits audit events for credential lifecycle actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// CredentialStore persists issued credentials (see store.Store).
type CredentialStore = store.Store

// LedgerRegistrar submits best-effort proof registrations (see ledger.Registrar).
type LedgerRegistrar = ledger.Registrar
