// Package composer assembles field-scoped credential documents around proof
// artifacts. Each document discloses exactly one field; minimization is a
// structural property of the output, not a policy check.
package composer

import (
	"context"
	"time"

	contract "selo/contracts/credential"
	"selo/internal/credential/models"
	id "selo/pkg/domain"
	"selo/pkg/platform/middleware/requesttime"
	strutil "selo/pkg/string"
)

const (
	proofType          = "ZKProof2023"
	proofPurpose       = "assertionMethod"
	credentialBaseType = "VerifiableCredential"
	credentialKindType = "CNHCredential"
	verificationKeyRef = "#zk-key-1"
)

// DefaultValidityWindow is how long an issued credential stays valid.
const DefaultValidityWindow = 365 * 24 * time.Hour

// Composer issues credential documents under a fixed issuer DID.
type Composer struct {
	issuerDID      string
	validityWindow time.Duration
}

// Option configures the Composer.
type Option func(*Composer)

// WithValidityWindow overrides the default one-year credential lifetime.
func WithValidityWindow(d time.Duration) Option {
	return func(c *Composer) {
		if d > 0 {
			c.validityWindow = d
		}
	}
}

// New creates a Composer issuing under the given DID.
func New(issuerDID string, opts ...Option) *Composer {
	c := &Composer{
		issuerDID:      issuerDID,
		validityWindow: DefaultValidityWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose wraps one proof artifact into a field credential for the wallet.
// Every call mints a fresh credential ID; composing the same inputs twice
// yields two distinct documents.
func (c *Composer) Compose(ctx context.Context, field models.Field, value string, wallet id.WalletAddress, artifact models.ProofArtifact) models.FieldCredential {
	now := requesttime.Now(ctx).UTC()

	doc := contract.Document{
		Context: contract.Contexts,
		ID:      id.NewCredentialID().String(),
		Type: []string{
			credentialBaseType,
			credentialKindType,
			fieldCredentialType(field),
		},
		Issuer:         c.issuerDID,
		IssuanceDate:   now.Format(time.RFC3339),
		ExpirationDate: now.Add(c.validityWindow).Format(time.RFC3339),
		Subject: contract.Subject{
			ID:     id.SubjectIDFor(wallet).String(),
			Type:   credentialKindType,
			Claims: map[string]string{field.String(): value},
		},
		Proof: contract.ProofDescriptor{
			Type:               proofType,
			ProofValue:         artifact.ProofHex,
			Created:            now.Format(time.RFC3339),
			ProofPurpose:       proofPurpose,
			VerificationMethod: c.issuerDID + verificationKeyRef,
		},
	}

	return models.FieldCredential{
		Field:      field,
		FieldValue: value,
		Credential: doc,
		Artifact:   artifact,
	}
}

// fieldCredentialType derives the per-field type tag, e.g. "CNHCpfCredential".
func fieldCredentialType(field models.Field) string {
	return "CNH" + strutil.UpperFirst(field.String()) + "Credential"
}
