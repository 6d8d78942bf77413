// Package verifier renders verdicts over presented field credentials. It
// trusts nothing about the input: structure, lifetime, subject claim, and the
// proof itself are each checked in order, and the first failure decides the
// verdict.
package verifier

import (
	"context"
	"fmt"
	"log/slog"

	"selo/internal/credential/models"
	"selo/internal/credential/prover"
	"selo/pkg/platform/middleware/requesttime"
)

const expiredDateLayout = "02 Jan 2006"

// Verifier checks presented credentials.
type Verifier struct {
	prover prover.Prover
	logger *slog.Logger
}

// New creates a Verifier delegating cryptographic checks to the proving
// capability.
func New(p prover.Prover, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{prover: p, logger: logger}
}

// Verify renders a verdict for one presented credential. Checks run in a
// fixed order and short-circuit: structure, expiration, subject claim, then
// the cryptographic proof. Every outcome is a verdict; a backend that cannot
// answer, or crashes mid-check, yields an invalid verdict rather than an
// error the caller might drop.
func (v *Verifier) Verify(ctx context.Context, cred models.FieldCredential) models.VerificationVerdict {
	if verdict, ok := v.checkStructure(cred); !ok {
		return verdict
	}
	if verdict, ok := v.checkExpiration(ctx, cred); !ok {
		return verdict
	}
	if verdict, ok := v.checkSubjectClaim(cred); !ok {
		return verdict
	}

	valid, err := v.prover.VerifyProof(ctx,
		cred.Artifact.ProofHex,
		cred.Artifact.PublicInputs,
		cred.Artifact.VerificationKeyHex,
	)
	if err != nil {
		v.logger.ErrorContext(ctx, "proof verification backend failed",
			"field", cred.Field,
			"credential_id", cred.Credential.ID,
			"error", err,
		)
		return reject("proof verification failed")
	}
	if !valid {
		return reject("proof verification failed")
	}

	return models.VerificationVerdict{
		IsValid: true,
		Reason: fmt.Sprintf("credential confirms the holder's %s claim without revealing any other document data",
			cred.Field),
	}
}

// checkStructure requires every attribute a later check depends on, plus the
// single-field shape of the subject claims.
func (v *Verifier) checkStructure(cred models.FieldCredential) (models.VerificationVerdict, bool) {
	doc := cred.Credential

	switch {
	case cred.Field == "",
		doc.ID == "",
		doc.Issuer == "",
		doc.IssuanceDate == "",
		doc.ExpirationDate == "",
		doc.Subject.ID == "",
		doc.Proof.Type == "",
		doc.Proof.ProofValue == "":
		return reject("malformed credential"), false
	}
	if len(doc.Type) == 0 || doc.Type[0] != "VerifiableCredential" {
		return reject("malformed credential"), false
	}
	if _, err := models.ParseField(cred.Field.String()); err != nil {
		return reject("malformed credential"), false
	}
	if len(doc.Subject.Claims) != 1 {
		return reject("malformed credential"), false
	}
	if err := cred.Artifact.Validate(); err != nil {
		return reject("malformed credential"), false
	}
	if cred.Artifact.ProofHex != doc.Proof.ProofValue {
		return reject("malformed credential"), false
	}
	if _, err := cred.IssuanceDate(); err != nil {
		return reject("malformed credential"), false
	}
	return models.VerificationVerdict{}, true
}

// checkExpiration treats a credential expiring exactly now as still valid.
func (v *Verifier) checkExpiration(ctx context.Context, cred models.FieldCredential) (models.VerificationVerdict, bool) {
	expiration, err := cred.ExpirationDate()
	if err != nil {
		return reject("malformed credential"), false
	}
	now := requesttime.Now(ctx)
	if now.After(expiration) {
		return reject(fmt.Sprintf("credential expired on %s", expiration.Format(expiredDateLayout))), false
	}
	return models.VerificationVerdict{}, true
}

// checkSubjectClaim requires the subject claim for the declared field to match
// the credential's own fieldValue. A tampered claim fails here regardless of
// whether the proof itself would still verify.
func (v *Verifier) checkSubjectClaim(cred models.FieldCredential) (models.VerificationVerdict, bool) {
	claimed, ok := cred.Credential.Subject.Claims[cred.Field.String()]
	if !ok {
		return reject("subject claim mismatch"), false
	}
	if claimed != cred.FieldValue {
		return reject("subject claim mismatch"), false
	}
	return models.VerificationVerdict{}, true
}

func reject(reason string) models.VerificationVerdict {
	return models.VerificationVerdict{IsValid: false, Reason: reason}
}
