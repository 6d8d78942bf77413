package verifier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selo/internal/credential/composer"
	"selo/internal/credential/models"
	"selo/internal/credential/prover"
	id "selo/pkg/domain"
	"selo/pkg/platform/middleware/requesttime"
)

const testWallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// issue builds a genuinely verifiable credential through the mock proving
// backend at the given instant.
func issue(t *testing.T, field models.Field, value string, at time.Time) models.FieldCredential {
	t.Helper()

	wallet, err := id.ParseWalletAddress(testWallet)
	require.NoError(t, err)

	ctx := requesttime.WithTime(context.Background(), at)
	builder := prover.NewBuilder(&prover.MockProver{}, prover.WithAccessList([]uint64{22222222222}))

	artifact, err := builder.Build(ctx, field, value)
	require.NoError(t, err)

	return composer.New("did:example:issuer").Compose(ctx, field, value, wallet, artifact)
}

func atTime(at time.Time) context.Context {
	return requesttime.WithTime(context.Background(), at)
}

func TestVerify_Valid(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := issue(t, models.FieldCPF, "222.222.222-22", issued)

	v := New(&prover.MockProver{}, nil)
	verdict := v.Verify(atTime(issued.Add(time.Hour)), cred)

	assert.True(t, verdict.IsValid)
	assert.Contains(t, verdict.Reason, "cpf")
	assert.Contains(t, verdict.Reason, "without revealing")
}

func TestVerify_Deterministic(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := issue(t, models.FieldCategoria, "AB", issued)
	ctx := atTime(issued.Add(time.Hour))

	v := New(&prover.MockProver{}, nil)
	assert.Equal(t, v.Verify(ctx, cred), v.Verify(ctx, cred))
}

func TestVerify_ExpirationBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := issue(t, models.FieldCPF, "222.222.222-22", issued)

	expiration, err := cred.ExpirationDate()
	require.NoError(t, err)

	v := New(&prover.MockProver{}, nil)

	verdict := v.Verify(atTime(expiration), cred)
	assert.True(t, verdict.IsValid, "credential expiring exactly now is still valid")

	verdict = v.Verify(atTime(expiration.Add(time.Second)), cred)
	assert.False(t, verdict.IsValid)
	assert.Contains(t, verdict.Reason, "credential expired on")
	assert.Contains(t, verdict.Reason, expiration.Format("02 Jan 2006"))
}

func TestVerify_TamperedSubjectClaim(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := issue(t, models.FieldCPF, "222.222.222-22", issued)

	cred.Credential.Subject.Claims["cpf"] = "333.333.333-33"

	v := New(&prover.MockProver{}, nil)
	verdict := v.Verify(atTime(issued.Add(time.Hour)), cred)

	assert.False(t, verdict.IsValid)
	assert.Equal(t, "subject claim mismatch", verdict.Reason)
}

func TestVerify_Malformed(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := atTime(issued.Add(time.Hour))
	v := New(&prover.MockProver{}, nil)

	tests := []struct {
		name   string
		mutate func(*models.FieldCredential)
	}{
		{"missing proof value", func(c *models.FieldCredential) { c.Credential.Proof.ProofValue = "" }},
		{"missing subject id", func(c *models.FieldCredential) { c.Credential.Subject.ID = "" }},
		{"missing expiration", func(c *models.FieldCredential) { c.Credential.ExpirationDate = "" }},
		{"unknown field", func(c *models.FieldCredential) { c.Field = "rg" }},
		{"wrong type tag", func(c *models.FieldCredential) { c.Credential.Type = []string{"SomethingElse"} }},
		{"extra subject claim", func(c *models.FieldCredential) { c.Credential.Subject.Claims["uf"] = "SP" }},
		{"artifact drift", func(c *models.FieldCredential) { c.Artifact.ProofHex = "0xffff" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := issue(t, models.FieldCPF, "222.222.222-22", issued)
			tt.mutate(&cred)

			verdict := v.Verify(now, cred)
			assert.False(t, verdict.IsValid)
			assert.Equal(t, "malformed credential", verdict.Reason)
		})
	}
}

func TestVerify_InvalidProof(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cred := issue(t, models.FieldCPF, "222.222.222-22", issued)

	// Consistent tampering: both copies of the proof bytes change, so the
	// structural check passes and the cryptographic check is what fails.
	cred.Artifact.ProofHex = "0x" + "ab"
	cred.Credential.Proof.ProofValue = cred.Artifact.ProofHex

	v := New(&prover.MockProver{}, nil)
	verdict := v.Verify(atTime(issued.Add(time.Hour)), cred)

	assert.False(t, verdict.IsValid)
	assert.Equal(t, "proof verification failed", verdict.Reason)
}
