package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	contract "selo/contracts/credential"
	"selo/internal/credential/models"
	id "selo/pkg/domain"
)

func testRecord(t *testing.T, field models.Field, storedAt time.Time) *Record {
	t.Helper()
	wallet, err := id.ParseWalletAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)
	return &Record{
		Wallet:   wallet,
		BundleID: id.NewBundleID(),
		Credential: models.FieldCredential{
			Field:      field,
			FieldValue: "value",
			Credential: contract.Document{ID: id.NewCredentialID().String()},
		},
		StoredAt: storedAt,
	}
}

func TestInMemoryStore_FindLatest(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := testRecord(t, models.FieldCPF, base)
	second := testRecord(t, models.FieldCPF, base.Add(time.Hour))
	require.NoError(t, s.Save(ctx, first))
	require.NoError(t, s.Save(ctx, second))

	rec, err := s.FindLatest(ctx, first.Wallet, models.FieldCPF)
	require.NoError(t, err)
	assert.Equal(t, second.Credential.Credential.ID, rec.Credential.Credential.ID)
}

func TestInMemoryStore_FindLatest_NotFound(t *testing.T) {
	s := NewInMemoryStore()
	wallet, err := id.ParseWalletAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	require.NoError(t, err)

	_, err = s.FindLatest(context.Background(), wallet, models.FieldCPF)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_FindByCredentialID(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	rec := testRecord(t, models.FieldCategoria, time.Now())
	require.NoError(t, s.Save(ctx, rec))

	found, err := s.FindByCredentialID(ctx, rec.Credential.Credential.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FieldCategoria, found.Credential.Field)

	_, err = s.FindByCredentialID(ctx, "urn:uuid:missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryStore_SaveCopies(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	rec := testRecord(t, models.FieldCPF, time.Now())
	require.NoError(t, s.Save(ctx, rec))

	rec.Credential.FieldValue = "mutated"

	found, err := s.FindLatest(ctx, rec.Wallet, models.FieldCPF)
	require.NoError(t, err)
	assert.Equal(t, "value", found.Credential.FieldValue)
}
