package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWalletAddress(t *testing.T) {
	// Reference vector from the EIP-55 specification.
	const checksummed = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

	t.Run("normalizes lowercase input to checksummed form", func(t *testing.T) {
		addr, err := ParseWalletAddress(strings.ToLower(checksummed))
		require.NoError(t, err)
		assert.Equal(t, checksummed, addr.String())
	})

	t.Run("normalization is idempotent", func(t *testing.T) {
		once, err := ParseWalletAddress(checksummed)
		require.NoError(t, err)
		twice, err := ParseWalletAddress(once.String())
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	})

	t.Run("two spellings compare equal", func(t *testing.T) {
		b, err := ParseWalletAddress("0x" + strings.ToUpper(checksummed[2:]))
		require.NoError(t, err)
		c, err := ParseWalletAddress(strings.ToLower(checksummed))
		require.NoError(t, err)
		assert.Equal(t, b, c)
	})

	t.Run("rejects missing prefix", func(t *testing.T) {
		_, err := ParseWalletAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
		assert.Error(t, err)
	})

	t.Run("rejects wrong length", func(t *testing.T) {
		_, err := ParseWalletAddress("0xabc")
		assert.Error(t, err)
	})

	t.Run("rejects non-hex characters", func(t *testing.T) {
		_, err := ParseWalletAddress("0x" + strings.Repeat("zz", 20))
		assert.Error(t, err)
	})
}

func TestSubjectIDFor(t *testing.T) {
	addr, err := ParseWalletAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	require.NoError(t, err)

	t.Run("encodes the wallet as a did:ethr DID", func(t *testing.T) {
		assert.Equal(t, "did:ethr:0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", SubjectIDFor(addr).String())
	})

	t.Run("is deterministic per wallet", func(t *testing.T) {
		assert.Equal(t, SubjectIDFor(addr), SubjectIDFor(addr))
	})
}

func TestCredentialID(t *testing.T) {
	t.Run("new IDs carry the urn:uuid prefix", func(t *testing.T) {
		id := NewCredentialID()
		assert.True(t, strings.HasPrefix(id.String(), "urn:uuid:"))
	})

	t.Run("two IDs never collide", func(t *testing.T) {
		assert.NotEqual(t, NewCredentialID(), NewCredentialID())
	})

	t.Run("parse round-trips", func(t *testing.T) {
		id := NewCredentialID()
		parsed, err := ParseCredentialID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	})

	t.Run("parse rejects bare UUIDs", func(t *testing.T) {
		_, err := ParseCredentialID("0f8fad5b-d9cb-469f-a165-70867728950e")
		assert.Error(t, err)
	})
}

func TestBundleID(t *testing.T) {
	id := NewBundleID()
	assert.False(t, id.IsNil())

	parsed, err := ParseBundleID(id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseBundleID("not-a-uuid")
	assert.Error(t, err)
}
