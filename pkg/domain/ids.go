// Package domain provides type-safe identifiers to prevent mixing up IDs at compile time.
package domain

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/sha3"

	dErrors "selo/pkg/domain-errors"
)

// BundleID identifies one generation session's credential bundle.
type BundleID uuid.UUID

// CredentialID is the urn:uuid identifier of a single field credential.
type CredentialID string

// SubjectID is the DID a credential is about, derived from a wallet address.
type SubjectID string

// WalletAddress is an EIP-55 checksummed Ethereum address. The zero value is
// invalid; construct through ParseWalletAddress so two spellings of the same
// address always compare equal.
type WalletAddress string

const credentialIDPrefix = "urn:uuid:"

// NewBundleID returns a fresh bundle identifier.
func NewBundleID() BundleID {
	return BundleID(uuid.New())
}

func ParseBundleID(s string) (BundleID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return BundleID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid bundle ID format")
	}
	return BundleID(parsed), nil
}

func (b BundleID) String() string {
	return uuid.UUID(b).String()
}

func (b BundleID) IsNil() bool {
	return uuid.UUID(b) == uuid.Nil
}

// MarshalText encodes the bundle ID as its canonical UUID string so JSON
// bodies carry "bundleId": "xxxx-..." rather than a byte array.
func (b BundleID) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BundleID) UnmarshalText(text []byte) error {
	parsed, err := ParseBundleID(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// NewCredentialID returns a fresh urn:uuid credential identifier.
func NewCredentialID() CredentialID {
	return CredentialID(credentialIDPrefix + uuid.NewString())
}

func ParseCredentialID(s string) (CredentialID, error) {
	rest, ok := strings.CutPrefix(s, credentialIDPrefix)
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "credential ID must start with urn:uuid:")
	}
	if _, err := uuid.Parse(rest); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid credential ID format")
	}
	return CredentialID(s), nil
}

func (c CredentialID) String() string {
	return string(c)
}

func (c CredentialID) IsNil() bool {
	return c == ""
}

// SubjectIDFor derives the deterministic DID for a wallet. The same wallet
// always yields the same subject ID regardless of input casing.
func SubjectIDFor(wallet WalletAddress) SubjectID {
	return SubjectID("did:ethr:" + wallet.String())
}

func (s SubjectID) String() string {
	return string(s)
}

// ParseWalletAddress validates a hex Ethereum address and normalizes it to its
// EIP-55 checksummed form. Addresses with mixed case are accepted as long as
// the hex digits themselves are valid; the checksum is recomputed, not trusted.
func ParseWalletAddress(s string) (WalletAddress, error) {
	rest, ok := strings.CutPrefix(s, "0x")
	if !ok {
		rest, ok = strings.CutPrefix(s, "0X")
	}
	if !ok {
		return "", dErrors.New(dErrors.CodeInvalidInput, "wallet address must start with 0x")
	}
	if len(rest) != 40 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "wallet address must be 20 bytes of hex")
	}
	lower := strings.ToLower(rest)
	if _, err := hex.DecodeString(lower); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "wallet address contains non-hex characters")
	}
	return WalletAddress("0x" + checksumHex(lower)), nil
}

func (w WalletAddress) String() string {
	return string(w)
}

func (w WalletAddress) IsNil() bool {
	return w == ""
}

// checksumHex applies the EIP-55 rule: a hex letter is uppercased when the
// corresponding nibble of keccak256(lowercase address) is >= 8.
func checksumHex(lower string) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(lower))
	sum := hash.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}
