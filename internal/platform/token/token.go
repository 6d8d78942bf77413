// Package token issues and validates the HS256 API tokens holders use to call
// the credential endpoints. Tokens bind a wallet address; they are not
// credentials themselves and carry no document data.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"selo/internal/platform/middleware"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
)

// Claims is the JWT claim set for holder API tokens.
type Claims struct {
	Wallet string `json:"wallet"`
	jwt.RegisteredClaims
}

// Service signs and validates API tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func NewService(signingKey, issuer string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Generate mints a token bound to the given wallet.
func (s *Service) Generate(wallet id.WalletAddress, now time.Time) (string, error) {
	if wallet.IsNil() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "wallet is required")
	}

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not generate token ID")
	}

	claims := Claims{
		Wallet: wallet.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        hex.EncodeToString(b),
			Issuer:    s.issuer,
			Subject:   wallet.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign token")
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning middleware claims.
func (s *Service) Validate(tokenString string) (*middleware.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if _, err := id.ParseWalletAddress(claims.Wallet); err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token wallet is not a valid address")
	}

	return &middleware.TokenClaims{Wallet: claims.Wallet, JTI: claims.ID}, nil
}
