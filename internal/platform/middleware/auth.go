package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// TokenValidator defines the interface for validating holder API tokens.
type TokenValidator interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims represents the claims we expect from the token validator.
type TokenClaims struct {
	Wallet string
	JTI    string
}

type contextKeyWallet struct{}

// GetWallet retrieves the authenticated wallet address from the context.
// Empty when the request did not pass RequireAuth.
func GetWallet(ctx context.Context) string {
	wallet, ok := ctx.Value(contextKeyWallet{}).(string)
	if !ok {
		return ""
	}
	return wallet
}

// WithWallet injects a wallet address into a context. Test helper.
func WithWallet(ctx context.Context, wallet string) context.Context {
	return context.WithValue(ctx, contextKeyWallet{}, wallet)
}

// RequireAuth enforces a valid Bearer token and stores the holder's wallet in
// the request context. Tokens are minted out of band (cmd/tokengen) and bind a
// wallet address; they authorize API access only and carry no document data.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				unauthorized(w)
				return
			}

			claims, err := validator.Validate(strings.TrimPrefix(authHeader, bearerPrefix))
			if err != nil {
				logger.WarnContext(r.Context(), "rejected api token",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyWallet{}, claims.Wallet)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","error_description":"valid bearer token required"}`))
}
