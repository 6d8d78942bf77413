// Package device derives a coarse device fingerprint from the User-Agent of
// incoming requests. The fingerprint is attached to audit events so unusual
// issuance patterns for a wallet can be spotted; it never influences issuance
// or verification decisions.
package device

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/mssola/useragent"
)

type contextKeyFingerprint struct{}

// Fingerprint retrieves the device fingerprint from context, if any.
func Fingerprint(ctx context.Context) string {
	if fp, ok := ctx.Value(contextKeyFingerprint{}).(string); ok {
		return fp
	}
	return ""
}

// Middleware computes the fingerprint once per request and stores it in context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fp := ComputeFingerprint(r.Header.Get("User-Agent"))
		if fp != "" {
			ctx := context.WithValue(r.Context(), contextKeyFingerprint{}, fp)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// ComputeFingerprint hashes browser family, major version, OS, and platform.
// Note: Does NOT include IP address (too volatile; used only for audit context).
func ComputeFingerprint(userAgentString string) string {
	if userAgentString == "" {
		return ""
	}

	ua := useragent.New(userAgentString)
	browser, version := ua.Browser()

	majorVersion := "unknown"
	if version != "" {
		parts := strings.Split(version, ".")
		if len(parts) > 0 && parts[0] != "" {
			majorVersion = parts[0]
		}
	}

	os := ua.OS()
	platform := "desktop"
	if ua.Mobile() {
		platform = "mobile"
	}

	browser = strings.ToLower(strings.TrimSpace(browser))
	if browser == "" {
		browser = "unknown"
	}
	os = strings.ToLower(strings.TrimSpace(os))
	if os == "" {
		os = "unknown"
	}

	data := fmt.Sprintf("%s|%s|%s|%s", browser, majorVersion, os, platform)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
