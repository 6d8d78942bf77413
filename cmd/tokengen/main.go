// Package main provides a CLI tool for generating holder API tokens for local
// development. These tokens use the dev signing key and will NOT work against
// a production deployment.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"selo/internal/platform/token"
	id "selo/pkg/domain"
)

const (
	// Dev signing key, matches config.go when SELO_API_SIGNING_KEY is not set
	devSigningKey = "dev-secret-key-change-in-production"

	defaultIssuer = "did:example:issuer"
	defaultTTL    = 24 * time.Hour
)

type tokenOutput struct {
	Token     string `json:"token"`
	Wallet    string `json:"wallet"`
	ExpiresIn string `json:"expires_in"`
	Usage     string `json:"usage"`
}

func main() {
	walletFlag := flag.String("wallet", "", "Holder wallet address (0x...)")
	signingKey := flag.String("signing-key", devSigningKey, "HMAC signing key")
	issuer := flag.String("issuer", defaultIssuer, "Token issuer")
	ttl := flag.Duration("ttl", defaultTTL, "Token time-to-live")
	asJSON := flag.Bool("json", false, "Output as JSON")
	flag.Parse()

	if *walletFlag == "" {
		fmt.Fprintln(os.Stderr, "error: -wallet is required")
		flag.Usage()
		os.Exit(2)
	}

	wallet, err := id.ParseWalletAddress(*walletFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	svc := token.NewService(*signingKey, *issuer, *ttl)
	signed, err := svc.Generate(wallet, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		out := tokenOutput{
			Token:     signed,
			Wallet:    wallet.String(),
			ExpiresIn: ttl.String(),
			Usage:     "Authorization: Bearer <token>",
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out) //nolint:errcheck // stdout
		return
	}

	fmt.Println(signed)
}
