package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr             string
	IssuerDID        string
	ValidityWindow   time.Duration
	APISigningKey    string
	ProverURL        string
	ProverTimeout    time.Duration
	LedgerURL        string
	CredentialStore  string // memory | postgres | mongo
	DatabaseURL      string
	MongoURI         string
	NATSURL          string
	AuditSubject     string
	CPFAccessList    []uint64
	RequiredCategory string
}

// DefaultValidityWindow is how long an issued credential stays valid.
var DefaultValidityWindow = 365 * 24 * time.Hour // 1 year

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:             getEnv("SELO_ADDR", ":8080"),
		IssuerDID:        getEnv("SELO_ISSUER_DID", "did:example:issuer"),
		ValidityWindow:   DefaultValidityWindow,
		APISigningKey:    getEnv("SELO_API_SIGNING_KEY", "dev-secret-key-change-in-production"),
		ProverURL:        getEnv("SELO_PROVER_URL", ""),
		ProverTimeout:    5 * time.Minute,
		LedgerURL:        getEnv("SELO_LEDGER_URL", ""),
		CredentialStore:  getEnv("SELO_CREDENTIAL_STORE", "memory"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MongoURI:         getEnv("MONGO_URI", ""),
		NATSURL:          getEnv("NATS_URL", ""),
		AuditSubject:     getEnv("SELO_AUDIT_SUBJECT", "selo.audit"),
		RequiredCategory: getEnv("SELO_REQUIRED_CATEGORY", "b"),
	}

	if v := os.Getenv("SELO_VALIDITY_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ValidityWindow = d
		}
	}
	if v := os.Getenv("SELO_PROVER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ProverTimeout = d
		}
	}
	cfg.CPFAccessList = parseAccessList(os.Getenv("SELO_CPF_ACCESS_LIST"))

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseAccessList reads the comma-separated authorized CPF list. Entries that
// fail to parse are dropped rather than aborting startup.
func parseAccessList(raw string) []uint64 {
	if raw == "" {
		return nil
	}
	var out []uint64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var n uint64
		ok := true
		for _, c := range part {
			if c < '0' || c > '9' {
				ok = false
				break
			}
			n = n*10 + uint64(c-'0')
		}
		if ok {
			out = append(out, n)
		}
	}
	return out
}
