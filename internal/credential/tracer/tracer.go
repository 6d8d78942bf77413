// Package tracer provides a lightweight tracing abstraction for the
// credential module. It keeps OpenTelemetry behind an internal interface so
// domain code can emit spans without importing its APIs directly.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashValue returns a short SHA-256 hash of a sensitive value so traces can
// be correlated without exposing document data.
func HashValue(value string) string {
	if value == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the credential module.
const (
	SpanGenerate   = "credential.generate"
	SpanProofBuild = "credential.proof_build"
	SpanVerify     = "credential.verify"
	SpanRetrieve   = "credential.retrieve"
	SpanRegister   = "credential.ledger_register"
)

// Attribute keys used by the credential module.
const (
	AttrWallet         = "wallet"
	AttrField          = "field"
	AttrCircuit        = "circuit"
	AttrBundleID       = "bundle_id"
	AttrSelectionSize  = "selection_size"
	AttrIssuedCount    = "issued_count"
	AttrFailedCount    = "failed_count"
	AttrVerdict        = "verdict"
	AttrBreakerOpen    = "breaker_open"
	AttrProofLatencyMs = "proof_latency_ms"
)

// Event names used by the credential module.
const (
	EventAuditEmitted   = "audit.emitted"
	EventLedgerSkipped  = "ledger.skipped"
	EventLedgerAccepted = "ledger.accepted"
)
