package audit

import (
	"context"
	"time"

	id "selo/pkg/domain"
)

// Event is emitted from domain logic to capture key credential lifecycle
// actions. Keep it transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp   time.Time        `json:"timestamp"`
	Wallet      id.WalletAddress `json:"wallet"`
	Subject     string           `json:"subject"`
	Action      string           `json:"action"`
	Decision    string           `json:"decision"`
	Reason      string           `json:"reason"`
	RequestID   string           `json:"request_id,omitempty"`
	DevicePrint string           `json:"device_print,omitempty"`
}

const (
	ActionCredentialIssued   = "credential_issued"
	ActionBundleAssembled    = "bundle_assembled"
	ActionCredentialVerified = "credential_verified"
	ActionProofRegistered    = "proof_registered"
)

// Store persists audit events append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
}
