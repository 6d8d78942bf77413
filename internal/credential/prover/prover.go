// Package prover builds normalized proof artifacts by driving the external
// proving capability. The capability itself (Noir circuits behind a
// Barretenberg backend) stays behind the Prover port; this package owns input
// encoding and artifact normalization only.
package prover

import "context"

// Result is the raw output of one external proof generation.
type Result struct {
	Proof           []byte
	PublicInputs    map[string]any
	VerificationKey []byte
}

// Prover is the external proving capability. Implementations must treat
// GenerateProof as a single blocking unit of work; there is no partial or
// streaming result, and cancellation mid-proof is not supported beyond
// abandoning the wait.
type Prover interface {
	// GenerateProof executes the named circuit over the input mapping and
	// returns the proof bytes, public inputs, and verification key.
	GenerateProof(ctx context.Context, circuitID string, input map[string]any) (Result, error)

	// VerifyProof checks a proof against its public inputs and verification
	// key. A false return means the proof is cryptographically invalid; an
	// error means the backend could not complete the check.
	VerifyProof(ctx context.Context, proofHex string, publicInputs map[string]any, verificationKeyHex string) (bool, error)
}
