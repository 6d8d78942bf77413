package prover

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// MockProver is a deterministic in-process stand-in for the proving backend.
// Proof bytes are a hash over the verification key and the public inputs, so
// VerifyProof can recompute and compare without storing anything. Useful for
// tests and for running the service without a proving sidecar.
type MockProver struct {
	// Latency, when set, is slept per call so timeout paths can be exercised.
	Latency time.Duration
}

func (m *MockProver) GenerateProof(ctx context.Context, circuitID string, input map[string]any) (Result, error) {
	if err := m.wait(ctx); err != nil {
		return Result{}, err
	}
	vk := sha256.Sum256([]byte("vk:" + circuitID))
	proof, err := derive(vk[:], input)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Proof:           proof,
		PublicInputs:    input,
		VerificationKey: vk[:],
	}, nil
}

func (m *MockProver) VerifyProof(ctx context.Context, proofHex string, publicInputs map[string]any, verificationKeyHex string) (bool, error) {
	if err := m.wait(ctx); err != nil {
		return false, err
	}
	vk, err := hex.DecodeString(strings.TrimPrefix(verificationKeyHex, "0x"))
	if err != nil {
		return false, nil
	}
	want, err := derive(vk, publicInputs)
	if err != nil {
		return false, err
	}
	got := strings.TrimPrefix(strings.ToLower(proofHex), "0x")
	return got == hex.EncodeToString(want), nil
}

func (m *MockProver) wait(ctx context.Context) error {
	if m.Latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(m.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// derive hashes the verification key together with the canonical JSON of the
// public inputs. json.Marshal sorts map keys, which keeps the digest stable.
func derive(vk []byte, publicInputs map[string]any) ([]byte, error) {
	canonical, err := json.Marshal(publicInputs)
	if err != nil {
		return nil, err
	}
	h := sha256.New()
	h.Write(vk)
	h.Write(canonical)
	return h.Sum(nil), nil
}
