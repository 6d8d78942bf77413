package prover

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	dErrors "selo/pkg/domain-errors"
)

// HTTPClient implements Prover against the Noir proving sidecar. The sidecar
// owns circuit compilation and witness solving; this client only moves JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Ensure HTTPClient implements Prover
var _ Prover = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// NewHTTPClient creates a Prover backed by the proving sidecar at baseURL.
// The timeout bounds a single proof generation; circuit proving routinely
// takes tens of seconds, so callers should size it generously.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// proveRequest is the request body for proof generation.
type proveRequest struct {
	Circuit string         `json:"circuit"`
	Input   map[string]any `json:"input"`
}

// proveResponse is the sidecar's proof generation result.
type proveResponse struct {
	Proof           string         `json:"proof"`
	PublicInputs    map[string]any `json:"publicInputs"`
	VerificationKey string         `json:"verificationKey"`
}

// verifyRequest is the request body for proof verification.
type verifyRequest struct {
	Proof           string         `json:"proof"`
	PublicInputs    map[string]any `json:"publicInputs"`
	VerificationKey string         `json:"verificationKey"`
}

// verifyResponse is the sidecar's verification result.
type verifyResponse struct {
	Valid bool `json:"valid"`
}

// errorResponse is the sidecar's error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// GenerateProof asks the sidecar to execute the named circuit.
func (c *HTTPClient) GenerateProof(ctx context.Context, circuitID string, input map[string]any) (Result, error) {
	var resp proveResponse
	if err := c.post(ctx, "/api/v1/prove", proveRequest{Circuit: circuitID, Input: input}, &resp); err != nil {
		return Result{}, err
	}

	proof, err := decodeHex(resp.Proof)
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeProofBuildFailed, "sidecar returned malformed proof hex")
	}
	vk, err := decodeHex(resp.VerificationKey)
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeProofBuildFailed, "sidecar returned malformed verification key hex")
	}
	return Result{
		Proof:           proof,
		PublicInputs:    resp.PublicInputs,
		VerificationKey: vk,
	}, nil
}

// VerifyProof asks the sidecar to check a proof against its public inputs.
func (c *HTTPClient) VerifyProof(ctx context.Context, proofHex string, publicInputs map[string]any, verificationKeyHex string) (bool, error) {
	var resp verifyResponse
	err := c.post(ctx, "/api/v1/verify", verifyRequest{
		Proof:           proofHex,
		PublicInputs:    publicInputs,
		VerificationKey: verificationKeyHex,
	}, &resp)
	if err != nil {
		return false, err
	}
	return resp.Valid, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, in, out any) error {
	reqBody, err := json.Marshal(in)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return dErrors.Wrap(context.DeadlineExceeded, dErrors.CodeTimeout, "proving sidecar request timed out")
		}
		return dErrors.Wrap(err, dErrors.CodeProofBuildFailed, "proving sidecar unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeProofBuildFailed, "failed to read sidecar response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return dErrors.New(dErrors.CodeProofBuildFailed, errResp.Message)
		}
		return dErrors.New(dErrors.CodeProofBuildFailed,
			fmt.Sprintf("proving sidecar returned status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeProofBuildFailed, "failed to parse sidecar response")
	}
	return nil
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
}
