package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	dErrors "selo/pkg/domain-errors"
)

// HTTPRegistrar implements Registrar against a registry relay that submits
// the actual chain transaction.
type HTTPRegistrar struct {
	baseURL    string
	httpClient *http.Client
}

var _ Registrar = (*HTTPRegistrar)(nil)

// NewHTTPRegistrar creates a Registrar backed by the relay at baseURL.
func NewHTTPRegistrar(baseURL string, timeout time.Duration) *HTTPRegistrar {
	return &HTTPRegistrar{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type registerRequest struct {
	Wallet     string `json:"wallet"`
	Field      string `json:"field"`
	Proof      string `json:"proof"`
	ClaimValue string `json:"claimValue"`
}

type registerResponse struct {
	TxRef string `json:"txRef"`
}

func (r *HTTPRegistrar) Register(ctx context.Context, reg Registration) (string, error) {
	reqBody, err := json.Marshal(registerRequest{
		Wallet:     reg.Wallet.String(),
		Field:      reg.Field.String(),
		Proof:      reg.ProofHex,
		ClaimValue: reg.ClaimValue,
	})
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to marshal registration")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/registrations", bytes.NewReader(reqBody))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "registry relay unreachable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to read relay response")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("registry relay returned status %d", resp.StatusCode))
	}

	var parsed registerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to parse relay response")
	}
	return parsed.TxRef, nil
}
