package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// TestContext holds state between test steps.
type TestContext struct {
	BaseURL          string
	Token            string
	HTTPClient       *http.Client
	LastResponse     *http.Response
	LastResponseBody []byte

	// SavedCredential is the first credential of the last generated bundle,
	// kept as raw JSON so tamper steps can mutate it.
	SavedCredential map[string]any
	Wallet          string
}

// NewTestContext creates a new test context from the environment. SELO_E2E_URL
// points at a running server; SELO_E2E_TOKEN is a holder token minted with
// cmd/tokengen for SELO_E2E_WALLET.
func NewTestContext() *TestContext {
	wallet := os.Getenv("SELO_E2E_WALLET")
	if wallet == "" {
		wallet = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	}
	return &TestContext{
		BaseURL: os.Getenv("SELO_E2E_URL"),
		Token:   os.Getenv("SELO_E2E_TOKEN"),
		Wallet:  wallet,
		HTTPClient: &http.Client{
			// Proof generation against a real sidecar is slow.
			Timeout: 5 * time.Minute,
		},
	}
}

// POST makes a POST request and stores the response.
func (tc *TestContext) POST(path string, body any) error {
	return tc.POSTWithHeaders(path, body, nil)
}

// POSTWithHeaders makes a POST request with optional headers.
func (tc *TestContext) POSTWithHeaders(path string, body any, headers map[string]string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, tc.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return tc.do(req)
}

// GET makes a GET request and stores the response.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}

	tc.LastResponse = resp
	tc.LastResponseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// authHeader returns the bearer header for the configured holder token.
func (tc *TestContext) authHeader() map[string]string {
	if tc.Token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + tc.Token}
}

// ResponseField digs a dotted path out of the last JSON response.
func (tc *TestContext) ResponseField(path string) (any, error) {
	var doc map[string]any
	if err := json.Unmarshal(tc.LastResponseBody, &doc); err != nil {
		return nil, fmt.Errorf("last response is not a JSON object: %w", err)
	}
	return dig(doc, path)
}

func dig(doc map[string]any, path string) (any, error) {
	var current any = doc
	for _, key := range splitPath(path) {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q: %q is not an object", path, key)
		}
		current, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("field %q not present in response", path)
		}
	}
	return current, nil
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	return append(parts, path[start:])
}
