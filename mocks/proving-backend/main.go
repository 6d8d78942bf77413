// Mock proving sidecar for local development and e2e tests. It mimics the
// prove/verify HTTP contract of the real Noir backend with deterministic
// hash-based "proofs": proof = sha256(vk || canonical public inputs), where
// vk = sha256("vk:" + circuit). Latency is configurable to exercise timeouts.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPort      = "8090"
	defaultLatencyMs = "250"
)

var knownCircuits = map[string]bool{
	"cpf_access": true,
	"birthday":   true,
	"validity":   true,
	"category":   true,
}

type ProveRequest struct {
	Circuit string         `json:"circuit"`
	Input   map[string]any `json:"input"`
}

type ProveResponse struct {
	Proof           string         `json:"proof"`
	PublicInputs    map[string]any `json:"publicInputs"`
	VerificationKey string         `json:"verificationKey"`
}

type VerifyRequest struct {
	Proof           string         `json:"proof"`
	PublicInputs    map[string]any `json:"publicInputs"`
	VerificationKey string         `json:"verificationKey"`
}

type VerifyResponse struct {
	Valid bool `json:"valid"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

func main() {
	port := getEnv("PORT", defaultPort)

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/api/v1/prove", handleProve)
	http.HandleFunc("/api/v1/verify", handleVerify)

	log.Printf("🔐 Mock proving backend starting on port %s", port)
	log.Printf("⏱️  Simulated proving latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal(err)
	}
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "proving-backend",
		"version": "1.0.0",
	})
}

func handleProve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req ProveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if !knownCircuits[req.Circuit] {
		writeError(w, http.StatusBadRequest, "unknown_circuit", "no such circuit: "+req.Circuit)
		return
	}

	// Magic input: a witness that cannot be satisfied. Lets e2e tests force a
	// proof build failure for one field.
	if fail, ok := req.Input["force_failure"]; ok && fail == true {
		writeError(w, http.StatusInternalServerError, "witness_unsatisfied", "could not solve witness")
		return
	}

	time.Sleep(time.Duration(latencyMs) * time.Millisecond)

	vk := sha256.Sum256([]byte("vk:" + req.Circuit))
	proof, err := derive(vk[:], req.Input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ProveResponse{
		Proof:           "0x" + hex.EncodeToString(proof),
		PublicInputs:    req.Input,
		VerificationKey: "0x" + hex.EncodeToString(vk[:]),
	})
}

func handleVerify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "POST only")
		return
	}

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	vk, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(req.VerificationKey), "0x"))
	if err != nil {
		json.NewEncoder(w).Encode(VerifyResponse{Valid: false})
		return
	}
	want, err := derive(vk, req.PublicInputs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	got := strings.TrimPrefix(strings.ToLower(req.Proof), "0x")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(VerifyResponse{Valid: got == hex.EncodeToString(want)})
}

// derive hashes the verification key with the canonical JSON of the public
// inputs. json.Marshal sorts map keys, keeping the digest stable.
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

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Message: message})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key, fallback string) int {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		n, _ = strconv.Atoi(fallback)
	}
	return n
}
