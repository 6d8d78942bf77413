// Package handler wires the credential endpoints to the credential service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"

	"selo/internal/credential/models"
	"selo/internal/credential/service"
	"selo/internal/credential/store"
	"selo/internal/platform/middleware"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
	"selo/pkg/platform/httputil"
	strutil "selo/pkg/string"
)

const qrImageSize = 256

// Service defines the credential operations used by the handler.
type Service interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error)
	Verify(ctx context.Context, cred models.FieldCredential) (models.VerificationVerdict, error)
	Retrieve(ctx context.Context, wallet id.WalletAddress, field models.Field) (*store.Record, error)
}

// Handler wires credential endpoints to the credential service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a credential handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts credential endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/credentials/generate", h.HandleGenerate)
	r.Post("/credentials/verify", h.HandleVerify)
	r.Get("/credentials/{wallet}/{field}", h.HandleRetrieve)
	r.Get("/credentials/{wallet}/{field}/qr", h.HandleRetrieveQR)
}

// GenerateRequest is the request body for credential generation.
type GenerateRequest struct {
	WalletAddress string                  `json:"walletAddress"`
	Document      models.DocumentFieldSet `json:"document"`
	Fields        []string                `json:"fields"`

	parsedWallet    id.WalletAddress
	parsedSelection models.FieldSelection
}

// Normalize trims string fields before validation.
func (r *GenerateRequest) Normalize() {
	strutil.TrimStrings(&r.WalletAddress)
	strutil.TrimSlice(r.Fields)
}

// Validate validates and parses the generation request.
func (r *GenerateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	// Phase 1: Size validation (fail fast on oversized input)
	if len(r.WalletAddress) > 64 {
		return dErrors.New(dErrors.CodeValidation, "walletAddress is too long")
	}
	if len(r.Fields) > 32 {
		return dErrors.New(dErrors.CodeValidation, "too many fields selected")
	}

	// Phase 2: Required fields
	if r.WalletAddress == "" {
		return dErrors.New(dErrors.CodeValidation, "walletAddress is required")
	}
	if len(r.Fields) == 0 {
		return dErrors.New(dErrors.CodeValidation, "at least one field must be selected")
	}

	// Phase 3: Syntax and lexical validation
	wallet, err := id.ParseWalletAddress(r.WalletAddress)
	if err != nil {
		return dErrors.New(dErrors.CodeBadRequest, err.Error())
	}
	selection := make(models.FieldSelection, 0, len(r.Fields))
	for _, raw := range r.Fields {
		field, err := models.ParseField(raw)
		if err != nil {
			return dErrors.New(dErrors.CodeBadRequest, err.Error())
		}
		selection = append(selection, field)
	}

	r.parsedWallet = wallet
	r.parsedSelection = selection
	return nil
}

// ParsedWallet returns the validated wallet address.
func (r *GenerateRequest) ParsedWallet() id.WalletAddress {
	return r.parsedWallet
}

// ParsedSelection returns the validated field selection.
func (r *GenerateRequest) ParsedSelection() models.FieldSelection {
	return r.parsedSelection
}

// HandleGenerate handles POST /credentials/generate requests.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	// Tokens bind a wallet; a holder cannot generate credentials for another.
	if authWallet := middleware.GetWallet(ctx); authWallet != "" && !strings.EqualFold(authWallet, req.WalletAddress) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "token is not bound to this wallet"))
		return
	}

	result, err := h.service.Generate(ctx, service.GenerateRequest{
		Wallet:    req.ParsedWallet(),
		Document:  req.Document,
		Selection: req.ParsedSelection(),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "credential generation failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, result)
}

// VerifyRequest is the request body for credential verification.
type VerifyRequest struct {
	Credential models.FieldCredential `json:"credential"`
}

// Validate rejects an entirely empty submission early; everything deeper is
// the verifier's job and surfaces as a verdict, not a request error.
func (r *VerifyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Credential.Field == "" && r.Credential.Credential.ID == "" {
		return dErrors.New(dErrors.CodeValidation, "credential is required")
	}
	return nil
}

// VerifyResponse is the response body for credential verification.
type VerifyResponse struct {
	IsValid bool   `json:"isValid"`
	Reason  string `json:"reason"`
}

// HandleVerify handles POST /credentials/verify requests.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	verdict, err := h.service.Verify(ctx, req.Credential)
	if err != nil {
		h.logger.WarnContext(ctx, "credential verification failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, VerifyResponse{
		IsValid: verdict.IsValid,
		Reason:  verdict.Reason,
	})
}

// HandleRetrieve handles GET /credentials/{wallet}/{field} requests.
func (h *Handler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec.Credential)
}

// HandleRetrieveQR handles GET /credentials/{wallet}/{field}/qr requests.
// The credential envelope is encoded as a QR PNG for wallet presentation.
func (h *Handler) HandleRetrieveQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	payload, err := json.Marshal(rec.Credential)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode credential"))
		return
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, qrImageSize)
	if err != nil {
		h.logger.ErrorContext(ctx, "qr encoding failed", "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render QR code"))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png) //nolint:errcheck // response already committed
}

// lookup parses the wallet and field path params and fetches the record.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	wallet, err := id.ParseWalletAddress(chi.URLParam(r, "wallet"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return nil, false
	}
	field, err := models.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, err.Error()))
		return nil, false
	}

	rec, err := h.service.Retrieve(ctx, wallet, field)
	if err != nil {
		h.logger.WarnContext(ctx, "credential retrieval failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return nil, false
	}
	return rec, true
}
