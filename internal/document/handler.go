package document

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"selo/internal/platform/middleware"
	dErrors "selo/pkg/domain-errors"
	"selo/pkg/platform/httputil"
)

// Handler wires the document extraction endpoint to an Extractor.
type Handler struct {
	extractor Extractor
	logger    *slog.Logger
}

// NewHandler constructs a document handler.
func NewHandler(extractor Extractor, logger *slog.Logger) *Handler {
	return &Handler{extractor: extractor, logger: logger}
}

// Register mounts document endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/documents/extract", h.HandleExtract)
}

// ExtractRequest is the request body for field extraction.
type ExtractRequest struct {
	Text string `json:"text"`
}

// Validate requires non-empty OCR text of a sane size.
func (r *ExtractRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Text) > 64*1024 {
		return dErrors.New(dErrors.CodeValidation, "text is too long")
	}
	if r.Text == "" {
		return dErrors.New(dErrors.CodeValidation, "text is required")
	}
	return nil
}

// HandleExtract handles POST /documents/extract requests.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ExtractRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	fields, err := h.extractor.Extract(ctx, req.Text)
	if err != nil {
		h.logger.WarnContext(ctx, "document extraction failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, fields)
}
