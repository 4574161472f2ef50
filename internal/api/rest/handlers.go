package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	domain "github.com/davidleathers/demo-call-gateway/internal/domain/intake"
	"github.com/davidleathers/demo-call-gateway/internal/service/intake"
)

// Intake request bodies are small; 64KB leaves generous headroom.
const maxBodySize = 64 << 10

// Handler holds the HTTP handlers and their dependencies
type Handler struct {
	intake    intake.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandler creates a new handler
func NewHandler(intakeService intake.Service, logger *slog.Logger) *Handler {
	return &Handler{
		intake:    intakeService,
		validator: validator.New(),
		logger:    logger,
	}
}

// handleStartCall processes POST /api/start-call
func (h *Handler) handleStartCall(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req domain.CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			RequestID: requestID,
			Error:     "Invalid request body.",
		})
		return
	}

	// Selection fields are checked here so the response is a clean 400;
	// the phone field is validated by the intake service against the
	// normalization rules.
	if err := h.validator.StructPartial(req, "IndustryKey", "IndustryName", "UseCaseKey", "UseCaseName"); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			RequestID: requestID,
			Error:     "Missing industry or use case.",
		})
		return
	}

	resp, err := h.intake.StartCall(r.Context(), requestID, req, getClientIP(r))
	if err != nil {
		writeError(w, r, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, StartCallResponse{
		RequestID: resp.RequestID,
		Provider:  resp.Provider,
		CallSID:   resp.CallSID,
	})
}

// handleHealth processes GET /health
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		OK: true,
		TS: time.Now().UTC(),
	})
}
