package rest

import (
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/davidleathers/demo-call-gateway/internal/domain/errors"
)

// writeError maps a domain error onto the wire contract: the AppError
// status code and message, with the request id attached. Anything that
// is not an AppError gets a generic message so internals never leak.
func writeError(w http.ResponseWriter, r *http.Request, requestID string, err error) {
	status := errors.GetStatusCode(err)
	message := "Internal server error."

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= 500 {
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", requestID,
			"status", status,
			"error", err,
		)
	}

	writeJSON(w, status, ErrorResponse{RequestID: requestID, Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
