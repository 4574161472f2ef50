package rest

import "time"

// StartCallResponse is the success body for POST /api/start-call.
// Field names are part of the client contract and must not change.
type StartCallResponse struct {
	RequestID string `json:"requestId"`
	Provider  string `json:"provider"`
	CallSID   string `json:"callSid,omitempty"`
}

// ErrorResponse is the body for every intake failure. It always carries
// the generated request id so failures stay traceable.
type ErrorResponse struct {
	RequestID string `json:"requestId"`
	Error     string `json:"error"`
}

// HealthResponse is the body for GET /health
type HealthResponse struct {
	OK bool      `json:"ok"`
	TS time.Time `json:"ts"`
}
