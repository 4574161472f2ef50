// Package intake holds the domain model for demo call requests: the
// ephemeral request submitted by a visitor and the append-only audit
// record of its outcome.
package intake

import (
	"time"
)

// CallRequest is one visitor submission. It exists only for the duration
// of the HTTP request that carries it and is never persisted.
type CallRequest struct {
	IndustryKey  string `json:"industryKey" validate:"required"`
	IndustryName string `json:"industryName" validate:"required"`
	UseCaseKey   string `json:"useCaseKey" validate:"required"`
	UseCaseName  string `json:"useCaseName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
}

// HasSelection reports whether industry and use case are both present.
func (r CallRequest) HasSelection() bool {
	return r.IndustryKey != "" && r.IndustryName != "" && r.UseCaseKey != "" && r.UseCaseName != ""
}

// DispatchStatus is the terminal state of a dispatch attempt.
type DispatchStatus string

const (
	StatusCreated DispatchStatus = "created"
	StatusError   DispatchStatus = "error"
)

// AuditEntry records one call request's lifecycle and outcome. The raw
// phone number never appears here; only its SHA-256 hash does.
type AuditEntry struct {
	RequestID       string         `json:"request_id"`
	CreatedAt       time.Time      `json:"created_at"`
	IndustryKey     string         `json:"industry_key"`
	UseCaseKey      string         `json:"use_case_key"`
	PhoneHash       string         `json:"phone_hash"`
	Status          DispatchStatus `json:"status"`
	Provider        string         `json:"provider,omitempty"`
	ProviderCallSID string         `json:"provider_call_sid,omitempty"`
	Error           string         `json:"error,omitempty"`
	SourceIP        string         `json:"source_ip,omitempty"`
}
