package intake

import (
	"context"

	domain "github.com/davidleathers/demo-call-gateway/internal/domain/intake"
)

// Service validates, throttles, records, and dispatches demo call requests
type Service interface {
	// StartCall processes one call request end to end. The request id is
	// generated by the caller so failure responses can carry it too.
	StartCall(ctx context.Context, requestID string, req domain.CallRequest, sourceIP string) (*StartCallResponse, error)
}

// MetricsCollector counts intake outcomes
type MetricsCollector interface {
	// RecordCallDispatched records a successful dispatch by provider
	RecordCallDispatched(provider string)
	// RecordCallFailed records a dispatch failure by provider
	RecordCallFailed(provider string)
	// RecordThrottled records a per-number rate limit rejection
	RecordThrottled()
}

// StartCallResponse is the success payload for one dispatched call
type StartCallResponse struct {
	RequestID string
	Provider  string
	CallSID   string
}
