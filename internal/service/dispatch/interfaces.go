// Package dispatch abstracts over the telephony providers that place
// outbound demo calls. The mock provider reports success without dialing;
// the Twilio provider originates a real call with a voice-script callback.
package dispatch

import (
	"context"

	"github.com/davidleathers/demo-call-gateway/internal/domain/intake"
	"github.com/davidleathers/demo-call-gateway/internal/domain/values"
)

// Dispatcher places an outbound call for a validated request. The
// implementation is selected once at startup from configuration.
type Dispatcher interface {
	// Dispatch originates the call. The returned result carries the
	// provider name and, for real providers, the provider call SID.
	Dispatch(ctx context.Context, req intake.CallRequest, phone values.PhoneNumber, requestID string) (*DispatchResult, error)

	// Name returns the provider name
	Name() string
}

// DispatchResult is the outcome of a successful dispatch
type DispatchResult struct {
	Provider string
	CallSID  string
}
