package dispatch

import (
	"context"
	"log/slog"

	"github.com/davidleathers/demo-call-gateway/internal/domain/intake"
	"github.com/davidleathers/demo-call-gateway/internal/domain/values"
)

// ProviderNameMock identifies the mock provider in responses and audit entries
const ProviderNameMock = "mock"

// MockDispatcher reports success without contacting any provider. It is
// the default for demo deployments without Twilio credentials.
type MockDispatcher struct {
	logger *slog.Logger
}

// NewMockDispatcher creates a dispatcher that never dials
func NewMockDispatcher(logger *slog.Logger) *MockDispatcher {
	return &MockDispatcher{logger: logger}
}

func (d *MockDispatcher) Name() string {
	return ProviderNameMock
}

func (d *MockDispatcher) Dispatch(ctx context.Context, req intake.CallRequest, phone values.PhoneNumber, requestID string) (*DispatchResult, error) {
	d.logger.InfoContext(ctx, "mock call dispatched",
		"request_id", requestID,
		"industry_key", req.IndustryKey,
		"use_case_key", req.UseCaseKey,
	)

	return &DispatchResult{Provider: ProviderNameMock}, nil
}

var _ Dispatcher = (*MockDispatcher)(nil)
