// Package intake implements the call-request intake flow: field and
// phone validation, per-number throttling, audit recording, and dispatch
// to the configured telephony provider.
package intake

import (
	"context"
	"log/slog"
	"time"

	"github.com/davidleathers/demo-call-gateway/internal/domain/errors"
	domain "github.com/davidleathers/demo-call-gateway/internal/domain/intake"
	"github.com/davidleathers/demo-call-gateway/internal/domain/values"
	"github.com/davidleathers/demo-call-gateway/internal/service/dispatch"
)

// Config tunes the per-number throttle
type Config struct {
	// PerNumberLimit is the max requests per number within the window
	PerNumberLimit int
	// PerNumberWindow is the trailing throttle window
	PerNumberWindow time.Duration
}

// DefaultConfig matches the demo deployment: 2 calls per number per minute
func DefaultConfig() Config {
	return Config{
		PerNumberLimit:  2,
		PerNumberWindow: time.Minute,
	}
}

type service struct {
	auditLog   domain.AuditLog
	dispatcher dispatch.Dispatcher
	metrics    MetricsCollector
	logger     *slog.Logger
	cfg        Config
	now        func() time.Time
}

// NewService creates the intake service. metrics may be nil.
func NewService(auditLog domain.AuditLog, dispatcher dispatch.Dispatcher, metrics MetricsCollector, logger *slog.Logger, cfg Config) Service {
	if cfg.PerNumberLimit <= 0 {
		cfg.PerNumberLimit = DefaultConfig().PerNumberLimit
	}
	if cfg.PerNumberWindow <= 0 {
		cfg.PerNumberWindow = DefaultConfig().PerNumberWindow
	}

	return &service{
		auditLog:   auditLog,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *service) StartCall(ctx context.Context, requestID string, req domain.CallRequest, sourceIP string) (*StartCallResponse, error) {
	if !req.HasSelection() {
		return nil, errors.ErrMissingSelection
	}

	phone, err := values.NewPhoneNumber(req.Phone)
	if err != nil {
		return nil, errors.ErrInvalidPhone
	}

	now := s.now()
	phoneHash := phone.Hash()

	count, err := s.auditLog.CountSince(ctx, phoneHash, now.Add(-s.cfg.PerNumberWindow))
	if err != nil {
		return nil, errors.NewInternalError("audit log unavailable").WithCause(err)
	}
	if count >= s.cfg.PerNumberLimit {
		if s.metrics != nil {
			s.metrics.RecordThrottled()
		}
		s.logger.WarnContext(ctx, "per-number throttle hit",
			"request_id", requestID,
			"recent_requests", count,
			"limit", s.cfg.PerNumberLimit,
		)
		return nil, errors.ErrNumberThrottled
	}

	entry := domain.AuditEntry{
		RequestID:   requestID,
		CreatedAt:   now,
		IndustryKey: req.IndustryKey,
		UseCaseKey:  req.UseCaseKey,
		PhoneHash:   phoneHash,
		SourceIP:    sourceIP,
		Provider:    s.dispatcher.Name(),
	}

	result, err := s.dispatcher.Dispatch(ctx, req, phone, requestID)
	if err != nil {
		entry.Status = domain.StatusError
		entry.Error = err.Error()
		if appendErr := s.auditLog.Append(ctx, entry); appendErr != nil {
			s.logger.ErrorContext(ctx, "failed to record audit entry",
				"request_id", requestID, "error", appendErr)
		}
		if s.metrics != nil {
			s.metrics.RecordCallFailed(s.dispatcher.Name())
		}
		return nil, err
	}

	entry.Status = domain.StatusCreated
	entry.Provider = result.Provider
	entry.ProviderCallSID = result.CallSID
	if appendErr := s.auditLog.Append(ctx, entry); appendErr != nil {
		s.logger.ErrorContext(ctx, "failed to record audit entry",
			"request_id", requestID, "error", appendErr)
	}

	if s.metrics != nil {
		s.metrics.RecordCallDispatched(result.Provider)
	}
	s.logger.InfoContext(ctx, "call dispatched",
		"request_id", requestID,
		"provider", result.Provider,
		"industry_key", req.IndustryKey,
		"use_case_key", req.UseCaseKey,
	)

	return &StartCallResponse{
		RequestID: requestID,
		Provider:  result.Provider,
		CallSID:   result.CallSID,
	}, nil
}
