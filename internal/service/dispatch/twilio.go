package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davidleathers/demo-call-gateway/internal/domain/errors"
	"github.com/davidleathers/demo-call-gateway/internal/domain/intake"
	"github.com/davidleathers/demo-call-gateway/internal/domain/values"
)

// ProviderNameTwilio identifies the Twilio provider in responses and audit entries
const ProviderNameTwilio = "twilio"

const twilioAPIBase = "https://api.twilio.com"

// Lifecycle events the status webhook subscribes to.
var statusCallbackEvents = []string{"initiated", "ringing", "answered", "completed"}

// TwilioConfig carries the credentials and URLs for call origination
type TwilioConfig struct {
	AccountSID        string
	AuthToken         string
	FromNumber        string
	VoiceURL          string
	StatusCallbackURL string
	Timeout           time.Duration
}

// TwilioDispatcher originates calls through the Twilio REST API. The
// voice URL is fetched by Twilio during call setup and carries the
// industry, use case and request id as query parameters.
type TwilioDispatcher struct {
	cfg     TwilioConfig
	client  *http.Client
	baseURL string
	logger  *slog.Logger
}

// NewTwilioDispatcher creates a dispatcher backed by the Twilio REST API.
// The outbound request is bounded by cfg.Timeout (10s when unset); there
// is no cancellation once the call is accepted.
func NewTwilioDispatcher(cfg TwilioConfig, logger *slog.Logger) *TwilioDispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &TwilioDispatcher{
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		baseURL: twilioAPIBase,
		logger:  logger,
	}
}

func (d *TwilioDispatcher) Name() string {
	return ProviderNameTwilio
}

func (d *TwilioDispatcher) Dispatch(ctx context.Context, req intake.CallRequest, phone values.PhoneNumber, requestID string) (*DispatchResult, error) {
	if d.cfg.AccountSID == "" || d.cfg.AuthToken == "" {
		return nil, errors.NewConfigurationError("Twilio is not configured.")
	}
	if d.cfg.FromNumber == "" || d.cfg.VoiceURL == "" {
		return nil, errors.NewConfigurationError("Missing Twilio from number or voice URL.")
	}

	voiceURL, err := d.voiceURL(req, requestID)
	if err != nil {
		return nil, errors.NewConfigurationError("Invalid Twilio voice URL.").WithCause(err)
	}

	form := url.Values{}
	form.Set("To", phone.String())
	form.Set("From", d.cfg.FromNumber)
	form.Set("Url", voiceURL)
	if d.cfg.StatusCallbackURL != "" {
		form.Set("StatusCallback", d.cfg.StatusCallbackURL)
		for _, event := range statusCallbackEvents {
			form.Add("StatusCallbackEvent", event)
		}
		form.Set("StatusCallbackMethod", http.MethodPost)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", d.baseURL, d.cfg.AccountSID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.NewInternalError("failed to build provider request").WithCause(err)
	}
	httpReq.SetBasicAuth(d.cfg.AccountSID, d.cfg.AuthToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := d.client.Do(httpReq)
	if err != nil {
		d.logger.ErrorContext(ctx, "twilio call origination failed",
			"request_id", requestID,
			"error", err,
		)
		return nil, errors.NewProviderError(ProviderNameTwilio, "Call provider error.").WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, errors.NewProviderError(ProviderNameTwilio, "Call provider error.").WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.logger.ErrorContext(ctx, "twilio rejected call",
			"request_id", requestID,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, errors.NewProviderError(ProviderNameTwilio, "Call provider error.").
			WithDetails(map[string]interface{}{"status": resp.StatusCode})
	}

	var created struct {
		SID string `json:"sid"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.SID == "" {
		return nil, errors.NewProviderError(ProviderNameTwilio, "Call provider error.").WithCause(err)
	}

	d.logger.InfoContext(ctx, "twilio call created",
		"request_id", requestID,
		"call_sid", created.SID,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return &DispatchResult{Provider: ProviderNameTwilio, CallSID: created.SID}, nil
}

// voiceURL builds the callback URL Twilio fetches for voice instructions,
// embedding the workflow metadata as query parameters.
func (d *TwilioDispatcher) voiceURL(req intake.CallRequest, requestID string) (string, error) {
	u, err := url.Parse(d.cfg.VoiceURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set("industryKey", req.IndustryKey)
	q.Set("industryName", req.IndustryName)
	q.Set("useCaseKey", req.UseCaseKey)
	q.Set("useCaseName", req.UseCaseName)
	q.Set("requestId", requestID)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

var _ Dispatcher = (*TwilioDispatcher)(nil)
