package webhooks

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"hookprobe/internal/pkg/errors"
	"hookprobe/internal/platform/models"
	"hookprobe/internal/platform/repositories"
)

const (
	DeliveryHeader = "X-vtypeio-Delivery"

	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "hookprobe/1.0"
	defaultMaxBody   = 64 << 10
)

// Recorder persists delivery attempts. Failures are logged, never returned
// to the caller of Send.
type Recorder interface {
	Save(d *models.Delivery) error
}

// Result is what came back from the endpoint.
type Result struct {
	Delivery  *models.Delivery
	Status    string
	Proto     string
	Header    http.Header
	Body      []byte
	Truncated bool
}

type Dispatcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
	recorder  Recorder
}

type Option func(*Dispatcher)

func WithTimeout(d time.Duration) Option {
	return func(ds *Dispatcher) {
		if d > 0 {
			ds.timeout = d
		}
	}
}

// WithHTTPClient replaces the default client. The client's own Timeout is
// left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(ds *Dispatcher) {
		ds.client = c
	}
}

func WithUserAgent(ua string) Option {
	return func(ds *Dispatcher) {
		if ua != "" {
			ds.userAgent = ua
		}
	}
}

func WithMaxResponseBody(n int64) Option {
	return func(ds *Dispatcher) {
		if n > 0 {
			ds.maxBody = n
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(ds *Dispatcher) {
		ds.recorder = r
	}
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		maxBody:   defaultMaxBody,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.client == nil {
		d.client = &http.Client{
			Timeout: d.timeout,
			// A 3xx is the endpoint's answer. Following it would turn the
			// POST into a GET and carry the signature to another host.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return d
}

// Send POSTs payload to target once, signed with secret. The returned Result
// is non-nil whenever a response was received, including non-2xx responses,
// which are also reported as an UNEXPECTED_STATUS error.
func (d *Dispatcher) Send(ctx context.Context, target, secret string, payload []byte) (*Result, error) {
	if secret == "" {
		return nil, errors.New(errors.ErrCodeMissingSecret, "webhook secret is empty", nil)
	}
	u, err := ValidateURL(target)
	if err != nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, err.Error(), nil)
	}

	sum := sha256.Sum256(payload)
	delivery := &models.Delivery{
		ID:            repositories.NewDeliveryID(),
		URL:           u.String(),
		Signature:     Sign(secret, payload),
		PayloadSHA256: hex.EncodeToString(sum[:]),
		PayloadSize:   len(payload),
		CreatedAt:     time.Now().Unix(),
	}
	logger := log.With().Str("delivery_id", delivery.ID).Str("url", delivery.URL).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, delivery.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.New(errors.ErrCodeInternal, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SignatureHeader, delivery.Signature)
	req.Header.Set(DeliveryHeader, delivery.ID)
	req.Header.Set("User-Agent", d.userAgent)

	logger.Debug().Int("bytes", len(payload)).Str("signature", delivery.Signature).Msg("sending webhook")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		delivery.DurationMs = time.Since(start).Milliseconds()
		delivery.Error = err.Error()
		d.record(delivery)
		logger.Error().Err(err).Msg("webhook request failed")
		return nil, errors.New(errors.ErrCodeRequestFailed, "request failed", err)
	}
	defer resp.Body.Close()

	body, truncated, readErr := readLimited(resp.Body, d.maxBody)
	delivery.DurationMs = time.Since(start).Milliseconds()
	delivery.StatusCode = resp.StatusCode
	delivery.ResponseBody = string(body)

	result := &Result{
		Delivery:  delivery,
		Status:    resp.Status,
		Proto:     resp.Proto,
		Header:    resp.Header,
		Body:      body,
		Truncated: truncated,
	}

	if readErr != nil {
		delivery.Error = fmt.Sprintf("failed to read response: %v", readErr)
		d.record(delivery)
		logger.Error().Err(readErr).Int("status", resp.StatusCode).Msg("failed to read webhook response")
		return result, errors.New(errors.ErrCodeRequestFailed, "failed to read response", readErr)
	}

	if !delivery.Succeeded() {
		delivery.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
		d.record(delivery)
		logger.Warn().Int("status", resp.StatusCode).Int64("duration_ms", delivery.DurationMs).Msg("webhook rejected")
		return result, errors.New(errors.ErrCodeUnexpectedStatus, delivery.Error, nil)
	}

	d.record(delivery)
	logger.Info().Int("status", resp.StatusCode).Int64("duration_ms", delivery.DurationMs).Msg("webhook delivered")
	return result, nil
}

func (d *Dispatcher) record(delivery *models.Delivery) {
	if d.recorder == nil {
		return
	}
	if err := d.recorder.Save(delivery); err != nil {
		log.Warn().Err(err).Str("delivery_id", delivery.ID).Msg("failed to record delivery")
	}
}

func readLimited(r io.Reader, limit int64) ([]byte, bool, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return b, false, err
	}
	if int64(len(b)) > limit {
		return b[:limit], true, nil
	}
	return b, false, nil
}
