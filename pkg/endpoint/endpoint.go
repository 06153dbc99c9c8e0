// Package endpoint implements the Hi-Rez API transport: request signing,
// session management, connection retries and daily quota gating.
//
// Every authed method call is signed with an MD5 signature derived from
// the developer credentials and a UTC timestamp, and carries a session
// token the endpoint creates and slides forward transparently. Callers
// only ever see Request.
package endpoint

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"github.com/DevilXD/HiRezAPI/pkg/logging"
	"github.com/DevilXD/HiRezAPI/pkg/usage"
)

// DefaultURL is the Paladins PC API base URL.
const DefaultURL = "https://api.paladins.com/paladinsapi.svc"

const (
	// sessionLifetime is how long a session stays valid without use.
	// Each authed request slides the expiry forward.
	sessionLifetime = 15 * time.Minute

	// timestampLayout is the UTC timestamp format the API expects in
	// signatures and request URLs.
	timestampLayout = "20060102150405"

	// invalidSessionMsg is the result message the API returns when the
	// session token it was given has expired server-side.
	invalidSessionMsg = "Invalid session id."
)

// Config holds the endpoint configuration.
type Config struct {
	// URL is the API base URL (default: DefaultURL).
	URL string

	// DevID is the developer ID (devId) issued by Hi-Rez.
	DevID string

	// AuthKey is the developer authentication key (authKey).
	AuthKey string

	// HTTPClient performs the actual requests (default: 20s timeout).
	HTTPClient *http.Client

	// Usage tracks requests against the daily quota. Optional; when set,
	// an exhausted quota blocks calls with ErrLimitReached.
	Usage usage.Tracker

	// Clock supplies the current time (default: time.Now).
	Clock func() time.Time

	// MaxRetries is the number of attempts for connection problems.
	MaxRetries int
}

// DefaultConfig returns a default endpoint configuration.
func DefaultConfig(devID, authKey string) Config {
	return Config{
		URL:     DefaultURL,
		DevID:   devID,
		AuthKey: authKey,
		HTTPClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		MaxRetries: 5,
	}
}

// Endpoint is a Hi-Rez API endpoint wrapper.
type Endpoint struct {
	url        string
	devID      string
	authKey    string
	httpClient *http.Client
	usage      usage.Tracker
	clock      func() time.Time
	maxRetries int
	logger     zerolog.Logger

	sessionMu      sync.Mutex
	sessionID      string
	sessionExpires time.Time
}

// New creates an endpoint.
func New(cfg Config) (*Endpoint, error) {
	if cfg.DevID == "" {
		return nil, fmt.Errorf("developer id is required")
	}

	if cfg.AuthKey == "" {
		return nil, fmt.Errorf("auth key is required")
	}

	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}

	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}

	return &Endpoint{
		url:        strings.TrimRight(cfg.URL, "/"),
		devID:      cfg.DevID,
		authKey:    strings.ToUpper(cfg.AuthKey),
		httpClient: cfg.HTTPClient,
		usage:      cfg.Usage,
		clock:      cfg.Clock,
		maxRetries: cfg.MaxRetries,
		logger:     logging.NewLogger("endpoint"),
	}, nil
}

// Request performs a named API method call and returns the raw response
// body. Connection problems are retried with jittered backoff; a session
// invalidated server-side is recreated and the call retried immediately.
func (e *Endpoint) Request(ctx context.Context, method string, args ...string) ([]byte, error) {
	method = strings.ToLower(method)

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	}()

	if method != "ping" && method != "createsession" {
		if err := e.gate(ctx); err != nil {
			requestsTotal.WithLabelValues(method, classify(err)).Inc()
			return nil, err
		}
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		body, err := e.attempt(ctx, method, args)
		if err == nil {
			if probeRetMsg(body) == invalidSessionMsg {
				// The server dropped our session token. Expire it so
				// the next attempt recreates it; no backoff needed.
				e.expireSession()
				retriesTotal.WithLabelValues("invalid_session").Inc()
				e.logger.Warn().Str("method", method).Msg("Session invalidated by server, recreating")
				continue
			}
			requestsTotal.WithLabelValues(method, "ok").Inc()
			return body, nil
		}

		if !retriable(err) {
			requestsTotal.WithLabelValues(method, classify(err)).Inc()
			return nil, err
		}

		lastErr = err
		retriesTotal.WithLabelValues("connection").Inc()
		e.logger.Warn().
			Err(err).
			Str("method", method).
			Int("attempt", attempt).
			Msg("Connection problems, retrying")

		if attempt >= e.maxRetries {
			break
		}

		if err := e.backoff(ctx, attempt); err != nil {
			return nil, err
		}
	}

	requestsTotal.WithLabelValues(method, "retry_exhausted").Inc()
	return nil, fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, e.maxRetries, lastErr)
}

// Ping performs an unauthenticated liveness call.
func (e *Endpoint) Ping(ctx context.Context) error {
	_, err := e.Request(ctx, "ping")
	return err
}

// Close releases idle transport connections.
func (e *Endpoint) Close() {
	e.httpClient.CloseIdleConnections()
}

// gate blocks the call when the daily quota is exhausted. Tracker read
// failures are logged and ignored - accounting must never break requests.
func (e *Endpoint) gate(ctx context.Context) error {
	if e.usage == nil {
		return nil
	}

	state, err := e.usage.State(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("Usage state unavailable, skipping quota gate")
		return nil
	}

	if state.Exhausted() {
		e.logger.Error().
			Int("requests_today", state.Requests).
			Int("sessions_today", state.Sessions).
			Msg("Daily quota exhausted, blocking request")
		return ErrLimitReached
	}

	return nil
}

// attempt performs a single HTTP round trip for the method.
func (e *Endpoint) attempt(ctx context.Context, method string, args []string) ([]byte, error) {
	reqURL, err := e.buildURL(ctx, method, args)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("method", method).
		Str("url", reqURL).
		Msg("Executing API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, ErrUnavailable
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	e.recordRequest(ctx)
	return body, nil
}

// buildURL assembles the request URL. Authed methods carry the developer
// ID, a signature, the session token and the signing timestamp as path
// segments; createsession omits the session and ping carries nothing.
func (e *Endpoint) buildURL(ctx context.Context, method string, args []string) (string, error) {
	parts := []string{e.url, method + "json"}

	switch method {
	case "ping":
	case "createsession":
		timestamp := e.timestamp()
		parts = append(parts, e.devID, e.signature(method, timestamp), timestamp)
	default:
		session, err := e.session(ctx)
		if err != nil {
			return "", err
		}
		timestamp := e.timestamp()
		parts = append(parts, e.devID, e.signature(method, timestamp), session, timestamp)
	}

	parts = append(parts, args...)
	return strings.Join(parts, "/"), nil
}

// signature computes the MD5 request signature for a method call.
func (e *Endpoint) signature(method, timestamp string) string {
	sum := md5.Sum([]byte(e.devID + method + e.authKey + timestamp))
	return hex.EncodeToString(sum[:])
}

func (e *Endpoint) timestamp() string {
	return e.clock().UTC().Format(timestampLayout)
}

// session returns a valid session token, creating one when the current
// token has expired. Every call slides the expiry forward.
func (e *Endpoint) session(ctx context.Context) (string, error) {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()

	now := e.clock()
	if !now.Before(e.sessionExpires) {
		if err := e.createSession(ctx); err != nil {
			return "", err
		}
	}
	e.sessionExpires = now.Add(sessionLifetime)

	return e.sessionID, nil
}

// createSession requests a fresh session token. Callers must hold
// e.sessionMu; the recursive Request call is safe because the
// createsession branch never touches the session state.
func (e *Endpoint) createSession(ctx context.Context) error {
	body, err := e.Request(ctx, "createsession")
	if err != nil {
		return err
	}

	var session struct {
		SessionID string `json:"session_id"`
		RetMsg    string `json:"ret_msg"`
	}
	if err := sonic.Unmarshal(body, &session); err != nil {
		return fmt.Errorf("decode createsession response: %w", err)
	}

	if session.SessionID == "" {
		return ErrUnauthorized
	}

	e.sessionID = session.SessionID
	sessionsCreatedTotal.Inc()
	e.recordSession(ctx)

	e.logger.Info().Msg("API session created")
	return nil
}

// expireSession forces the next authed request to create a new session.
func (e *Endpoint) expireSession() {
	e.sessionMu.Lock()
	defer e.sessionMu.Unlock()
	e.sessionExpires = e.clock()
}

// backoff sleeps before the next connection retry. The delay grows with
// the attempt number and carries gaussian jitter so parallel clients
// don't retry in lockstep.
func (e *Endpoint) backoff(ctx context.Context, attempt int) error {
	delay := time.Duration(float64(attempt) * float64(500*time.Millisecond) * (1 + rand.NormFloat64()*0.1))
	if delay < 0 {
		delay = 0
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

func (e *Endpoint) recordRequest(ctx context.Context) {
	if e.usage == nil {
		return
	}
	if err := e.usage.RecordRequest(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("Usage tracker error, request not recorded")
	}
}

func (e *Endpoint) recordSession(ctx context.Context) {
	if e.usage == nil {
		return
	}
	if err := e.usage.RecordSession(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("Usage tracker error, session not recorded")
	}
}

// retriable reports whether an error is a connection-class failure worth
// another attempt. HTTP errors and API sentinels are final.
func retriable(err error) bool {
	return classify(err) == "network"
}

// probeRetMsg extracts the ret_msg field from a response body, which the
// API returns either as a single object or as a list of records.
func probeRetMsg(body []byte) string {
	type probe struct {
		RetMsg string `json:"ret_msg"`
	}

	var single probe
	if err := sonic.Unmarshal(body, &single); err == nil {
		return single.RetMsg
	}

	var list []probe
	if err := sonic.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return list[0].RetMsg
	}

	return ""
}
