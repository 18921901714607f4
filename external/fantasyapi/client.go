package fantasyapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hockey/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-hockey/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout      = 10 * time.Second
	maxResponseBytes    = 4 << 20
	maxLoggedBodyLength = 240
	retryBackoff        = 250 * time.Millisecond
)

var (
	errBackendTransient = crerr.New("fantasy backend transient failure")
	errBackendNotFound  = crerr.New("fantasy backend resource not found")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	RateLimit      resilience.RateLimitConfig
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the fantasy backend REST API. The caller's bearer token
// is taken from the request context; Token is used for calls made on
// behalf of the service itself.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	sharedTimeout  time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	limiter        *resilience.RateLimiter
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	maxRetries := max(cfg.MaxRetries, 0)
	attempts := time.Duration(maxRetries + 1)

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)
	breaker := resilience.NewCircuitBreaker("fantasy-backend", breakerCfg)
	breaker.OnStateChange(func(name string, from, to resilience.CircuitState) {
		logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
	})

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxRetries,
		sharedTimeout:  attempts * (httpClient.Timeout + attempts*retryBackoff),
		logger:         logger,
		breaker:        breaker,
		circuitEnabled: breakerCfg.Enabled,
		limiter:        resilience.NewRateLimiter(cfg.RateLimit),
	}
}

func (c *Client) bearerToken(ctx context.Context) string {
	if token, ok := usecase.BearerTokenFromContext(ctx); ok {
		return token
	}
	return c.token
}

// getJSON performs a GET and decodes the body into target. Identical
// concurrent GETs of one caller share a single round trip, which runs
// detached from any one caller's cancellation.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	token := c.bearerToken(ctx)

	results := c.flight.DoChan(token+" "+fullURL, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		return c.guarded(sharedCtx, func() ([]byte, error) {
			return c.executeWithRetry(sharedCtx, http.MethodGet, fullURL, token, nil)
		})
	})

	var out any
	select {
	case <-ctx.Done():
		return crerr.Wrap(ctx.Err(), "wait for backend response")
	case res := <-results:
		if res.Err != nil {
			return res.Err
		}
		out = res.Val
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode backend payload")
	}
	return nil
}

// postJSON sends payload once; saves are never retried.
func (c *Client) postJSON(ctx context.Context, path string, payload any, target any) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return crerr.Wrap(err, "encode backend payload")
	}

	fullURL := c.baseURL + path
	token := c.bearerToken(ctx)
	raw, err := c.guarded(ctx, func() ([]byte, error) {
		return c.execute(ctx, http.MethodPost, fullURL, token, buf.B)
	})
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return crerr.Wrap(err, "decode backend payload")
	}
	return nil
}

func (c *Client) guarded(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: backend base url is not configured", usecase.ErrDependencyUnavailable)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "fantasy backend circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: fantasy backend is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	raw, err := fn()
	transient := err != nil && crerr.Is(err, errBackendTransient)
	if c.circuitEnabled {
		if transient {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if transient {
		c.logger.WarnContext(ctx, "fantasy backend request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
	}
	return raw, err
}

func (c *Client) executeWithRetry(ctx context.Context, method, fullURL, token string, body []byte) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.execute(ctx, method, fullURL, token, body)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errBackendTransient) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * retryBackoff
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (c *Client) execute(ctx context.Context, method, fullURL, token string, body []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, crerr.Wrap(err, "wait for rate limiter")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "send %s request", method), errBackendTransient)
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, crerr.Mark(crerr.Wrap(readErr, "read response body"), errBackendTransient)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}
	return nil, statusError(method, resp.StatusCode, raw)
}

func statusError(method string, code int, raw []byte) error {
	detail := decodeDetail(raw)
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, detail)
	case code == http.StatusNotFound:
		return crerr.Mark(fmt.Errorf("%w: %s", usecase.ErrNotFound, detail), errBackendNotFound)
	case (code == http.StatusBadRequest || code == http.StatusUnprocessableEntity) && method == http.MethodPost:
		return fmt.Errorf("%w: %s", usecase.ErrSaveRejected, detail)
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, detail)
	case isRetryableStatus(code):
		return crerr.Mark(crerr.Newf("backend status=%d body=%s", code, abbreviateBody(raw)), errBackendTransient)
	default:
		return crerr.Newf("backend status=%d body=%s", code, abbreviateBody(raw))
	}
}

// decodeDetail extracts the human readable "detail" message. Validation
// failures carry a list of objects with a "msg" field.
func decodeDetail(raw []byte) string {
	var envelope errorEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil || envelope.Detail == nil {
		return abbreviateBody(raw)
	}

	switch detail := envelope.Detail.(type) {
	case string:
		return detail
	case []any:
		messages := make([]string, 0, len(detail))
		for _, item := range detail {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if msg, ok := entry["msg"].(string); ok && msg != "" {
				messages = append(messages, msg)
			}
		}
		if len(messages) > 0 {
			return strings.Join(messages, "; ")
		}
	}
	return abbreviateBody(raw)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func isNotFound(err error) bool {
	return crerr.Is(err, errBackendNotFound)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxLoggedBodyLength {
		return text
	}
	cut := maxLoggedBodyLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
