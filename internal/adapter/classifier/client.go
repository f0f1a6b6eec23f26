package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/cognitunes/internal/domain"
	"github.com/seu-repo/cognitunes/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/cognitunes/internal/observability/telemetry"
)

// ErrClassification is returned for every way a classification can fail.
// Callers only need errors.Is against it; the wrapped cause is for logs.
var ErrClassification = errors.New("emotion classification failed")

const (
	phraseParam   = "phrase"
	outcomeOK     = "ok"
	outcomeFailed = "failed"
)

// Config holds classifier client configuration
type Config struct {
	Endpoint     string
	Timeout      time.Duration
	MaxBodyBytes int64

	BreakerMaxRequests      uint32
	BreakerInterval         time.Duration
	BreakerTimeout          time.Duration
	BreakerFailureThreshold uint32

	// Transport overrides the underlying round tripper (tests)
	Transport http.RoundTripper
}

// DefaultConfig returns default classifier configuration
func DefaultConfig() *Config {
	return &Config{
		Endpoint:                "https://qb54apltkl.execute-api.us-east-1.amazonaws.com/prod/alchemy-emotions/",
		Timeout:                 5 * time.Second,
		MaxBodyBytes:            64 << 10,
		BreakerMaxRequests:      1,
		BreakerInterval:         time.Minute,
		BreakerTimeout:          30 * time.Second,
		BreakerFailureThreshold: 5,
	}
}

// Client calls the remote emotion classifier
type Client struct {
	http     *circuitbreaker.HTTPClient
	endpoint *url.URL
	config   *Config
	log      *zap.Logger
}

type emotionResponse struct {
	Emotion *string `json:"emotion"`
}

// NewClient creates a classifier client. The endpoint must be an absolute URL.
func NewClient(config *Config, log *zap.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 64 << 10
	}

	endpoint, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier endpoint: %w", err)
	}
	if !endpoint.IsAbs() || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid classifier endpoint %q: must be an absolute URL", config.Endpoint)
	}

	settings := circuitbreaker.DefaultHTTPClientSettings("emotion-classifier")
	settings.Timeout = config.Timeout
	settings.Transport = config.Transport
	settings.MaxRequests = config.BreakerMaxRequests
	settings.Interval = config.BreakerInterval
	settings.BreakerTimeout = config.BreakerTimeout
	settings.FailureThreshold = config.BreakerFailureThreshold

	return &Client{
		http:     circuitbreaker.NewHTTPClientWithSettings(settings, log),
		endpoint: endpoint,
		config:   config,
		log:      log,
	}, nil
}

// Classify sends the phrase to the classifier and validates the returned label.
func (c *Client) Classify(ctx context.Context, phrase string) (domain.EmotionLabel, error) {
	ctx, span := otel.Tracer("classifier").Start(ctx, "classifier.Classify",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.Int("phrase.length", len(phrase))),
	)
	defer span.End()

	start := time.Now()
	label, err := c.classify(ctx, phrase)
	telemetry.ClassifierLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		telemetry.ClassificationsTotal.WithLabelValues(outcomeFailed, "").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.Warn("Emotion classification failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrClassification, err)
	}

	telemetry.ClassificationsTotal.WithLabelValues(outcomeOK, string(label)).Inc()
	span.SetAttributes(attribute.String("emotion.label", string(label)))
	c.log.Debug("Emotion classified",
		zap.String("label", string(label)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return label, nil
}

func (c *Client) classify(ctx context.Context, phrase string) (domain.EmotionLabel, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(phrase), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}

	// Read the whole body before parsing; it may arrive in several chunks.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.config.MaxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) > c.config.MaxBodyBytes {
		return "", fmt.Errorf("response body exceeds %d bytes", c.config.MaxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return parseEmotion(body)
}

// requestURL keeps the flat ?phrase=<text> shape the service expects,
// with the phrase percent-encoded.
func (c *Client) requestURL(phrase string) string {
	u := *c.endpoint
	q := u.Query()
	q.Set(phraseParam, phrase)
	u.RawQuery = q.Encode()
	return u.String()
}

func parseEmotion(body []byte) (domain.EmotionLabel, error) {
	var payload emotionResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Emotion == nil {
		return "", errors.New("response has no emotion field")
	}
	return domain.ParseEmotionLabel(*payload.Emotion)
}

// BreakerState reports the circuit breaker state for health checks
func (c *Client) BreakerState() string {
	return c.http.State()
}
