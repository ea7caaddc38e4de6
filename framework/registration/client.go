// Package registration creates registered customers through the customer
// service's Register endpoint, authenticating with a client certificate.
//
// It is a best-effort fixture generator: failures are logged and kept for
// LastError, never returned to the spec that asked for a customer.
package registration

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/redhat/browser-e2e-tests/test/framework/config"
	"github.com/redhat/browser-e2e-tests/test/framework/datetime"
	"github.com/redhat/browser-e2e-tests/test/framework/retry"
)

// EndpointTemplate is formatted with the environment name
const EndpointTemplate = "https://%s-customer.service.somedomain.local/CustomerService/CustomerService.svc/json/Register"

// ResponseDir is where raw responses are kept, relative to the output dir
const ResponseDir = "API-requests/generateNewRegisteredUser"

// ErrNoEndpoint is returned by New when neither an environment nor an endpoint is set
var ErrNoEndpoint = errors.New("registration endpoint not configured: set REGISTRATION_ENV")

// TransportError is a failed exchange with the customer service
type TransportError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("register customer at %s: status %d: %v", e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("register customer at %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the Register endpoint of one environment
type Client struct {
	http      *http.Client
	endpoint  string
	outputDir string
	logger    *zap.Logger
	now       func() time.Time
	attempts  int

	mu         sync.Mutex
	customerID string
	lastErr    error
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the mutual-TLS client
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithEndpoint overrides the environment-derived endpoint
func WithEndpoint(url string) Option {
	return func(cl *Client) {
		cl.endpoint = url
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// WithClock sets the time source used for response file names
func WithClock(now func() time.Time) Option {
	return func(cl *Client) {
		cl.now = now
	}
}

// WithAttempts retries failed transport up to n attempts in total
func WithAttempts(n int) Option {
	return func(cl *Client) {
		cl.attempts = n
	}
}

// New builds a client for cfg. Responses are written under outputDir.
func New(cfg config.RegistrationConfig, outputDir string, opts ...Option) (*Client, error) {
	c := &Client{
		outputDir: outputDir,
		logger:    zap.NewNop(),
		now:       time.Now,
		attempts:  1,
	}
	if cfg.Environment != "" {
		c.endpoint = fmt.Sprintf(EndpointTemplate, cfg.Environment)
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.endpoint == "" {
		return nil, ErrNoEndpoint
	}
	if c.http == nil {
		tlsCfg, err := mutualTLS(cfg)
		if err != nil {
			return nil, err
		}
		c.http = &http.Client{
			Timeout:   time.Minute,
			Transport: &http.Transport{TLSClientConfig: tlsCfg, Proxy: http.ProxyFromEnvironment},
		}
	}
	return c, nil
}

func mutualTLS(cfg config.RegistrationConfig) (*tls.Config, error) {
	tlsCfg := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.CertFile != "" || cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsCfg.Certificates = []tls.Certificate{cert}
	}

	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", cfg.CAFile)
		}
		tlsCfg.RootCAs = pool
	}
	return tlsCfg, nil
}

// Endpoint returns the Register URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// GenerateNewRegisteredUser registers the customer described by req and
// returns the new customer id, or "" when registration failed.
func (c *Client) GenerateNewRegisteredUser(ctx context.Context, req Request) string {
	id, err := c.register(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
	if err != nil {
		c.logger.Error("customer registration failed", zap.Error(err))
		return ""
	}
	c.customerID = id
	return id
}

// CustomerID returns the id from the last successful registration
func (c *Client) CustomerID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

// LastError returns the error swallowed by the last registration, if any
func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) register(ctx context.Context, req Request) (string, error) {
	req, err := req.withDefaults()
	if err != nil {
		return "", fmt.Errorf("apply request defaults: %w", err)
	}
	body, err := json.Marshal(NewPayload(req))
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	raw, err := retry.DoWithData(ctx, func(ctx context.Context) ([]byte, error) {
		return c.post(ctx, body)
	},
		retry.WithMaxAttempts(c.attempts),
		retry.WithInitialDelay(500*time.Millisecond),
		retry.WithRetryIf(func(err error) bool {
			var te *TransportError
			return errors.As(err, &te) && (te.StatusCode == 0 || te.StatusCode >= 500)
		}),
		retry.WithOnRetry(func(attempt int, err error) {
			c.logger.Warn("retrying customer registration", zap.Int("attempt", attempt), zap.Error(err))
		}),
	)

	var saveErr error
	if raw != nil {
		saveErr = c.save(raw)
	}
	if err != nil {
		return "", errors.Join(err, saveErr)
	}
	if saveErr != nil {
		return "", saveErr
	}

	id, err := customerID(raw)
	if err != nil {
		return "", err
	}
	c.logger.Info("customer registered", zap.String("email", req.Email), zap.String("customer_id", id))
	return id, nil
}

func (c *Client) post(ctx context.Context, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, retry.Permanent(fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return raw, &TransportError{Endpoint: c.endpoint, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}
	return raw, nil
}

func (c *Client) save(raw []byte) error {
	dir := filepath.Join(c.outputDir, filepath.FromSlash(ResponseDir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create response directory: %w", err)
	}
	name := filepath.Join(dir, datetime.FileStamp(c.now())+".json")
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		return fmt.Errorf("write response: %w", err)
	}
	return nil
}

func customerID(raw []byte) (string, error) {
	var resp struct {
		CustomerID json.RawMessage `json:"CustomerId"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	id := strings.TrimSpace(string(resp.CustomerID))
	if id == "" || id == "null" {
		return "", errors.New("response has no CustomerId")
	}
	if strings.HasPrefix(id, `"`) {
		var s string
		if err := json.Unmarshal(resp.CustomerID, &s); err != nil {
			return "", fmt.Errorf("decode CustomerId: %w", err)
		}
		return s, nil
	}
	return id, nil
}
