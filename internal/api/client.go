package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/foster-client-go/internal/credential"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/notify"
	"github.com/ovaphlow/pitchfork/foster-client-go/internal/view"
	"github.com/ovaphlow/pitchfork/foster-client-go/pkg/utilities"
)

const (
	headerRequestID = "X-Request-ID"
	// DefaultBaseURL is the local development backend.
	DefaultBaseURL = "http://localhost:8000"
)

var ErrBaseURL = errors.New("invalid base url")

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Transport overrides the underlying round tripper (tests, proxies).
	Transport http.RoundTripper
}

// CredentialSource is the part of the credential store the access layer
// needs: read the bearer token, and drop it on 401.
type CredentialSource interface {
	Get(ctx context.Context) (string, error)
	Remove(ctx context.Context) error
}

// Client is the single gateway for every backend call. It attaches the
// bearer credential, turns 401 into a global logout plus redirect to the
// login view, and raises exactly one notification for any other failure.
// The failure is still returned to the caller.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	creds     CredentialSource
	notifier  notify.Notifier
	nav       view.Navigator
	logger    *zap.SugaredLogger

	mu             sync.RWMutex
	onUnauthorized []func(ctx context.Context)

	Auth      *AuthAPI
	Dogs      *DogsAPI
	Fosters   *FostersAPI
	Favorites *FavoritesAPI
	Search    *SearchAPI
	Shelters  *SheltersAPI
	Admin     *AdminAPI
	External  *ExternalAPI
}

func New(cfg Config, creds CredentialSource, notifier notify.Notifier, nav view.Navigator, logger *zap.SugaredLogger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrBaseURL, cfg.BaseURL)
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if nav == nil {
		nav = view.NavigatorFunc(func(string) {})
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	next := cfg.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "foster-client-go"
	}
	c := &Client{
		baseURL:   base,
		userAgent: ua,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &loggingTransport{next: next, logger: logger},
		},
		creds:    creds,
		notifier: notifier,
		nav:      nav,
		logger:   logger,
	}
	c.Auth = &AuthAPI{c: c}
	c.Dogs = &DogsAPI{c: c}
	c.Fosters = &FostersAPI{c: c}
	c.Favorites = &FavoritesAPI{c: c}
	c.Search = &SearchAPI{c: c}
	c.Shelters = &SheltersAPI{c: c}
	c.Admin = &AdminAPI{c: c}
	c.External = &ExternalAPI{c: c}
	return c, nil
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// OnUnauthorized registers fn to run after the credential is dropped on a
// 401 and before the redirect to the login view.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        any
	rawBody     []byte
	contentType string
}

type response struct {
	header http.Header
	body   []byte
}

// do sends req and decodes a JSON success body into out (if non-nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	resp, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", req.method, req.path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req request) (*response, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	contentType := req.contentType
	switch {
	case req.rawBody != nil:
		body = bytes.NewReader(req.rawBody)
	case req.body != nil:
		b, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", req.method, req.path, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: build request: %w", req.method, req.path, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	requestID := utilities.NewRequestID()
	httpReq.Header.Set(headerRequestID, requestID)
	c.attachCredential(ctx, httpReq)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		apiErr := &Error{Method: req.method, Path: req.path, RequestID: requestID, Err: err}
		// cancelled by the caller, not a network failure
		if ctx.Err() == nil && !isQuiet(ctx) {
			c.notifier.Notify(notify.Error(GenericMessage))
		}
		return nil, apiErr
	}
	defer httpResp.Body.Close()
	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		apiErr := &Error{Method: req.method, Path: req.path, StatusCode: httpResp.StatusCode, RequestID: requestID, Err: err}
		if !isQuiet(ctx) {
			c.notifier.Notify(notify.Error(GenericMessage))
		}
		return nil, apiErr
	}

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		return &response{header: httpResp.Header, body: data}, nil
	}

	apiErr := &Error{
		Method:     req.method,
		Path:       req.path,
		StatusCode: httpResp.StatusCode,
		Detail:     parseDetail(data),
		RequestID:  requestID,
	}
	if httpResp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return nil, apiErr
	}
	if !isQuiet(ctx) {
		c.notifier.Notify(notify.Error(apiErr.Message(GenericMessage)))
	}
	return nil, apiErr
}

type quietKey struct{}

// Quiet marks ctx so failed calls made with it raise no notification. The
// error is still returned and a 401 is still handled globally.
func Quiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

func isQuiet(ctx context.Context) bool {
	q, _ := ctx.Value(quietKey{}).(bool)
	return q
}

func (c *Client) attachCredential(ctx context.Context, r *http.Request) {
	if c.creds == nil {
		return
	}
	token, err := c.creds.Get(ctx)
	if err != nil {
		if !errors.Is(err, credential.ErrNoCredential) {
			c.logger.Warnw("read credential failed", "err", err)
		}
		return
	}
	r.Header.Set("Authorization", "Bearer "+token)
}

// handleUnauthorized drops the session globally, whichever call saw the 401.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.creds != nil {
		if err := c.creds.Remove(ctx); err != nil {
			c.logger.Warnw("remove credential after 401 failed", "err", err)
		}
	}
	c.mu.RLock()
	hooks := make([]func(context.Context), len(c.onUnauthorized))
	copy(hooks, c.onUnauthorized)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}
	c.nav.Navigate(view.RouteLogin)
}
