package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/casualjim/vkwave/pkg/jsonx"
	"github.com/fogfish/opts"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL    = "https://api.vk.com/method/"
	DefaultAPIVersion = "5.199"
)

// APIClient turns method calls into request contexts.
type APIClient interface {
	CreateRequest(method MethodName, params Params) *RequestContext
	ContextFactory() Factory
	SetContextFactory(Factory)
	Close() error
}

// Exceptions are the error kinds HTTPClient declares on every request it creates.
var Exceptions = []error{ErrEncode, ErrConnection, ErrDecode, ErrAPI}

var _ APIClient = (*HTTPClient)(nil)

type signalHook struct {
	signal   Signal
	callback SignalCallback
}

// HTTPClient calls the VK API over HTTP. Parameters are sent as a form
// in a POST request to {baseURL}{method}.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	version    string
	factory    Factory
	hooks      []signalHook
}

var (
	// WithToken sets the access token added to every request.
	WithToken = opts.ForName[HTTPClient, string]("token")
	// WithAPIVersion sets the API version sent as the "v" parameter.
	WithAPIVersion = opts.ForName[HTTPClient, string]("version")
	// WithBaseURL replaces DefaultBaseURL, mostly for tests.
	WithBaseURL = opts.ForName[HTTPClient, string]("baseURL")
	// WithHTTPClient sets the underlying http.Client.
	WithHTTPClient = opts.ForName[HTTPClient, *http.Client]("httpClient")
	// WithFactory sets the factory used by CreateRequest.
	WithFactory = opts.ForName[HTTPClient, Factory]("factory")
)

// WithSignal registers callback for sig on every request the client creates.
func WithSignal(sig Signal, callback SignalCallback) opts.Option[HTTPClient] {
	return opts.Type[HTTPClient](func(c *HTTPClient) error {
		if !sig.valid() {
			return fmt.Errorf("vkwave: unknown signal %s", sig)
		}
		if callback == nil {
			return fmt.Errorf("vkwave: signal callback for %s is required", sig)
		}
		c.hooks = append(c.hooks, signalHook{signal: sig, callback: callback})
		return nil
	})
}

// NewHTTPClient creates an HTTPClient. It panics when an option fails.
func NewHTTPClient(options ...opts.Option[HTTPClient]) *HTTPClient {
	c := &HTTPClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		version:    DefaultAPIVersion,
		factory:    DefaultFactory{},
	}
	if err := opts.Apply(c, options); err != nil {
		panic(err)
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	return c
}

func (c *HTTPClient) ContextFactory() Factory { return c.factory }

func (c *HTTPClient) SetContextFactory(factory Factory) { c.factory = factory }

// CreateRequest creates a context for method that declares Exceptions and logs
// the request before it is sent.
func (c *HTTPClient) CreateRequest(method MethodName, params Params) *RequestContext {
	rc := c.factory.CreateContext(c.Call, method, params, Exceptions...)
	rc.Signal(BeforeRequest, LogBeforeRequest)
	for _, h := range c.hooks {
		rc.Signal(h.signal, h.callback)
	}
	return rc
}

// Call performs the HTTP request for method. It is the RequestCallback of
// every context created by CreateRequest.
//
// Params that can't be encoded wrap ErrEncode, network failures wrap
// ErrConnection, malformed bodies wrap ErrDecode and
// API error envelopes are returned as *APIError. On success the "response"
// member of the body is returned, or the whole body when there is none.
func (c *HTTPClient) Call(ctx context.Context, method MethodName, params Params) (gjson.Result, error) {
	form, err := jsonx.EncodeForm(params)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %s: %w", ErrEncode, method, err)
	}
	if c.token != "" && form.Get("access_token") == "" {
		form.Set("access_token", c.token)
	}
	if form.Get("v") == "" {
		form.Set("v", c.version)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+string(method), strings.NewReader(form.Encode()))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s returned invalid JSON (status %d)", ErrDecode, method, resp.StatusCode)
	}

	doc := gjson.ParseBytes(body)
	if apiErr := doc.Get("error"); apiErr.Exists() {
		return gjson.Result{}, &APIError{
			Code:    apiErr.Get("error_code").Int(),
			Message: apiErr.Get("error_msg").String(),
		}
	}
	if response := doc.Get("response"); response.Exists() {
		return response, nil
	}
	return doc, nil
}

// Close releases idle connections of the underlying http.Client.
func (c *HTTPClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
