package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/harborview/pagekit/pkg/nav"
)

const headerPreserve = "X-Pagekit-Preserve"

// Client is the JSON-over-HTTP implementation of nav.Client. One request per
// call, no retries, no deduplication; timeout policy belongs to the injected
// http.Client.
type Client struct {
	http    *http.Client
	baseURL string
}

// Option customises the transport.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithBaseURL prefixes relative destinations with the given origin.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// New constructs a transport applying any provided options. Missing
// dependencies fall back to http.DefaultClient.
func New(options ...Option) *Client {
	c := &Client{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	return c
}

// Visit performs one write round trip. The outcome is reported through the
// options callbacks; the returned error covers programmer mistakes only.
func (c *Client) Visit(ctx context.Context, destination string, payload nav.Payload, opts nav.Options) error {
	if ctx == nil {
		return errors.New("transport: context is required")
	}
	if destination == "" {
		return errors.New("transport: destination is required")
	}
	if !opts.Method.Valid() {
		return fmt.Errorf("transport: unsupported method %q", string(opts.Method))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("transport: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method.HTTPVerb(), c.resolve(destination), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.dispatch(req, opts)
	return nil
}

// Navigate performs one idempotent read carrying the full desired view state
// as query parameters.
func (c *Client) Navigate(ctx context.Context, destination string, params nav.Params, opts nav.Options) error {
	if ctx == nil {
		return errors.New("transport: context is required")
	}
	if destination == "" {
		return errors.New("transport: destination is required")
	}

	target := c.resolve(destination)
	if len(params) > 0 {
		query := url.Values{}
		for key, value := range params {
			query.Set(key, value)
		}
		separator := "?"
		if strings.Contains(target, "?") {
			separator = "&"
		}
		target = target + separator + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("transport: build request: %w", err)
	}

	c.dispatch(req, opts)
	return nil
}

func (c *Client) dispatch(req *http.Request, opts nav.Options) {
	defer func() {
		if opts.OnFinish != nil {
			opts.OnFinish()
		}
	}()

	req.Header.Set("Accept", "application/json")
	if opts.PreserveScroll || opts.PreserveState {
		req.Header.Set(headerPreserve, preserveValue(opts))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if opts.OnError != nil {
			opts.OnError(nav.RootError("network failure: " + err.Error()))
		}
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if opts.OnError != nil {
			opts.OnError(nav.RootError("network failure: " + err.Error()))
		}
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if opts.OnError != nil {
			opts.OnError(decodeErrorBag(resp.StatusCode, data))
		}
		return
	}

	if opts.OnPage != nil {
		if page, ok := decodePage(data); ok {
			opts.OnPage(page)
		}
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess()
	}
}

func (c *Client) resolve(destination string) string {
	if c.baseURL == "" {
		return destination
	}
	if strings.Contains(destination, "://") {
		return destination
	}
	return c.baseURL + destination
}

func preserveValue(opts nav.Options) string {
	switch {
	case opts.PreserveScroll && opts.PreserveState:
		return "scroll,state"
	case opts.PreserveScroll:
		return "scroll"
	default:
		return "state"
	}
}

type errorEnvelope struct {
	Errors nav.ErrorBag `json:"errors"`
}

// decodeErrorBag accepts both the enveloped shape {"errors": {...}} and a
// bare field→message map. Bodies that decode to neither become a single root
// message so nothing is silently swallowed.
func decodeErrorBag(status int, data []byte) nav.ErrorBag {
	var envelope errorEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Errors) > 0 {
		return envelope.Errors
	}

	var bare nav.ErrorBag
	if err := json.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
		return bare
	}

	return nav.RootError("request failed with status " + strconv.Itoa(status))
}

func decodePage(data []byte) (nav.Page, bool) {
	var page nav.Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nav.Page{}, false
	}
	if page.Component == "" && len(page.Props) == 0 {
		return nav.Page{}, false
	}
	return page, true
}
