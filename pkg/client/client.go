// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/google/uuid"

	"github.com/exoframe/exoframe-cli/pkg/defaults"
	"github.com/exoframe/exoframe-cli/pkg/errors"
)

const (
	// DefaultUserAgent is sent when no WithUserAgent option is given.
	DefaultUserAgent = "exoframe-cli/dev"

	// TokenHeader carries the access token on every request.
	TokenHeader = "x-access-token"

	// RequestIDHeader correlates a request with server-side logs.
	RequestIDHeader = "X-Request-ID"

	buildPath = "/api/build"
	listPath  = "/api/list"

	tarContentType = "application/x-tar"
	maxErrorBody   = 64 * 1024
)

// Option configures a Client.
type Option func(*Client)

// Client talks to the exoframe server API.
type Client struct {
	Endpoint           string
	Token              string
	UserAgent          string
	Timeout            time.Duration
	InsecureSkipVerify bool

	// Streaming requests use httpClient without a total timeout;
	// Timeout is applied per call through the request context.
	httpClient *http.Client
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.UserAgent = ua
	}
}

// WithTimeout bounds non-streaming calls such as ListDeployments.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.Timeout = d
	}
}

// WithInsecureSkipVerify disables TLS certificate verification on the default transport.
func WithInsecureSkipVerify(skip bool) Option {
	return func(cl *Client) {
		cl.InsecureSkipVerify = skip
	}
}

// New returns a Client for endpoint authenticated with token.
func New(endpoint, token string, opts ...Option) *Client {
	c := &Client{
		Endpoint:  strings.TrimRight(endpoint, "/"),
		Token:     token,
		UserAgent: DefaultUserAgent,
		Timeout:   defaults.HTTPClientTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: newTransport(c.InsecureSkipVerify)}
	}
	return c
}

func newTransport(insecure bool) *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // opt-in for self-signed servers
		},
	}
}

// BuildParams describes the image produced by a build upload.
type BuildParams struct {
	Tag    string
	Labels map[string]string
}

// NewBuildRequest composes the build upload request. The body is sent as is,
// with chunked transfer encoding when its length is unknown.
func (c *Client) NewBuildRequest(ctx context.Context, body io.Reader, params BuildParams) (*http.Request, error) {
	labels := params.Labels
	if labels == nil {
		labels = map[string]string{}
	}
	encoded, err := json.Marshal(labels)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode labels", err)
	}

	q := url.Values{}
	q.Set("tag", params.Tag)
	q.Set("labels", string(encoded))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+buildPath+"?"+q.Encode(), body)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to create build request", err,
			map[string]any{"endpoint": c.Endpoint})
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", tarContentType)
	return req, nil
}

// Build uploads body and returns the server's streamed build log. The caller
// must close the returned reader. No total timeout applies; cancel ctx to abort.
func (c *Client) Build(ctx context.Context, body io.Reader, params BuildParams) (io.ReadCloser, error) {
	req, err := c.NewBuildRequest(ctx, body, params)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// ListDeployments returns the deployments currently running on the server.
func (c *Client) ListDeployments(ctx context.Context) ([]types.ContainerJSON, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+listPath, nil)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to create list request", err,
			map[string]any{"endpoint": c.Endpoint})
	}
	c.setHeaders(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var containers []types.ContainerJSON
	if err := json.NewDecoder(resp.Body).Decode(&containers); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, transportError(ctxErr, req)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to decode deployments", err)
	}
	return containers, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set(TokenHeader, c.Token)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())
}

// do sends req and turns transport failures and non-2xx responses into
// structured errors. On success the response body is left open.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	slog.Debug("sending request",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"requestID", req.Header.Get(RequestIDHeader))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err, req)
	}

	slog.Debug("received response",
		"status", resp.StatusCode,
		"requestID", req.Header.Get(RequestIDHeader))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}
	return resp, nil
}

func transportError(err error, req *http.Request) error {
	ctx := map[string]any{"url": req.URL.Redacted()}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.WrapWithContext(errors.ErrCodeTimeout, "request canceled or timed out", err, ctx)
	}
	return errors.WrapWithContext(errors.ErrCodeUnavailable, "could not reach server", err, ctx)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusError maps an unsuccessful HTTP response to a StructuredError.
func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(raw))
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		switch {
		case eb.Error != "":
			msg = eb.Error
		case eb.Message != "":
			msg = eb.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	code := errors.ErrCodeInternal
	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		code = errors.ErrCodeUnauthorized
	case resp.StatusCode == http.StatusBadRequest:
		code = errors.ErrCodeInvalidRequest
	case resp.StatusCode == http.StatusNotFound:
		code = errors.ErrCodeNotFound
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		code = errors.ErrCodeUnavailable
	}

	return errors.NewWithContext(code, fmt.Sprintf("server responded %d: %s", resp.StatusCode, msg),
		map[string]any{"status": resp.StatusCode})
}
