// Package client holds the thin request builders the console uses to
// talk to the platform REST API. Every request carries the current
// bearer token unless an Authorization header was already set.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TokenSource yields the bearer token attached to outgoing requests.
// The session store is the only writer; clients just read.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to the TokenSource interface
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string { return f() }

// BaseClient is the shared HTTP plumbing for the per-entity services
type BaseClient struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
}

// NewBaseClient returns a BaseClient for the given API address
func NewBaseClient(baseURL string, tokens TokenSource) *BaseClient {
	return &BaseClient{
		BaseURL: baseURL,
		Tokens:  tokens,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type outboundRequest struct {
	method      string
	path        string
	queryParams url.Values
	headers     map[string]string
	reqBodyObj  any
	respObj     any
	successCode int
}

// executeRequest submits the request and unmarshals a JSON response
// body into respObj when one is expected.
func (b *BaseClient) executeRequest(ctx context.Context, req outboundRequest) error {
	resp, err := b.submitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if req.respObj != nil {
		respBodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return wrapTransport(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, req.respObj); err != nil {
			return wrapTransport(err, "error unmarshaling response body")
		}
	}

	return nil
}

func (b *BaseClient) submitRequest(ctx context.Context, req outboundRequest) (*http.Response, error) {
	var reqBodyReader io.Reader
	if req.reqBodyObj != nil {
		reqBodyBytes, err := json.Marshal(req.reqBodyObj)
		if err != nil {
			return nil, wrapTransport(err, "error marshaling request body")
		}
		reqBodyReader = bytes.NewBuffer(reqBodyBytes)
	}

	r, err := http.NewRequestWithContext(
		ctx,
		req.method,
		fmt.Sprintf("%s%s", b.BaseURL, req.path),
		reqBodyReader,
	)
	if err != nil {
		return nil, wrapTransport(err, fmt.Sprintf("error creating request %s %s", req.method, req.path))
	}

	if len(req.queryParams) > 0 {
		r.URL.RawQuery = req.queryParams.Encode()
	}

	r.Header.Set("Content-Type", "application/json")
	for k, v := range req.headers {
		r.Header.Set(k, v)
	}

	// Interceptor semantics: attach the current token unless the
	// caller already supplied an Authorization header.
	if r.Header.Get("Authorization") == "" && b.Tokens != nil {
		if token := b.Tokens.Token(); token != "" {
			r.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	resp, err := b.HTTPClient.Do(r)
	if err != nil {
		return nil, noResponseError(err)
	}

	successCode := req.successCode
	if successCode == 0 {
		successCode = http.StatusOK
	}

	if resp.StatusCode != successCode {
		defer resp.Body.Close()
		return nil, statusError(resp)
	}

	return resp, nil
}
