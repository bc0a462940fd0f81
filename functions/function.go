// Package functions calls the remote storage functions the relay forwards to.
package functions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when a remote function answers with a non-2xx status.
type StatusError struct {
	Function   string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("function %s returned %s", e.Function, e.Status)
}

// function is one remote endpoint: a base URL plus an optional access code.
type function struct {
	name   string
	client Doer
	url    *url.URL
	code   string
}

func newFunction(client Doer, name, rawURL, code string) (*function, error) {
	if client == nil {
		return nil, fmt.Errorf("function %s: nil http client", name)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("function %s: parse url: %w", name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("function %s: url %q is not absolute", name, rawURL)
	}
	return &function{name: name, client: client, url: u, code: code}, nil
}

// target keeps any query already on the function URL (such as an embedded
// code) and adds params to it, escaping every value.
func (f *function) target(params url.Values) string {
	u := *f.url
	q := u.Query()
	if f.code != "" {
		q.Set("code", f.code)
	}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// post sends body to the function and waits for its status. size < 0 means
// unknown length.
func (f *function) post(ctx context.Context, params url.Values, contentType string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.target(params), body)
	if err != nil {
		return fmt.Errorf("function %s: build request: %w", f.name, err)
	}
	if size >= 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("function %s: %w", f.name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Function: f.name, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

// contentType falls back to a generic binary type when the client declared none.
func contentType(declared string) string {
	if declared == "" {
		return "application/octet-stream"
	}
	return declared
}
