package whttp

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	UserAgent      = "kodepos-worker-go/1.0"
	DefaultTimeout = 10 * time.Second
)

// HeaderRoundTripper stamps every outbound request with the identifying
// client headers the upstream API expects. Accept-Encoding is deliberately
// left to the transport: setting it by hand turns off net/http's transparent
// gzip decompression, and the workers.dev deployments do compress.
type HeaderRoundTripper struct {
	Proxied http.RoundTripper
}

func (hrt HeaderRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	return hrt.Proxied.RoundTrip(req)
}

type LoggingRoundTripper struct {
	Proxied http.RoundTripper
}

func (lrt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	slog.Info("outbound request", "method", req.Method, "url", req.URL.String())

	res, err := lrt.Proxied.RoundTrip(req)
	if err != nil {
		slog.Error("outbound request failed", "error", err.Error())
		return res, err
	}

	b := bytes.NewBuffer(make([]byte, 0))
	reader := io.TeeReader(res.Body, b)

	body, _ := io.ReadAll(reader)
	slog.Info("outbound response", "status", res.Status, "body", string(body))

	defer res.Body.Close()

	res.Body = io.NopCloser(b)

	return res, nil
}

// NewClient returns an http.Client with the identifying headers and the given
// timeout. A non-positive timeout falls back to DefaultTimeout.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Transport: HeaderRoundTripper{Proxied: http.DefaultTransport},
		Timeout:   timeout,
	}
}

// NewLoggingClient is NewClient plus request/response logging. Useful for the
// services; too chatty for the interactive CLI.
func NewLoggingClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Transport: LoggingRoundTripper{Proxied: HeaderRoundTripper{Proxied: http.DefaultTransport}},
		Timeout:   timeout,
	}
}
