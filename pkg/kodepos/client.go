package kodepos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

func NewClient(h *http.Client, baseURL string) Client {
	return &client{h: h, baseURL: strings.TrimRight(baseURL, "/")}
}

type client struct {
	h       *http.Client
	baseURL string
}

var _ Client = (*client)(nil)

func (c *client) SearchByText(ctx context.Context, query string) (*Envelope, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("q", strings.TrimSpace(query))

	return c.get(ctx, "/search", params)
}

func (c *client) DetectByCoordinates(ctx context.Context, lat, lng float64) (*Envelope, error) {
	if err := validateCoordinates(lat, lng); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))

	return c.get(ctx, "/detect", params)
}

func (c *client) get(ctx context.Context, path string, params url.Values) (*Envelope, error) {
	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "build request", Err: err}
	}

	res, err := c.h.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classifyTransport(err)
	}

	// Any body that decodes as an envelope is handed back as-is so the caller
	// can inspect statusCode and error; only non-envelope bodies become
	// transport-level failures.
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		if res.StatusCode < 200 || res.StatusCode > 299 {
			return nil, &Error{Kind: KindHTTP, Status: res.StatusCode}
		}

		return nil, &Error{Kind: KindProtocol, Message: "decode response body", Err: err}
	}

	return &envelope, nil
}

func classifyTransport(err error) error {
	// An interrupt mid-request surfaces as context.Canceled; hand it back
	// untouched so callers can tell a user abort from a network failure.
	if errors.Is(err, context.Canceled) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request deadline exceeded", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}

	return &Error{Kind: KindConnection, Message: "request upstream", Err: err}
}
