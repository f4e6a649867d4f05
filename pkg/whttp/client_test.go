package whttp_test

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mxwllalpha/kodepos-worker/pkg/whttp"
)

func TestNewClient_SetsIdentifyingHeaders(t *testing.T) {
	var gotUserAgent, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
	}))
	defer srv.Close()

	c := whttp.NewClient(0)
	res, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	res.Body.Close()

	if gotUserAgent != whttp.UserAgent {
		t.Errorf("got User-Agent %q, want %q", gotUserAgent, whttp.UserAgent)
	}

	if gotAccept != "application/json" {
		t.Errorf("got Accept %q, want application/json", gotAccept)
	}
}

func TestNewClient_NegotiatesAndDecompressesGzip(t *testing.T) {
	const payload = `{"statusCode": 200, "data": []}`

	var advertised string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		advertised = r.Header.Get("Accept-Encoding")
		if !strings.Contains(advertised, "gzip") {
			w.Write([]byte(payload))
			return
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/json")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(payload))
		gz.Close()
	}))
	defer srv.Close()

	c := whttp.NewClient(0)
	res, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	defer res.Body.Close()

	if !strings.Contains(advertised, "gzip") {
		t.Errorf("request did not advertise gzip, got Accept-Encoding %q", advertised)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("unexpected error reading body: %s", err)
	}

	// The transport must hand back the decoded bytes, not raw gzip.
	if string(body) != payload {
		t.Errorf("got body %q, want %q", body, payload)
	}
}

func TestNewClient_DefaultTimeout(t *testing.T) {
	c := whttp.NewClient(0)
	if c.Timeout != whttp.DefaultTimeout {
		t.Errorf("got timeout %s, want %s", c.Timeout, whttp.DefaultTimeout)
	}

	c = whttp.NewClient(-1)
	if c.Timeout != whttp.DefaultTimeout {
		t.Errorf("got timeout %s, want %s", c.Timeout, whttp.DefaultTimeout)
	}
}
