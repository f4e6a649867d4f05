package kodepos_test

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
	"github.com/mxwllalpha/kodepos-worker/pkg/whttp"
)

func TestSearchByText_RejectsInvalidQueries(t *testing.T) {
	testCases := []struct {
		desc  string
		query string
	}{
		{desc: "empty query", query: ""},
		{desc: "whitespace-only query", query: "   "},
		{desc: "single character", query: "a"},
		{desc: "single character with padding", query: "  a  "},
		{desc: "single multibyte character", query: "é"},
	}

	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := c.SearchByText(context.Background(), tC.query)
			if err == nil {
				t.Fatal("expected an error, got none")
			}

			if kind := kodepos.KindOf(err); kind != kodepos.KindValidation {
				t.Errorf("got error kind %s, want validation", kind)
			}
		})
	}

	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("expected no requests to reach the server, got %d", n)
	}
}

func TestDetectByCoordinates_RejectsOutOfBoundsCoordinates(t *testing.T) {
	testCases := []struct {
		desc     string
		lat, lng float64
	}{
		{desc: "latitude below coverage", lat: -12.5, lng: 106.8},
		{desc: "latitude above coverage", lat: 7.1, lng: 106.8},
		{desc: "longitude below coverage", lat: -6.2, lng: 94.9},
		{desc: "longitude above coverage", lat: -6.2, lng: 141.5},
		{desc: "both out of coverage", lat: 40.4, lng: -3.7},
	}

	var requests int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			_, err := c.DetectByCoordinates(context.Background(), tC.lat, tC.lng)
			if err == nil {
				t.Fatal("expected an error, got none")
			}

			if kind := kodepos.KindOf(err); kind != kodepos.KindValidation {
				t.Errorf("got error kind %s, want validation", kind)
			}
		})
	}

	if n := atomic.LoadInt64(&requests); n != 0 {
		t.Errorf("expected no requests to reach the server, got %d", n)
	}
}

func TestSearchByText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("got path %s, want /search", r.URL.Path)
		}

		if q := r.URL.Query().Get("q"); q != "Menteng" {
			t.Errorf("got q=%s, want q=Menteng", q)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"statusCode": 200,
			"data": [
				{"village": "Menteng", "district": "Menteng", "regency": "Jakarta Pusat", "province": "DKI Jakarta", "code": "10310", "latitude": -6.1956, "longitude": 106.8372},
				{"village": "Menteng Atas", "district": "Setiabudi", "regency": "Jakarta Selatan", "province": "DKI Jakarta", "code": "12960"}
			]
		}`))
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	envelope, err := c.SearchByText(context.Background(), "  Menteng  ")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if envelope.StatusCode != 200 {
		t.Errorf("got status code %d, want 200", envelope.StatusCode)
	}

	if len(envelope.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(envelope.Records))
	}

	// Response order is preserved as-is.
	if envelope.Records[0].Village != "Menteng" || envelope.Records[1].Village != "Menteng Atas" {
		t.Errorf("records out of order: %s, %s", envelope.Records[0].Village, envelope.Records[1].Village)
	}

	if envelope.Records[0].Latitude == nil || *envelope.Records[0].Latitude != -6.1956 {
		t.Errorf("first record is missing its latitude")
	}

	if envelope.Records[1].Latitude != nil {
		t.Errorf("second record should have no latitude, got %f", *envelope.Records[1].Latitude)
	}
}

func TestDetectByCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("got path %s, want /detect", r.URL.Path)
		}

		q := r.URL.Query()
		if q.Get("latitude") == "" || q.Get("longitude") == "" {
			t.Errorf("missing coordinates in query: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"statusCode": 200,
			"data": {"village": "Gambir", "district": "Gambir", "regency": "Jakarta Pusat", "province": "DKI Jakarta", "code": "10110", "distance": 0.412}
		}`))
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	envelope, err := c.DetectByCoordinates(context.Background(), -6.1754, 106.8272)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(envelope.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(envelope.Records))
	}

	record := envelope.Records[0]
	if record.Code != "10110" {
		t.Errorf("got code %s, want 10110", record.Code)
	}

	if record.Distance == nil || *record.Distance != 0.412 {
		t.Errorf("expected distance 0.412 to be present")
	}
}

func TestSearchByText_ErrorEnvelopePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"statusCode": 404, "error": "no postal code found"}`))
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	envelope, err := c.SearchByText(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("a well-formed error envelope should not fail: %s", err)
	}

	if envelope.StatusCode != 404 {
		t.Errorf("got status code %d, want 404", envelope.StatusCode)
	}

	if envelope.Error != "no postal code found" {
		t.Errorf("got error %q, want %q", envelope.Error, "no postal code found")
	}

	if len(envelope.Records) != 0 {
		t.Errorf("got %d records, want none", len(envelope.Records))
	}
}

func TestSearchByText_ClassifiesFailures(t *testing.T) {
	testCases := []struct {
		desc    string
		handler http.HandlerFunc
		want    kodepos.Kind
	}{
		{
			desc: "non-2xx without an envelope body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("<html>bad gateway</html>"))
			},
			want: kodepos.KindHTTP,
		},
		{
			desc: "2xx with a malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("definitely not json"))
			},
			want: kodepos.KindProtocol,
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			srv := httptest.NewServer(tC.handler)
			defer srv.Close()

			c := kodepos.NewClient(srv.Client(), srv.URL)
			_, err := c.SearchByText(context.Background(), "Jakarta")
			if err == nil {
				t.Fatal("expected an error, got none")
			}

			if kind := kodepos.KindOf(err); kind != tC.want {
				t.Errorf("got error kind %s, want %s", kind, tC.want)
			}
		})
	}
}

func TestSearchByText_HTTPErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	_, err := c.SearchByText(context.Background(), "Jakarta")

	var kerr *kodepos.Error
	if !errors.As(err, &kerr) {
		t.Fatalf("expected a *kodepos.Error, got %T", err)
	}

	if kerr.Status != http.StatusServiceUnavailable {
		t.Errorf("got status %d, want %d", kerr.Status, http.StatusServiceUnavailable)
	}
}

func TestTimeoutIsDistinguishableFromConnectionFailure(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{"statusCode": 200, "data": []}`))
	}))
	defer slow.Close()

	timingOut := kodepos.NewClient(&http.Client{Timeout: 50 * time.Millisecond}, slow.URL)
	_, err := timingOut.SearchByText(context.Background(), "Jakarta")
	if kind := kodepos.KindOf(err); kind != kodepos.KindTimeout {
		t.Errorf("got error kind %s, want timeout", kind)
	}

	// A server that's already gone is a connection failure, not a timeout.
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	refused := kodepos.NewClient(&http.Client{Timeout: time.Second}, deadURL)
	_, err = refused.SearchByText(context.Background(), "Jakarta")
	if kind := kodepos.KindOf(err); kind != kodepos.KindConnection {
		t.Errorf("got error kind %s, want connection", kind)
	}

	// The same classification holds for coordinate detection.
	_, err = timingOut.DetectByCoordinates(context.Background(), -6.2088, 106.8456)
	if kind := kodepos.KindOf(err); kind != kodepos.KindTimeout {
		t.Errorf("detect: got error kind %s, want timeout", kind)
	}

	_, err = refused.DetectByCoordinates(context.Background(), -6.2088, 106.8456)
	if kind := kodepos.KindOf(err); kind != kodepos.KindConnection {
		t.Errorf("detect: got error kind %s, want connection", kind)
	}
}

func TestSearchByText_DecodesCompressedResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			t.Errorf("request did not advertise gzip, got Accept-Encoding %q", r.Header.Get("Accept-Encoding"))
		}

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Content-Type", "application/json")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`{
			"statusCode": 200,
			"data": [{"village": "Menteng", "district": "Menteng", "regency": "Jakarta Pusat", "province": "DKI Jakarta", "code": "10310"}]
		}`))
		gz.Close()
	}))
	defer srv.Close()

	c := kodepos.NewClient(whttp.NewClient(0), srv.URL)
	envelope, err := c.SearchByText(context.Background(), "Menteng")
	if err != nil {
		t.Fatalf("a compressed envelope should still decode: %s", err)
	}

	if len(envelope.Records) != 1 || envelope.Records[0].Code != "10310" {
		t.Errorf("unexpected records: %+v", envelope.Records)
	}
}

func TestSearchByText_NullDataDecodesToNoRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"statusCode": 200, "data": null}`))
	}))
	defer srv.Close()

	c := kodepos.NewClient(srv.Client(), srv.URL)
	envelope, err := c.SearchByText(context.Background(), "Jakarta")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(envelope.Records) != 0 {
		t.Errorf("got %d records, want none", len(envelope.Records))
	}
}
