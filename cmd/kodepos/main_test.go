package main

import (
	"strings"
	"testing"

	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
)

func TestParseCoordinates(t *testing.T) {
	testCases := []struct {
		desc    string
		input   string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{desc: "jakarta", input: "-6.2088,106.8456", lat: -6.2088, lng: 106.8456},
		{desc: "whitespace around the halves", input: " -7.2575 , 112.7521 ", lat: -7.2575, lng: 112.7521},
		{desc: "missing comma", input: "-6.2088 106.8456", wantErr: true},
		{desc: "too many parts", input: "-6.2,106.8,50", wantErr: true},
		{desc: "non-numeric latitude", input: "abc,106.8", wantErr: true},
		{desc: "non-numeric longitude", input: "-6.2,abc", wantErr: true},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			lat, lng, err := parseCoordinates(tC.input)
			if tC.wantErr {
				if err == nil {
					t.Error("expected an error, got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}

			if lat != tC.lat || lng != tC.lng {
				t.Errorf("got (%f, %f), want (%f, %f)", lat, lng, tC.lat, tC.lng)
			}
		})
	}
}

func TestQueryTooShort(t *testing.T) {
	testCases := []struct {
		desc  string
		query string
		want  bool
	}{
		{desc: "empty", query: "", want: true},
		{desc: "one ascii character", query: "a", want: true},
		{desc: "one multibyte character", query: "é", want: true},
		{desc: "two ascii characters", query: "ab", want: false},
		{desc: "two multibyte characters", query: "éé", want: false},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			if got := queryTooShort(tC.query); got != tC.want {
				t.Errorf("queryTooShort(%q) = %v, want %v", tC.query, got, tC.want)
			}
		})
	}
}

func TestEnvelopeError(t *testing.T) {
	withMessage := &kodepos.Envelope{StatusCode: 404, Error: "no postal code found"}
	if got := envelopeError(withMessage); got != "no postal code found" {
		t.Errorf("got %q, want the upstream message", got)
	}

	withoutMessage := &kodepos.Envelope{StatusCode: 500}
	if got := envelopeError(withoutMessage); !strings.Contains(got, "500") {
		t.Errorf("got %q, want it to mention the status", got)
	}
}
