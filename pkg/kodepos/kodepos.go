// package kodepos is a client for the Kodepos Indonesia postal-code API. It
// supports searching postal codes by free text and detecting the postal code
// covering a coordinate pair.
package kodepos

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Geographic bounding box of the service's coverage area. Coordinates outside
// these ranges are rejected before any request is made.
const (
	MinLatitude  = -11.0
	MaxLatitude  = 6.0
	MinLongitude = 95.0
	MaxLongitude = 141.0
)

// MinQueryLength is the shortest accepted search query, after trimming.
const MinQueryLength = 2

type Client interface {
	SearchByText(ctx context.Context, query string) (*Envelope, error)
	DetectByCoordinates(ctx context.Context, lat, lng float64) (*Envelope, error)
}

// PostalRecord is one postal-code entry as returned by the service. Everything
// besides the administrative names may be missing; optional numerics are
// pointers so that a present zero is distinguishable from an absent value.
type PostalRecord struct {
	Village   string   `json:"village,omitempty"`
	District  string   `json:"district,omitempty"`
	Regency   string   `json:"regency,omitempty"`
	Province  string   `json:"province,omitempty"`
	Code      string   `json:"code,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
	Distance  *float64 `json:"distance,omitempty"`
}

// Envelope is the top-level object wrapping every service response. The
// service returns `data` as a single object for /detect and as an array for
// /search; both decode into Records, preserving response order.
type Envelope struct {
	StatusCode int            `json:"statusCode"`
	Records    []PostalRecord `json:"-"`
	Error      string         `json:"error,omitempty"`
}

func (e *Envelope) UnmarshalJSON(b []byte) error {
	var raw struct {
		StatusCode int             `json:"statusCode"`
		Data       json.RawMessage `json:"data"`
		Error      string          `json:"error"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	e.StatusCode = raw.StatusCode
	e.Error = raw.Error
	e.Records = nil

	data := strings.TrimSpace(string(raw.Data))
	switch {
	case data == "" || data == "null":
		return nil
	case strings.HasPrefix(data, "["):
		return json.Unmarshal(raw.Data, &e.Records)
	default:
		var r PostalRecord
		if err := json.Unmarshal(raw.Data, &r); err != nil {
			return err
		}
		e.Records = []PostalRecord{r}
		return nil
	}
}

func validateQuery(query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return &Error{Kind: KindValidation, Message: "query must be a non-empty string"}
	}

	if utf8.RuneCountInString(query) < MinQueryLength {
		return &Error{Kind: KindValidation, Message: fmt.Sprintf("query must be at least %d characters long", MinQueryLength)}
	}

	return nil
}

func validateCoordinates(lat, lng float64) error {
	if lat < MinLatitude || lat > MaxLatitude {
		return &Error{
			Kind:    KindValidation,
			Message: fmt.Sprintf("latitude must be between %.0f and %.0f degrees", MinLatitude, MaxLatitude),
		}
	}

	if lng < MinLongitude || lng > MaxLongitude {
		return &Error{
			Kind:    KindValidation,
			Message: fmt.Sprintf("longitude must be between %.0f and %.0f degrees", MinLongitude, MaxLongitude),
		}
	}

	return nil
}
