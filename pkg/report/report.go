// package report renders postal-code lookup results as human-readable text.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
)

const MsgNoResults = "No results found."

const notAvailable = "N/A"

// Render produces a numbered report of the given records, in the order they
// were received. Optional fields that are absent are either marked N/A or
// omitted; they never fail the rendering.
func Render(records []kodepos.PostalRecord) string {
	if len(records) == 0 {
		return MsgNoResults
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 Found %d results:\n", len(records)))
	sb.WriteString(strings.Repeat("=", 60))

	for i, r := range records {
		sb.WriteString(fmt.Sprintf("\n\n%d. 🏠 %s\n", i+1, orNA(r.Village)))
		sb.WriteString(fmt.Sprintf("   📍 Postal Code: %s\n", orNA(r.Code)))
		sb.WriteString(fmt.Sprintf("   🏘️ District: %s\n", orNA(r.District)))
		sb.WriteString(fmt.Sprintf("   🌆 Regency: %s\n", orNA(r.Regency)))
		sb.WriteString(fmt.Sprintf("   🗺️ Province: %s", orNA(r.Province)))

		if r.Latitude != nil && r.Longitude != nil {
			sb.WriteString(fmt.Sprintf("\n   🧭 Coordinates: %.6f, %.6f", *r.Latitude, *r.Longitude))
		}

		// Zero is a present value: an elevation of 0m or a distance of 0km
		// still gets its line.
		if r.Elevation != nil {
			sb.WriteString(fmt.Sprintf("\n   ⛰️ Elevation: %sm", strconv.FormatFloat(*r.Elevation, 'f', -1, 64)))
		}

		if r.Timezone != "" {
			sb.WriteString(fmt.Sprintf("\n   🕐 Timezone: %s", r.Timezone))
		}

		if r.Distance != nil {
			sb.WriteString(fmt.Sprintf("\n   📏 Distance: %.3f km", *r.Distance))
		}
	}

	return sb.String()
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}

	return s
}
