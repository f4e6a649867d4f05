package report

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
)

// RenderTable is the compact alternative to Render: one row per record,
// administrative names and postal code only.
func RenderTable(records []kodepos.PostalRecord) string {
	if len(records) == 0 {
		return MsgNoResults
	}

	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader([]string{"#", "Village", "District", "Regency", "Province", "Code"})

	for i, r := range records {
		table.Append([]string{
			fmt.Sprint(i + 1),
			orNA(r.Village),
			orNA(r.District),
			orNA(r.Regency),
			orNA(r.Province),
			orNA(r.Code),
		})
	}

	table.Render()
	return sb.String()
}
