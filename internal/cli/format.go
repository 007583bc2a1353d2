package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/andrei-cloud/go_segop/pkg/payload"
	"github.com/andrei-cloud/go_segop/pkg/tlv"
)

// Table names accepted by PrintCodeTable.
const (
	TableTiers = "tiers"
	TableKinds = "kinds"
	TableTypes = "types"
)

// Tables lists the printable code tables in display order.
func Tables() []string {
	return []string{TableTiers, TableKinds, TableTypes}
}

type tableRow struct {
	name        string
	code        byte
	description string
}

func tableRows(table string) ([]tableRow, error) {
	var rows []tableRow
	switch table {
	case TableTiers:
		for _, name := range payload.TierNames() {
			code, _ := payload.TierCode(name)
			rows = append(rows, tableRow{name, code, payload.TierDescription(name)})
		}
	case TableKinds:
		for _, name := range payload.KindNames() {
			code, _ := payload.KindCode(name)
			rows = append(rows, tableRow{name, code, payload.KindDescription(name)})
		}
	case TableTypes:
		for _, t := range tlv.Types() {
			rows = append(rows, tableRow{t.String(), byte(t), "record type"})
		}
	default:
		return nil, fmt.Errorf("unknown code table %q (want one of %v)", table, Tables())
	}

	return rows, nil
}

// PrintCodeTable prints one code table with name, hex code and description columns.
func PrintCodeTable(output io.Writer, table string) error {
	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	if output == nil {
		output = os.Stdout
	}

	w := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tcode\tdescription") //nolint:errcheck
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t0x%02X\t%s\n", r.name, r.code, r.description) //nolint:errcheck
	}

	return w.Flush()
}
