package summary

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/ukaji3/datasc-go/pkg/datasc/models"
)

// Info renders the structural summary of t as a text block: the row range,
// one line per column with its non-null count and type, and a type tally.
func Info(t *models.Table) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Table: %s\n", t.Name)
	if n := t.NumRows(); n > 0 {
		fmt.Fprintf(&buf, "Rows: %d entries, 0 to %d\n", n, n-1)
	} else {
		fmt.Fprintf(&buf, "Rows: 0 entries\n")
	}
	fmt.Fprintf(&buf, "Data columns (total %d columns):\n", t.NumCols())

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " #\tColumn\tNon-Null Count\tType")
	fmt.Fprintln(tw, "---\t------\t--------------\t----")
	tally := make(map[string]int)
	for i, c := range t.Columns {
		fmt.Fprintf(tw, " %d\t%s\t%d non-null\t%s\n", i, c.Name, c.NonNullCount(), c.Type)
		tally[c.Type.String()]++
	}
	tw.Flush()

	names := make([]string, 0, len(tally))
	for name := range tally {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s(%d)", name, tally[name])
	}
	fmt.Fprintf(&buf, "Types: %s\n", strings.Join(parts, ", "))

	return buf.String()
}
