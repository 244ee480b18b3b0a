package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// csvHeaders defines the column names written as the first row of a CSV export.
var csvHeaders = []string{"type", "entity", "slug", "suggested", "ids", "names", "message"}

// WriteCSV writes one row per finding in r. Multi-valued columns (ids, names)
// are pipe-separated so each finding stays on a single line.
func WriteCSV(w io.Writer, r Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("audit.WriteCSV: header: %w", err)
	}

	for _, issue := range r.All() {
		ids := make([]string, len(issue.IDs))
		for i, id := range issue.IDs {
			ids[i] = uuidString(id)
		}
		record := []string{
			string(issue.Type),
			issue.Entity,
			issue.Slug,
			issue.Suggested,
			strings.Join(ids, "|"),
			strings.Join(issue.Names, "|"),
			issue.Message,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("audit.WriteCSV: row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("audit.WriteCSV: flush: %w", err)
	}
	return nil
}

func uuidString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
