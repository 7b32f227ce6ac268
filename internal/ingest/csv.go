package ingest

import "strings"

// The export files use a simplified quoting scheme: a quote character toggles
// quoted mode, commas split fields only outside quotes, and there is no
// doubled-quote escaping. encoding/csv is stricter (it errors on bare quotes
// and treats "" as an escape), which would change which rows survive, so the
// scan below is a frozen wire contract.

// ParseLine splits one CSV line into trimmed fields.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))
	return fields
}

// ParseRows parses a whole export file into column-name -> value maps using
// the header row. Rows with fewer fields than the header are dropped; extra
// trailing fields are ignored.
func ParseRows(content string) []map[string]string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil
	}

	headers := ParseLine(lines[0])
	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := ParseLine(line)
		if len(values) < len(headers) {
			continue
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = values[i]
		}
		rows = append(rows, row)
	}
	return rows
}
