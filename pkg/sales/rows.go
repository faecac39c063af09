package sales

// Row is one result row keyed by the query's column aliases. A row
// carrying the "error" key marks a failed execution; the formatter
// renders it the same way as an empty result.
type Row map[string]any

// ErrorKey marks a row that reports a data-access failure instead of data.
const ErrorKey = "error"

// errorResult wraps a failure message as a single-row result.
func errorResult(detail string) []Row {
	return []Row{{ErrorKey: detail}}
}

// IsError reports whether the first row of a result carries an error
// marker, returning its detail text.
func IsError(rows []Row) (string, bool) {
	if len(rows) == 0 {
		return "", false
	}
	detail, ok := rows[0][ErrorKey]
	if !ok {
		return "", false
	}
	s, _ := detail.(string)
	return s, true
}
