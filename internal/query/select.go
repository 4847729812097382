package query

import "strings"

// selectRows renders the header followed by the chosen rows. A negative limit
// selects everything; last picks the trailing rows instead of the leading ones.
func selectRows(header string, rows []string, limit int, last bool) string {
	chosen := rows
	if limit >= 0 && limit < len(rows) {
		if last {
			chosen = rows[len(rows)-limit:]
		} else {
			chosen = rows[:limit]
		}
	}

	out := make([]string, 0, len(chosen)+1)
	out = append(out, header)
	out = append(out, chosen...)
	return strings.Join(out, "\n")
}
