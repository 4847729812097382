// Package codec reads and writes the two on-disk record formats of csvdb as
// ordered text lines.
//
// Credential file (account/<user>/<user>.csv):
//
//	line 1: stored credential
//	line 2: comma-separated database names
//
// Table file (database/<owner>/<db>/<table>.csv):
//
//	line 1: unique_id,<field1>,...,<fieldN>
//	line N: <id>,<value1>,...,<valueN>
//
// Fields are comma-joined without quoting or escaping; values that contain
// commas or line breaks cannot be represented.
package codec
