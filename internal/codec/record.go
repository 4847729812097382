package codec

import (
	"errors"
	"strings"
)

const (
	Delimiter = ","

	// IDColumn is the first header token of every table file.
	IDColumn = "unique_id"
)

var (
	ErrEmptyHeader     = errors.New("table header has no fields")
	ErrEmptyCredential = errors.New("credential file is empty")
)

// JoinRecord joins fields with the delimiter. No escaping is applied.
func JoinRecord(fields []string) string {
	return strings.Join(fields, Delimiter)
}

// SplitRecord splits a line on the delimiter.
func SplitRecord(line string) []string {
	return strings.Split(line, Delimiter)
}

// EncodeHeader renders the header line for schema.
func EncodeHeader(schema []string) string {
	return JoinRecord(append([]string{IDColumn}, schema...))
}

// DecodeHeader recovers the schema from a header line: the first token (the
// id column) is dropped and the remaining tokens are the field names.
func DecodeHeader(line string) ([]string, error) {
	if line == "" {
		return nil, ErrEmptyHeader
	}
	tokens := SplitRecord(line)
	schema := tokens[1:]
	if len(schema) == 0 || (len(schema) == 1 && schema[0] == "") {
		return nil, ErrEmptyHeader
	}
	return schema, nil
}

// EncodeRow renders one data line.
func EncodeRow(id string, values []string) string {
	return JoinRecord(append([]string{id}, values...))
}

// RowID returns the id token of a data line.
func RowID(line string) string {
	id, _, _ := strings.Cut(line, Delimiter)
	return id
}

// EncodeCredential renders the two lines of a credential file.
func EncodeCredential(credential string, databases []string) []string {
	return []string{credential, JoinRecord(databases)}
}

// DecodeCredential parses a credential file. Database names are trimmed and
// empty entries are skipped; a missing second line means no databases.
func DecodeCredential(lines []string) (string, []string, error) {
	if len(lines) == 0 {
		return "", nil, ErrEmptyCredential
	}

	databases := make([]string, 0)
	if len(lines) > 1 {
		for _, name := range SplitRecord(lines[1]) {
			name = strings.TrimSpace(name)
			if name != "" {
				databases = append(databases, name)
			}
		}
	}
	return lines[0], databases, nil
}
