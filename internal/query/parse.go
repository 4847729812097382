package query

import (
	"strconv"
	"strings"
)

// Parse turns one input line into a Command. The returned Command always has
// its Kind set, even when err is a *SyntaxError, so callers can apply the
// session checks for that kind before reporting the syntax problem.
func Parse(line string) (Command, error) {
	line = normalize(line)
	if line == "" {
		return Command{Kind: KindEmpty}, nil
	}

	words, list, hasList := split(line)

	switch {
	case isKeyword(words, 0, "login"):
		if len(words) != 1 || hasList {
			return Command{Kind: KindLogin}, syntaxError(UsageLogin)
		}
		return Command{Kind: KindLogin}, nil

	case isKeyword(words, 0, "show"):
		if len(words) != 1 || hasList {
			return Command{Kind: KindShow}, syntaxError(UsageShow)
		}
		return Command{Kind: KindShow}, nil

	case isKeyword(words, 0, "create") && isKeyword(words, 1, "table"):
		return parseCreateTable(words, list, hasList)

	case isKeyword(words, 0, "create"):
		return parseName(KindCreateDatabase, UsageCreateDatabase, words, hasList)

	case isKeyword(words, 0, "open"):
		return parseName(KindOpen, UsageOpen, words, hasList)

	case isKeyword(words, 0, "drop"):
		return parseName(KindDrop, UsageDrop, words, hasList)

	case isKeyword(words, 0, "insert") && isKeyword(words, 1, "into"):
		return parseInsert(words, list, hasList)

	case isKeyword(words, 0, "delete") && isKeyword(words, 1, "from"):
		return parseDelete(words, hasList)

	case isKeyword(words, 0, "select") && isKeyword(words, 1, "from"):
		return parseSelect(words, hasList)
	}

	return Command{Kind: KindUnknown}, nil
}

// normalize trims the line and strips a single trailing semicolon.
func normalize(line string) string {
	line = strings.TrimSpace(line)
	return strings.TrimSpace(strings.TrimSuffix(line, ";"))
}

// asCreateDatabase reads a bare "create table" as creating a database named
// "table". Callers use it only while no database is open.
func asCreateDatabase(line string) (Command, bool) {
	words, _, hasList := split(normalize(line))
	if len(words) != 2 || hasList || !isKeyword(words, 0, "create") || !isKeyword(words, 1, "table") {
		return Command{}, false
	}
	return Command{Kind: KindCreateDatabase, Name: words[1]}, true
}

// split separates the whitespace-delimited words before the first '(' from
// the parenthesized list that runs to the end of the line.
func split(line string) (words []string, list string, hasList bool) {
	head, rest, found := strings.Cut(line, "(")
	words = strings.Fields(head)
	if found {
		list = "(" + rest
	}
	return words, list, found
}

func isKeyword(words []string, i int, kw string) bool {
	return i < len(words) && strings.EqualFold(words[i], kw)
}

// parseList strips the surrounding parentheses and splits on commas, trimming
// each token. "()" yields an empty list.
func parseList(list string) ([]string, bool) {
	if len(list) < 2 || list[0] != '(' || list[len(list)-1] != ')' {
		return nil, false
	}
	inner := strings.TrimSpace(list[1 : len(list)-1])
	if inner == "" {
		return []string{}, true
	}

	tokens := strings.Split(inner, ",")
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	return tokens, true
}

func parseName(kind Kind, usage string, words []string, hasList bool) (Command, error) {
	if len(words) != 2 || hasList {
		return Command{Kind: kind}, syntaxError(usage)
	}
	return Command{Kind: kind, Name: words[1]}, nil
}

func parseCreateTable(words []string, list string, hasList bool) (Command, error) {
	cmd := Command{Kind: KindCreateTable}
	if len(words) != 3 || !hasList {
		return cmd, syntaxError(UsageCreateTable)
	}

	fields, ok := parseList(list)
	if !ok {
		return cmd, syntaxError(UsageCreateTable)
	}

	cmd.Name = words[2]
	cmd.Fields = fields
	return cmd, nil
}

func parseInsert(words []string, list string, hasList bool) (Command, error) {
	cmd := Command{Kind: KindInsert}
	if len(words) != 3 || !hasList {
		return cmd, syntaxError(UsageInsert)
	}

	values, ok := parseList(list)
	if !ok {
		return cmd, syntaxError(UsageInsert)
	}

	cmd.Name = words[2]
	cmd.Fields = values
	return cmd, nil
}

func parseDelete(words []string, hasList bool) (Command, error) {
	cmd := Command{Kind: KindDelete}
	args := words[2:]
	if len(args) != 2 || hasList {
		return cmd, syntaxError(UsageDelete)
	}

	id, ok := strings.CutPrefix(args[1], "id:")
	if !ok || id == "" {
		return cmd, syntaxError(UsageDelete)
	}

	cmd.Name = args[0]
	cmd.ID = id
	return cmd, nil
}

func parseSelect(words []string, hasList bool) (Command, error) {
	cmd := Command{Kind: KindSelect, Limit: NoLimit}
	args := words[2:]
	if len(args) == 0 || len(args) > 3 || hasList {
		return cmd, syntaxError(UsageSelect)
	}
	cmd.Name = args[0]

	if len(args) == 1 {
		return cmd, nil
	}

	n, err := strconv.Atoi(args[1])
	switch {
	case err == nil && n >= 0:
		cmd.Limit = n
	case err != nil && strings.EqualFold(args[1], "last") && len(args) == 2:
		cmd.Last = true
		return cmd, nil
	default:
		return cmd, syntaxError(UsageSelect)
	}

	if len(args) == 3 {
		if !strings.EqualFold(args[2], "last") {
			return cmd, syntaxError(UsageSelect)
		}
		cmd.Last = true
	}
	return cmd, nil
}
