package metis

import (
	"regexp"
	"strings"
)

const maxIdentifierLength = 64

var (
	identifierStrip    = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	dangerousTokens    = regexp.MustCompile(`(?i)(;|--|/\*|\*/|\x00|\bunion\b|\bexec\b|\bexecute\b)`)
	reservedKeywords   = map[string]struct{}{}
	reservedKeywordSet = []string{
		"ALL", "ALTER", "AND", "ANY", "AS", "ASC", "BETWEEN", "BY", "CASE",
		"CAST", "COLUMN", "CONSTRAINT", "CREATE", "CROSS", "DEFAULT", "DELETE",
		"DESC", "DISTINCT", "DROP", "ELSE", "END", "EXCEPT", "EXISTS", "FALSE",
		"FOR", "FOREIGN", "FROM", "FULL", "GRANT", "GROUP", "HAVING", "IN",
		"INDEX", "INNER", "INSERT", "INTERSECT", "INTO", "IS", "JOIN", "LEFT",
		"LIKE", "LIMIT", "NOT", "NULL", "OFFSET", "ON", "OR", "ORDER", "OUTER",
		"PRIMARY", "REFERENCES", "RETURNING", "RIGHT", "SELECT", "SET", "TABLE",
		"THEN", "TO", "TRUE", "TRUNCATE", "UNION", "UNIQUE", "UPDATE", "USING",
		"VALUES", "WHEN", "WHERE", "WITH",
	}
)

func init() {
	for _, keyword := range reservedKeywordSet {
		reservedKeywords[keyword] = struct{}{}
	}
}

// EscapeIdentifier validates a table or column name and returns it quoted for
// safe inclusion in statement text. Identifiers that are blank, too long,
// contain dangerous token sequences, or equal a reserved keyword are rejected
// with a ValidationError before they can reach generated SQL.
func EscapeIdentifier(identifier string) (string, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return "", ValidationError{
			Subject: identifier,
			Reason:  "blank identifier",
		}
	}

	if len(trimmed) > maxIdentifierLength {
		return "", ValidationError{
			Subject: identifier,
			Reason:  "identifier exceeds maximum length",
		}
	}

	if dangerousTokens.MatchString(trimmed) {
		return "", ValidationError{
			Subject: identifier,
			Reason:  "identifier contains a dangerous token",
		}
	}

	if _, found := reservedKeywords[strings.ToUpper(trimmed)]; found {
		return "", ValidationError{
			Subject: identifier,
			Reason:  "identifier is a reserved keyword",
		}
	}

	cleaned := identifierStrip.ReplaceAllString(trimmed, "")
	if cleaned == "" {
		return "", ValidationError{
			Subject: identifier,
			Reason:  "identifier has no valid characters",
		}
	}

	// cleaned is down to [A-Za-z0-9_] here, so plain wrapping is enough.
	return `"` + cleaned + `"`, nil
}

// UnescapeIdentifier reverses EscapeIdentifier for identifiers that were
// within the validator's length and charset rules.
func UnescapeIdentifier(quoted string) string {
	return strings.TrimSuffix(strings.TrimPrefix(quoted, `"`), `"`)
}

// escapeColumn handles the column forms the fluent surface accepts: plain
// names, "table.column" references, and the "*" / "table.*" wildcards.
func escapeColumn(column string) (string, error) {
	if column == "*" {
		return "*", nil
	}

	table, rest, qualified := strings.Cut(column, ".")
	if !qualified {
		return EscapeIdentifier(column)
	}

	escapedTable, err := EscapeIdentifier(table)
	if err != nil {
		return "", err
	}

	if rest == "*" {
		return escapedTable + ".*", nil
	}

	escapedColumn, err := EscapeIdentifier(rest)
	if err != nil {
		return "", err
	}

	return escapedTable + "." + escapedColumn, nil
}

// escapeTable handles the "table" and "table alias" forms accepted by From
// and the join methods.
func escapeTable(table string) (string, error) {
	parts := strings.Fields(table)
	if len(parts) == 2 {
		escapedTable, err := EscapeIdentifier(parts[0])
		if err != nil {
			return "", err
		}

		escapedAlias, err := EscapeIdentifier(parts[1])
		if err != nil {
			return "", err
		}

		return escapedTable + " AS " + escapedAlias, nil
	}

	return EscapeIdentifier(table)
}
