package metis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberedPlaceholderRegex = regexp.MustCompile(`\$(\d+)`)

// rewritePlaceholders replaces each `?` in a raw fragment with the dialect's
// placeholder for the next parameter position. Positional dialects hand back
// `?` so the fragment comes through unchanged.
func rewritePlaceholders(fragment string, dialect Dialect, offset int) string {
	if !dialect.UsesNumberedPlaceholders() {
		return fragment
	}

	count := 0
	result := strings.Builder{}
	for _, r := range fragment {
		if r != '?' {
			result.WriteRune(r)
			continue
		}

		count++
		result.WriteString(dialect.Placeholder(offset + count))
	}

	return result.String()
}

// shiftPlaceholders renumbers every `$N` in an already compiled fragment by
// the given amount. UPDATE and UPSERT compile their trailing clause starting
// at $1 and then shift it past the leading value list.
func shiftPlaceholders(sql string, by int, dialect Dialect) string {
	if !dialect.UsesNumberedPlaceholders() || by == 0 {
		return sql
	}

	return numberedPlaceholderRegex.ReplaceAllStringFunc(sql, func(match string) string {
		number, err := strconv.Atoi(match[1:])
		if err != nil {
			return match
		}

		return dialect.Placeholder(number + by)
	})
}

type joinKind string

const (
	joinInner joinKind = "INNER JOIN"
	joinLeft  joinKind = "LEFT JOIN"
	joinRight joinKind = "RIGHT JOIN"
	joinFull  joinKind = "FULL JOIN"
)

type join struct {
	kind  joinKind
	table string
	left  string
	right string
}

func compileJoins(joins []join) (string, error) {
	parts := []string{}
	for _, j := range joins {
		table, err := escapeTable(j.table)
		if err != nil {
			return "", err
		}

		left, err := escapeColumn(j.left)
		if err != nil {
			return "", err
		}

		right, err := escapeColumn(j.right)
		if err != nil {
			return "", err
		}

		parts = append(parts, fmt.Sprintf("%s %s ON %s = %s", j.kind, table, left, right))
	}

	return strings.Join(parts, " "), nil
}

// Direction selects the sort order of an OrderBy call.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

type orderSpec struct {
	column    string
	direction Direction
}

func compileOrderBy(specs []orderSpec) (string, error) {
	parts := []string{}
	for _, spec := range specs {
		direction := spec.direction
		if direction != Ascending && direction != Descending {
			return "", ValidationError{
				Subject: string(direction),
				Reason:  "order direction must be ASC or DESC",
			}
		}

		column, err := escapeColumn(spec.column)
		if err != nil {
			return "", err
		}

		parts = append(parts, fmt.Sprintf("%s %s", column, direction))
	}

	return "ORDER BY " + strings.Join(parts, ", "), nil
}

func compileGroupBy(columns []string) (string, error) {
	parts := []string{}
	for _, raw := range columns {
		column, err := escapeColumn(raw)
		if err != nil {
			return "", err
		}

		parts = append(parts, column)
	}

	return "GROUP BY " + strings.Join(parts, ", "), nil
}

func compileReturning(columns []string, dialect Dialect, statement string) (string, error) {
	if !dialect.SupportsReturning() {
		return "", ConfigurationError{
			Statement: statement,
			Reason:    "dialect does not support RETURNING",
		}
	}

	parts := []string{}
	for _, raw := range columns {
		if raw == "*" {
			parts = append(parts, "*")
			continue
		}

		column, err := escapeColumn(raw)
		if err != nil {
			return "", err
		}

		parts = append(parts, column)
	}

	return "RETURNING " + strings.Join(parts, ", "), nil
}
