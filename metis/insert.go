package metis

import (
	"fmt"
	"strings"

	"github.com/lunagic/metis/metistools"
)

func NewInsert(table string) *InsertBuilder {
	return &InsertBuilder{
		table: table,
	}
}

type InsertBuilder struct {
	table     string
	rows      []map[string]any
	returning []string
}

// Values appends one row. Call it repeatedly for a multi-row insert; every
// row must carry the same column set.
func (builder *InsertBuilder) Values(row map[string]any) *InsertBuilder {
	builder.rows = append(builder.rows, row)

	return builder
}

func (builder *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	builder.returning = columns

	return builder
}

func (builder *InsertBuilder) Compile(dialect Dialect) (Statement, error) {
	if strings.TrimSpace(builder.table) == "" {
		return Statement{}, ConfigurationError{
			Statement: "insert",
			Reason:    "table is required",
		}
	}

	if len(builder.rows) == 0 {
		return Statement{}, ConfigurationError{
			Statement: "insert",
			Reason:    "at least one row of values is required",
		}
	}

	table, err := escapeTable(builder.table)
	if err != nil {
		return Statement{}, err
	}

	// Column order comes from the sorted keys of the first row so the output
	// is stable regardless of map iteration.
	keys := metistools.Keys(builder.rows[0])
	if len(keys) == 0 {
		return Statement{}, ConfigurationError{
			Statement: "insert",
			Reason:    "rows must contain at least one column",
		}
	}

	columns := []string{}
	for _, key := range keys {
		column, err := escapeColumn(key)
		if err != nil {
			return Statement{}, err
		}

		columns = append(columns, column)
	}

	params := []any{}
	valueLists := []string{}
	for _, row := range builder.rows {
		if len(row) != len(keys) {
			return Statement{}, ConfigurationError{
				Statement: "insert",
				Reason:    "all rows must share the same column set",
			}
		}

		placeholders := []string{}
		for _, key := range keys {
			value, found := row[key]
			if !found {
				return Statement{}, ConfigurationError{
					Statement: "insert",
					Reason:    fmt.Sprintf("row is missing column %q", key),
				}
			}

			if err := validateValue(value); err != nil {
				return Statement{}, err
			}

			placeholders = append(placeholders, dialect.Placeholder(len(params)+1))
			params = append(params, value)
		}

		valueLists = append(valueLists, "("+strings.Join(placeholders, ", ")+")")
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(valueLists, ", "),
	)

	if len(builder.returning) > 0 {
		returning, err := compileReturning(builder.returning, dialect, "insert")
		if err != nil {
			return Statement{}, err
		}

		sql += " " + returning
	}

	return Statement{SQL: sql, Params: params}, nil
}
