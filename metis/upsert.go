package metis

import (
	"fmt"
	"strings"

	"github.com/lunagic/metis/metistools"
)

func NewUpsert(table string) *UpsertBuilder {
	return &UpsertBuilder{
		table: table,
		row:   map[string]any{},
	}
}

type UpsertBuilder struct {
	table     string
	row       map[string]any
	conflicts []string
	returning []string
}

// Values merges the given column values into the single upsert row.
func (builder *UpsertBuilder) Values(row map[string]any) *UpsertBuilder {
	for column, value := range row {
		builder.row[column] = value
	}

	return builder
}

// Conflict names the columns whose unique constraint decides between insert
// and update.
func (builder *UpsertBuilder) Conflict(columns ...string) *UpsertBuilder {
	builder.conflicts = columns

	return builder
}

func (builder *UpsertBuilder) Returning(columns ...string) *UpsertBuilder {
	builder.returning = columns

	return builder
}

func (builder *UpsertBuilder) Compile(dialect Dialect) (Statement, error) {
	if strings.TrimSpace(builder.table) == "" {
		return Statement{}, ConfigurationError{
			Statement: "upsert",
			Reason:    "table is required",
		}
	}

	if len(builder.row) == 0 {
		return Statement{}, ConfigurationError{
			Statement: "upsert",
			Reason:    "values are required",
		}
	}

	if len(builder.conflicts) == 0 {
		return Statement{}, ConfigurationError{
			Statement: "upsert",
			Reason:    "conflict columns are required",
		}
	}

	table, err := escapeTable(builder.table)
	if err != nil {
		return Statement{}, err
	}

	keys := metistools.Keys(builder.row)

	columns := []string{}
	params := []any{}
	placeholders := []string{}
	for _, key := range keys {
		column, err := escapeColumn(key)
		if err != nil {
			return Statement{}, err
		}

		value := builder.row[key]
		if err := validateValue(value); err != nil {
			return Statement{}, err
		}

		columns = append(columns, column)
		placeholders = append(placeholders, dialect.Placeholder(len(params)+1))
		params = append(params, value)
	}

	conflictColumns := []string{}
	for _, raw := range builder.conflicts {
		column, err := escapeColumn(raw)
		if err != nil {
			return Statement{}, err
		}

		conflictColumns = append(conflictColumns, column)
	}

	// Every non-conflict column gets re-assigned on collision. Each value is
	// sent a second time so the clause works the same on engines without an
	// EXCLUDED pseudo table.
	updateKeys := metistools.Filter(keys, func(key string) bool {
		for _, conflict := range builder.conflicts {
			if key == conflict {
				return false
			}
		}

		return true
	})

	assignments := []string{}
	updateParams := []any{}
	for _, key := range updateKeys {
		column, err := escapeColumn(key)
		if err != nil {
			return Statement{}, err
		}

		assignments = append(assignments, fmt.Sprintf(
			"%s = %s",
			column,
			dialect.Placeholder(len(updateParams)+1),
		))
		updateParams = append(updateParams, builder.row[key])
	}

	// The conflict clause numbers its placeholders from one, then is shifted
	// past the insert value list.
	clause := shiftPlaceholders(
		dialect.UpsertClause(conflictColumns, assignments),
		len(params),
		dialect,
	)
	params = append(params, updateParams...)

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		clause,
	)

	if len(builder.returning) > 0 {
		returning, err := compileReturning(builder.returning, dialect, "upsert")
		if err != nil {
			return Statement{}, err
		}

		sql += " " + returning
	}

	return Statement{SQL: sql, Params: params}, nil
}
