package metis

import (
	"fmt"
	"strings"

	"github.com/lunagic/metis/metistools"
)

func NewUpdate(table string) *UpdateBuilder {
	return &UpdateBuilder{
		table: table,
		sets:  map[string]any{},
	}
}

type UpdateBuilder struct {
	table     string
	sets      map[string]any
	predicate Predicate
	returning []string
}

// Set merges the given assignments into the builder. Later calls win on
// duplicate columns.
func (builder *UpdateBuilder) Set(assignments map[string]any) *UpdateBuilder {
	for column, value := range assignments {
		builder.sets[column] = value
	}

	return builder
}

func (builder *UpdateBuilder) Where(column string, args ...any) *UpdateBuilder {
	builder.predicate.Where(column, args...)

	return builder
}

func (builder *UpdateBuilder) OrWhere(column string, args ...any) *UpdateBuilder {
	builder.predicate.OrWhere(column, args...)

	return builder
}

func (builder *UpdateBuilder) WhereIn(column string, values ...any) *UpdateBuilder {
	builder.predicate.WhereIn(column, values...)

	return builder
}

func (builder *UpdateBuilder) WhereNotIn(column string, values ...any) *UpdateBuilder {
	builder.predicate.WhereNotIn(column, values...)

	return builder
}

func (builder *UpdateBuilder) WhereNull(column string) *UpdateBuilder {
	builder.predicate.WhereNull(column)

	return builder
}

func (builder *UpdateBuilder) WhereNotNull(column string) *UpdateBuilder {
	builder.predicate.WhereNotNull(column)

	return builder
}

func (builder *UpdateBuilder) WhereLike(column string, value any) *UpdateBuilder {
	builder.predicate.WhereLike(column, value)

	return builder
}

func (builder *UpdateBuilder) WhereILike(column string, value any) *UpdateBuilder {
	builder.predicate.WhereILike(column, value)

	return builder
}

func (builder *UpdateBuilder) WhereBetween(column string, low any, high any) *UpdateBuilder {
	builder.predicate.WhereBetween(column, low, high)

	return builder
}

func (builder *UpdateBuilder) WhereRaw(sql string, values ...any) *UpdateBuilder {
	builder.predicate.WhereRaw(sql, values...)

	return builder
}

func (builder *UpdateBuilder) WhereGroup(callback func(group *Predicate)) *UpdateBuilder {
	builder.predicate.WhereGroup(callback)

	return builder
}

func (builder *UpdateBuilder) OrWhereGroup(callback func(group *Predicate)) *UpdateBuilder {
	builder.predicate.OrWhereGroup(callback)

	return builder
}

func (builder *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	builder.returning = columns

	return builder
}

func (builder *UpdateBuilder) Compile(dialect Dialect) (Statement, error) {
	if strings.TrimSpace(builder.table) == "" {
		return Statement{}, ConfigurationError{
			Statement: "update",
			Reason:    "table is required",
		}
	}

	if len(builder.sets) == 0 {
		return Statement{}, ConfigurationError{
			Statement: "update",
			Reason:    "at least one assignment is required",
		}
	}

	table, err := escapeTable(builder.table)
	if err != nil {
		return Statement{}, err
	}

	params := []any{}
	assignments := []string{}
	for _, key := range metistools.Keys(builder.sets) {
		column, err := escapeColumn(key)
		if err != nil {
			return Statement{}, err
		}

		value := builder.sets[key]
		if err := validateValue(value); err != nil {
			return Statement{}, err
		}

		assignments = append(assignments, fmt.Sprintf(
			"%s = %s",
			column,
			dialect.Placeholder(len(params)+1),
		))
		params = append(params, value)
	}

	sql := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(assignments, ", "))

	// The WHERE tree numbers its placeholders from one, then the whole clause
	// is shifted past the SET values.
	where, whereParams, err := builder.predicate.compile(dialect, 0)
	if err != nil {
		return Statement{}, err
	}

	if where != "" {
		sql += " WHERE " + shiftPlaceholders(where, len(params), dialect)
		params = append(params, whereParams...)
	}

	if len(builder.returning) > 0 {
		returning, err := compileReturning(builder.returning, dialect, "update")
		if err != nil {
			return Statement{}, err
		}

		sql += " " + returning
	}

	return Statement{SQL: sql, Params: params}, nil
}
