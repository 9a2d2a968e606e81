package metis

import (
	"fmt"
	"strings"
)

func NewDelete(table string) *DeleteBuilder {
	return &DeleteBuilder{
		table: table,
	}
}

type DeleteBuilder struct {
	table     string
	predicate Predicate
	returning []string
}

func (builder *DeleteBuilder) Where(column string, args ...any) *DeleteBuilder {
	builder.predicate.Where(column, args...)

	return builder
}

func (builder *DeleteBuilder) OrWhere(column string, args ...any) *DeleteBuilder {
	builder.predicate.OrWhere(column, args...)

	return builder
}

func (builder *DeleteBuilder) WhereIn(column string, values ...any) *DeleteBuilder {
	builder.predicate.WhereIn(column, values...)

	return builder
}

func (builder *DeleteBuilder) WhereNotIn(column string, values ...any) *DeleteBuilder {
	builder.predicate.WhereNotIn(column, values...)

	return builder
}

func (builder *DeleteBuilder) WhereNull(column string) *DeleteBuilder {
	builder.predicate.WhereNull(column)

	return builder
}

func (builder *DeleteBuilder) WhereNotNull(column string) *DeleteBuilder {
	builder.predicate.WhereNotNull(column)

	return builder
}

func (builder *DeleteBuilder) WhereLike(column string, value any) *DeleteBuilder {
	builder.predicate.WhereLike(column, value)

	return builder
}

func (builder *DeleteBuilder) WhereILike(column string, value any) *DeleteBuilder {
	builder.predicate.WhereILike(column, value)

	return builder
}

func (builder *DeleteBuilder) WhereBetween(column string, low any, high any) *DeleteBuilder {
	builder.predicate.WhereBetween(column, low, high)

	return builder
}

func (builder *DeleteBuilder) WhereRaw(sql string, values ...any) *DeleteBuilder {
	builder.predicate.WhereRaw(sql, values...)

	return builder
}

func (builder *DeleteBuilder) WhereGroup(callback func(group *Predicate)) *DeleteBuilder {
	builder.predicate.WhereGroup(callback)

	return builder
}

func (builder *DeleteBuilder) OrWhereGroup(callback func(group *Predicate)) *DeleteBuilder {
	builder.predicate.OrWhereGroup(callback)

	return builder
}

func (builder *DeleteBuilder) Returning(columns ...string) *DeleteBuilder {
	builder.returning = columns

	return builder
}

func (builder *DeleteBuilder) Compile(dialect Dialect) (Statement, error) {
	if strings.TrimSpace(builder.table) == "" {
		return Statement{}, ConfigurationError{
			Statement: "delete",
			Reason:    "table is required",
		}
	}

	table, err := escapeTable(builder.table)
	if err != nil {
		return Statement{}, err
	}

	sql := fmt.Sprintf("DELETE FROM %s", table)
	params := []any{}

	where, whereParams, err := builder.predicate.compile(dialect, 0)
	if err != nil {
		return Statement{}, err
	}

	if where != "" {
		sql += " WHERE " + where
		params = append(params, whereParams...)
	}

	if len(builder.returning) > 0 {
		returning, err := compileReturning(builder.returning, dialect, "delete")
		if err != nil {
			return Statement{}, err
		}

		sql += " " + returning
	}

	return Statement{SQL: sql, Params: params}, nil
}
