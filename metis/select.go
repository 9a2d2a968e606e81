package metis

import (
	"fmt"
	"strings"
)

// NewSelect starts a SELECT builder for the given table. The table may carry
// an alias separated by a space.
func NewSelect(table string) *SelectBuilder {
	return &SelectBuilder{
		table: table,
	}
}

type SelectBuilder struct {
	table     string
	distinct  bool
	columns   []string
	joins     []join
	predicate Predicate
	groupBys  []string
	having    Predicate
	orderBys  []orderSpec
	limit     *int
	offset    *int
}

// Distinct makes the statement emit SELECT DISTINCT.
func (builder *SelectBuilder) Distinct() *SelectBuilder {
	builder.distinct = true

	return builder
}

// Columns replaces the projection. Without a call the builder selects `*`.
func (builder *SelectBuilder) Columns(columns ...string) *SelectBuilder {
	builder.columns = columns

	return builder
}

func (builder *SelectBuilder) Join(table string, left string, right string) *SelectBuilder {
	builder.joins = append(builder.joins, join{kind: joinInner, table: table, left: left, right: right})

	return builder
}

func (builder *SelectBuilder) LeftJoin(table string, left string, right string) *SelectBuilder {
	builder.joins = append(builder.joins, join{kind: joinLeft, table: table, left: left, right: right})

	return builder
}

func (builder *SelectBuilder) RightJoin(table string, left string, right string) *SelectBuilder {
	builder.joins = append(builder.joins, join{kind: joinRight, table: table, left: left, right: right})

	return builder
}

func (builder *SelectBuilder) FullJoin(table string, left string, right string) *SelectBuilder {
	builder.joins = append(builder.joins, join{kind: joinFull, table: table, left: left, right: right})

	return builder
}

func (builder *SelectBuilder) Where(column string, args ...any) *SelectBuilder {
	builder.predicate.Where(column, args...)

	return builder
}

func (builder *SelectBuilder) OrWhere(column string, args ...any) *SelectBuilder {
	builder.predicate.OrWhere(column, args...)

	return builder
}

func (builder *SelectBuilder) WhereIn(column string, values ...any) *SelectBuilder {
	builder.predicate.WhereIn(column, values...)

	return builder
}

func (builder *SelectBuilder) WhereNotIn(column string, values ...any) *SelectBuilder {
	builder.predicate.WhereNotIn(column, values...)

	return builder
}

func (builder *SelectBuilder) WhereNull(column string) *SelectBuilder {
	builder.predicate.WhereNull(column)

	return builder
}

func (builder *SelectBuilder) WhereNotNull(column string) *SelectBuilder {
	builder.predicate.WhereNotNull(column)

	return builder
}

func (builder *SelectBuilder) WhereLike(column string, value any) *SelectBuilder {
	builder.predicate.WhereLike(column, value)

	return builder
}

func (builder *SelectBuilder) WhereILike(column string, value any) *SelectBuilder {
	builder.predicate.WhereILike(column, value)

	return builder
}

func (builder *SelectBuilder) WhereBetween(column string, low any, high any) *SelectBuilder {
	builder.predicate.WhereBetween(column, low, high)

	return builder
}

func (builder *SelectBuilder) WhereRaw(sql string, values ...any) *SelectBuilder {
	builder.predicate.WhereRaw(sql, values...)

	return builder
}

func (builder *SelectBuilder) OrWhereRaw(sql string, values ...any) *SelectBuilder {
	builder.predicate.OrWhereRaw(sql, values...)

	return builder
}

func (builder *SelectBuilder) WhereGroup(callback func(group *Predicate)) *SelectBuilder {
	builder.predicate.WhereGroup(callback)

	return builder
}

func (builder *SelectBuilder) OrWhereGroup(callback func(group *Predicate)) *SelectBuilder {
	builder.predicate.OrWhereGroup(callback)

	return builder
}

func (builder *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	builder.groupBys = append(builder.groupBys, columns...)

	return builder
}

// Having appends a post-aggregation condition. The fragment's `?` markers are
// rewritten to the dialect's placeholder form at compile time, numbered past
// every preceding parameter.
func (builder *SelectBuilder) Having(sql string, values ...any) *SelectBuilder {
	builder.having.WhereRaw(sql, values...)

	return builder
}

// OrHaving behaves like Having with the conjunction set to OR.
func (builder *SelectBuilder) OrHaving(sql string, values ...any) *SelectBuilder {
	builder.having.OrWhereRaw(sql, values...)

	return builder
}

func (builder *SelectBuilder) OrderBy(column string, direction Direction) *SelectBuilder {
	builder.orderBys = append(builder.orderBys, orderSpec{column: column, direction: direction})

	return builder
}

func (builder *SelectBuilder) Limit(limit int) *SelectBuilder {
	builder.limit = &limit

	return builder
}

func (builder *SelectBuilder) Offset(offset int) *SelectBuilder {
	builder.offset = &offset

	return builder
}

func (builder *SelectBuilder) Compile(dialect Dialect) (Statement, error) {
	projection := "*"
	if len(builder.columns) > 0 {
		escaped := []string{}
		for _, raw := range builder.columns {
			column, err := escapeColumn(raw)
			if err != nil {
				return Statement{}, err
			}

			escaped = append(escaped, column)
		}

		projection = strings.Join(escaped, ", ")
	}

	return builder.compileWithProjection(dialect, projection)
}

// compileCount swaps the projection for COUNT(*) and drops row ordering and
// paging, leaving the rest of the builder untouched.
func (builder *SelectBuilder) compileCount(dialect Dialect) (Statement, error) {
	trimmed := *builder
	trimmed.distinct = false
	trimmed.orderBys = nil
	trimmed.limit = nil
	trimmed.offset = nil

	return trimmed.compileWithProjection(dialect, `COUNT(*) AS "count"`)
}

func (builder *SelectBuilder) compileWithProjection(dialect Dialect, projection string) (Statement, error) {
	if strings.TrimSpace(builder.table) == "" {
		return Statement{}, ConfigurationError{
			Statement: "select",
			Reason:    "table is required",
		}
	}

	table, err := escapeTable(builder.table)
	if err != nil {
		return Statement{}, err
	}

	keyword := "SELECT"
	if builder.distinct {
		keyword = "SELECT DISTINCT"
	}

	sql := fmt.Sprintf("%s %s FROM %s", keyword, projection, table)
	params := []any{}

	if len(builder.joins) > 0 {
		joins, err := compileJoins(builder.joins)
		if err != nil {
			return Statement{}, err
		}

		sql += " " + joins
	}

	where, whereParams, err := builder.predicate.compile(dialect, 0)
	if err != nil {
		return Statement{}, err
	}

	if where != "" {
		sql += " WHERE " + where
		params = append(params, whereParams...)
	}

	if len(builder.groupBys) > 0 {
		groupBy, err := compileGroupBy(builder.groupBys)
		if err != nil {
			return Statement{}, err
		}

		sql += " " + groupBy
	}

	having, havingParams, err := builder.having.compile(dialect, len(params))
	if err != nil {
		return Statement{}, err
	}

	if having != "" {
		sql += " HAVING " + having
		params = append(params, havingParams...)
	}

	if len(builder.orderBys) > 0 {
		orderBy, err := compileOrderBy(builder.orderBys)
		if err != nil {
			return Statement{}, err
		}

		sql += " " + orderBy
	}

	if builder.limit != nil {
		sql += " LIMIT " + dialect.Placeholder(len(params)+1)
		params = append(params, *builder.limit)
	}

	if builder.offset != nil {
		sql += " OFFSET " + dialect.Placeholder(len(params)+1)
		params = append(params, *builder.offset)
	}

	return Statement{SQL: sql, Params: params}, nil
}
