package metis

import "fmt"

// Predicate accumulates WHERE conditions and nested AND/OR groups. Statement
// builders embed one and forward their fluent calls to it, so the same tree
// type serves SELECT, UPDATE, and DELETE without a base-builder chain.
type Predicate struct {
	nodes []predicateNode
	err   error
}

func (predicate *Predicate) fail(err error) {
	if predicate.err == nil {
		predicate.err = err
	}
}

// Where appends a condition joined with AND. With one argument after the
// column the operator defaults to "="; with two the first is the operator.
// A nil value canonicalizes "=" to IS NULL and "!=" to IS NOT NULL.
func (predicate *Predicate) Where(column string, args ...any) *Predicate {
	predicate.add(conjunctionAnd, column, args...)

	return predicate
}

// OrWhere behaves like Where with the conjunction set to OR.
func (predicate *Predicate) OrWhere(column string, args ...any) *Predicate {
	predicate.add(conjunctionOr, column, args...)

	return predicate
}

func (predicate *Predicate) WhereIn(column string, values ...any) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		column:      column,
		operator:    OpIn,
		values:      values,
		conjunction: conjunctionAnd,
	})

	return predicate
}

func (predicate *Predicate) WhereNotIn(column string, values ...any) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		column:      column,
		operator:    OpNotIn,
		values:      values,
		conjunction: conjunctionAnd,
	})

	return predicate
}

func (predicate *Predicate) WhereNull(column string) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		column:      column,
		operator:    OpIsNull,
		conjunction: conjunctionAnd,
	})

	return predicate
}

func (predicate *Predicate) WhereNotNull(column string) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		column:      column,
		operator:    OpIsNotNull,
		conjunction: conjunctionAnd,
	})

	return predicate
}

func (predicate *Predicate) WhereLike(column string, value any) *Predicate {
	predicate.add(conjunctionAnd, column, OpLike, value)

	return predicate
}

func (predicate *Predicate) WhereILike(column string, value any) *Predicate {
	predicate.add(conjunctionAnd, column, OpILike, value)

	return predicate
}

// WhereBetween lowers to the raw fragment `column BETWEEN ? AND ?` carrying
// the two boundary values.
func (predicate *Predicate) WhereBetween(column string, low any, high any) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		column:      column,
		operator:    opBetween,
		values:      []any{low, high},
		conjunction: conjunctionAnd,
	})

	return predicate
}

// WhereRaw appends a caller-authored SQL fragment whose `?` markers are
// rewritten to the dialect's placeholder form at compile time.
func (predicate *Predicate) WhereRaw(sql string, values ...any) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		operator:    OpRaw,
		rawSQL:      sql,
		values:      values,
		conjunction: conjunctionAnd,
	})

	return predicate
}

func (predicate *Predicate) OrWhereRaw(sql string, values ...any) *Predicate {
	predicate.nodes = append(predicate.nodes, condition{
		operator:    OpRaw,
		rawSQL:      sql,
		values:      values,
		conjunction: conjunctionOr,
	})

	return predicate
}

// WhereGroup opens a fresh sub-builder, lets the callback populate it, and
// appends the result as one parenthesized group joined with AND.
func (predicate *Predicate) WhereGroup(callback func(group *Predicate)) *Predicate {
	predicate.addGroup(conjunctionAnd, callback)

	return predicate
}

// OrWhereGroup behaves like WhereGroup with the conjunction set to OR.
func (predicate *Predicate) OrWhereGroup(callback func(group *Predicate)) *Predicate {
	predicate.addGroup(conjunctionOr, callback)

	return predicate
}

func (predicate *Predicate) add(conj conjunction, column string, args ...any) {
	switch len(args) {
	case 1:
		value := args[0]
		if value == nil {
			predicate.nodes = append(predicate.nodes, condition{
				column:      column,
				operator:    OpIsNull,
				conjunction: conj,
			})

			return
		}

		predicate.nodes = append(predicate.nodes, condition{
			column:      column,
			operator:    OpEqual,
			value:       value,
			conjunction: conj,
		})
	case 2:
		operator, ok := toOperator(args[0])
		if !ok {
			predicate.fail(ValidationError{
				Subject: fmt.Sprint(args[0]),
				Reason:  "operator must be a string",
			})

			return
		}

		predicate.addExplicit(conj, column, operator, args[1])
	default:
		predicate.fail(ValidationError{
			Subject: column,
			Reason:  "where expects one or two arguments after the column",
		})
	}
}

func (predicate *Predicate) addExplicit(conj conjunction, column string, operator Operator, value any) {
	if value == nil {
		switch operator {
		case OpEqual, OpIsNull:
			predicate.nodes = append(predicate.nodes, condition{
				column:      column,
				operator:    OpIsNull,
				conjunction: conj,
			})

			return
		case OpNotEqual, OpIsNotNull:
			predicate.nodes = append(predicate.nodes, condition{
				column:      column,
				operator:    OpIsNotNull,
				conjunction: conj,
			})

			return
		}
	}

	if operator == OpIn || operator == OpNotIn {
		values, ok := asValueSlice(value)
		if !ok {
			predicate.fail(ValidationError{
				Subject: column,
				Reason:  fmt.Sprintf("%s requires an array value", operator),
			})

			return
		}

		predicate.nodes = append(predicate.nodes, condition{
			column:      column,
			operator:    operator,
			values:      values,
			conjunction: conj,
		})

		return
	}

	predicate.nodes = append(predicate.nodes, condition{
		column:      column,
		operator:    operator,
		value:       value,
		conjunction: conj,
	})
}

func (predicate *Predicate) addGroup(conj conjunction, callback func(group *Predicate)) {
	group := &Predicate{}
	callback(group)

	if group.err != nil {
		predicate.fail(group.err)

		return
	}

	if len(group.nodes) == 0 {
		return
	}

	predicate.nodes = append(predicate.nodes, conditionGroup{
		nodes:       group.nodes,
		conjunction: conj,
	})
}

func (predicate *Predicate) empty() bool {
	return len(predicate.nodes) == 0
}

func (predicate *Predicate) compile(dialect Dialect, offset int) (string, []any, error) {
	if predicate.err != nil {
		return "", nil, predicate.err
	}

	return compileNodes(predicate.nodes, dialect, offset)
}

func toOperator(value any) (Operator, bool) {
	switch typed := value.(type) {
	case Operator:
		return typed, true
	case string:
		return Operator(typed), true
	}

	return "", false
}
