package metis

import (
	"fmt"
	"strings"

	"github.com/lunagic/metis/metistools"
)

type conjunction string

const (
	conjunctionAnd conjunction = "AND"
	conjunctionOr  conjunction = "OR"
)

type predicateNode interface {
	conj() conjunction
	compile(dialect Dialect, offset int) (string, []any, error)
}

type condition struct {
	column      string
	operator    Operator
	value       any
	values      []any
	rawSQL      string
	conjunction conjunction
}

func (c condition) conj() conjunction {
	return c.conjunction
}

func (c condition) compile(dialect Dialect, offset int) (string, []any, error) {
	if _, found := knownOperators[c.operator]; !found {
		return "", nil, ValidationError{
			Subject: string(c.operator),
			Reason:  "unknown operator",
		}
	}

	if c.operator == OpRaw {
		// The fragment text is caller-authored and trusted; the values still
		// travel through placeholders.
		return rewritePlaceholders(c.rawSQL, dialect, offset), c.values, nil
	}

	column, err := escapeColumn(c.column)
	if err != nil {
		return "", nil, err
	}

	switch c.operator {
	case OpIsNull, OpIsNotNull:
		return fmt.Sprintf("%s %s", column, c.operator), nil, nil
	case OpIn, OpNotIn:
		if len(c.values) == 0 {
			// An empty IN can never match and an empty NOT IN can never
			// exclude.
			if c.operator == OpIn {
				return "1 = 0", nil, nil
			}

			return "1 = 1", nil, nil
		}

		placeholders := []string{}
		for i, value := range c.values {
			if err := validateValue(value); err != nil {
				return "", nil, err
			}

			placeholders = append(placeholders, dialect.Placeholder(offset+i+1))
		}

		return fmt.Sprintf(
			"%s %s (%s)",
			column,
			c.operator,
			strings.Join(placeholders, ", "),
		), c.values, nil
	case opBetween:
		for _, value := range c.values {
			if err := validateValue(value); err != nil {
				return "", nil, err
			}
		}

		return rewritePlaceholders(column+" BETWEEN ? AND ?", dialect, offset), c.values, nil
	}

	if err := validateValue(c.value); err != nil {
		return "", nil, err
	}

	return dialect.Comparison(column, c.operator, dialect.Placeholder(offset+1)), []any{c.value}, nil
}

type conditionGroup struct {
	nodes       []predicateNode
	conjunction conjunction
}

func (group conditionGroup) conj() conjunction {
	return group.conjunction
}

func (group conditionGroup) compile(dialect Dialect, offset int) (string, []any, error) {
	sql, params, err := compileNodes(group.nodes, dialect, offset)
	if err != nil {
		return "", nil, err
	}

	if sql == "" {
		return "", nil, nil
	}

	return "(" + sql + ")", params, nil
}

// compileNodes joins all AND-conditions of a tree level first and then
// appends the OR-conditions of the same level. Nodes are compiled in that
// emission order so placeholder numbering stays aligned with the parameter
// list for positional dialects as well.
func compileNodes(nodes []predicateNode, dialect Dialect, offset int) (string, []any, error) {
	ordered := append(
		metistools.Filter(nodes, func(node predicateNode) bool {
			return node.conj() != conjunctionOr
		}),
		metistools.Filter(nodes, func(node predicateNode) bool {
			return node.conj() == conjunctionOr
		})...,
	)

	sql := ""
	params := []any{}
	for _, node := range ordered {
		nodeSQL, nodeParams, err := node.compile(dialect, offset+len(params))
		if err != nil {
			return "", nil, err
		}

		if nodeSQL == "" {
			continue
		}

		params = append(params, nodeParams...)

		if sql == "" {
			sql = nodeSQL
			continue
		}

		sql += " " + string(node.conj()) + " " + nodeSQL
	}

	return sql, params, nil
}
