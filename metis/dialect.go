package metis

import (
	"database/sql"
	"fmt"
)

// Dialect captures everything that differs between database engines: how to
// open a connection, what a placeholder looks like, how comparisons render,
// and the shape of the upsert and schema statements.
type Dialect interface {
	Open() (*sql.DB, error)
	Placeholder(position int) string
	UsesNumberedPlaceholders() bool
	Comparison(column string, operator Operator, placeholder string) string
	UpsertClause(conflictColumns []string, assignments []string) string
	SupportsReturning() bool
	HasTableStatement(table string) Statement
	DropTableStatement(table string, cascade bool) string
	TruncateStatement(table string, cascade bool) string
}

func comparisonClause(column string, operator Operator, placeholder string) string {
	return fmt.Sprintf("%s %s %s", column, operator, placeholder)
}

// caseInsensitiveComparison emulates ILIKE for engines without a native form
// by lowercasing both sides.
func caseInsensitiveComparison(column string, operator Operator, placeholder string) string {
	like := OpLike
	if operator == OpNotILike {
		like = OpNotLike
	}

	return fmt.Sprintf("LOWER(%s) %s LOWER(%s)", column, like, placeholder)
}
