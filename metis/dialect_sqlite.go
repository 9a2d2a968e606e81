package metis

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

func NewDialectSQLite(path string) Dialect {
	return &dialectSQLite{
		Path: path,
	}
}

type dialectSQLite struct {
	Path string
}

func (dialect *dialectSQLite) Open() (*sql.DB, error) {
	return sql.Open(
		"sqlite3",
		fmt.Sprintf("file:%s?cache=shared&_foreign_keys=on", dialect.Path),
	)
}

func (dialect *dialectSQLite) Placeholder(position int) string {
	return "?"
}

func (dialect *dialectSQLite) UsesNumberedPlaceholders() bool {
	return false
}

func (dialect *dialectSQLite) Comparison(column string, operator Operator, placeholder string) string {
	switch operator {
	case OpILike, OpNotILike:
		return caseInsensitiveComparison(column, operator, placeholder)
	}

	return comparisonClause(column, operator, placeholder)
}

func (dialect *dialectSQLite) UpsertClause(conflictColumns []string, assignments []string) string {
	if len(assignments) == 0 {
		return fmt.Sprintf(
			"ON CONFLICT (%s) DO NOTHING",
			strings.Join(conflictColumns, ", "),
		)
	}

	return fmt.Sprintf(
		"ON CONFLICT (%s) DO UPDATE SET %s",
		strings.Join(conflictColumns, ", "),
		strings.Join(assignments, ", "),
	)
}

func (dialect *dialectSQLite) SupportsReturning() bool {
	return true
}

func (dialect *dialectSQLite) HasTableStatement(table string) Statement {
	return Statement{
		SQL:    "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		Params: []any{table},
	}
}

func (dialect *dialectSQLite) DropTableStatement(table string, cascade bool) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (dialect *dialectSQLite) TruncateStatement(table string, cascade bool) string {
	// SQLite has no TRUNCATE statement.
	return fmt.Sprintf("DELETE FROM %s", table)
}
