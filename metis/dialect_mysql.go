package metis

import (
	"database/sql"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/go-sql-driver/mysql"
)

func NewDialectMySQL(config DialectMySQLConfig) Dialect {
	return &dialectMySQL{
		config: config,
	}
}

type DialectMySQLConfig struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type dialectMySQL struct {
	config DialectMySQLConfig
}

func (dialect *dialectMySQL) Open() (*sql.DB, error) {
	_ = mysql.SetLogger(log.New(io.Discard, "", log.LstdFlags))

	// ANSI_QUOTES makes double-quoted identifiers valid so the same escaped
	// statement text works on every engine.
	return sql.Open("mysql", fmt.Sprintf(
		"%s:%s@(%s:%d)/%s?parseTime=true&sql_mode=%%27ANSI_QUOTES%%27",
		dialect.config.User,
		dialect.config.Pass,
		dialect.config.Host,
		dialect.config.Port,
		dialect.config.Name,
	))
}

func (dialect *dialectMySQL) Placeholder(position int) string {
	return "?"
}

func (dialect *dialectMySQL) UsesNumberedPlaceholders() bool {
	return false
}

func (dialect *dialectMySQL) Comparison(column string, operator Operator, placeholder string) string {
	switch operator {
	case OpILike, OpNotILike:
		return caseInsensitiveComparison(column, operator, placeholder)
	}

	return comparisonClause(column, operator, placeholder)
}

func (dialect *dialectMySQL) UpsertClause(conflictColumns []string, assignments []string) string {
	if len(assignments) == 0 {
		// MySQL has no DO NOTHING form. Assigning the conflict column to
		// itself keeps the row untouched without raising the duplicate error.
		first := conflictColumns[0]

		return fmt.Sprintf("ON DUPLICATE KEY UPDATE %s = %s", first, first)
	}

	return fmt.Sprintf(
		"ON DUPLICATE KEY UPDATE %s",
		strings.Join(assignments, ", "),
	)
}

func (dialect *dialectMySQL) SupportsReturning() bool {
	return false
}

func (dialect *dialectMySQL) HasTableStatement(table string) Statement {
	return Statement{
		SQL:    "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
		Params: []any{table},
	}
}

func (dialect *dialectMySQL) DropTableStatement(table string, cascade bool) string {
	// MySQL always cascades foreign key metadata on DROP TABLE.
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
}

func (dialect *dialectMySQL) TruncateStatement(table string, cascade bool) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", table)
}
