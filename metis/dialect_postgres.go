package metis

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

func NewDialectPostgres(config DialectPostgresConfig) Dialect {
	return &dialectPostgres{
		config: config,
	}
}

type DialectPostgresConfig struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type dialectPostgres struct {
	config DialectPostgresConfig
}

func (dialect *dialectPostgres) Open() (*sql.DB, error) {
	return sql.Open(
		"postgres",
		fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			dialect.config.Host,
			dialect.config.Port,
			dialect.config.User,
			dialect.config.Pass,
			dialect.config.Name,
		),
	)
}

func (dialect *dialectPostgres) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (dialect *dialectPostgres) UsesNumberedPlaceholders() bool {
	return true
}

func (dialect *dialectPostgres) Comparison(column string, operator Operator, placeholder string) string {
	return comparisonClause(column, operator, placeholder)
}

func (dialect *dialectPostgres) UpsertClause(conflictColumns []string, assignments []string) string {
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

func (dialect *dialectPostgres) SupportsReturning() bool {
	return true
}

func (dialect *dialectPostgres) HasTableStatement(table string) Statement {
	return Statement{
		SQL:    "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1",
		Params: []any{table},
	}
}

func (dialect *dialectPostgres) DropTableStatement(table string, cascade bool) string {
	suffix := ""
	if cascade {
		suffix = " CASCADE"
	}

	return fmt.Sprintf("DROP TABLE IF EXISTS %s%s", table, suffix)
}

func (dialect *dialectPostgres) TruncateStatement(table string, cascade bool) string {
	suffix := ""
	if cascade {
		suffix = " CASCADE"
	}

	return fmt.Sprintf("TRUNCATE TABLE %s%s", table, suffix)
}
