package metis

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// Row is one result record keyed by column name.
type Row map[string]any

// runner is satisfied by both *sql.DB and *sql.Tx so the query and exec paths
// are shared between direct calls and transactions.
type runner interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Service struct {
	dialect           Dialect
	standardLibraryDB *sql.DB
	preRunFuncs       []func(ctx context.Context, statement string, args []any) error
	postRunFuncs      []func(ctx context.Context) error
}

func New(
	dialect Dialect,
	configFuncs ...ServiceConfigFunc,
) (*Service, error) {
	db, err := dialect.Open()
	if err != nil {
		return nil, err
	}

	service := &Service{
		dialect:           dialect,
		standardLibraryDB: db,
		preRunFuncs:       []func(ctx context.Context, statement string, args []any) error{},
		postRunFuncs:      []func(ctx context.Context) error{},
	}

	for _, configFunc := range configFuncs {
		if err := configFunc(service); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (service *Service) Ping() error {
	return service.standardLibraryDB.Ping()
}

func (service *Service) Close() error {
	return service.standardLibraryDB.Close()
}

// Query compiles the builder against the service dialect and returns every
// matching row.
func (service *Service) Query(ctx context.Context, compiler Compiler) ([]Row, error) {
	statement, err := compiler.Compile(service.dialect)
	if err != nil {
		return nil, err
	}

	return service.runQuery(ctx, service.standardLibraryDB, statement)
}

// First returns the first matching row or ErrNoRows.
func (service *Service) First(ctx context.Context, compiler Compiler) (Row, error) {
	rows, err := service.Query(ctx, compiler)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return rows[0], nil
}

// Count runs the builder with its projection swapped for COUNT(*), dropping
// ordering and paging. The builder itself is left untouched.
func (service *Service) Count(ctx context.Context, builder *SelectBuilder) (int64, error) {
	statement, err := builder.compileCount(service.dialect)
	if err != nil {
		return 0, err
	}

	rows, err := service.runQuery(ctx, service.standardLibraryDB, statement)
	if err != nil {
		return 0, err
	}

	if len(rows) == 0 {
		return 0, ErrNoRows
	}

	return asInt64(rows[0]["count"])
}

// Exec runs a statement that returns no rows and reports the result.
func (service *Service) Exec(ctx context.Context, compiler Compiler) (sql.Result, error) {
	statement, err := compiler.Compile(service.dialect)
	if err != nil {
		return nil, err
	}

	return service.runExec(ctx, service.standardLibraryDB, statement)
}

func (service *Service) runQuery(ctx context.Context, target runner, statement Statement) ([]Row, error) {
	if err := service.preRun(ctx, statement); err != nil {
		return nil, err
	}

	rows, err := target.QueryContext(ctx, statement.SQL, statement.Params...)
	if err != nil {
		return nil, ExecutionError{SQL: statement.SQL, Err: err}
	}
	defer func() {
		_ = rows.Close()
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, ExecutionError{SQL: statement.SQL, Err: err}
	}

	result := []Row{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, ExecutionError{SQL: statement.SQL, Err: err}
		}

		row := Row{}
		for i, column := range columns {
			row[column] = values[i]
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, ExecutionError{SQL: statement.SQL, Err: err}
	}

	if err := service.postRun(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func (service *Service) runExec(ctx context.Context, target runner, statement Statement) (sql.Result, error) {
	if err := service.preRun(ctx, statement); err != nil {
		return nil, err
	}

	result, err := target.ExecContext(ctx, statement.SQL, statement.Params...)
	if err != nil {
		return nil, ExecutionError{SQL: statement.SQL, Err: err}
	}

	if err := service.postRun(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

func (service *Service) preRun(ctx context.Context, statement Statement) error {
	for _, preRunFunc := range service.preRunFuncs {
		if err := preRunFunc(ctx, statement.SQL, statement.Params); err != nil {
			return err
		}
	}

	return nil
}

func (service *Service) postRun(ctx context.Context) error {
	for _, postRunFunc := range service.postRunFuncs {
		if err := postRunFunc(ctx); err != nil {
			return err
		}
	}

	return nil
}

// asInt64 bridges driver differences: mysql hands counts back as []byte.
func asInt64(value any) (int64, error) {
	switch typed := value.(type) {
	case int64:
		return typed, nil
	case int:
		return int64(typed), nil
	case []byte:
		return strconv.ParseInt(string(typed), 10, 64)
	}

	return 0, fmt.Errorf("unexpected count type %T", value)
}
