package metis_test

import (
	"testing"

	"github.com/lunagic/metis/metis"
	"gotest.tools/v3/assert"
)

func TestInsertSingleRow(t *testing.T) {
	t.Parallel()

	builder := metis.NewInsert("users").Values(map[string]any{
		"name":  "aaron",
		"email": "aaron@example.com",
	})

	{ // columns come out in sorted order regardless of map iteration
		statement, err := builder.Compile(dialectNumbered)
		assert.NilError(t, err)
		assert.Equal(t, `INSERT INTO "users" ("email", "name") VALUES ($1, $2)`, statement.SQL)
		assert.DeepEqual(t, []any{"aaron@example.com", "aaron"}, statement.Params)
	}

	{ // same builder against a positional dialect
		statement, err := builder.Compile(dialectPositional)
		assert.NilError(t, err)
		assert.Equal(t, `INSERT INTO "users" ("email", "name") VALUES (?, ?)`, statement.SQL)
	}
}

func TestInsertMultipleRows(t *testing.T) {
	t.Parallel()

	statement, err := metis.NewInsert("users").
		Values(map[string]any{"name": "aaron", "age": 33}).
		Values(map[string]any{"name": "andy", "age": 10}).
		Compile(dialectNumbered)
	assert.NilError(t, err)
	assert.Equal(
		t,
		`INSERT INTO "users" ("age", "name") VALUES ($1, $2), ($3, $4)`,
		statement.SQL,
	)
	assert.DeepEqual(t, []any{33, "aaron", 10, "andy"}, statement.Params)
}

func TestInsertReturning(t *testing.T) {
	t.Parallel()

	builder := metis.NewInsert("users").
		Values(map[string]any{"name": "aaron"}).
		Returning("id")

	{ // supported dialect
		statement, err := builder.Compile(dialectNumbered)
		assert.NilError(t, err)
		assert.Equal(t, `INSERT INTO "users" ("name") VALUES ($1) RETURNING "id"`, statement.SQL)
	}

	{ // MySQL has no RETURNING clause
		_, err := builder.Compile(metis.NewDialectMySQL(metis.DialectMySQLConfig{}))
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}
}

func TestInsertRejectsBadInput(t *testing.T) {
	t.Parallel()

	{ // no rows
		_, err := metis.NewInsert("users").Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}

	{ // rows with differing column sets
		_, err := metis.NewInsert("users").
			Values(map[string]any{"name": "aaron"}).
			Values(map[string]any{"email": "andy@example.com"}).
			Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}

	{ // hostile column name
		_, err := metis.NewInsert("users").
			Values(map[string]any{"name; --": "aaron"}).
			Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ValidationError{})
	}
}
