package metis_test

import (
	"testing"

	"github.com/lunagic/metis/metis"
	"gotest.tools/v3/assert"
)

func TestUpsertBasic(t *testing.T) {
	t.Parallel()

	builder := metis.NewUpsert("users").
		Values(map[string]any{
			"id":   7,
			"name": "aaron",
		}).
		Conflict("id")

	{ // conflict assignments are renumbered past the insert values
		statement, err := builder.Compile(dialectNumbered)
		assert.NilError(t, err)
		assert.Equal(
			t,
			`INSERT INTO "users" ("id", "name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET "name" = $3`,
			statement.SQL,
		)
		assert.DeepEqual(t, []any{7, "aaron", "aaron"}, statement.Params)
	}

	{ // sqlite shares the ON CONFLICT grammar with positional markers
		statement, err := builder.Compile(dialectPositional)
		assert.NilError(t, err)
		assert.Equal(
			t,
			`INSERT INTO "users" ("id", "name") VALUES (?, ?) ON CONFLICT ("id") DO UPDATE SET "name" = ?`,
			statement.SQL,
		)
		assert.DeepEqual(t, []any{7, "aaron", "aaron"}, statement.Params)
	}

	{ // MySQL rewrites the clause as ON DUPLICATE KEY UPDATE
		statement, err := builder.Compile(metis.NewDialectMySQL(metis.DialectMySQLConfig{}))
		assert.NilError(t, err)
		assert.Equal(
			t,
			`INSERT INTO "users" ("id", "name") VALUES (?, ?) ON DUPLICATE KEY UPDATE "name" = ?`,
			statement.SQL,
		)
		assert.DeepEqual(t, []any{7, "aaron", "aaron"}, statement.Params)
	}
}

func TestUpsertAllColumnsConflict(t *testing.T) {
	t.Parallel()

	builder := metis.NewUpsert("memberships").
		Values(map[string]any{
			"user_id": 1,
			"team_id": 2,
		}).
		Conflict("team_id", "user_id")

	{ // nothing left to update collapses to DO NOTHING
		statement, err := builder.Compile(dialectNumbered)
		assert.NilError(t, err)
		assert.Equal(
			t,
			`INSERT INTO "memberships" ("team_id", "user_id") VALUES ($1, $2) ON CONFLICT ("team_id", "user_id") DO NOTHING`,
			statement.SQL,
		)
		assert.DeepEqual(t, []any{2, 1}, statement.Params)
	}

	{ // MySQL keeps the row untouched via a self-assignment
		statement, err := builder.Compile(metis.NewDialectMySQL(metis.DialectMySQLConfig{}))
		assert.NilError(t, err)
		assert.Equal(
			t,
			`INSERT INTO "memberships" ("team_id", "user_id") VALUES (?, ?) ON DUPLICATE KEY UPDATE "team_id" = "team_id"`,
			statement.SQL,
		)
	}
}

func TestUpsertReturning(t *testing.T) {
	t.Parallel()

	statement, err := metis.NewUpsert("users").
		Values(map[string]any{"id": 7, "name": "aaron"}).
		Conflict("id").
		Returning("id").
		Compile(dialectNumbered)
	assert.NilError(t, err)
	assert.Equal(
		t,
		`INSERT INTO "users" ("id", "name") VALUES ($1, $2) ON CONFLICT ("id") DO UPDATE SET "name" = $3 RETURNING "id"`,
		statement.SQL,
	)
}

func TestUpsertRejectsBadInput(t *testing.T) {
	t.Parallel()

	{ // conflict columns are required
		_, err := metis.NewUpsert("users").
			Values(map[string]any{"id": 7}).
			Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}

	{ // values are required
		_, err := metis.NewUpsert("users").
			Conflict("id").
			Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}
}
