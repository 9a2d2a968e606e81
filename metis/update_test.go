package metis_test

import (
	"testing"

	"github.com/lunagic/metis/metis"
	"gotest.tools/v3/assert"
)

func TestUpdateBasic(t *testing.T) {
	t.Parallel()

	builder := metis.NewUpdate("users").
		Set(map[string]any{"name": "aaron"}).
		Where("id", 7)

	{ // WHERE placeholders continue past the SET values
		statement, err := builder.Compile(dialectNumbered)
		assert.NilError(t, err)
		assert.Equal(t, `UPDATE "users" SET "name" = $1 WHERE "id" = $2`, statement.SQL)
		assert.DeepEqual(t, []any{"aaron", 7}, statement.Params)
	}

	{ // positional dialects need no renumbering
		statement, err := builder.Compile(dialectPositional)
		assert.NilError(t, err)
		assert.Equal(t, `UPDATE "users" SET "name" = ? WHERE "id" = ?`, statement.SQL)
		assert.DeepEqual(t, []any{"aaron", 7}, statement.Params)
	}
}

func TestUpdateMultipleAssignments(t *testing.T) {
	t.Parallel()

	statement, err := metis.NewUpdate("users").
		Set(map[string]any{"name": "aaron", "age": 33}).
		Set(map[string]any{"email": "aaron@example.com"}).
		WhereIn("id", 1, 2).
		Compile(dialectNumbered)
	assert.NilError(t, err)
	assert.Equal(
		t,
		`UPDATE "users" SET "age" = $1, "email" = $2, "name" = $3 WHERE "id" IN ($4, $5)`,
		statement.SQL,
	)
	assert.DeepEqual(t, []any{33, "aaron@example.com", "aaron", 1, 2}, statement.Params)
}

func TestUpdateLikeConditions(t *testing.T) {
	t.Parallel()

	statement, err := metis.NewUpdate("users").
		Set(map[string]any{"active": false}).
		WhereLike("email", "%@old.example.com").
		WhereILike("name", "bot%").
		Compile(dialectNumbered)
	assert.NilError(t, err)
	assert.Equal(
		t,
		`UPDATE "users" SET "active" = $1 WHERE "email" LIKE $2 AND "name" ILIKE $3`,
		statement.SQL,
	)
	assert.DeepEqual(t, []any{false, "%@old.example.com", "bot%"}, statement.Params)
}

func TestUpdateWithoutWhereTouchesAllRows(t *testing.T) {
	t.Parallel()

	statement, err := metis.NewUpdate("users").
		Set(map[string]any{"active": false}).
		Compile(dialectNumbered)
	assert.NilError(t, err)
	assert.Equal(t, `UPDATE "users" SET "active" = $1`, statement.SQL)
}

func TestUpdateReturning(t *testing.T) {
	t.Parallel()

	statement, err := metis.NewUpdate("users").
		Set(map[string]any{"name": "aaron"}).
		Where("id", 7).
		Returning("id", "name").
		Compile(dialectNumbered)
	assert.NilError(t, err)
	assert.Equal(
		t,
		`UPDATE "users" SET "name" = $1 WHERE "id" = $2 RETURNING "id", "name"`,
		statement.SQL,
	)
}

func TestUpdateRejectsBadInput(t *testing.T) {
	t.Parallel()

	{ // no assignments
		_, err := metis.NewUpdate("users").Where("id", 1).Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}

	{ // missing table
		_, err := metis.NewUpdate(" ").
			Set(map[string]any{"name": "aaron"}).
			Compile(dialectNumbered)
		assert.ErrorType(t, err, metis.ConfigurationError{})
	}
}
