package metis_test

import (
	"strings"
	"testing"

	"github.com/lunagic/metis/metis"
	"gotest.tools/v3/assert"
)

func TestEscapeIdentifier(t *testing.T) {
	t.Parallel()

	{ // plain names come back quoted
		escaped, err := metis.EscapeIdentifier("users")
		assert.NilError(t, err)
		assert.Equal(t, `"users"`, escaped)
	}

	{ // surrounding whitespace is dropped
		escaped, err := metis.EscapeIdentifier("  email_address\t")
		assert.NilError(t, err)
		assert.Equal(t, `"email_address"`, escaped)
	}

	{ // characters outside the identifier charset are stripped
		escaped, err := metis.EscapeIdentifier("user name!")
		assert.NilError(t, err)
		assert.Equal(t, `"username"`, escaped)
	}

	{ // embedded quotes are stripped, never doubled into the output
		escaped, err := metis.EscapeIdentifier(`us"ers`)
		assert.NilError(t, err)
		assert.Equal(t, `"users"`, escaped)
	}

	{ // blank
		_, err := metis.EscapeIdentifier("   ")
		assert.ErrorType(t, err, metis.ValidationError{})
	}

	{ // too long
		_, err := metis.EscapeIdentifier(strings.Repeat("a", 65))
		assert.ErrorType(t, err, metis.ValidationError{})
	}

	{ // statement terminator smuggling
		_, err := metis.EscapeIdentifier(`users"; DROP TABLE users`)
		assert.ErrorType(t, err, metis.ValidationError{})
	}

	{ // comment sequences
		_, err := metis.EscapeIdentifier("users -- nope")
		assert.ErrorType(t, err, metis.ValidationError{})

		_, err = metis.EscapeIdentifier("users /* nope */")
		assert.ErrorType(t, err, metis.ValidationError{})
	}

	{ // embedded keywords that splice statements
		_, err := metis.EscapeIdentifier("id UNION SELECT password")
		assert.ErrorType(t, err, metis.ValidationError{})
	}

	{ // reserved keywords are rejected outright, any casing
		for _, keyword := range []string{"select", "DROP", "Where"} {
			_, err := metis.EscapeIdentifier(keyword)
			assert.ErrorType(t, err, metis.ValidationError{})
		}
	}
}

func TestUnescapeIdentifier(t *testing.T) {
	t.Parallel()

	escaped, err := metis.EscapeIdentifier("users")
	assert.NilError(t, err)
	assert.Equal(t, "users", metis.UnescapeIdentifier(escaped))
}
