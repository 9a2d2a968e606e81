package metis

// Statement is the finished product of a builder: SQL text with dialect
// placeholders and the parameter values in placeholder order.
type Statement struct {
	SQL    string
	Params []any
}

// Compiler is implemented by every statement builder. Compile is pure with
// respect to the builder, so the same builder can be compiled against several
// dialects and yields the same result every time.
type Compiler interface {
	Compile(dialect Dialect) (Statement, error)
}

// Raw wraps hand-written SQL as a Compiler. Each `?` marker is rewritten to
// the dialect's placeholder form; the text itself is trusted as written.
func Raw(sql string, params ...any) Compiler {
	return rawStatement{
		sql:    sql,
		params: params,
	}
}

type rawStatement struct {
	sql    string
	params []any
}

func (raw rawStatement) Compile(dialect Dialect) (Statement, error) {
	return Statement{
		SQL:    rewritePlaceholders(raw.sql, dialect, 0),
		Params: raw.params,
	}, nil
}
