package metis

import "context"

type DropTableOptions struct {
	Cascade bool
}

type TruncateOptions struct {
	Cascade bool
}

// HasTable reports whether the table exists. The name travels as a parameter,
// not as spliced SQL.
func (service *Service) HasTable(ctx context.Context, table string) (bool, error) {
	escaped, err := EscapeIdentifier(table)
	if err != nil {
		return false, err
	}

	statement := service.dialect.HasTableStatement(UnescapeIdentifier(escaped))

	rows, err := service.runQuery(ctx, service.standardLibraryDB, statement)
	if err != nil {
		return false, err
	}

	if len(rows) == 0 {
		return false, nil
	}

	for _, value := range rows[0] {
		count, err := asInt64(value)
		if err != nil {
			return false, err
		}

		return count > 0, nil
	}

	return false, nil
}

func (service *Service) DropTable(ctx context.Context, table string, options DropTableOptions) error {
	escaped, err := EscapeIdentifier(table)
	if err != nil {
		return err
	}

	_, err = service.runExec(ctx, service.standardLibraryDB, Statement{
		SQL: service.dialect.DropTableStatement(escaped, options.Cascade),
	})

	return err
}

func (service *Service) Truncate(ctx context.Context, table string, options TruncateOptions) error {
	escaped, err := EscapeIdentifier(table)
	if err != nil {
		return err
	}

	_, err = service.runExec(ctx, service.standardLibraryDB, Statement{
		SQL: service.dialect.TruncateStatement(escaped, options.Cascade),
	})

	return err
}
