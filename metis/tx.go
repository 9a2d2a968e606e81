package metis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Tx wraps an open transaction with an explicit lifecycle. Every call checks
// the state first so use-after-commit surfaces as a TransactionStateError
// instead of a driver error.
type Tx struct {
	service   *Service
	tx        *sql.Tx
	state     TxState
	savepoint string
}

func (service *Service) Begin(ctx context.Context) (*Tx, error) {
	tx, err := service.standardLibraryDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &Tx{
		service: service,
		tx:      tx,
		state:   TxStateActive,
	}, nil
}

// WithTransaction runs the callback inside a transaction, committing on a nil
// return and rolling back otherwise.
func (service *Service) WithTransaction(ctx context.Context, callback func(tx *Tx) error) error {
	tx, err := service.Begin(ctx)
	if err != nil {
		return err
	}

	if err := callback(tx); err != nil {
		// The callback error is the cause and must survive a rollback failure.
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			return errors.Join(err, rollbackErr)
		}

		return err
	}

	return tx.Commit(ctx)
}

func (tx *Tx) guard(operation string) error {
	if tx.state != TxStateActive {
		return TransactionStateError{
			State:     tx.state,
			Operation: operation,
		}
	}

	return nil
}

func (tx *Tx) Query(ctx context.Context, compiler Compiler) ([]Row, error) {
	if err := tx.guard("query"); err != nil {
		return nil, err
	}

	statement, err := compiler.Compile(tx.service.dialect)
	if err != nil {
		return nil, err
	}

	return tx.service.runQuery(ctx, tx.tx, statement)
}

func (tx *Tx) First(ctx context.Context, compiler Compiler) (Row, error) {
	rows, err := tx.Query(ctx, compiler)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	return rows[0], nil
}

func (tx *Tx) Exec(ctx context.Context, compiler Compiler) (sql.Result, error) {
	if err := tx.guard("exec"); err != nil {
		return nil, err
	}

	statement, err := compiler.Compile(tx.service.dialect)
	if err != nil {
		return nil, err
	}

	return tx.service.runExec(ctx, tx.tx, statement)
}

// Begin opens a nested scope backed by a savepoint on the same connection.
func (tx *Tx) Begin(ctx context.Context) (*Tx, error) {
	if err := tx.guard("begin nested transaction"); err != nil {
		return nil, err
	}

	savepoint := fmt.Sprintf(
		"sp_%s",
		strings.ReplaceAll(uuid.NewString(), "-", ""),
	)

	if _, err := tx.tx.ExecContext(ctx, fmt.Sprintf(`SAVEPOINT "%s"`, savepoint)); err != nil {
		return nil, ExecutionError{SQL: "SAVEPOINT", Err: err}
	}

	return &Tx{
		service:   tx.service,
		tx:        tx.tx,
		state:     TxStateActive,
		savepoint: savepoint,
	}, nil
}

func (tx *Tx) Commit(ctx context.Context) error {
	if err := tx.guard("commit"); err != nil {
		return err
	}

	if tx.savepoint != "" {
		if _, err := tx.tx.ExecContext(ctx, fmt.Sprintf(`RELEASE SAVEPOINT "%s"`, tx.savepoint)); err != nil {
			return ExecutionError{SQL: "RELEASE SAVEPOINT", Err: err}
		}

		tx.state = TxStateCommitted

		return nil
	}

	if err := tx.tx.Commit(); err != nil {
		return ExecutionError{SQL: "COMMIT", Err: err}
	}

	tx.state = TxStateCommitted

	return nil
}

func (tx *Tx) Rollback(ctx context.Context) error {
	if err := tx.guard("rollback"); err != nil {
		return err
	}

	if tx.savepoint != "" {
		if _, err := tx.tx.ExecContext(ctx, fmt.Sprintf(`ROLLBACK TO SAVEPOINT "%s"`, tx.savepoint)); err != nil {
			return ExecutionError{SQL: "ROLLBACK TO SAVEPOINT", Err: err}
		}

		tx.state = TxStateRolledBack

		return nil
	}

	if err := tx.tx.Rollback(); err != nil {
		return ExecutionError{SQL: "ROLLBACK", Err: err}
	}

	tx.state = TxStateRolledBack

	return nil
}
