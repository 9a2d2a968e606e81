package metis

import (
	"errors"
	"fmt"
)

var ErrNoRows = errors.New("no rows found")

// ValidationError is raised when an identifier or a bound value fails
// validation before it can reach generated SQL text.
type ValidationError struct {
	Subject string
	Reason  string
}

func (err ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: %s", err.Subject, err.Reason)
}

// ConfigurationError is raised when a statement is compiled before a required
// builder call was made.
type ConfigurationError struct {
	Statement string
	Reason    string
}

func (err ConfigurationError) Error() string {
	return fmt.Sprintf("%s statement: %s", err.Statement, err.Reason)
}

// ExecutionError wraps a driver-reported failure together with the statement
// text that triggered it.
type ExecutionError struct {
	SQL string
	Err error
}

func (err ExecutionError) Error() string {
	return fmt.Sprintf("execution failed: %v", err.Err)
}

func (err ExecutionError) Unwrap() error {
	return err.Err
}

type TxState string

const (
	TxStateActive     TxState = "active"
	TxStateCommitted  TxState = "committed"
	TxStateRolledBack TxState = "rolledBack"
)

// TransactionStateError is raised when an operation is attempted on a
// transaction that already reached a terminal state.
type TransactionStateError struct {
	State     TxState
	Operation string
}

func (err TransactionStateError) Error() string {
	return fmt.Sprintf("transaction is %s, cannot %s", err.State, err.Operation)
}
