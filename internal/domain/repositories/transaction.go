package repositories

import "context"

// TxFn is a function that runs within a transaction.
type TxFn func(ctx context.Context) error

// TransactionManager scopes a function to a single database transaction.
// Every authorize-then-mutate sequence runs through ExecTx so the
// authorization read and the mutation observe one consistent snapshot.
type TransactionManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}
