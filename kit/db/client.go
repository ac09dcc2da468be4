package db

import "context"

type Row interface {
	Scan(dest ...any) error
}

type Client interface {
	Exec(ctx context.Context, query string, args ...any) error
	QueryRow(ctx context.Context, query string, args ...any) (Row, error)
}

// Transactor runs fn inside one storage transaction. Calls made through a
// Client with the ctx handed to fn join that transaction; returning an error
// from fn rolls every write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TxClient is a Client that can also open transactions.
type TxClient interface {
	Client
	Transactor
}
