package ports

import "context"

// TxManager runs fn atomically; repository calls made with the ctx it passes
// join the same transaction.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
