package memory

import "context"

// TxManager satisfies ports.TxManager for the in-process store. The store
// serializes each call itself, so fn runs directly; there is no rollback.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
