package billing

import (
	"context"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that transaction. Settlement needs the order, its table and the
// transaction record to flip in one atomic step.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		tableRepo repository.TableRepository,
		txnRepo repository.TransactionRepository,
	) error) error
}

// ReceiptGenerator renders a settled transaction as a printable PDF.
type ReceiptGenerator interface {
	Receipt(txn *entity.Transaction) ([]byte, error)
}
