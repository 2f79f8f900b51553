package inventory

import (
	"context"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that transaction. Guarantees atomicity for ledger mutations: the
// row lock taken by GetForUpdate holds until commit/rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		wasteRepo repository.WasteRepository,
	) error) error
}
