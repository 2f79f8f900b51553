package orders

import (
	"context"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

// TxRunner executes a function inside a DB transaction, passing repositories
// bound to that transaction.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		tableRepo repository.TableRepository,
		invRepo repository.InventoryRepository,
		recipeRepo repository.RecipeRepository,
		menuRepo repository.MenuRepository,
	) error) error
}

// TableLocker serializes cart submissions per (restaurant, table). Lock blocks
// until the key is acquired or ctx is done and returns the release function.
// Backed by Redis in multi-instance deployments, by an in-process mutex map
// otherwise.
type TableLocker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
