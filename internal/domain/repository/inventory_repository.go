package repository

import (
	"time"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
)

// InventoryRepository persists inventory items with their supplier batches.
// Update rewrites the aggregate and every batch row in one statement set;
// callers mutate the entity through the ledger package first.
type InventoryRepository interface {
	Create(item *entity.InventoryItem) error
	Update(item *entity.InventoryItem) error
	GetByID(id, restaurantID string) (*entity.InventoryItem, error)
	// GetForUpdate locks the item row for the duration of the enclosing
	// transaction (SELECT ... FOR UPDATE).
	GetForUpdate(id, restaurantID string) (*entity.InventoryItem, error)
	GetByName(name, restaurantID string) (*entity.InventoryItem, error)
	List(restaurantID string, limit, offset int) ([]entity.InventoryItem, error)
	SoftDelete(id, restaurantID string, at time.Time) error
}

// WasteRepository persists waste records. Stock effects are applied through
// the ledger by the use case, inside the same transaction.
type WasteRepository interface {
	Create(w *entity.WasteRecord) error
	Update(w *entity.WasteRecord) error
	GetByID(id, restaurantID string) (*entity.WasteRecord, error)
	List(restaurantID string, limit, offset int) ([]entity.WasteRecord, error)
	Delete(id, restaurantID string) error
}

// SupplierRepository persists purchase sources.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	Update(s *entity.Supplier) error
	GetByID(id, restaurantID string) (*entity.Supplier, error)
	List(restaurantID string, limit, offset int) ([]entity.Supplier, error)
	SoftDelete(id, restaurantID string) error
}
