package repository

import "github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"

// OrderRepository persists orders and their lines.
type OrderRepository interface {
	Create(o *entity.Order) error
	Update(o *entity.Order) error
	GetByID(id, restaurantID string) (*entity.Order, error)
	List(restaurantID string, limit, offset int) ([]entity.Order, error)
}

// TableRepository persists tables and the explicit open-order reference.
type TableRepository interface {
	// GetOrCreateForUpdate returns the table row locked for the enclosing
	// transaction, inserting it first if the table number is new.
	GetOrCreateForUpdate(restaurantID, tableNumber string) (*entity.Table, error)
	SetCurrentOrder(tableID, orderID string) error
	ClearCurrentOrder(tableID string) error
}

// TransactionRepository persists settled billing records.
type TransactionRepository interface {
	Create(t *entity.Transaction) error
	GetByID(id, restaurantID string) (*entity.Transaction, error)
	List(restaurantID string, limit, offset int) ([]entity.Transaction, error)
}
