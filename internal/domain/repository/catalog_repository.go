package repository

import (
	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
)

// MenuRepository persists sellable catalog entries.
type MenuRepository interface {
	Create(m *entity.MenuItem) error
	Update(m *entity.MenuItem) error
	GetByID(id, restaurantID string) (*entity.MenuItem, error)
	List(restaurantID string, limit, offset int) ([]entity.MenuItem, error)
	SoftDelete(id, restaurantID string) error
}

// RecipeRepository persists menu item → ingredient mappings. Read-only from
// the reconciler's perspective.
type RecipeRepository interface {
	Upsert(r *entity.Recipe) error
	GetByMenuItem(menuItemID, restaurantID string) (*entity.Recipe, error)
	Delete(menuItemID, restaurantID string) error
}

// CustomerRepository persists CRM records. IncrementPoints must be atomic at
// the store level (single UPDATE with an additive expression), since the
// reconciler credits points outside any table-level lock.
type CustomerRepository interface {
	Create(c *entity.Customer) error
	Update(c *entity.Customer) error
	GetByID(id, restaurantID string) (*entity.Customer, error)
	List(restaurantID string, limit, offset int) ([]entity.Customer, error)
	Delete(id, restaurantID string) error
	IncrementPoints(id string, points decimal.Decimal) error
}

// UserRepository persists staff accounts.
type UserRepository interface {
	Create(u *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
