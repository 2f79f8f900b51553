package entity

import "time"

// Staff roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User is a staff account. RestaurantID scopes every request the user makes;
// for owner accounts it equals their own ID.
type User struct {
	ID           string
	RestaurantID string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
