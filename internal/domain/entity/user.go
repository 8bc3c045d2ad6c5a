package entity

import "time"

// Valid roles for User.
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
)

// User represents an account of the pharmacy back office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past registration
	Name         string
	Role         string // admin, pharmacist
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
