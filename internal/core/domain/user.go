package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrWalletTaken = errors.New("wallet already holds an account with this role")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated actor: an admin operating the employer console
// or an employee punching attendance. The wallet is the actor's ledger
// identity.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Wallet       string    `json:"wallet"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RosterEntry is the read-only employee listing exposed to admins.
type RosterEntry struct {
	Email  string `json:"email"`
	Wallet string `json:"wallet"`
}
