package model

import (
	"context"
	"time"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	Create(ctx context.Context, params CreateAccountParams) (Account, error)
	GetByID(ctx context.Context, id int) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByRole(ctx context.Context, role string) ([]Account, error)
	GetAll(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, id int, patch AccountPatch) (Account, error)
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context) (StoreStats, error)
}

// Account represents a stored account. PostCount is a read-time
// projection over the post collection: always present on responses,
// zero included, and stripped by the storage layer before persisting.
type Account struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Roles     []string  `json:"roles"`
	PostCount int       `json:"postCount"`
}

// HasRole reports whether the account's role set contains role.
func (a Account) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// CreateAccountParams contains parameters to create an account.
type CreateAccountParams struct {
	Name  string
	Email string
	Roles []string
}

// AccountPatch carries the fields a caller may change on an account.
// Nil fields are left untouched; present fields are validated with the
// same rules as creation before being merged.
type AccountPatch struct {
	Name  *string
	Email *string
	Roles *[]string
}

// StoreStats summarizes the document for diagnostic reads.
type StoreStats struct {
	TotalAccounts  int            `json:"totalAccounts"`
	TotalPosts     int            `json:"totalPosts"`
	AccountsByRole map[string]int `json:"accountsByRole"`
}
