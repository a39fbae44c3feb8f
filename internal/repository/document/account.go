package document

import (
	"context"
	"strings"
	"time"

	"github.com/dtroode/micropost-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

// AccountRepository persists accounts in the shared document store.
// It owns the account invariants: case-insensitive email uniqueness,
// the derived post count, and cascade deletion of dependent posts.
type AccountRepository struct {
	store model.DocumentStore
}

func NewAccountRepository(store model.DocumentStore) *AccountRepository {
	return &AccountRepository{
		store: store,
	}
}

var accounts = collection[model.Account]{id: func(a model.Account) int { return a.ID }}

func (r *AccountRepository) Create(ctx context.Context, params model.CreateAccountParams) (model.Account, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return model.Account{}, model.NewValidationError("name", "must not be empty")
	}
	email := strings.TrimSpace(params.Email)
	if err := validateEmail(email); err != nil {
		return model.Account{}, err
	}

	roles := params.Roles
	if roles == nil {
		roles = []string{}
	}

	var created model.Account
	err := r.store.Update(ctx, func(doc *model.Document) error {
		if emailTaken(doc.Accounts, email, 0) {
			return model.ErrConflict
		}

		id := accounts.nextID(doc.Accounts, doc.LastAccountID)
		created = model.Account{
			ID:        id,
			Name:      name,
			Email:     email,
			CreatedAt: time.Now().UTC(),
			Roles:     roles,
		}
		doc.Accounts = append(doc.Accounts, created)
		doc.LastAccountID = id
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	return created, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int) (model.Account, error) {
	var account model.Account
	err := r.store.View(ctx, func(doc *model.Document) error {
		found, ok := accounts.findByID(doc.Accounts, id)
		if !ok {
			return model.ErrNotFound
		}
		account = withPostCount(found, doc.Posts)
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	return account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	var account model.Account
	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, a := range doc.Accounts {
			if strings.EqualFold(a.Email, email) {
				account = withPostCount(a, doc.Posts)
				return nil
			}
		}
		return model.ErrNotFound
	})
	if err != nil {
		return model.Account{}, err
	}

	return account, nil
}

func (r *AccountRepository) GetByRole(ctx context.Context, role string) ([]model.Account, error) {
	var result []model.Account
	err := r.store.View(ctx, func(doc *model.Document) error {
		for _, a := range doc.Accounts {
			if a.HasRole(role) {
				result = append(result, withPostCount(a, doc.Posts))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetAll returns all accounts in storage order.
func (r *AccountRepository) GetAll(ctx context.Context) ([]model.Account, error) {
	var result []model.Account
	err := r.store.View(ctx, func(doc *model.Document) error {
		result = make([]model.Account, 0, len(doc.Accounts))
		for _, a := range doc.Accounts {
			result = append(result, withPostCount(a, doc.Posts))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Update merges patch into the account after validating every present
// field with the creation rules. ID and CreatedAt are immutable.
func (r *AccountRepository) Update(ctx context.Context, id int, patch model.AccountPatch) (model.Account, error) {
	var name, email string
	if patch.Name != nil {
		name = strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Account{}, model.NewValidationError("name", "must not be empty")
		}
	}
	if patch.Email != nil {
		email = strings.TrimSpace(*patch.Email)
		if err := validateEmail(email); err != nil {
			return model.Account{}, err
		}
	}

	var updated model.Account
	err := r.store.Update(ctx, func(doc *model.Document) error {
		i := accounts.indexByID(doc.Accounts, id)
		if i < 0 {
			return model.ErrNotFound
		}

		if patch.Email != nil && emailTaken(doc.Accounts, email, id) {
			return model.ErrConflict
		}

		account := doc.Accounts[i]
		if patch.Name != nil {
			account.Name = name
		}
		if patch.Email != nil {
			account.Email = email
		}
		if patch.Roles != nil {
			roles := *patch.Roles
			if roles == nil {
				roles = []string{}
			}
			account.Roles = roles
		}

		doc.Accounts[i] = account
		updated = withPostCount(account, doc.Posts)
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	return updated, nil
}

// Delete removes the account and every post it owns in one persisted
// operation, so no reader can observe the account gone but its posts
// still present.
func (r *AccountRepository) Delete(ctx context.Context, id int) error {
	return r.store.Update(ctx, func(doc *model.Document) error {
		remaining, removed := accounts.removeByID(doc.Accounts, id)
		if !removed {
			return model.ErrNotFound
		}
		doc.Accounts = remaining

		kept := doc.Posts[:0]
		for _, p := range doc.Posts {
			if p.OwnerID != id {
				kept = append(kept, p)
			}
		}
		doc.Posts = kept
		return nil
	})
}

func (r *AccountRepository) Stats(ctx context.Context) (model.StoreStats, error) {
	stats := model.StoreStats{AccountsByRole: map[string]int{}}
	err := r.store.View(ctx, func(doc *model.Document) error {
		stats.TotalAccounts = len(doc.Accounts)
		stats.TotalPosts = len(doc.Posts)
		for _, a := range doc.Accounts {
			for _, role := range a.Roles {
				stats.AccountsByRole[role]++
			}
		}
		return nil
	})
	if err != nil {
		return model.StoreStats{}, err
	}

	return stats, nil
}

func validateEmail(email string) error {
	if email == "" {
		return model.NewValidationError("email", "must not be empty")
	}
	if !strings.Contains(email, "@") {
		return model.NewValidationError("email", "must be a valid address")
	}
	return nil
}

// emailTaken reports whether another account already uses email,
// compared case-insensitively. excludeID skips the account being
// updated so it may keep its own address.
func emailTaken(items []model.Account, email string, excludeID int) bool {
	for _, a := range items {
		if a.ID != excludeID && strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}

// withPostCount attaches the read-time post count projection. The
// count is never stored, so it cannot drift from the post collection.
func withPostCount(account model.Account, posts []model.Post) model.Account {
	count := 0
	for _, p := range posts {
		if p.OwnerID == account.ID {
			count++
		}
	}
	account.PostCount = count
	return account
}
