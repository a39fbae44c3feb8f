package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
	"github.com/dtroode/micropost-server/internal/query"
)

// Account orchestrates account operations between the adapter and the
// repository. Invariants live in the repository; this layer adds the
// listing pipeline and logging.
type Account struct {
	accountStore model.AccountStore
	logger       *logger.Logger
}

func NewAccount(accountStore model.AccountStore, logger *logger.Logger) *Account {
	return &Account{
		accountStore: accountStore,
		logger:       logger,
	}
}

// AccountListParams narrows and pages an account listing. Search
// matches name or email case-insensitively.
type AccountListParams struct {
	Options query.ListOptions
	Search  string
}

func (s *Account) List(ctx context.Context, params AccountListParams) (query.Page[model.Account], error) {
	all, err := s.accountStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("Account service: failed to list accounts", "error", err.Error())
		return query.Page[model.Account]{}, fmt.Errorf("failed to list accounts: %w", err)
	}

	var pred func(model.Account) bool
	if search := strings.ToLower(strings.TrimSpace(params.Search)); search != "" {
		pred = func(a model.Account) bool {
			return strings.Contains(strings.ToLower(a.Name), search) ||
				strings.Contains(strings.ToLower(a.Email), search)
		}
	}

	page := query.List(all, params.Options,
		func(a model.Account) string { return a.Name },
		func(a model.Account) time.Time { return a.CreatedAt },
		pred,
	)
	return page, nil
}

// Recent returns the newest accounts, at most limit of them.
func (s *Account) Recent(ctx context.Context, limit int) ([]model.Account, error) {
	page, err := s.List(ctx, AccountListParams{Options: query.ListOptions{Page: 1, Limit: limit}})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (s *Account) Get(ctx context.Context, id int) (model.Account, error) {
	account, err := s.accountStore.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}
	return account, nil
}

func (s *Account) GetByRole(ctx context.Context, role string) ([]model.Account, error) {
	accounts, err := s.accountStore.GetByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts by role: %w", err)
	}
	return accounts, nil
}

func (s *Account) Create(ctx context.Context, params model.CreateAccountParams) (model.Account, error) {
	account, err := s.accountStore.Create(ctx, params)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Account service: account created", "id", account.ID)
	return account, nil
}

func (s *Account) Update(ctx context.Context, id int, patch model.AccountPatch) (model.Account, error) {
	account, err := s.accountStore.Update(ctx, id, patch)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *Account) Delete(ctx context.Context, id int) error {
	if err := s.accountStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.logger.Info("Account service: account deleted with its posts", "id", id)
	return nil
}

func (s *Account) Stats(ctx context.Context) (model.StoreStats, error) {
	stats, err := s.accountStore.Stats(ctx)
	if err != nil {
		return model.StoreStats{}, fmt.Errorf("failed to get store stats: %w", err)
	}
	return stats, nil
}
