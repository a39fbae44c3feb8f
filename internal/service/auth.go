package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/micropost-server/internal/logger"
	"github.com/dtroode/micropost-server/internal/model"
)

// Auth mints and verifies bearer credentials from account records. It
// reads accounts only and never touches post data.
type Auth struct {
	accountStore model.AccountStore
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(accountStore model.AccountStore, tokenManager model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		accountStore: accountStore,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// IssueToken mints an access token for the account registered under
// email. The email lookup is case-insensitive.
func (a *Auth) IssueToken(ctx context.Context, email string) (model.AccessToken, error) {
	account, err := a.accountStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		a.logger.Info("Auth service: token requested for unknown email", "email", email)
		return model.AccessToken{}, model.ErrNotFound
	}
	if err != nil {
		return model.AccessToken{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	token, err := a.tokenManager.GenerateAccessToken(account)
	if err != nil {
		a.logger.Error("Auth service: failed to generate token",
			"account", account.ID,
			"error", err.Error())
		return model.AccessToken{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return token, nil
}

// Verify parses a bearer token and confirms the account behind it
// still exists. Deleting an account invalidates its outstanding
// tokens.
func (a *Auth) Verify(ctx context.Context, bearer string) (model.Account, error) {
	claims, err := a.tokenManager.ParseAccessToken(bearer)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to verify token: %w", err)
	}

	account, err := a.accountStore.GetByID(ctx, claims.AccountID)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}
