package document

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/micropost-server/internal/model"
	"github.com/dtroode/micropost-server/internal/storage/jsonfile"
)

func newTestRepos(t *testing.T) (*AccountRepository, *PostRepository) {
	t.Helper()
	store, err := jsonfile.NewStore(context.Background(), filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return NewAccountRepository(store), NewPostRepository(store)
}

func createAccount(t *testing.T, repo *AccountRepository, name, email string, roles ...string) model.Account {
	t.Helper()
	account, err := repo.Create(context.Background(), model.CreateAccountParams{Name: name, Email: email, Roles: roles})
	require.NoError(t, err)
	return account
}

func TestAccountRepository_Create(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	account := createAccount(t, repo, "Alice", "alice@example.com", "admin")

	assert.Equal(t, 1, account.ID)
	assert.Equal(t, "Alice", account.Name)
	assert.Equal(t, "alice@example.com", account.Email)
	assert.Equal(t, []string{"admin"}, account.Roles)
	assert.False(t, account.CreatedAt.IsZero())
	assert.Zero(t, account.PostCount)

	second := createAccount(t, repo, "Bob", "bob@example.com")
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, []string{}, second.Roles)

	_, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
}

func TestAccountRepository_Create_Validation(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		params model.CreateAccountParams
	}{
		{name: "empty name", params: model.CreateAccountParams{Name: "  ", Email: "a@b.com"}},
		{name: "empty email", params: model.CreateAccountParams{Name: "Alice", Email: ""}},
		{name: "malformed email", params: model.CreateAccountParams{Name: "Alice", Email: "not-an-address"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.params)
			assert.True(t, model.IsValidation(err))
		})
	}
}

func TestAccountRepository_Create_EmailConflictCaseInsensitive(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	createAccount(t, repo, "Alice", "X@Y.com")

	_, err := repo.Create(ctx, model.CreateAccountParams{Name: "Imposter", Email: "x@y.com"})
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = repo.Create(ctx, model.CreateAccountParams{Name: "Imposter", Email: "X@Y.com"})
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	created := createAccount(t, repo, "Alice", "Alice@Example.com")

	found, err := repo.GetByEmail(ctx, "alice@example.COM")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_GetByRole(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	createAccount(t, repo, "Alice", "alice@example.com", "admin", "editor")
	createAccount(t, repo, "Bob", "bob@example.com", "editor")
	createAccount(t, repo, "Carol", "carol@example.com")

	editors, err := repo.GetByRole(ctx, "editor")
	require.NoError(t, err)
	assert.Len(t, editors, 2)

	admins, err := repo.GetByRole(ctx, "admin")
	require.NoError(t, err)
	assert.Len(t, admins, 1)
	assert.Equal(t, "Alice", admins[0].Name)

	none, err := repo.GetByRole(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAccountRepository_PostCountIsDerived(t *testing.T) {
	accountRepo, postRepo := newTestRepos(t)
	ctx := context.Background()

	alice := createAccount(t, accountRepo, "Alice", "alice@example.com")
	bob := createAccount(t, accountRepo, "Bob", "bob@example.com")

	for i := 0; i < 3; i++ {
		_, err := postRepo.Create(ctx, model.CreatePostParams{OwnerID: alice.ID, Content: "hello"})
		require.NoError(t, err)
	}
	post, err := postRepo.Create(ctx, model.CreatePostParams{OwnerID: bob.ID, Content: "hi"})
	require.NoError(t, err)

	got, err := accountRepo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.PostCount)

	// Count follows the post collection through deletes too.
	require.NoError(t, postRepo.Delete(ctx, post.ID))
	got, err = accountRepo.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, got.PostCount)

	all, err := accountRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 3, all[0].PostCount)
	assert.Equal(t, 0, all[1].PostCount)
}

func TestAccountRepository_Update(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	account := createAccount(t, repo, "Alice", "alice@example.com")

	newName := "Alice B."
	updated, err := repo.Update(ctx, account.ID, model.AccountPatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, account.CreatedAt, updated.CreatedAt)

	roles := []string{"admin"}
	updated, err = repo.Update(ctx, account.ID, model.AccountPatch{Roles: &roles})
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, updated.Roles)
}

func TestAccountRepository_Update_ValidationParity(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	account := createAccount(t, repo, "Alice", "alice@example.com")

	empty := "   "
	_, err := repo.Update(ctx, account.ID, model.AccountPatch{Name: &empty})
	assert.True(t, model.IsValidation(err))

	bad := "no-at-sign"
	_, err = repo.Update(ctx, account.ID, model.AccountPatch{Email: &bad})
	assert.True(t, model.IsValidation(err))
}

func TestAccountRepository_Update_EmailConflict(t *testing.T) {
	repo, _ := newTestRepos(t)
	ctx := context.Background()

	alice := createAccount(t, repo, "Alice", "alice@example.com")
	createAccount(t, repo, "Bob", "bob@example.com")

	taken := "BOB@example.com"
	_, err := repo.Update(ctx, alice.ID, model.AccountPatch{Email: &taken})
	assert.ErrorIs(t, err, model.ErrConflict)

	// Keeping your own address is not a conflict.
	own := "Alice@Example.com"
	updated, err := repo.Update(ctx, alice.ID, model.AccountPatch{Email: &own})
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.com", updated.Email)
}

func TestAccountRepository_Update_NotFound(t *testing.T) {
	repo, _ := newTestRepos(t)

	name := "Nobody"
	_, err := repo.Update(context.Background(), 42, model.AccountPatch{Name: &name})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_Delete_CascadesAndNeverReusesIDs(t *testing.T) {
	accountRepo, postRepo := newTestRepos(t)
	ctx := context.Background()

	alice := createAccount(t, accountRepo, "Alice", "alice@example.com")
	bob := createAccount(t, accountRepo, "Bob", "bob@example.com")

	var lastPostID int
	for i := 0; i < 3; i++ {
		post, err := postRepo.Create(ctx, model.CreatePostParams{OwnerID: alice.ID, Content: "from alice"})
		require.NoError(t, err)
		lastPostID = post.ID
	}

	require.NoError(t, accountRepo.Delete(ctx, alice.ID))

	remaining, err := accountRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, bob.ID, remaining[0].ID)

	allPosts, err := postRepo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, allPosts)

	// Freed ids stay retired.
	next, err := postRepo.Create(ctx, model.CreatePostParams{OwnerID: bob.ID, Content: "from bob"})
	require.NoError(t, err)
	assert.Equal(t, lastPostID+1, next.ID)

	carol, err := accountRepo.Create(ctx, model.CreateAccountParams{Name: "Carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.Equal(t, bob.ID+1, carol.ID)
}

func TestAccountRepository_Delete_NotFound(t *testing.T) {
	repo, _ := newTestRepos(t)

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAccountRepository_Stats(t *testing.T) {
	accountRepo, postRepo := newTestRepos(t)
	ctx := context.Background()

	alice := createAccount(t, accountRepo, "Alice", "alice@example.com", "admin", "editor")
	createAccount(t, accountRepo, "Bob", "bob@example.com", "editor")

	_, err := postRepo.Create(ctx, model.CreatePostParams{OwnerID: alice.ID, Content: "hi"})
	require.NoError(t, err)

	stats, err := accountRepo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAccounts)
	assert.Equal(t, 1, stats.TotalPosts)
	assert.Equal(t, map[string]int{"admin": 1, "editor": 2}, stats.AccountsByRole)
}
