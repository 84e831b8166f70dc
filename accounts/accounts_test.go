package accounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pictlock/go-mfa-server/accounts"
	"github.com/pictlock/go-mfa-server/accounts/repofake"
)

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "john@example.com", accounts.NormalizeEmail("  John@Example.COM "))
}

func TestPreferenceMembership(t *testing.T) {
	for _, color := range accounts.ColorOptions {
		require.True(t, accounts.ValidColor(color))
	}
	require.False(t, accounts.ValidColor("Magenta"))
	require.False(t, accounts.ValidColor("blue")) // enumeration is case-sensitive

	for _, sport := range accounts.SportOptions {
		require.True(t, accounts.ValidSport(sport))
	}
	require.False(t, accounts.ValidSport("Curling"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := accounts.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash)
	require.True(t, accounts.CheckPasswordHash("secret1", hash))
	require.False(t, accounts.CheckPasswordHash("secret2", hash))
}

func TestFakeRepoUpdateProfileOnlyTouchesNameAndEmail(t *testing.T) {
	repo := repofake.NewFakeAccountRepo()
	ctx := context.Background()

	account := &accounts.Account{
		Email:           "john@example.com",
		Name:            "John",
		ColorPreference: "Blue",
		SportPreference: "Tennis",
		PasswordHash:    "hash",
		Role:            accounts.RoleRegular,
	}
	require.NoError(t, repo.Create(ctx, account))

	require.NoError(t, repo.UpdateProfile(ctx, account.ID, "Johnny", "johnny@example.com"))

	updated, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, "Johnny", updated.Name)
	require.Equal(t, "johnny@example.com", updated.Email)
	require.Equal(t, "Blue", updated.ColorPreference)
	require.Equal(t, "hash", updated.PasswordHash)

	// Old email is released, new one is claimed.
	_, err = repo.GetByEmail(ctx, "john@example.com")
	require.ErrorIs(t, err, accounts.ErrNotFound)
	found, err := repo.GetByEmail(ctx, "johnny@example.com")
	require.NoError(t, err)
	require.Equal(t, account.ID, found.ID)
}

func TestFakeRepoDuplicateEmail(t *testing.T) {
	repo := repofake.NewFakeAccountRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &accounts.Account{Email: "john@example.com"}))
	err := repo.Create(ctx, &accounts.Account{Email: "John@Example.com"})
	require.ErrorIs(t, err, accounts.ErrDuplicateEmail)
}

func TestFakeRepoUpdateProfileRejectsTakenEmail(t *testing.T) {
	repo := repofake.NewFakeAccountRepo()
	ctx := context.Background()

	first := &accounts.Account{Email: "john@example.com"}
	second := &accounts.Account{Email: "jane@example.com"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	err := repo.UpdateProfile(ctx, second.ID, "Jane", "john@example.com")
	require.ErrorIs(t, err, accounts.ErrDuplicateEmail)
}

func TestFakeRepoDelete(t *testing.T) {
	repo := repofake.NewFakeAccountRepo()
	ctx := context.Background()

	account := &accounts.Account{Email: "john@example.com"}
	require.NoError(t, repo.Create(ctx, account))
	require.NoError(t, repo.Delete(ctx, account.ID))

	_, err := repo.GetByID(ctx, account.ID)
	require.ErrorIs(t, err, accounts.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, account.ID), accounts.ErrNotFound)
}

func TestFakeRepoList(t *testing.T) {
	repo := repofake.NewFakeAccountRepo()
	ctx := context.Background()

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		require.NoError(t, repo.Create(ctx, &accounts.Account{Email: email}))
	}

	all, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "a@example.com", all[0].Email)

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "b@example.com", page[0].Email)

	empty, err := repo.List(ctx, 10, 5)
	require.NoError(t, err)
	require.Empty(t, empty)
}
