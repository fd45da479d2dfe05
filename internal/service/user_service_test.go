package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/internal/domain"
	"library-api/internal/repository/memory"
)

func newUsers(t *testing.T) (*userService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 10, 8, 30, 0, 0, time.UTC)}
	svc := NewUserService(memory.NewRepositories().Users, quietLogger()).(*userService)
	svc.clock = clock.Now
	return svc, clock
}

func TestRegister(t *testing.T) {
	svc, clock := newUsers(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, " alice ", "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.PasswordHash)
	assert.True(t, user.CreatedAt.Equal(clock.Now()))

	_, err = svc.Register(ctx, "alice2", "ALICE@example.com", "correct horse")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newUsers(t)
	ctx := context.Background()

	cases := map[string][3]string{
		"missing name":   {"", "bob@example.com", "long enough"},
		"bad email":      {"bob", "not-an-email", "long enough"},
		"short password": {"bob", "bob@example.com", "short"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, in[0], in[1], in[2])
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, clock := newUsers(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "carol", "carol@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Nil(t, registered.LastLogin)

	clock.Advance(time.Hour)
	user, err := svc.Authenticate(ctx, "carol@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.True(t, user.LastLogin.Equal(clock.Now()))

	stored, err := svc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)

	_, err = svc.Authenticate(ctx, "carol@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	svc, _ := newUsers(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "dave", "dave@example.com", "s3cret-pass")
	require.NoError(t, err)

	admin := domain.Principal{UserID: 999, Role: domain.RoleAdmin}
	inactive := false
	_, err = svc.Update(ctx, admin, user.ID, UserUpdate{UserName: "dave", Email: "dave@example.com", IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "dave@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate_Permissions(t *testing.T) {
	svc, _ := newUsers(t)
	ctx := context.Background()

	erin, err := svc.Register(ctx, "erin", "erin@example.com", "s3cret-pass")
	require.NoError(t, err)
	frank, err := svc.Register(ctx, "frank", "frank@example.com", "s3cret-pass")
	require.NoError(t, err)

	self := domain.Principal{UserID: erin.ID, Role: domain.RoleUser}

	updated, err := svc.Update(ctx, self, erin.ID, UserUpdate{UserName: "erin b", Email: "erin.b@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "erin b", updated.UserName)

	_, err = svc.Update(ctx, self, frank.ID, UserUpdate{UserName: "frank", Email: "frank@example.com"})
	assert.ErrorIs(t, err, ErrForbidden)

	admin := domain.RoleAdmin
	_, err = svc.Update(ctx, self, erin.ID, UserUpdate{UserName: "erin", Email: "erin@example.com", Role: &admin})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, self, erin.ID, UserUpdate{UserName: "erin", Email: "frank@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.ErrorIs(t, svc.Delete(ctx, self, frank.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, self, erin.ID))
	_, err = svc.GetByID(ctx, erin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_PasswordChange(t *testing.T) {
	svc, _ := newUsers(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "gina", "gina@example.com", "old-password")
	require.NoError(t, err)

	next := "new-password"
	_, err = svc.Update(ctx, domain.Principal{UserID: user.ID, Role: domain.RoleUser}, user.ID,
		UserUpdate{UserName: "gina", Email: "gina@example.com", Password: &next})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "gina@example.com", "old-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "gina@example.com", "new-password")
	assert.NoError(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	svc, _ := newUsers(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "admin-password"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "admin-password"))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.RoleAdmin, users[0].Role)
	assert.Equal(t, "root", users[0].UserName)
	assert.Empty(t, users[0].PasswordHash)

	_, err = svc.Authenticate(ctx, "root@example.com", "admin-password")
	assert.NoError(t, err)
}
