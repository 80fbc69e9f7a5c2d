package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/kiddocorner/internal/adapters/repo/postgres"
	"github.com/phenrril/kiddocorner/internal/domain"
)

func TestAdminLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	uc := &AuthUC{Admins: postgres.NewAdminRepo(db), Secret: []byte("s3cret")}

	_, err := uc.EnsureAdmin(ctx, "owner@kiddocorner.com", "Owner", "short")
	assert.True(t, domain.IsValidation(err))
	u, err := uc.EnsureAdmin(ctx, " Owner@KiddoCorner.com ", "Owner", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "owner@kiddocorner.com", u.Email)

	_, err = uc.Login(ctx, "owner@kiddocorner.com", "wrong password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = uc.Login(ctx, "nobody@kiddocorner.com", "correct horse")
	assert.ErrorIs(t, err, ErrUnauthorized)

	tok, err := uc.Login(ctx, "OWNER@kiddocorner.com", "correct horse")
	require.NoError(t, err)
	claims, err := uc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, u.ID.String(), claims.Subject)

	_, err = uc.Verify(tok + "x")
	assert.ErrorIs(t, err, ErrUnauthorized)
	other := &AuthUC{Secret: []byte("other")}
	_, err = other.Verify(tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAdminTokenExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	uc := &AuthUC{Secret: []byte("k"), Now: func() time.Time { return now }}
	tok, err := uc.IssueToken(&domain.AdminUser{Email: "a@b.c"})
	require.NoError(t, err)

	now = now.Add(5 * time.Hour)
	_, err = uc.Verify(tok)
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, err = uc.Verify(tok)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGoogleLoginNeedsAdminRow(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := postgres.NewAdminRepo(db)
	uc := &AuthUC{Admins: repo, Secret: []byte("k")}
	require.NoError(t, repo.Save(ctx, &domain.AdminUser{Email: "staff@kiddocorner.com"}))

	_, err := uc.LoginVerifiedEmail(ctx, "staff@kiddocorner.com")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = uc.LoginVerifiedEmail(ctx, "ghost@kiddocorner.com")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = uc.EnsureAdmin(ctx, "staff@kiddocorner.com", "", "")
	require.NoError(t, err)
	tok, err := uc.LoginVerifiedEmail(ctx, "staff@kiddocorner.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}
