package token_test

import (
	"context"
	"testing"
	"time"

	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/roles"
	"github.com/invoiceslite/go-invoices-server/token"
	"github.com/invoiceslite/go-invoices-server/token/revocation"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret-1234"
	refreshSecret = "refresh-secret-5678"
	testUserID    = "user-1"
	testUserEmail = "john.doe@example.com"
	testTenantID  = "tenant-1"
)

// countingStore records how often each operation runs, so tests can prove
// access validation is stateless.
type countingStore struct {
	revocation.Store
	gets            int
	checkAndDeletes int
}

func (cs *countingStore) Get(ctx context.Context, sessionID string) (string, error) {
	cs.gets++
	return cs.Store.Get(ctx, sessionID)
}

func (cs *countingStore) CheckAndDelete(ctx context.Context, sessionID string) (string, error) {
	cs.checkAndDeletes++
	return cs.Store.CheckAndDelete(ctx, sessionID)
}

// failingStore simulates an unreachable revocation store.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}
func (failingStore) SetWithTTL(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}
func (failingStore) Delete(context.Context, string) error {
	return errors.New("connection refused")
}
func (failingStore) CheckAndDelete(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}

func newTestService(store revocation.Store, options ...token.ServiceOption) *token.Service {
	opts := append([]token.ServiceOption{
		token.WithTokenExpiry(15*time.Minute, 7*24*time.Hour),
	}, options...)
	return token.New(store, token.NewHMACSigner(accessSecret), token.NewHMACSigner(refreshSecret), opts...)
}

func TestIssue_AndValidateAccess(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(revocation.NewInMemoryStore())

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Admin)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, testUserID, claims.Subject)
	require.Equal(t, testUserEmail, claims.Email)
	require.Equal(t, testTenantID, claims.TenantID)
	require.Equal(t, roles.Admin, claims.Role)
	require.Equal(t, token.TypeAccess, claims.Type)
}

func TestValidateAccess_NeverTouchesStore(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: revocation.NewInMemoryStore()}
	svc := newTestService(store)

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.ValidateAccess(pair.AccessToken)
		require.NoError(t, err)
	}
	require.Zero(t, store.gets)
	require.Zero(t, store.checkAndDeletes)
}

func TestValidateAccess_RejectsRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(revocation.NewInMemoryStore())

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	_, err = svc.ValidateAccess(pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestValidateAccess_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(revocation.NewInMemoryStore(), token.WithNowFunc(func() time.Time { return now }))

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	now = now.Add(16 * time.Minute)
	_, err = svc.ValidateAccess(pair.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestValidateAccess_Garbage(t *testing.T) {
	svc := newTestService(revocation.NewInMemoryStore())

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ValidateAccess(raw)
		require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	}
}

func TestRotate_ExactlyOnce(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(revocation.NewInMemoryStore())

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	rotated, err := svc.Rotate(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)
	require.NotEqual(t, pair.AccessToken, rotated.AccessToken)

	// Replaying the old refresh token must fail: its session entry is gone.
	_, err = svc.Rotate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	// The new token is live.
	_, err = svc.Rotate(ctx, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestRotate_PreservesLoginTimeRole(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(revocation.NewInMemoryStore())

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Owner)
	require.NoError(t, err)

	rotated, err := svc.Rotate(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccess(rotated.AccessToken)
	require.NoError(t, err)
	require.Equal(t, roles.Owner, claims.Role)
}

func TestRotate_RejectsAccessToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(revocation.NewInMemoryStore())

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	// An access token is signed with the wrong secret and the wrong type.
	_, err = svc.Rotate(ctx, pair.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestRotate_ExpiredRefresh(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	svc := newTestService(revocation.NewInMemoryStore(), token.WithNowFunc(func() time.Time { return now }))

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	now = now.Add(8 * 24 * time.Hour)
	_, err = svc.Rotate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestRevoke_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(revocation.NewInMemoryStore())

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	claims, err := svc.ValidateRefresh(pair.RefreshToken)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, claims.SessionID()))
	require.NoError(t, svc.Revoke(ctx, claims.SessionID()))

	// The session is dead after revocation.
	_, err = svc.Rotate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestStoreFailure_IsTransientNotUnauthenticated(t *testing.T) {
	ctx := context.Background()
	okStore := revocation.NewInMemoryStore()
	svc := newTestService(okStore)

	pair, err := svc.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.NoError(t, err)

	failing := newTestService(failingStore{})

	_, err = failing.Issue(ctx, testUserID, testUserEmail, testTenantID, roles.Member)
	require.ErrorIs(t, err, apperrors.ErrTransient)

	_, err = failing.Rotate(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrTransient)
	require.NotErrorIs(t, err, apperrors.ErrUnauthenticated)

	err = failing.Revoke(ctx, "any-session")
	require.ErrorIs(t, err, apperrors.ErrTransient)
}
