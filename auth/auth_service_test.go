package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/invoiceslite/go-invoices-server/auth"
	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/roles"
	"github.com/invoiceslite/go-invoices-server/tenants"
	tenantrepofakes "github.com/invoiceslite/go-invoices-server/tenants/repofakes"
	"github.com/invoiceslite/go-invoices-server/token"
	"github.com/invoiceslite/go-invoices-server/token/revocation"
	"github.com/invoiceslite/go-invoices-server/users"
	userrepofake "github.com/invoiceslite/go-invoices-server/users/repofake"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret     = "access-secret-1234"
	refreshSecret    = "refresh-secret-5678"
	testUserEmail    = "a@x.com"
	testUserPassword = "Password123"
	testTenantName   = "Acme"
	testTenantSlug   = "acme"
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo       *userrepofake.FakeUserRepo
	tenantRepo     *tenantrepofakes.FakeTenantRepo
	membershipRepo *tenantrepofakes.FakeMembershipRepo
	store          *revocation.InMemoryStore
	tokens         *token.Service
	service        *auth.Service
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := userrepofake.NewFakeUserRepo()
	tr := tenantrepofakes.NewFakeTenantRepo()
	mr := tenantrepofakes.NewFakeMembershipRepo()
	store := revocation.NewInMemoryStore()

	tokens := token.New(
		store,
		token.NewHMACSigner(accessSecret),
		token.NewHMACSigner(refreshSecret),
		token.WithTokenExpiry(15*time.Minute, 7*24*time.Hour),
	)

	service, err := auth.NewService(auth.Repos{
		Users:       ur,
		Tenants:     tr,
		Memberships: mr,
	}, tokens)
	require.NoError(t, err)

	return &testFixture{
		userRepo:       ur,
		tenantRepo:     tr,
		membershipRepo: mr,
		store:          store,
		tokens:         tokens,
		service:        service,
	}
}

func TestNewService_RequiresDependencies(t *testing.T) {
	f := setupTestFixture(t)

	_, err := auth.NewService(auth.Repos{}, f.tokens)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{
		Users:       f.userRepo,
		Tenants:     f.tenantRepo,
		Memberships: f.membershipRepo,
	}, nil)
	require.Error(t, err)
}

func TestRegister_Success(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	result, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)
	require.Equal(t, testUserEmail, result.User.Email)
	require.NotEmpty(t, result.User.ID)
	require.Equal(t, testTenantName, result.Tenant.Name)
	require.Equal(t, testTenantSlug, result.Tenant.Slug)
	require.NotEmpty(t, result.Tokens.AccessToken)
	require.NotEmpty(t, result.Tokens.RefreshToken)

	// The registering user owns the new tenant.
	membership, err := f.membershipRepo.Get(result.User.ID, result.Tenant.ID)
	require.NoError(t, err)
	require.Equal(t, roles.Owner, membership.Role)

	// The password is stored hashed, never in the clear.
	stored, err := f.userRepo.GetByEmail(testUserEmail)
	require.NoError(t, err)
	require.NotEqual(t, testUserPassword, stored.PasswordHash)
	require.True(t, users.CheckPasswordHash(testUserPassword, stored.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)

	_, err = f.service.Register(ctx, testUserEmail, testUserPassword, "Other Co", "other")
	require.ErrorIs(t, err, apperrors.ErrEmailAlreadyInUse)
}

func TestRegister_InvalidSlug(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	for _, slug := range []string{"", "Acme", "acme corp", "acme_corp"} {
		_, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, slug)
		require.Error(t, err)
	}
}

func TestLogin_Success(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)

	result, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, registered.User.ID, result.UserID)
	require.Equal(t, registered.Tenant.ID, result.TenantID)
	require.Equal(t, roles.Owner, result.Role)

	claims, err := f.tokens.ValidateAccess(result.Tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, registered.Tenant.ID, claims.TenantID)
}

func TestLogin_InvalidPassword(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)

	_, err = f.service.Login(ctx, testUserEmail, "WrongPassword1")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailIsSameError(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	// Unknown email and wrong password are indistinguishable by contract.
	_, err := f.service.Login(ctx, "nobody@x.com", testUserPassword)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_NoMemberships(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	passwordHash, err := users.HashPassword(testUserPassword)
	require.NoError(t, err)
	require.NoError(t, f.userRepo.Create(&users.User{
		ID:           "orphan-1",
		Email:        testUserEmail,
		PasswordHash: passwordHash,
	}))

	_, err = f.service.Login(ctx, testUserEmail, testUserPassword)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestLogin_UsesFirstMembership(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)

	// A later membership in a second tenant does not change the login tenant.
	second := &tenants.Tenant{ID: "tenant-2", Name: "Beta", Slug: "beta"}
	require.NoError(t, f.tenantRepo.Create(second))
	require.NoError(t, f.membershipRepo.Create(&tenants.Membership{
		UserID:   registered.User.ID,
		TenantID: second.ID,
		Role:     roles.Viewer,
	}))

	result, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.Equal(t, registered.Tenant.ID, result.TenantID)
	require.Equal(t, roles.Owner, result.Role)
}

func TestRefresh_RotatesAndInvalidatesOldToken(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)

	loggedIn, err := f.service.Login(ctx, testUserEmail, testUserPassword)
	require.NoError(t, err)

	rotated, err := f.service.Refresh(ctx, loggedIn.Tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, loggedIn.Tokens.RefreshToken, rotated.RefreshToken)

	// Replay of the pre-rotation token fails.
	_, err = f.service.Refresh(ctx, loggedIn.Tokens.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	// Rotation did not disturb the registration session.
	_, err = f.service.Refresh(ctx, registered.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestLogout_IsIdempotentAndKillsSession(t *testing.T) {
	f := setupTestFixture(t)
	ctx := context.Background()

	registered, err := f.service.Register(ctx, testUserEmail, testUserPassword, testTenantName, testTenantSlug)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, registered.Tokens.RefreshToken))
	require.NoError(t, f.service.Logout(ctx, registered.Tokens.RefreshToken))

	_, err = f.service.Refresh(ctx, registered.Tokens.RefreshToken)
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestLogout_InvalidToken(t *testing.T) {
	f := setupTestFixture(t)

	err := f.service.Logout(context.Background(), "garbage")
	require.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
