package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/roles"
	"github.com/invoiceslite/go-invoices-server/tenants"
	"github.com/invoiceslite/go-invoices-server/token"
	"github.com/invoiceslite/go-invoices-server/users"
	"github.com/pkg/errors"
)

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users       users.UserRepo
	Tenants     tenants.Repo
	Memberships tenants.MembershipRepo
}

// Service implements registration, login, refresh and logout on top of the
// credential store and the token service. It owns no HTTP concerns.
type Service struct {
	repos   Repos
	tokens  *token.Service
	nowTime func() time.Time // nowTime function (injectable for testing)
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a new auth Service with required dependencies.
func NewService(repos Repos, tokens *token.Service, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Tenants == nil {
		return nil, errors.New("[NewService] Tenants repo is required")
	}
	if repos.Memberships == nil {
		return nil, errors.New("[NewService] Memberships repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token service is required")
	}

	s := &Service{
		repos:   repos,
		tokens:  tokens,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}

// RegisterResult is everything a successful registration produces.
type RegisterResult struct {
	User   *users.User
	Tenant *tenants.Tenant
	Tokens *token.Pair
}

// Register creates a user, their tenant, and an OWNER membership linking
// the two, then issues a token pair for the new tenant.
func (s *Service) Register(ctx context.Context, email, password, tenantName, slug string) (*RegisterResult, error) {
	if _, err := s.repos.Users.GetByEmail(email); err == nil {
		return nil, errors.Wrap(apperrors.ErrEmailAlreadyInUse, email)
	}

	if err := tenants.ValidateSlug(slug); err != nil {
		return nil, errors.Wrap(err, "[Service.Register]")
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	user := &users.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		DateJoined:   s.nowTime(),
	}
	if err := s.repos.Users.Create(user); err != nil {
		// Covers the race where the email was taken between the
		// pre-check and the insert.
		if apperrors.Is(err, apperrors.ErrEmailAlreadyInUse) {
			return nil, err
		}
		return nil, errors.Wrap(err, "[Service.Register] Users.Create")
	}

	tenant := &tenants.Tenant{
		ID:   uuid.New().String(),
		Name: tenantName,
		Slug: slug,
	}
	if err := s.repos.Tenants.Create(tenant); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] Tenants.Create")
	}

	if err := s.repos.Memberships.Create(&tenants.Membership{
		UserID:   user.ID,
		TenantID: tenant.ID,
		Role:     roles.Owner,
	}); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] Memberships.Create")
	}

	pair, err := s.tokens.Issue(ctx, user.ID, user.Email, tenant.ID, roles.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] Issue")
	}

	return &RegisterResult{User: user, Tenant: tenant, Tokens: pair}, nil
}

// LoginResult is everything a successful login produces.
type LoginResult struct {
	UserID   string
	TenantID string
	Role     roles.Role
	Tokens   *token.Pair
}

// Login verifies the credentials and issues tokens for the user's first
// membership. Unknown email and password mismatch are indistinguishable.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.repos.Users.GetByEmail(email)
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[Service.Login] GetByEmail")
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, errors.Wrap(apperrors.ErrInvalidCredentials, "[Service.Login] password mismatch")
	}

	membership, err := s.repos.Memberships.FirstForUser(user.ID)
	if err != nil {
		return nil, errors.Wrap(apperrors.ErrUnauthenticated, "[Service.Login] no memberships")
	}

	pair, err := s.tokens.Issue(ctx, user.ID, user.Email, membership.TenantID, membership.Role)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] Issue")
	}

	return &LoginResult{
		UserID:   user.ID,
		TenantID: membership.TenantID,
		Role:     membership.Role,
		Tokens:   pair,
	}, nil
}

// Refresh rotates a live refresh token into a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	return s.tokens.Rotate(ctx, refreshToken)
}

// Logout revokes the refresh session. The token must carry a valid
// signature, but revoking an already-dead session still succeeds.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return err
	}
	return s.tokens.Revoke(ctx, claims.SessionID())
}
