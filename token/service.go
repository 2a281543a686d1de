package token

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/roles"
	"github.com/invoiceslite/go-invoices-server/token/revocation"
	"github.com/pkg/errors"
)

// Pair is one issued access/refresh token pair.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Service issues, validates and rotates token pairs. Access tokens are
// validated statelessly; refresh tokens are additionally checked against
// the revocation store, whose entry is the source of truth for whether the
// session is still live.
type Service struct {
	store         revocation.Store
	accessSigner  Signer
	refreshSigner Signer
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	nowFunc       func() time.Time
}

type ServiceOption func(*Service)

func WithTokenExpiry(accessExpiry, refreshExpiry time.Duration) ServiceOption {
	return func(s *Service) {
		s.accessExpiry = accessExpiry
		s.refreshExpiry = refreshExpiry
	}
}

func WithNowFunc(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = now
	}
}

func New(store revocation.Store, accessSigner, refreshSigner Signer, options ...ServiceOption) *Service {
	s := &Service{
		store:         store,
		accessSigner:  accessSigner,
		refreshSigner: refreshSigner,
	}

	for _, opt := range options {
		opt(s)
	}

	if s.accessExpiry == 0 {
		s.accessExpiry = 15 * time.Minute
	}
	if s.refreshExpiry == 0 {
		s.refreshExpiry = 7 * 24 * time.Hour
	}
	if s.nowFunc == nil {
		s.nowFunc = time.Now
	}
	return s
}

// AccessExpiry returns the configured access-token lifetime.
func (s *Service) AccessExpiry() time.Duration { return s.accessExpiry }

// RefreshExpiry returns the configured refresh-token lifetime.
func (s *Service) RefreshExpiry() time.Duration { return s.refreshExpiry }

// Issue mints a signed access/refresh pair bound to a brand-new session id
// and records the session in the revocation store with the refresh TTL.
// The single store write is the only I/O.
func (s *Service) Issue(ctx context.Context, userID, email, tenantID string, role roles.Role) (*Pair, error) {
	sessionID := uuid.New().String()
	now := s.nowFunc()

	accessToken, err := s.accessSigner.Sign(&AccessClaims{
		Email:    email,
		TenantID: tenantID,
		Role:     role,
		Type:     TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "Service.Issue access token")
	}

	refreshToken, err := s.refreshSigner.Sign(&RefreshClaims{
		Email:    email,
		TenantID: tenantID,
		Role:     role,
		Type:     TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpiry)),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "Service.Issue refresh token")
	}

	if err := s.store.SetWithTTL(ctx, sessionID, userID, s.refreshExpiry); err != nil {
		return nil, errors.Wrapf(apperrors.ErrTransient, "storing revocation entry: %v", err)
	}

	return &Pair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ValidateAccess verifies signature and expiry of an access token. It never
// touches the revocation store, keeping access validation pure CPU.
func (s *Service) ValidateAccess(rawToken string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parsed, err := jwt.ParseWithClaims(rawToken, claims, s.accessSigner.GetVerificationKey, jwt.WithTimeFunc(s.nowFunc))
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(apperrors.ErrUnauthenticated, "invalid access token")
	}
	if claims.Type != TypeAccess {
		return nil, errors.Wrap(apperrors.ErrUnauthenticated, "token is not an access token")
	}
	return claims, nil
}

// ValidateRefresh verifies signature and expiry of a refresh token. A valid
// result does not mean the session is live; only Rotate consults the store.
func (s *Service) ValidateRefresh(rawToken string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	parsed, err := jwt.ParseWithClaims(rawToken, claims, s.refreshSigner.GetVerificationKey, jwt.WithTimeFunc(s.nowFunc))
	if err != nil || !parsed.Valid {
		return nil, errors.Wrap(apperrors.ErrUnauthenticated, "invalid refresh token")
	}
	if claims.Type != TypeRefresh {
		return nil, errors.Wrap(apperrors.ErrUnauthenticated, "token is not a refresh token")
	}
	if claims.SessionID() == "" {
		return nil, errors.Wrap(apperrors.ErrUnauthenticated, "refresh token missing session id")
	}
	return claims, nil
}

// Rotate exchanges a live refresh token for a fresh pair. The old session
// entry is removed atomically with the liveness check, so a rotated-away
// token can never be replayed: of two concurrent rotations, exactly one
// wins and the other fails as unauthenticated.
func (s *Service) Rotate(ctx context.Context, rawToken string) (*Pair, error) {
	claims, err := s.ValidateRefresh(rawToken)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.CheckAndDelete(ctx, claims.SessionID()); err != nil {
		if errors.Is(err, revocation.ErrNotFound) {
			return nil, errors.Wrap(apperrors.ErrUnauthenticated, "refresh session revoked")
		}
		return nil, errors.Wrapf(apperrors.ErrTransient, "checking revocation entry: %v", err)
	}

	return s.Issue(ctx, claims.Subject, claims.Email, claims.TenantID, claims.Role)
}

// Revoke deletes the session entry unconditionally. Revoking an absent
// session is success, which makes logout idempotent.
func (s *Service) Revoke(ctx context.Context, sessionID string) error {
	if err := s.store.Delete(ctx, sessionID); err != nil && !errors.Is(err, revocation.ErrNotFound) {
		return errors.Wrapf(apperrors.ErrTransient, "deleting revocation entry: %v", err)
	}
	return nil
}
