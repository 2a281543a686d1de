package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/invoiceslite/go-invoices-server/roles"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// AccessClaims is the payload of a short-lived access token. It is never
// persisted; everything a request handler needs for authorization travels
// inside the signed token.
type AccessClaims struct {
	Email    string     `json:"email"`
	TenantID string     `json:"tenant_id"`
	Role     roles.Role `json:"role"`
	Type     string     `json:"typ"`
	jwt.RegisteredClaims
}

// RefreshClaims is the payload of a refresh token. The registered ID (jti)
// is the session id keying the revocation store. Role is the login-time
// role, carried forward unchanged on every rotation: a role change only
// takes effect after the session is revoked and the user logs in again.
type RefreshClaims struct {
	Email    string     `json:"email"`
	TenantID string     `json:"tenant_id"`
	Role     roles.Role `json:"role"`
	Type     string     `json:"typ"`
	jwt.RegisteredClaims
}

// SessionID returns the revocation-store key for this refresh session.
func (rc *RefreshClaims) SessionID() string {
	return rc.ID
}
