package roles

import "fmt"

// Role is a tenant membership role. The ordinal values form a total order
// used for authorization decisions: a caller passes a check when their role
// ranks at or above a required role.
type Role int

const (
	Viewer Role = iota
	Member
	Admin
	Owner
)

var names = [...]string{"VIEWER", "MEMBER", "ADMIN", "OWNER"}

func (r Role) String() string {
	if r < Viewer || r > Owner {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return names[r]
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r >= Viewer && r <= Owner
}

// Parse converts a role name (e.g. "ADMIN") to its Role value.
func Parse(name string) (Role, error) {
	for i, n := range names {
		if n == name {
			return Role(i), nil
		}
	}
	return Viewer, fmt.Errorf("unknown role %q", name)
}

// MarshalText serializes the role as its name so roles embedded in JSON
// claims and API responses stay readable.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("cannot marshal invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Allowed decides whether a caller role satisfies the required set.
// An empty required set allows unconditionally. Otherwise the caller passes
// when their ordinal is >= the ordinal of any required role, so requiring
// Admin admits Admin and Owner but not Member or Viewer.
func Allowed(required []Role, caller Role) bool {
	if len(required) == 0 {
		return true
	}
	if !caller.Valid() {
		return false
	}
	for _, r := range required {
		if caller >= r {
			return true
		}
	}
	return false
}
