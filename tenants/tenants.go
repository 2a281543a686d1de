package tenants

import (
	"fmt"
	"regexp"
)

// Tenant represents an organization. The slug is the lowercase,
// hyphenated identifier carried in hostnames and tenant-override signals;
// it is set once at registration and never changes.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateSlug checks the registration slug format.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("invalid tenant slug %q: must match [a-z0-9-]+", slug)
	}
	return nil
}
