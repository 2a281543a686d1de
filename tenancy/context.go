package tenancy

import "context"

type contextKey string

const slugKey contextKey = "tenant_slug"

// WithSlug attaches the resolved tenant slug to the context.
func WithSlug(ctx context.Context, slug string) context.Context {
	return context.WithValue(ctx, slugKey, slug)
}

// SlugFrom returns the resolved tenant slug, if any. The value is a slug,
// not a tenant id: authenticated requests take their tenant id from
// validated token claims instead.
func SlugFrom(ctx context.Context) (string, bool) {
	slug, ok := ctx.Value(slugKey).(string)
	return slug, ok
}
