package tenancy_test

import (
	"net/http/httptest"
	"testing"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
	"github.com/invoiceslite/go-invoices-server/tenancy"
	"github.com/stretchr/testify/require"
)

func TestResolve_HostLabel(t *testing.T) {
	slug, err := tenancy.Resolve(tenancy.Signals{Host: "acme.example.com"})
	require.NoError(t, err)
	require.Equal(t, "acme", slug)
}

func TestResolve_StripsPort(t *testing.T) {
	slug, err := tenancy.Resolve(tenancy.Signals{Host: "acme.example.com:8080"})
	require.NoError(t, err)
	require.Equal(t, "acme", slug)

	// A bare host with a port yields the host itself as the label.
	slug, err = tenancy.Resolve(tenancy.Signals{Host: "localhost:8080"})
	require.NoError(t, err)
	require.Equal(t, "localhost", slug)
}

func TestResolve_ForwardedHostBeatsHost(t *testing.T) {
	slug, err := tenancy.Resolve(tenancy.Signals{
		Host:          "beta.internal.local",
		ForwardedHost: "acme.example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "acme", slug)
}

func TestResolve_OverrideHeaderBeatsHosts(t *testing.T) {
	slug, err := tenancy.Resolve(tenancy.Signals{
		Host:          "acme.example.com",
		ForwardedHost: "beta.example.com",
		Override:      "gamma",
	})
	require.NoError(t, err)
	require.Equal(t, "gamma", slug)
}

func TestResolve_QueryWinsOverEverything(t *testing.T) {
	slug, err := tenancy.Resolve(tenancy.Signals{
		Host:     "acme.example.com",
		Override: "gamma",
		Query:    "beta",
	})
	require.NoError(t, err)
	require.Equal(t, "beta", slug)

	// The documented example: host acme, no forwarded host, no override,
	// query beta resolves to beta.
	slug, err = tenancy.Resolve(tenancy.Signals{Host: "acme.example.com", Query: "beta"})
	require.NoError(t, err)
	require.Equal(t, "beta", slug)
}

func TestResolve_Unresolved(t *testing.T) {
	_, err := tenancy.Resolve(tenancy.Signals{})
	require.ErrorIs(t, err, errors.ErrTenantUnresolved)

	_, err = tenancy.Resolve(tenancy.Signals{Host: "   "})
	require.ErrorIs(t, err, errors.ErrTenantUnresolved)
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "http://acme.example.com/invoices?tenant=beta", nil)
	r.Header.Set(tenancy.ForwardedHostHeader, "fwd.example.com")
	r.Header.Set(tenancy.OverrideHeader, "gamma")

	signals := tenancy.FromRequest(r)
	require.Equal(t, "acme.example.com", signals.Host)
	require.Equal(t, "fwd.example.com", signals.ForwardedHost)
	require.Equal(t, "gamma", signals.Override)
	require.Equal(t, "beta", signals.Query)
}

func TestSlugContext(t *testing.T) {
	r := httptest.NewRequest("GET", "http://acme.example.com/", nil)

	_, ok := tenancy.SlugFrom(r.Context())
	require.False(t, ok)

	ctx := tenancy.WithSlug(r.Context(), "acme")
	slug, ok := tenancy.SlugFrom(ctx)
	require.True(t, ok)
	require.Equal(t, "acme", slug)
}
