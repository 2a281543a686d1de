package tenancy

import (
	"net/http"
	"strings"

	"github.com/invoiceslite/go-invoices-server/internal/errors"
)

// Signals are the raw request values a tenant slug can be derived from.
// Resolution is a pure function of these four strings; no I/O.
type Signals struct {
	Host          string // the request's own Host header
	ForwardedHost string // X-Forwarded-Host, set by proxies
	Override      string // explicit tenant-override header (a slug)
	Query         string // ?tenant= query parameter
}

const (
	OverrideHeader      = "X-Tenant"
	ForwardedHostHeader = "X-Forwarded-Host"
	QueryParam          = "tenant"
)

// FromRequest collects the tenant signals from an HTTP request.
func FromRequest(r *http.Request) Signals {
	return Signals{
		Host:          r.Host,
		ForwardedHost: r.Header.Get(ForwardedHostHeader),
		Override:      r.Header.Get(OverrideHeader),
		Query:         r.URL.Query().Get(QueryParam),
	}
}

// Resolve derives the active tenant slug. Precedence, highest first:
//
//  1. the override header, when present;
//  2. the forwarded host, else the request host;
//  3. the left-most dot-separated label of the chosen host (ports
//     stripped); an override slug is treated as "override.dummy" so the
//     same extraction applies;
//  4. the query parameter, when present, overrides everything.
//
// An empty final slug fails with ErrTenantUnresolved.
func Resolve(s Signals) (string, error) {
	override := strings.TrimSpace(s.Override)
	fwdHost := strings.TrimSpace(s.ForwardedHost)
	realHost := strings.TrimSpace(s.Host)
	query := strings.TrimSpace(s.Query)

	hostForSplit := fwdHost
	if hostForSplit == "" {
		hostForSplit = realHost
	}
	if override != "" {
		hostForSplit = override + ".dummy"
	}
	hostForSplit = strings.SplitN(hostForSplit, ":", 2)[0]

	slug := strings.SplitN(hostForSplit, ".", 2)[0]
	if override != "" {
		slug = override
	}
	if query != "" {
		slug = query
	}

	if slug == "" {
		return "", errors.ErrTenantUnresolved
	}
	return slug, nil
}
