package server

import (
	"net/http"

	"github.com/invoiceslite/go-invoices-server/token"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// setAuthCookies writes both credential cookies. Attributes come from
// configuration; max ages track the respective token lifetimes.
func (s *Server) setAuthCookies(w http.ResponseWriter, pair *token.Pair) {
	http.SetCookie(w, s.authCookie(accessCookieName, pair.AccessToken, int(s.tokens.AccessExpiry().Seconds())))
	http.SetCookie(w, s.authCookie(refreshCookieName, pair.RefreshToken, int(s.tokens.RefreshExpiry().Seconds())))
}

func (s *Server) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, s.authCookie(accessCookieName, "", -1))
	http.SetCookie(w, s.authCookie(refreshCookieName, "", -1))
}

func (s *Server) authCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   s.config.GetCookieDomain(),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.config.GetCookieSecure(),
		SameSite: s.config.GetCookieSameSite(),
	}
}
