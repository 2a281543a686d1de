package config

import "net/http"

type CookieConfig interface {
	GetCookieDomain() string
	GetCookieSecure() bool
	GetCookieSameSite() http.SameSite
}

type Cookies struct{}

var _ CookieConfig = Cookies{}

func (Cookies) GetCookieDomain() string {
	return GetEnv("COOKIE_DOMAIN", "")
}

func (Cookies) GetCookieSecure() bool {
	return GetEnv("COOKIE_SECURE", "false") == "true"
}

func (Cookies) GetCookieSameSite() http.SameSite {
	switch GetEnv("COOKIE_SAMESITE", "lax") {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
