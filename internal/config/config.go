package config

type Config interface {
	EnvConfig
	TokenConfig
	CookieConfig
	StoreConfig
}

type mainConfig struct {
	EnvVars
	Tokens
	Cookies
	Stores
}

func New() Config {
	return mainConfig{}
}
