package config

import (
	"strconv"
	"time"
)

const (
	defaultAccessTTLSeconds  = 900    // 15 minutes
	defaultRefreshTTLSeconds = 604800 // 7 days
)

type TokenConfig interface {
	GetAccessSecret() string
	GetRefreshSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

type Tokens struct{}

var _ TokenConfig = Tokens{}

func (Tokens) GetAccessSecret() string {
	return GetEnv("JWT_ACCESS_SECRET", "")
}

func (Tokens) GetRefreshSecret() string {
	return GetEnv("JWT_REFRESH_SECRET", "")
}

func (Tokens) GetAccessTokenExpiry() time.Duration {
	return secondsFromEnv("JWT_ACCESS_TTL", defaultAccessTTLSeconds)
}

func (Tokens) GetRefreshTokenExpiry() time.Duration {
	return secondsFromEnv("JWT_REFRESH_TTL", defaultRefreshTTLSeconds)
}

func secondsFromEnv(key string, defaultSeconds int) time.Duration {
	seconds, err := strconv.Atoi(GetEnv(key, strconv.Itoa(defaultSeconds)))
	if err != nil || seconds <= 0 {
		seconds = defaultSeconds
	}
	return time.Duration(seconds) * time.Second
}
