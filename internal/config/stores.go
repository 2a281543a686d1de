package config

import "strconv"

type StoreConfig interface {
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetDatabaseDSN() string
}

type Stores struct{}

var _ StoreConfig = Stores{}

func (Stores) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "")
}

func (Stores) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Stores) GetRedisDB() int {
	db, err := strconv.Atoi(GetEnv("REDIS_DB", "0"))
	if err != nil {
		return 0
	}
	return db
}

func (Stores) GetDatabaseDSN() string {
	return GetEnv("DATABASE_DSN", "")
}
