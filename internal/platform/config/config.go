package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// Store selects the record persistence backend: memory, postgres or redis.
	Store string
	// PostgresURL is the DSN for the postgres backend.
	PostgresURL string
	Redis       Redis
}

// Redis captures connection settings for the redis backend.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DAYBOOK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	backend := os.Getenv("DAYBOOK_STORE")
	if backend == "" {
		backend = "memory"
	}

	return Server{
		Addr:        addr,
		Store:       backend,
		PostgresURL: os.Getenv("DATABASE_URL"),
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
	}
}
