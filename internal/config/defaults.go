package config

import "time"

const (
	DefaultTokenIssuer   = "zero-waste-marketplace"
	DefaultTokenAudience = "zero-waste-users"
	DefaultTokenDuration = 7 * 24 * time.Hour
	DefaultEnvironment   = "development"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenAudience: DefaultTokenAudience,
			TokenDuration: DefaultTokenDuration,
			Environment:   DefaultEnvironment,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		RateLimit: RateLimit{
			MaxRequests:     100,
			Window:          time.Minute,
			Backend:         BackendMemory,
			JanitorInterval: time.Minute,
		},
		Retry: Retry{
			MaxRetries: 3,
			BaseDelay:  time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Client: Client{
			DB: DB{DSN: "zero-waste-session.db"},
		},
	}
}
