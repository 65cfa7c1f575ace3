package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration, loaded from environment variables.
type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE"`

	DBUser     string `env:"DB_USER" envDefault:"root"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1:3306"`
	DBName     string `env:"DB_NAME" envDefault:"busbooking"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// StatsRefresh matches the admin dashboard's 5 minute refetch cadence.
	StatsRefresh time.Duration `env:"STATS_REFRESH" envDefault:"5m"`
}

func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// DSN builds the MySQL connection string. parseTime is required so DATETIME
// columns scan into time.Time.
func (e Env) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser,
		e.DBPassword,
		e.DBHost,
		e.DBName,
	)
}
