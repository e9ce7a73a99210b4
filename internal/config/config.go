package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Config interface {
	EnvConfig
	CorsConfig
	SecurityConfig
	DatabaseConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type SecurityConfig interface {
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetBcryptCost() int
}

type DatabaseConfig interface {
	GetMongoURI() string
	GetDatabaseName() string
	GetDatabaseTimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	Cors
	Security
	Database
}

// New loads an optional .env file and then parses the process environment.
func New() (Config, error) {
	_ = godotenv.Load()
	return parse(env.Options{})
}

// Load parses configuration from the given variables only. Used by tests and tools
// that must not depend on the process environment.
func Load(environment map[string]string) (Config, error) {
	if environment == nil {
		environment = map[string]string{}
	}
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, errors.Wrap(err, "[config] parse environment")
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.JWTSecret == "" {
		secret, err := generateSecret()
		if err != nil {
			return nil, err
		}
		c.JWTSecret = secret
		log.Warn().Msgf("%s is not set; using a random per-process secret, sessions will not survive a restart", jwtSecretEnvVar)
	}
	return c, nil
}

func (c mainConfig) validate() error {
	if c.JWTSecret == "" {
		if c.GetEnv() != devEnv {
			return errors.Errorf("[config] %s is required when ENV=%s", jwtSecretEnvVar, c.GetEnv())
		}
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return errors.New("[config] ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.DatabaseName == "" {
		return errors.New("[config] MONGODB_DB_NAME must not be empty")
	}
	return nil
}
