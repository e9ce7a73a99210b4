package config

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtSecretEnvVar = "JWT_SECRET_KEY"
	// Size in bytes of the per-process secret generated in DEV
	generatedSecretBytes = 32
)

type Security struct {
	JWTSecret                string `env:"JWT_SECRET_KEY"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
	BcryptCost               int    `env:"BCRYPT_COST" envDefault:"10"`
}

var _ SecurityConfig = Security{}

func (s Security) GetJWTSecret() string {
	return s.JWTSecret
}

// generateSecret returns a random hex secret. Tokens signed with it do not
// survive a restart.
func generateSecret() (string, error) {
	secret := make([]byte, generatedSecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Wrap(err, "[config] generate JWT secret")
	}
	return hex.EncodeToString(secret), nil
}

func (s Security) GetAccessTokenExpiry() time.Duration {
	return time.Duration(s.AccessTokenExpireMinutes) * time.Minute
}

func (s Security) GetBcryptCost() int {
	if s.BcryptCost < bcrypt.MinCost || s.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.BcryptCost
}
