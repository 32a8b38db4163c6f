package jobboard

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config exposes the settings the authenticator needs.
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

// AppConfig is the environment backed configuration for the server.
type AppConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
	Port            string
	UploadsDir      string
	StaticDir       string
	ClientURL       string
	AdminUsername   string
	AdminPassword   string
}

var _ Config = (*AppConfig)(nil)

// LoadConfig reads configuration from the environment, loading .env first
// when present. Missing values fall back to development defaults.
func LoadConfig() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		SigningKey:      envOr("JWT_SECRET", "your-secret-key-change-in-production"),
		TokenExpiration: envIntOr("JWT_EXPIRATION_HOURS", DefaultTokenExpiration),
		Issuer:          envOr("JWT_ISSUER", "jobboard"),
		Audience:        []string{envOr("JWT_AUDIENCE", "jobboard")},
		Port:            envOr("PORT", "5000"),
		UploadsDir:      envOr("UPLOADS_DIR", "uploads"),
		StaticDir:       envOr("STATIC_DIR", "public"),
		ClientURL:       envOr("CLIENT_URL", "http://localhost:3000"),
		AdminUsername:   envOr("ADMIN_USERNAME", AdminUsername),
		AdminPassword:   envOr("ADMIN_PASSWORD", AdminPassword),
	}
}

func (c *AppConfig) GetSigningKey() string   { return c.SigningKey }
func (c *AppConfig) GetTokenExpiration() int { return c.TokenExpiration }
func (c *AppConfig) GetIssuer() string       { return c.Issuer }
func (c *AppConfig) GetAudience() []string   { return c.Audience }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
