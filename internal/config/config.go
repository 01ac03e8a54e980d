package config

import (
	"errors"
	"os"
	"strings"
)

// Names of the environment variables holding the two secrets. They differ
// between deployments and can be replaced per build, e.g.
//
//	go build -ldflags "-X checkout-session-service/internal/config.SecretKeyEnv=MY_SECRET"
var (
	SecretKeyEnv = "CODELIB_SECRET_KEY"
	StripeKeyEnv = "STRIPE_SECRET_KEY"
)

// DefaultSecretHeader is the header callers put the shared secret in.
const DefaultSecretHeader = "catalyst-codelib-secret-key"

type Config struct {
	// Server
	Port        string
	Environment string

	// Auth
	SecretHeader string
	SecretKeyEnv string
	SecretKey    string

	// Stripe
	StripeKeyEnv  string
	StripeKey     string
	StripeAPIBase string

	// CORS
	CORSOrigins []string

	// Features
	EnableMetrics bool
}

func New() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Auth
		SecretHeader: getEnv("SECRET_HEADER", DefaultSecretHeader),
		SecretKeyEnv: SecretKeyEnv,
		SecretKey:    os.Getenv(SecretKeyEnv),

		// Stripe
		StripeKeyEnv:  StripeKeyEnv,
		StripeKey:     os.Getenv(StripeKeyEnv),
		StripeAPIBase: getEnv("STRIPE_API_BASE", ""),

		// CORS
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),

		// Features
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
	}
}

// Validate reports configuration the service cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.SecretHeader) == "" {
		errs = append(errs, errors.New("secret header name is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New(c.SecretKeyEnv+" is not set"))
	}
	if strings.TrimSpace(c.StripeKey) == "" {
		errs = append(errs, errors.New(c.StripeKeyEnv+" is not set"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return valueStr == "true" || valueStr == "1"
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
