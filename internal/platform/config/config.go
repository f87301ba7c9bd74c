// Package config loads process-wide configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// AuthConfig holds configuration for token issuance and Google federation.
type AuthConfig struct {
	JWTSecret      string        // HMAC signing secret, required in production
	TokenTTL       time.Duration // Access token lifetime
	GoogleClientID string        // OAuth client ID used as the ID token audience
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port           string   // Listen port (without colon)
	AllowedOrigins []string // CORS allowed origins
}

// RedisConfig holds connection settings for the summary cache.
type RedisConfig struct {
	Addr     string // host:port
	Password string
}

// LoadAuthConfig loads auth configuration from environment variables.
// Defaults: 30 minute token TTL.
func LoadAuthConfig() AuthConfig {
	ttl := 30 * time.Minute
	if v := os.Getenv("JWT_EXPIRATION_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			ttl = time.Duration(minutes) * time.Minute
		}
	}
	return AuthConfig{
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       ttl,
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
	}
}

// LoadServerConfig loads server configuration from environment variables.
// ALLOWED_ORIGINS is a comma-separated list.
func LoadServerConfig() ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return ServerConfig{
		Port:           port,
		AllowedOrigins: origins,
	}
}

// LoadRedisConfig loads Redis configuration from environment variables.
// Defaults: port 6379, no password.
func LoadRedisConfig() RedisConfig {
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	return RedisConfig{
		Addr:     os.Getenv("REDIS_HOST") + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}
