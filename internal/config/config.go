package config

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// minSecretBytes is the minimum accepted signing secret length. Anything
// shorter is replaced with a freshly generated secret.
const minSecretBytes = 32

// defaultIssuer is used when no JWT_ISSUER is configured.
const defaultIssuer = "inkwell"

// Config holds application level configuration. It is built once at startup
// and treated as read-only afterwards; components receive it by injection.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	// JWTSecret is the HS256 signing key, at least 32 bytes.
	JWTSecret string
	// JWTIssuer is stamped into the iss claim and checked on validation.
	JWTIssuer string
	// TokenTTL bounds issued tokens; exp = now + TokenTTL.
	TokenTTL time.Duration

	SwaggerHost string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
}

// Load builds Config from the environment with sensible defaults. Values
// generated here (signing secret, issuer) are appended to the env file so
// tokens issued before a restart keep verifying after it.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	fileVals := readEnvFile(envFile)
	get := func(key, def string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := fileVals[key]; v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		ServerPort:    get("SERVER_PORT", "8080"),
		MySQLDSN:      get("MYSQL_DSN", "user:password@tcp(localhost:3306)/inkwell?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     get("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getInt(get("REDIS_DB", ""), 0),
		RedisPass:     get("REDIS_PASSWORD", ""),
		JWTSecret:     get("JWT_SECRET", ""),
		JWTIssuer:     get("JWT_ISSUER", ""),
		TokenTTL:      getDuration(get("TOKEN_TTL", ""), 30*24*time.Hour),
		SwaggerHost:   get("SWAGGER_HOST", ""),
		LogLevel:      get("LOG_LEVEL", "info"),
		LogPath:       get("LOG_PATH", ""),
		LogMaxSizeMB:  getInt(get("LOG_MAX_SIZE_MB", ""), 100),
		LogMaxBackups: getInt(get("LOG_MAX_BACKUPS", ""), 3),
		LogMaxAgeDays: getInt(get("LOG_MAX_AGE_DAYS", ""), 7),
	}

	if len(cfg.JWTSecret) < minSecretBytes {
		secret, err := generateSecret()
		if err != nil {
			return nil, fmt.Errorf("generate signing secret: %w", err)
		}
		if err := appendEnvFile(envFile, "JWT_SECRET", secret); err != nil {
			return nil, fmt.Errorf("persist signing secret: %w", err)
		}
		cfg.JWTSecret = secret
	}

	if cfg.JWTIssuer == "" {
		if err := appendEnvFile(envFile, "JWT_ISSUER", defaultIssuer); err != nil {
			return nil, fmt.Errorf("persist issuer: %w", err)
		}
		cfg.JWTIssuer = defaultIssuer
	}

	return cfg, nil
}

// generateSecret returns 32 bytes from a CSPRNG, hex encoded.
func generateSecret() (string, error) {
	buf := make([]byte, minSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// readEnvFile parses KEY=VALUE lines, ignoring comments and blanks. A missing
// file is not an error.
func readEnvFile(path string) map[string]string {
	vals := map[string]string{}
	f, err := os.Open(path)
	if err != nil {
		return vals
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		vals[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return vals
}

func appendEnvFile(path, key, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%s=%s\n", key, value)
	return err
}

func getInt(v string, def int) int {
	if v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getDuration(v string, def time.Duration) time.Duration {
	if v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
