package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. Values come from the environment with
// sensible development defaults; configs/.env is loaded first when present.
type Config struct {
	Environment string
	Port        string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	CORSOrigins []string

	// App registration the API validates tokens against
	TenantID        string
	BackendClientID string

	// App registration used for Microsoft Graph calls
	GraphTenantID     string
	GraphClientID     string
	GraphClientSecret string
	GraphBaseURL      string

	EnableAutoSync    bool
	SyncIntervalHours int
	SyncOnStartup     bool

	UploadDir string
	SecretKey string

	SwaggerUsername string
	SwaggerPassword string
}

// Load reads configs/.env (if present) and builds the Config from the
// environment.
func Load() *Config {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "local"),
		Port:        getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "primefire"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4200,http://localhost:3000")),

		TenantID:        getEnv("TENANT_ID", ""),
		BackendClientID: getEnv("BACKEND_CLIENT_ID", ""),

		GraphTenantID:     getEnv("MICROSOFT_TENANT_ID", ""),
		GraphClientID:     getEnv("MICROSOFT_CLIENT_ID", ""),
		GraphClientSecret: getEnv("MICROSOFT_CLIENT_SECRET", ""),
		GraphBaseURL:      getEnv("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),

		EnableAutoSync:    getEnvBool("ENABLE_AUTO_SYNC", true),
		SyncIntervalHours: getEnvInt("SYNC_INTERVAL_HOURS", 24),
		SyncOnStartup:     getEnvBool("SYNC_ON_STARTUP", false),

		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		SecretKey: getEnv("SECRET_KEY", ""),

		SwaggerUsername: getEnv("SWAGGER_USERNAME", "admin"),
		SwaggerPassword: getEnv("SWAGGER_PASSWORD", "admin"),
	}
}

// IsLocal reports whether the app runs in the local environment.
func (c *Config) IsLocal() bool {
	return c.Environment == "local"
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// ExpectedAudience is the audience claim tokens must carry.
func (c *Config) ExpectedAudience() string {
	return "api://" + c.BackendClientID
}

// ExpectedIssuer is the issuer claim tokens must carry.
func (c *Config) ExpectedIssuer() string {
	return "https://sts.windows.net/" + c.TenantID + "/"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
