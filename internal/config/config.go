package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Queue   QueueConfig
	Email   EmailConfig
	Compare CompareConfig
}

// CompareConfig holds comparison engine settings.
type CompareConfig struct {
	// DefaultLayout applies when a request does not choose one.
	DefaultLayout string `mapstructure:"default_layout"`
	// MaxPages rejects inputs longer than this; zero disables the limit.
	MaxPages int `mapstructure:"max_pages"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// QueueConfig holds comparison queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxRetries       int `mapstructure:"max_retries"`
	Concurrency      int `mapstructure:"concurrency"`
	JobTimeoutSecs   int `mapstructure:"job_timeout_secs"`
}

// JobTimeout returns the per-comparison deadline of the queue worker.
func (q *QueueConfig) JobTimeout() time.Duration {
	if q.JobTimeoutSecs <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(q.JobTimeoutSecs) * time.Second
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds API token settings. When Enabled is false the API is open.
type JWTConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
	Audience          string        `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const defaultJWTSecret = "change-me-in-production"

// Load reads configuration from environment variables with the PDFCOMPARE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PDFCOMPARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "pdfcompare")
	v.SetDefault("db.password", "pdfcompare_secret")
	v.SetDefault("db.name", "pdfcompare_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.enabled", false)
	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.access_expiry", "24h")
	v.SetDefault("jwt.issuer", "pdfcompare")
	v.SetDefault("jwt.audience", "pdfcompare-api")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "pdfcompare-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 50)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 5)
	v.SetDefault("queue.max_retries", 3)
	v.SetDefault("queue.concurrency", 2)
	v.SetDefault("queue.job_timeout_secs", 300)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@pdfcompare.local")
	v.SetDefault("email.from_name", "PDF Compare")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Compare defaults
	v.SetDefault("compare.default_layout", "overlay")
	v.SetDefault("compare.max_pages", 500)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "PDFCOMPARE_SERVER_PORT",
		"server.read_timeout":      "PDFCOMPARE_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "PDFCOMPARE_SERVER_WRITE_TIMEOUT",
		"server.environment":       "PDFCOMPARE_SERVER_ENVIRONMENT",
		"db.host":                  "PDFCOMPARE_DB_HOST",
		"db.port":                  "PDFCOMPARE_DB_PORT",
		"db.user":                  "PDFCOMPARE_DB_USER",
		"db.password":              "PDFCOMPARE_DB_PASSWORD",
		"db.name":                  "PDFCOMPARE_DB_NAME",
		"db.sslmode":               "PDFCOMPARE_DB_SSLMODE",
		"db.max_open":              "PDFCOMPARE_DB_MAX_OPEN",
		"db.max_idle":              "PDFCOMPARE_DB_MAX_IDLE",
		"jwt.enabled":              "PDFCOMPARE_JWT_ENABLED",
		"jwt.secret":               "PDFCOMPARE_JWT_SECRET",
		"jwt.access_expiry":        "PDFCOMPARE_JWT_ACCESS_EXPIRY",
		"jwt.issuer":               "PDFCOMPARE_JWT_ISSUER",
		"jwt.audience":             "PDFCOMPARE_JWT_AUDIENCE",
		"s3.region":                "PDFCOMPARE_S3_REGION",
		"s3.bucket":                "PDFCOMPARE_S3_BUCKET",
		"s3.endpoint":              "PDFCOMPARE_S3_ENDPOINT",
		"s3.access_key":            "PDFCOMPARE_S3_ACCESS_KEY",
		"s3.secret_key":            "PDFCOMPARE_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "PDFCOMPARE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "PDFCOMPARE_S3_PRESIGN_EXPIRY",
		"log.level":                "PDFCOMPARE_LOG_LEVEL",
		"log.format":               "PDFCOMPARE_LOG_FORMAT",
		"cors.allowed_origins":     "PDFCOMPARE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs": "PDFCOMPARE_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_retries":        "PDFCOMPARE_QUEUE_MAX_RETRIES",
		"queue.concurrency":        "PDFCOMPARE_QUEUE_CONCURRENCY",
		"queue.job_timeout_secs":   "PDFCOMPARE_QUEUE_JOB_TIMEOUT_SECS",
		"email.provider":           "PDFCOMPARE_EMAIL_PROVIDER",
		"email.region":             "PDFCOMPARE_EMAIL_REGION",
		"email.from_address":       "PDFCOMPARE_EMAIL_FROM_ADDRESS",
		"email.from_name":          "PDFCOMPARE_EMAIL_FROM_NAME",
		"email.frontend_url":       "PDFCOMPARE_EMAIL_FRONTEND_URL",
		"compare.default_layout":   "PDFCOMPARE_COMPARE_DEFAULT_LAYOUT",
		"compare.max_pages":        "PDFCOMPARE_COMPARE_MAX_PAGES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if PDFCOMPARE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PDFCOMPARE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Enabled:           v.GetBool("jwt.enabled"),
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
		Audience:          v.GetString("jwt.audience"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxRetries:       v.GetInt("queue.max_retries"),
		Concurrency:      v.GetInt("queue.concurrency"),
		JobTimeoutSecs:   v.GetInt("queue.job_timeout_secs"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Compare = CompareConfig{
		DefaultLayout: v.GetString("compare.default_layout"),
		MaxPages:      v.GetInt("compare.max_pages"),
	}

	if cfg.JWT.Enabled && cfg.Server.Environment == "production" && cfg.JWT.Secret == defaultJWTSecret {
		return nil, fmt.Errorf("config: PDFCOMPARE_JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
