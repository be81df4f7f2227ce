package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownBackend              = errors.New("unknown backend")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string      `mapstructure:"-"`   // optional, the bot runs only when it is set
	HTTP             HTTP        `mapstructure:"http"`
	Auth             Auth        `mapstructure:"auth"`
	Admin            Admin       `mapstructure:"admin"`
	Signup           Signup      `mapstructure:"signup"`
	Storage          Storage     `mapstructure:"storage"`
	Session          Session     `mapstructure:"session"`
	Certificate      Certificate `mapstructure:"certificate"`
	Archive          Archive     `mapstructure:"archive"`
}

type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Auth struct {
	JWTSecret    string        `mapstructure:"-"` // loaded from JWT_SECRET
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
	PasswordMode string        `mapstructure:"password_mode"` // plaintext or bcrypt
}

// Admin is the single console account. It is not stored in the users sheet.
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"-"` // loaded from ADMIN_PASSWORD
}

type Signup struct {
	VerifyIdentity bool `mapstructure:"verify_identity"`
}

// Storage selects the tabular backend: sheets, postgres or memory.
type Storage struct {
	Backend string `mapstructure:"backend"`
	Sheets  Sheets `mapstructure:"sheets"`
	DB      DB     `mapstructure:"database"`
}

type Sheets struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Session selects where quiz sessions live: memory or redis.
type Session struct {
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec for dropping expired in-memory sessions
	Redis         Redis         `mapstructure:"redis"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"-"` // loaded from REDIS_PASSWORD
	DB       int    `mapstructure:"db"`
}

type Certificate struct {
	Program   string `mapstructure:"program"`
	Authority string `mapstructure:"authority"`
	LeftLogo  string `mapstructure:"left_logo"`
	RightLogo string `mapstructure:"right_logo"`
	Seal      bool   `mapstructure:"seal"`
}

// Archive selects where issued certificates are copied: none, local or gcs.
type Archive struct {
	Backend         string `mapstructure:"backend"`
	Dir             string `mapstructure:"dir"`
	Bucket          string `mapstructure:"bucket"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Load reads configuration from config files, a .env file and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine, real environment variables take over.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("admin_password", "ADMIN_PASSWORD")
	_ = v.BindEnv("redis_password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Storage.DB.URL = v.GetString("database_url")
	cfg.Auth.JWTSecret = v.GetString("jwt_secret")
	cfg.Admin.Password = v.GetString("admin_password")
	cfg.Session.Redis.Password = v.GetString("redis_password")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("http.shutdown_timeout", "10s")

	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("auth.password_mode", "plaintext")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("signup.verify_identity", false)

	v.SetDefault("storage.backend", "sheets")
	v.SetDefault("storage.sheets.credentials_file", "credentials.json")
	v.SetDefault("storage.database.max_connections", 20)
	v.SetDefault("storage.database.max_conn_lifetime", "30s")

	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("session.sweep_schedule", "@every 10m")
	v.SetDefault("session.redis.addr", "localhost:6379")
	v.SetDefault("session.redis.db", 0)

	v.SetDefault("certificate.program", "STEM Flowlab Certification Quiz")
	v.SetDefault("certificate.authority", "Authorized by MyFlowLab and UTP")
	v.SetDefault("certificate.left_logo", "assets/logo_left.png")
	v.SetDefault("certificate.right_logo", "assets/logo_right.png")
	v.SetDefault("certificate.seal", true)

	v.SetDefault("archive.backend", "local")
	v.SetDefault("archive.dir", "data")
}

// Validate checks backend names and the secrets each backend needs.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET", ErrMissingEnvironmentVariables)
	}

	switch c.Storage.Backend {
	case "sheets":
		if c.Storage.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("%w: storage.sheets.spreadsheet_id", ErrMissingEnvironmentVariables)
		}
	case "postgres":
		if _, err := c.Storage.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: storage %q", ErrUnknownBackend, c.Storage.Backend)
	}

	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: session %q", ErrUnknownBackend, c.Session.Backend)
	}

	switch c.Archive.Backend {
	case "none", "local":
	case "gcs":
		if c.Archive.Bucket == "" {
			return fmt.Errorf("%w: archive.bucket", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: archive %q", ErrUnknownBackend, c.Archive.Backend)
	}

	return nil
}
