package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Log       LogConfig
	Document  DocumentConfig
}

type AppConfig struct {
	Name           string
	Env            string
	Port           string
	Debug          bool
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	Timezone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        time.Duration
	RefreshExpiryHours time.Duration
}

type StorageConfig struct {
	UploadMaxSize int64
	// ProfileImageSize is the edge of the square canvas logos and signatures are fitted into
	ProfileImageSize int
	// BrandImageMaxDimension caps either side of a gallery image
	BrandImageMaxDimension int
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// RedisConfig enables the Redis numbering backend when Addr is set
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// DocumentConfig holds the defaults stamped onto new documents
type DocumentConfig struct {
	QuotationValidityDays int
	ProposalValidityDays  int
	ProposalGSTRate       float64
}

// Load reads configuration from an optional .env file and the environment.
// Warnings are returned rather than logged since the logger is built from
// this config.
func Load() (*Config, []string) {
	var warnings []string

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		warnings = append(warnings, fmt.Sprintf(".env file not found, using environment variables: %v", err))
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "quotedesk-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_REQUEST_TIMEOUT_SECONDS", 30)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "quotedesk")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 100)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 10)
	viper.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 168)
	viper.SetDefault("UPLOAD_MAX_SIZE", 5242880)
	viper.SetDefault("PROFILE_IMAGE_SIZE", 300)
	viper.SetDefault("BRAND_IMAGE_MAX_DIMENSION", 500)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("QUOTATION_VALIDITY_DAYS", 30)
	viper.SetDefault("PROPOSAL_VALIDITY_DAYS", 7)
	viper.SetDefault("PROPOSAL_GST_RATE", 8.9)

	return &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Env:            viper.GetString("APP_ENV"),
			Port:           viper.GetString("APP_PORT"),
			Debug:          viper.GetBool("APP_DEBUG"),
			RequestTimeout: time.Duration(viper.GetInt("APP_REQUEST_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetString("DB_PORT"),
			Name:            viper.GetString("DB_NAME"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			SSLMode:         viper.GetString("DB_SSL_MODE"),
			Timezone:        viper.GetString("DB_TIMEZONE"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute,
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			RefreshExpiryHours: time.Duration(viper.GetInt("JWT_REFRESH_EXPIRY_HOURS")) * time.Hour,
		},
		Storage: StorageConfig{
			UploadMaxSize:          viper.GetInt64("UPLOAD_MAX_SIZE"),
			ProfileImageSize:       viper.GetInt("PROFILE_IMAGE_SIZE"),
			BrandImageMaxDimension: viper.GetInt("BRAND_IMAGE_MAX_DIMENSION"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Document: DocumentConfig{
			QuotationValidityDays: viper.GetInt("QUOTATION_VALIDITY_DAYS"),
			ProposalValidityDays:  viper.GetInt("PROPOSAL_VALIDITY_DAYS"),
			ProposalGSTRate:       viper.GetFloat64("PROPOSAL_GST_RATE"),
		},
	}, warnings
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// IsProduction reports whether the app runs with production settings
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
