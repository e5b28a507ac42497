package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	config     *Config
	configOnce sync.Once
)

const defaultJWTSecret = "ecomm-secret-key-change-in-production"

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string
	GinMode string

	// Database
	DBDriver        string // "mysql"(默认) 或 "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite 数据库文件路径
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)
	DBLogLevel      string // silent, error, warn, info

	// Server
	ServerPort string
	CORSOrigin string
	LogDir     string

	// Redis
	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisDB       int
	RedisPassword string
	CacheTTL      time.Duration

	// JWT Authentication
	JWTSecretKey string
	TokenTTL     time.Duration
	CookieSecure bool

	// Admin
	DefaultAdminEmail    string
	DefaultAdminPassword string

	// Upload
	PublicDir      string
	UploadDriver   string // "local"(默认) 或 "s3"
	UploadMaxBytes int64
	S3Bucket       string
	S3Region       string
}

type loader struct {
	v *viper.Viper
}

func newLoader() *loader {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Printf("Warning: failed to read config file: %v\n", err)
		}
	}
	return &loader{v: v}
}

// LoadConfig loads config from environment variables (and an optional config.yaml) based on ENV_TYPE
func LoadConfig() *Config {
	l := newLoader()

	// Get environment type (default to LOCAL if not set)
	envType := strings.ToUpper(l.getEnv("ENV_TYPE", "LOCAL"))
	prefix := ""

	// Set prefix based on environment type
	switch envType {
	case "LOCAL":
		prefix = "LOCAL_"
	case "SERVER":
		prefix = "SERVER_"
	default:
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	return &Config{
		EnvType: envType,
		GinMode: l.getEnv("GIN_MODE", "debug"),

		// Database config - use environment-specific variables if available
		DBDriver:        strings.ToLower(l.getPrefixed(prefix, "DB_DRIVER", "mysql")),
		DBHost:          l.getPrefixed(prefix, "DB_HOST", "127.0.0.1"),
		DBUser:          l.getPrefixed(prefix, "DB_USER", "root"),
		DBPassword:      l.getPrefixed(prefix, "DB_PASSWORD", ""),
		DBName:          l.getPrefixed(prefix, "DB_NAME", "ecomm"),
		DBPort:          l.getPrefixed(prefix, "DB_PORT", "3306"),
		DBPath:          l.getPrefixed(prefix, "DB_PATH", "ecomm.db"),
		DBMigrationMode: l.getPrefixed(prefix, "DB_MIGRATION_MODE", "auto"),
		DBLogLevel:      l.getEnv("DB_LOG_LEVEL", "warn"),

		// Server config
		ServerPort: l.getPrefixed(prefix, "SERVER_PORT", "8080"),
		CORSOrigin: l.getEnv("CORS_ORIGIN", ""),
		LogDir:     l.getEnv("LOG_DIR", "logs"),

		// Redis config
		RedisEnabled:  l.getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:     l.getPrefixed(prefix, "REDIS_HOST", "localhost"),
		RedisPort:     l.getPrefixed(prefix, "REDIS_PORT", "6379"),
		RedisDB:       l.getEnvAsInt("REDIS_DB", 0),
		RedisPassword: l.getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(l.getEnvAsInt("CACHE_TTL_SECONDS", 30)) * time.Second,

		// JWT Config
		JWTSecretKey: l.getEnv("JWT_SECRET_KEY", defaultJWTSecret),
		TokenTTL:     time.Duration(l.getEnvAsInt("TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		CookieSecure: l.getEnvAsBool("COOKIE_SECURE", envType == "SERVER"),

		// Admin Config
		DefaultAdminEmail:    l.getEnv("DEFAULT_ADMIN_EMAIL", "admin@ecomstore.com"),
		DefaultAdminPassword: l.getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),

		// Upload config
		PublicDir:      l.getEnv("PUBLIC_DIR", "public"),
		UploadDriver:   strings.ToLower(l.getEnv("UPLOAD_DRIVER", "local")),
		UploadMaxBytes: int64(l.getEnvAsInt("UPLOAD_MAX_BYTES", 5<<20)),
		S3Bucket:       l.getEnv("S3_BUCKET", ""),
		S3Region:       l.getEnv("S3_REGION", "us-east-1"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// Validate 检查配置组合是否可用
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql":
		if c.DBHost == "" || c.DBName == "" {
			return errors.New("DB_HOST and DB_NAME are required for the mysql driver")
		}
	case "sqlite":
		if c.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.UploadDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when UPLOAD_DRIVER is s3")
		}
	default:
		return fmt.Errorf("unsupported UPLOAD_DRIVER %q", c.UploadDriver)
	}

	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if c.EnvType == "SERVER" && c.JWTSecretKey == defaultJWTSecret {
		return errors.New("JWT_SECRET_KEY must be set in the SERVER environment")
	}
	return nil
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// getPrefixed 优先读取带环境前缀的键，再回退到不带前缀的键
func (l *loader) getPrefixed(prefix, key, defaultValue string) string {
	return l.getEnv(prefix+key, l.getEnv(key, defaultValue))
}

// Helper function to get a value with default value
func (l *loader) getEnv(key, defaultValue string) string {
	if l.v.IsSet(key) {
		if value := strings.TrimSpace(l.v.GetString(key)); value != "" {
			return value
		}
	}
	return defaultValue
}

// Helper function to get a value as integer with default value
func (l *loader) getEnvAsInt(key string, defaultValue int) int {
	if !l.v.IsSet(key) {
		return defaultValue
	}
	value := l.v.GetInt(key)
	if value == 0 && strings.TrimSpace(l.v.GetString(key)) != "0" {
		return defaultValue
	}
	return value
}

// Helper function to get a value as boolean with default value
func (l *loader) getEnvAsBool(key string, defaultValue bool) bool {
	if !l.v.IsSet(key) || strings.TrimSpace(l.v.GetString(key)) == "" {
		return defaultValue
	}
	return l.v.GetBool(key)
}
