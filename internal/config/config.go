package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration constants
const (
	// Server Configuration
	Port          = "PORT"
	Host          = "HOST"
	BaseURL       = "BASE_URL"
	AllowedOrigin = "ALLOWED_ORIGIN"

	// Mongo Configuration
	MongoURI = "MONGO_URI"
	MongoDB  = "MONGO_DB"

	// Tenant scope Configuration
	OrgID = "ORG_ID"
	AppID = "APP_ID"

	// Auth Configuration
	JWTSecret = "JWT_SECRET"

	// Redis Configuration
	RedisAddr     = "REDIS_ADDR"
	RedisPassword = "REDIS_PASSWORD"
	RedisDB       = "REDIS_DB"

	// Upload Configuration
	UploadDir         = "UPLOAD_DIR"
	UploadMaxFileSize = "UPLOAD_MAX_FILE_SIZE"
	UploadMaxFiles    = "UPLOAD_MAX_FILES"

	// Listing Configuration
	ListingFetchCap = "LISTING_FETCH_CAP"

	// Logging Configuration
	LogLevel  = "LOG_LEVEL"
	LogFormat = "LOG_FORMAT"

	// WebSocket Configuration
	WSReadBufferSize  = "WS_READ_BUFFER_SIZE"
	WSWriteBufferSize = "WS_WRITE_BUFFER_SIZE"
	WSMaxWorkers      = 10
	WSMaxCapacity     = 100
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	Scope     ScopeConfig
	Auth      AuthConfig
	Redis     RedisConfig
	Upload    UploadConfig
	Listing   ListingConfig
	Logging   LoggingConfig
	WebSocket WebSocketConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port          string
	Host          string
	BaseURL       string
	AllowedOrigin string
}

// MongoConfig holds document store configuration
type MongoConfig struct {
	URI      string
	Database string
}

// ScopeConfig holds the org/app identifiers every document is scoped under.
// They are explicit configuration handed to the repository factory, never
// ambient lookups.
type ScopeConfig struct {
	OrgID string
	AppID string
}

// AuthConfig holds token verification configuration
type AuthConfig struct {
	JWTSecret string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir         string
	MaxFileSize int64
	MaxFiles    int
}

// ListingConfig holds listing configuration
type ListingConfig struct {
	FetchCap int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
}

// LoadConfig loads configuration from environment variables and .envrc file
func LoadConfig() (*Config, error) {
	// Set up Viper
	viper.SetConfigName(".envrc")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Enable environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	setDefaults()

	// Read config file (optional, will use env vars if file doesn't exist)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, but that's okay - we'll use environment variables
	}

	config := &Config{
		Server: ServerConfig{
			Port:          viper.GetString(Port),
			Host:          viper.GetString(Host),
			BaseURL:       viper.GetString(BaseURL),
			AllowedOrigin: viper.GetString(AllowedOrigin),
		},
		Mongo: MongoConfig{
			URI:      viper.GetString(MongoURI),
			Database: viper.GetString(MongoDB),
		},
		Scope: ScopeConfig{
			OrgID: viper.GetString(OrgID),
			AppID: viper.GetString(AppID),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString(JWTSecret),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString(RedisAddr),
			Password: viper.GetString(RedisPassword),
			DB:       viper.GetInt(RedisDB),
		},
		Upload: UploadConfig{
			Dir:         viper.GetString(UploadDir),
			MaxFileSize: viper.GetInt64(UploadMaxFileSize),
			MaxFiles:    viper.GetInt(UploadMaxFiles),
		},
		Listing: ListingConfig{
			FetchCap: viper.GetInt(ListingFetchCap),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString(LogLevel),
			Format: viper.GetString(LogFormat),
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  viper.GetInt(WSReadBufferSize),
			WriteBufferSize: viper.GetInt(WSWriteBufferSize),
		},
	}

	return config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	// Server defaults
	viper.SetDefault(Port, "4000")
	viper.SetDefault(Host, "localhost")
	viper.SetDefault(BaseURL, "http://localhost:4000")
	viper.SetDefault(AllowedOrigin, "http://localhost:3000")

	// Mongo defaults
	viper.SetDefault(MongoURI, "mongodb://localhost:27017")
	viper.SetDefault(MongoDB, "marketplace")

	// Scope defaults
	viper.SetDefault(OrgID, "default")
	viper.SetDefault(AppID, "web")

	// Redis defaults
	viper.SetDefault(RedisAddr, "localhost:6379")
	viper.SetDefault(RedisPassword, "")
	viper.SetDefault(RedisDB, 0)

	// Upload defaults
	viper.SetDefault(UploadDir, "uploads")
	viper.SetDefault(UploadMaxFileSize, 5*1024*1024)
	viper.SetDefault(UploadMaxFiles, 5)

	// Listing defaults
	viper.SetDefault(ListingFetchCap, 200)

	// Logging defaults
	viper.SetDefault(LogLevel, "info")
	viper.SetDefault(LogFormat, "json")

	// WebSocket defaults
	viper.SetDefault(WSReadBufferSize, 1024)
	viper.SetDefault(WSWriteBufferSize, 1024)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo URI is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Redis.Addr == "" {
		return fmt.Errorf("Redis address is required")
	}

	if c.Upload.MaxFileSize <= 0 || c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("upload limits must be positive")
	}

	if c.Listing.FetchCap <= 0 {
		return fmt.Errorf("listing fetch cap must be positive")
	}

	return nil
}
