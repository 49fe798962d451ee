package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	OTP         OTPConfig         `yaml:"otp"`
	Payment     PaymentConfig     `yaml:"payment"`
	Storage     StorageConfig     `yaml:"storage"`
	Upload      UploadConfig      `yaml:"upload"`
	Certificate CertificateConfig `yaml:"certificate"`
	Chatbot     ChatbotConfig     `yaml:"chatbot"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"gramseva"`
	CitizenTokenTTL time.Duration `yaml:"citizen_token_ttl" env:"AUTH_CITIZEN_TOKEN_TTL" env-default:"24h"`
	AdminTokenTTL   time.Duration `yaml:"admin_token_ttl"   env:"AUTH_ADMIN_TOKEN_TTL"   env-default:"8h"`
	PasswordCost    int           `yaml:"password_cost"     env:"AUTH_PASSWORD_COST"     env-default:"10"`
}

// OTPConfig holds one-time login code settings.
// Mock mode uses MockCode for every issue and echoes it in the response.
type OTPConfig struct {
	Length   int           `yaml:"length"    env:"OTP_LENGTH"    env-default:"6"`
	Expiry   time.Duration `yaml:"expiry"    env:"OTP_EXPIRY"    env-default:"10m"`
	Mock     bool          `yaml:"mock"      env:"OTP_MOCK"      env-default:"true"`
	MockCode string        `yaml:"mock_code" env:"OTP_MOCK_CODE" env-default:"123456"`
}

// PaymentConfig holds payment gateway settings.
type PaymentConfig struct {
	Mock bool `yaml:"mock" env:"PAYMENT_MOCK" env-default:"true"`
}

// StorageConfig holds the local file store root. Uploads and rendered
// certificates live in subdirectories beneath it.
type StorageConfig struct {
	Dir string `yaml:"dir" env:"STORAGE_DIR" env-default:"./data"`
}

// UploadConfig holds document upload settings.
type UploadConfig struct {
	MaxSizeBytes      int64  `yaml:"max_size_bytes"     env:"UPLOAD_MAX_SIZE_BYTES"     env-default:"5242880"`
	AllowedExtensions string `yaml:"allowed_extensions" env:"UPLOAD_ALLOWED_EXTENSIONS" env-default:"pdf,jpg,jpeg,png"`
}

// CertificateConfig holds certificate issuance settings.
type CertificateConfig struct {
	ValidityDays  int    `yaml:"validity_days"   env:"CERT_VALIDITY_DAYS"   env-default:"365"`
	VerifyBaseURL string `yaml:"verify_base_url" env:"CERT_VERIFY_BASE_URL" env-default:"https://gramseva.gov.in/verify"`
}

// ChatbotConfig holds assistant settings. An empty API key selects the
// deterministic local responder.
type ChatbotConfig struct {
	APIKey string `yaml:"api_key" env:"CHATBOT_API_KEY"`
	Model  string `yaml:"model"   env:"CHATBOT_MODEL" env-default:"claude-3-5-haiku-latest"`
}

// RateLimitConfig holds per-IP token bucket settings for the code-issue route.
type RateLimitConfig struct {
	Rate   float64       `yaml:"rate"   env:"RATE_LIMIT_RATE"   env-default:"0.1"`
	Burst  int           `yaml:"burst"  env:"RATE_LIMIT_BURST"  env-default:"3"`
	Window time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" env-default:"10m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
