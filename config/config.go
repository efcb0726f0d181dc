package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"

	HasherMock   = "mock"
	HasherBcrypt = "bcrypt"

	TokenMock = "mock"
	TokenJWT  = "jwt"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// Store backend: memory, postgres or mongo
	StoreDriver string

	// Postgres
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBMaxConns    int32
	DBMinConns    int32
	DBMaxConnLife time.Duration

	// Migrations
	MigrationsDir string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Redis; empty RedisAddr keeps sessions and settings in process memory
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	// Auth
	PasswordHasher string // mock (base64) or bcrypt
	TokenMode      string // mock (base64 JSON) or jwt
	JWTSecret      string
	TokenTTL       time.Duration

	// Cookies
	CookieDomain string
	CookieSecure bool

	// CORS
	CORSAllowedOrigins string // comma-separated

	// Kakao local search
	KakaoBaseURL  string
	KakaoRestKey  string // server-wide fallback when a user has none stored
	KakaoTimeout  time.Duration
	KakaoCacheTTL time.Duration

	// Elasticsearch
	ElasticsearchAddrs string // comma-separated; empty disables saved-place search
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESPlacesIndex      string

	// Google Cloud Storage; empty bucket disables course export
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQEmailQueue string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Brand for emails
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
	AppURL         string

	// Email sending toggle
	MailSendEnabled bool

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool

	// Relay store changes between instances over Redis pub/sub
	ChangeBridgeEnabled bool
	ChangeChannel       string
	SSEHeartbeat        time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

func oneof(key, def string, allowed ...string) string {
	v := strings.ToLower(getenv(key, def))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	log.Printf("invalid value for %s: %q, using default %q", key, v, def)
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "courseitda"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		StoreDriver: oneof("STORE_DRIVER", StoreMemory, StoreMemory, StorePostgres, StoreMongo),

		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        getenv("DB_USER", "postgres"),
		DBPassword:    getenv("DB_PASSWORD", "postgres"),
		DBName:        getenv("DB_NAME", "courseitda"),
		DBSSLMode:     getenv("DB_SSLMODE", "disable"),
		DBMaxConns:    int32(getint("DB_MAX_CONNS", 10)),
		DBMinConns:    int32(getint("DB_MIN_CONNS", 2)),
		DBMaxConnLife: getdur("DB_MAX_CONN_LIFETIME", time.Hour),

		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getenv("MONGO_DATABASE", "courseitda"),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),
		SessionTTL:    getdur("SESSION_TTL", 0),

		PasswordHasher: oneof("AUTH_PASSWORD_HASHER", HasherMock, HasherMock, HasherBcrypt),
		TokenMode:      oneof("AUTH_TOKEN_MODE", TokenMock, TokenMock, TokenJWT),
		JWTSecret:      getenv("JWT_SECRET", "devsecret"),
		TokenTTL:       getdur("TOKEN_TTL", 24*time.Hour),

		CookieDomain: getenv("COOKIE_DOMAIN", "localhost"),
		CookieSecure: getbool("COOKIE_SECURE", false),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		KakaoBaseURL:  getenv("KAKAO_BASE_URL", "https://dapi.kakao.com"),
		KakaoRestKey:  getenv("KAKAO_REST_KEY", ""),
		KakaoTimeout:  getdur("KAKAO_TIMEOUT", 5*time.Second),
		KakaoCacheTTL: getdur("KAKAO_CACHE_TTL", 10*time.Minute),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESPlacesIndex:      getenv("ES_PLACES_INDEX", "courseitda_places"),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQEmailQueue: getenv("RABBITMQ_EMAIL_QUEUE", "emails"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		CompanyName:    getenv("COMPANY_NAME", "courseitda"),
		CompanyAddress: getenv("COMPANY_ADDRESS", ""),
		LogoURL:        getenv("LOGO_URL", ""),
		SupportURL:     getenv("SUPPORT_URL", ""),
		AppURL:         getenv("APP_URL", "http://localhost:5173"),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		DebugMetricsEnabled: getbool("DEBUG_METRICS_ENABLED", false),

		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),

		ChangeBridgeEnabled: getbool("CHANGE_BRIDGE_ENABLED", false),
		ChangeChannel:       getenv("CHANGE_CHANNEL", "courseitda:changes"),
		SSEHeartbeat:        getdur("SSE_HEARTBEAT", 25*time.Second),
	}
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string { return splitCSV(c.CORSAllowedOrigins) }

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string { return splitCSV(c.ElasticsearchAddrs) }

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
