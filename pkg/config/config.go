package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "sharkleaf"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "SHARKLEAF_APP_ENV"
	EnvDBDSN  = "SHARKLEAF_DB_DSN"
	EnvDBHost = "SHARKLEAF_DB_HOST"
	EnvDBUser = "SHARKLEAF_DB_USER"
	EnvDBName = "SHARKLEAF_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	OpenAI        OpenAIConfig
	Trail         TrailConfig
	CORS          CORSConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHARKLEAF_APP_ENV" required:"true"`
	Port         string `envconfig:"SHARKLEAF_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHARKLEAF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHARKLEAF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"SHARKLEAF_DB_DSN"`

	LegacyHost     string `envconfig:"SHARKLEAF_DB_HOST"`
	LegacyPort     int    `envconfig:"SHARKLEAF_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHARKLEAF_DB_USER"`
	LegacyPassword string `envconfig:"SHARKLEAF_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHARKLEAF_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHARKLEAF_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHARKLEAF_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHARKLEAF_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHARKLEAF_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHARKLEAF_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHARKLEAF_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHARKLEAF_REDIS_ADDR"`
	Password     string        `envconfig:"SHARKLEAF_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHARKLEAF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHARKLEAF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHARKLEAF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHARKLEAF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHARKLEAF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHARKLEAF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"SHARKLEAF_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"SHARKLEAF_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"SHARKLEAF_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"SHARKLEAF_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHARKLEAF_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHARKLEAF_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHARKLEAF_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHARKLEAF_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHARKLEAF_ARGON_KEY_LEN" default:"32"`
}

type OpenAIConfig struct {
	APIKey string `envconfig:"SHARKLEAF_OPENAI_API_KEY"`
	Model  string `envconfig:"SHARKLEAF_OPENAI_MODEL" default:"gpt-4o-mini"`
}

// TrailConfig tunes the species-information lookup collaborator.
type TrailConfig struct {
	CacheTTL time.Duration `envconfig:"SHARKLEAF_TRAIL_CACHE_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHARKLEAF_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// AuthRateLimitConfig throttles the credential-facing endpoints. A zero
// window disables the corresponding limiter.
type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"SHARKLEAF_AUTH_RL_LOGIN_WINDOW" default:"5m"`
	LoginIPLimit       int           `envconfig:"SHARKLEAF_AUTH_RL_LOGIN_IP_LIMIT" default:"20"`
	LoginEmailLimit    int           `envconfig:"SHARKLEAF_AUTH_RL_LOGIN_EMAIL_LIMIT" default:"10"`
	RegisterWindow     time.Duration `envconfig:"SHARKLEAF_AUTH_RL_REGISTER_WINDOW" default:"15m"`
	RegisterIPLimit    int           `envconfig:"SHARKLEAF_AUTH_RL_REGISTER_IP_LIMIT" default:"10"`
	RegisterEmailLimit int           `envconfig:"SHARKLEAF_AUTH_RL_REGISTER_EMAIL_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHARKLEAF_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}
	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
