package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config aggregates every runtime knob for the storefront backend.
type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	Password      PasswordConfig
	Cart          CartConfig
	Checkout      CheckoutConfig
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	FeatureFlags  FeatureFlagsConfig
}

// Load parses the TS_-prefixed environment into a Config.
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
	Env          string `envconfig:"TS_APP_ENV" required:"true"`
	Port         string `envconfig:"TS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TS_DB_DSN"`
	Driver string `envconfig:"TS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TS_DB_HOST"`
	Port     int    `envconfig:"TS_DB_PORT" default:"5432"`
	User     string `envconfig:"TS_DB_USER"`
	Password string `envconfig:"TS_DB_PASSWORD"`
	Name     string `envconfig:"TS_DB_NAME"`
	SSLMode  string `envconfig:"TS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TS_REDIS_URL"`
	Address      string        `envconfig:"TS_REDIS_ADDR"`
	Password     string        `envconfig:"TS_REDIS_PASSWORD"`
	DB           int           `envconfig:"TS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"TS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"TS_JWT_ISSUER" default:"timeless-strands"`
	ExpirationMinutes      int    `envconfig:"TS_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"TS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"TS_AUTH_LOGIN_WINDOW" default:"10m"`
	LoginIPLimit    int           `envconfig:"TS_AUTH_LOGIN_IP_LIMIT" default:"30"`
	LoginEmailLimit int           `envconfig:"TS_AUTH_LOGIN_EMAIL_LIMIT" default:"5"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"TS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"TS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"TS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"TS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"TS_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	// TTL bounds how long an abandoned cart slot survives in Redis.
	TTL time.Duration `envconfig:"TS_CART_TTL" default:"720h"`
}

type CheckoutConfig struct {
	// Fallback payment instructions when the settings table has no override.
	MpesaPaybill string `envconfig:"TS_MPESA_PAYBILL" default:"522522"`
	MpesaAccount string `envconfig:"TS_MPESA_ACCOUNT" default:"1342330668"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"TS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"TS_GCS_BUCKET_NAME"`
	UploadURLExpiry   time.Duration `envconfig:"TS_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"TS_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type MediaConfig struct {
	MaxUploadMB int `envconfig:"TS_MAX_UPLOAD_MB" default:"50"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
