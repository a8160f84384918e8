package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Staff        StaffConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	Archive      ArchiveConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	} else if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.Archive.Location(); err != nil {
		return nil, fmt.Errorf("archive timezone: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"REPAIRS_APP_ENV" required:"true"`
	Port         string `envconfig:"REPAIRS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"REPAIRS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"REPAIRS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"REPAIRS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"REPAIRS_DB_DSN"`
	Driver string `envconfig:"REPAIRS_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"REPAIRS_DB_HOST"`
	Port     int    `envconfig:"REPAIRS_DB_PORT" default:"5432"`
	User     string `envconfig:"REPAIRS_DB_USER"`
	Password string `envconfig:"REPAIRS_DB_PASSWORD"`
	Name     string `envconfig:"REPAIRS_DB_NAME"`
	SSLMode  string `envconfig:"REPAIRS_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"REPAIRS_DB_SQLITE_PATH" default:"repairs.db"`

	MaxOpenConns    int           `envconfig:"REPAIRS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"REPAIRS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"REPAIRS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"REPAIRS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REPAIRS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"REPAIRS_REDIS_ADDR"`
	Password     string        `envconfig:"REPAIRS_REDIS_PASSWORD"`
	DB           int           `envconfig:"REPAIRS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REPAIRS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REPAIRS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REPAIRS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REPAIRS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REPAIRS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"REPAIRS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"REPAIRS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"REPAIRS_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"REPAIRS_REFRESH_TOKEN_TTL_MINUTES" default:"720"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"REPAIRS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"REPAIRS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"REPAIRS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"REPAIRS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"REPAIRS_ARGON_KEY_LEN" default:"32"`
}

// StaffConfig holds the argon2id-encoded PINs allowed to open a staff session.
type StaffConfig struct {
	PINHashes      []string `envconfig:"REPAIRS_STAFF_PIN_HASHES"`
	AdminPINHashes []string `envconfig:"REPAIRS_STAFF_ADMIN_PIN_HASHES"`
}

type RateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"REPAIRS_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"REPAIRS_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"REPAIRS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"REPAIRS_AUTO_MIGRATE" default:"false"`
}

type ArchiveConfig struct {
	RetentionMonths int           `envconfig:"REPAIRS_ARCHIVE_RETENTION_MONTHS" default:"6"`
	Timezone        string        `envconfig:"REPAIRS_ARCHIVE_TIMEZONE" default:"Australia/Sydney"`
	Interval        time.Duration `envconfig:"REPAIRS_CRON_INTERVAL" default:"1h"`
}

// Location resolves the archive timezone, defaulting to UTC when unset.
func (a ArchiveConfig) Location() (*time.Location, error) {
	if strings.TrimSpace(a.Timezone) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(a.Timezone)
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbEnvVars {
		if values[env] == "" {
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
