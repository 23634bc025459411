package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "QUARTO_DB_DSN"
	EnvDBHost = "QUARTO_DB_HOST"
	EnvDBUser = "QUARTO_DB_USER"
	EnvDBName = "QUARTO_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Availability AvailabilityConfig
	Payment      PaymentConfig
	Notify       NotifyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUARTO_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"QUARTO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUARTO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"QUARTO_DB_DSN"`
	Driver string `envconfig:"QUARTO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUARTO_DB_HOST"`
	LegacyPort     int    `envconfig:"QUARTO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUARTO_DB_USER"`
	LegacyPassword string `envconfig:"QUARTO_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUARTO_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUARTO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUARTO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUARTO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUARTO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUARTO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUARTO_REDIS_URL"`
	Address      string        `envconfig:"QUARTO_REDIS_ADDR"`
	Password     string        `envconfig:"QUARTO_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUARTO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUARTO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUARTO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUARTO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUARTO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUARTO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUARTO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUARTO_AUTO_MIGRATE" default:"false"`
}

// AvailabilityConfig tunes the read-side availability cache. The checkout path
// never reads through the cache.
type AvailabilityConfig struct {
	CacheTTL time.Duration `envconfig:"QUARTO_AVAILABILITY_CACHE_TTL" default:"30s"`
}

type PaymentConfig struct {
	ReferencePrefix string `envconfig:"QUARTO_PAYMENT_REFERENCE_PREFIX" default:"QRT"`
}

type NotifyConfig struct {
	FromEmail string `envconfig:"QUARTO_NOTIFY_FROM_EMAIL" default:"bookings@quarto.example"`
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
