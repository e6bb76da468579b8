package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Catalog source kinds.
const (
	CatalogSourceDB       = "db"
	CatalogSourceSnapshot = "snapshot"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Address  AddressConfig
	Payment  PaymentConfig
	Admin    AdminConfig
	JWT      JWTConfig
	Password PasswordConfig
	Flags    FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Catalog.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"GUILHERME_APP_ENV" default:"development"`
	Port         string   `envconfig:"GUILHERME_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"GUILHERME_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"GUILHERME_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"GUILHERME_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GUILHERME_DB_DSN"`
	Driver string `envconfig:"GUILHERME_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"GUILHERME_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GUILHERME_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GUILHERME_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GUILHERME_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GUILHERME_REDIS_URL"`
	Address      string        `envconfig:"GUILHERME_REDIS_ADDR"`
	Password     string        `envconfig:"GUILHERME_REDIS_PASSWORD"`
	DB           int           `envconfig:"GUILHERME_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GUILHERME_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GUILHERME_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GUILHERME_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GUILHERME_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GUILHERME_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig selects the content backing source: the live database or a
// static JSON snapshot directory.
type CatalogConfig struct {
	Source      string `envconfig:"GUILHERME_CATALOG_SOURCE" default:"db"`
	SnapshotDir string `envconfig:"GUILHERME_CATALOG_SNAPSHOT_DIR" default:"./mock-data"`
}

func (c CatalogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Source)) {
	case CatalogSourceDB, CatalogSourceSnapshot:
		return nil
	}
	return fmt.Errorf("invalid catalog source %q (expected db or snapshot)", c.Source)
}

// UseSnapshot reports whether catalog reads come from the static snapshot.
func (c CatalogConfig) UseSnapshot() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceSnapshot)
}

type AddressConfig struct {
	BaseURL string        `envconfig:"GUILHERME_ADDRESS_LOOKUP_BASE_URL" default:"https://viacep.com.br"`
	Timeout time.Duration `envconfig:"GUILHERME_ADDRESS_LOOKUP_TIMEOUT" default:"10s"`
}

type PaymentConfig struct {
	QRBaseURL string        `envconfig:"GUILHERME_PAYMENT_QR_BASE_URL" default:"https://api.qrserver.com/v1/create-qr-code/"`
	QRSize    string        `envconfig:"GUILHERME_PAYMENT_QR_SIZE" default:"300x300"`
	Expiry    time.Duration `envconfig:"GUILHERME_PAYMENT_EXPIRY" default:"30m"`
}

type AdminConfig struct {
	Email        string `envconfig:"GUILHERME_ADMIN_EMAIL"`
	PasswordHash string `envconfig:"GUILHERME_ADMIN_PASSWORD_HASH"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GUILHERME_JWT_SECRET"`
	Issuer            string `envconfig:"GUILHERME_JWT_ISSUER" default:"guilherme-ecommerce"`
	ExpirationMinutes int    `envconfig:"GUILHERME_JWT_EXPIRATION_MINUTES" default:"480"`
}

// Expiration returns the admin token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GUILHERME_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GUILHERME_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GUILHERME_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GUILHERME_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GUILHERME_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"GUILHERME_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"GUILHERME_SQLITE_PATH" default:"guilherme.db"`
	AutoMigrate bool   `envconfig:"GUILHERME_AUTO_MIGRATE" default:"false"`
}
