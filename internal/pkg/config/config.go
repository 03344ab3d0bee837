package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Store     StoreConfig
	Booking   BookingConfig
	Pricing   PricingConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:""`
}

// STORAGE_DRIVER=memory keeps everything in process; useful for local runs and demos.
type StoreConfig struct {
	Driver           string        `envconfig:"STORAGE_DRIVER" default:"postgres"`
	OpTimeout        time.Duration `envconfig:"STORE_OP_TIMEOUT" default:"5s"`
	CalendarMaxBytes int           `envconfig:"CALENDAR_MAX_BYTES" default:"1048576"`
}

type BookingConfig struct {
	RequireHostApproval bool `envconfig:"BOOKING_REQUIRE_HOST_APPROVAL" default:"false"`
}

type PricingConfig struct {
	ServiceFeeBps int64  `envconfig:"PRICING_SERVICE_FEE_BPS" default:"800"`
	TaxBps        int64  `envconfig:"PRICING_TAX_BPS" default:"1800"`
	Rounding      string `envconfig:"PRICING_ROUNDING" default:"floor"`
}

type RateLimitConfig struct {
	ActionsPerMinute int `envconfig:"ACTION_RATE_PER_MIN" default:"60"`
	ActionBurst      int `envconfig:"ACTION_RATE_BURST" default:"10"`
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StoreDriverPostgres, StoreDriverMemory, c.Store.Driver)
	}
	if c.Store.Driver == StoreDriverPostgres && (c.DB.User == "" || c.DB.DBName == "") {
		return fmt.Errorf("DB_USER and DB_NAME are required when STORAGE_DRIVER=%s", StoreDriverPostgres)
	}
	if c.Store.OpTimeout <= 0 {
		return fmt.Errorf("STORE_OP_TIMEOUT must be positive")
	}
	if c.Pricing.ServiceFeeBps < 0 || c.Pricing.TaxBps < 0 {
		return fmt.Errorf("pricing basis points cannot be negative")
	}
	return nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Store: StoreConfig{
			Driver:           StoreDriverPostgres,
			OpTimeout:        5 * time.Second,
			CalendarMaxBytes: 1 << 20,
		},
		Pricing: PricingConfig{
			ServiceFeeBps: 800,
			TaxBps:        1800,
			Rounding:      "floor",
		},
		RateLimit: RateLimitConfig{
			ActionsPerMinute: 600,
			ActionBurst:      100,
		},
	}
}
