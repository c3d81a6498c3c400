package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all the configuration for the application.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"production"`
	HTTPServer `yaml:"http_server"`
	Database   `yaml:"database"`
	Redis      `yaml:"redis"`
	Auth       `yaml:"auth"`
	Badge      `yaml:"badge"`
	Analytics  `yaml:"analytics"`
	UserAgent  `yaml:"user_agent"`
}

// HTTPServer holds HTTP server specific configuration.
type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"30s"`
	CORSOrigins     []string      `yaml:"cors_origins" env:"HTTP_CORS_ORIGINS" env-separator:"," env-default:"*"`
}

// Database holds database connection configuration.
// Driver is one of "postgres", "sqlite" or "memory".
type Database struct {
	Driver          string `yaml:"driver" env:"DB_DRIVER" env-default:"postgres"`
	Host            string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port            int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User            string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password        string `yaml:"password" env:"DB_PASSWORD" env-default:""`
	DBName          string `yaml:"dbname" env:"DB_NAME" env-default:"aidir"`
	SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
	Timezone        string `yaml:"timezone" env:"DB_TIMEZONE" env-default:"UTC"`
	SQLitePath      string `yaml:"sqlite_path" env:"DB_SQLITE_PATH" env-default:"file::memory:?cache=shared"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"100"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" env-default:"1h"`
	AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE" env-default:"true"`
	SeedData        bool   `yaml:"seed_data" env:"DB_SEED_DATA" env-default:"false"`
	LogQueries      bool   `yaml:"log_queries" env:"DB_LOG_QUERIES" env-default:"false"`
}

// Redis holds the configuration of the shared click rate limiter.
type Redis struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Auth holds bearer token verification settings.
type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"change-me"`
	Issuer    string `yaml:"issuer" env:"JWT_ISSUER" env-default:"AIDIR-Backend"`
}

// Badge holds badge rendering and caching configuration.
type Badge struct {
	PlatformName    string        `yaml:"platform_name" env:"BADGE_PLATFORM_NAME" env-default:"AI Directory"`
	BaseURL         string        `yaml:"base_url" env:"BADGE_BASE_URL" env-default:"http://localhost:8080"`
	ProductPath     string        `yaml:"product_path" env:"BADGE_PRODUCT_PATH" env-default:"/products/"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env:"BADGE_CACHE_TTL" env-default:"5m"`
	StaleWindow     time.Duration `yaml:"stale_window" env:"BADGE_STALE_WINDOW" env-default:"60s"`
	LookupTimeout   time.Duration `yaml:"lookup_timeout" env:"BADGE_LOOKUP_TIMEOUT" env-default:"3s"`
	ClickRateLimit  int           `yaml:"click_rate_limit" env:"BADGE_CLICK_RATE_LIMIT" env-default:"10"`
	ClickRateWindow time.Duration `yaml:"click_rate_window" env:"BADGE_CLICK_RATE_WINDOW" env-default:"60s"`
	SweepInterval   time.Duration `yaml:"sweep_interval" env:"BADGE_SWEEP_INTERVAL" env-default:"1m"`
}

// Analytics holds click processing and dashboard configuration.
type Analytics struct {
	Workers         int           `yaml:"workers" env:"ANALYTICS_WORKERS" env-default:"4"`
	BufferSize      int           `yaml:"buffer_size" env:"ANALYTICS_BUFFER_SIZE" env-default:"1000"`
	RetryAttempts   int           `yaml:"retry_attempts" env:"ANALYTICS_RETRY_ATTEMPTS" env-default:"3"`
	RetryDelay      time.Duration `yaml:"retry_delay" env:"ANALYTICS_RETRY_DELAY" env-default:"100ms"`
	StatsWindowDays int           `yaml:"stats_window_days" env:"ANALYTICS_STATS_WINDOW_DAYS" env-default:"30"`
	TopReferrers    int           `yaml:"top_referrers" env:"ANALYTICS_TOP_REFERRERS" env-default:"5"`
}

// UserAgent holds User-Agent parser configuration.
type UserAgent struct {
	RegexesPath string `yaml:"regexes_path" env:"UA_REGEXES_PATH" env-default:"assets/regexes.yaml"`
}

// MustLoad loads the application configuration.
func MustLoad() *Config {
	// Try to load .env file (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	// Check if config file path is specified
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/local.yml" // default path
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// Load reads the configuration file at path, or the environment only when
// the file does not exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// If config file doesn't exist, use environment variables only
	log.Println("Config file not found, using environment variables only")
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
