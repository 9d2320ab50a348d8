package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores dispatch service settings.
type Config struct {
	Port      int
	DB        DB
	Dispatch  Dispatch
	Sweeper   Sweeper
	Fanout    Fanout
	Kafka     Kafka
	Redis     Redis
	RateLimit RateLimit
	Catalog   CatalogRetry
	Admin     Admin
	Log       Log
}

// DB holds Postgres connection settings.
type DB struct {
	Host    string
	Port    string
	User    string
	Pass    string
	Name    string
	Migrate bool
}

// DSN returns a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Dispatch holds the claim window, proximity radius and pricing constants.
type Dispatch struct {
	ClaimWindow      time.Duration
	RadiusKM         float64
	TaxRate          float64
	DeliveryFeeCents int64
	OperationTimeout time.Duration
}

// Sweeper holds the expiry sweep period.
type Sweeper struct {
	Interval time.Duration
}

// Fanout sizes the asynchronous notification pool.
type Fanout struct {
	Workers   int
	QueueSize int
}

// Kafka holds broker settings. An empty broker list disables Kafka.
type Kafka struct {
	Brokers       []string
	GroupID       string
	DeliveryTopic string
	EventsTopic   string
}

// Enabled reports whether brokers are configured.
func (k Kafka) Enabled() bool { return len(k.Brokers) > 0 }

// Redis holds pub/sub settings. An empty address disables Redis fan-out.
type Redis struct {
	Addr          string
	Password      string
	DB            int
	ChannelPrefix string
}

// Enabled reports whether an address is configured.
func (r Redis) Enabled() bool { return r.Addr != "" }

// RateLimit holds per-client HTTP rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// CatalogRetry holds the retry policy of catalog price lookups.
type CatalogRetry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Admin holds the operator listener settings. An empty Addr disables it.
type Admin struct {
	Addr string
	User string
	Pass string
}

// Log selects level and output format.
type Log struct {
	Level  string
	Pretty bool
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := defaultConfig()
	e := &envReader{}

	cfg.Port = e.integer("PORT", cfg.Port)

	cfg.DB.Host = e.str("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = e.str("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = e.str("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = e.str("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = e.str("POSTGRES_DB", cfg.DB.Name)
	cfg.DB.Migrate = e.boolean("POSTGRES_MIGRATE", cfg.DB.Migrate)

	cfg.Dispatch.ClaimWindow = e.duration("DISPATCH_CLAIM_WINDOW", cfg.Dispatch.ClaimWindow)
	cfg.Dispatch.RadiusKM = e.float("DISPATCH_RADIUS_KM", cfg.Dispatch.RadiusKM)
	cfg.Dispatch.TaxRate = e.float("DISPATCH_TAX_RATE", cfg.Dispatch.TaxRate)
	cfg.Dispatch.DeliveryFeeCents = int64(e.integer("DISPATCH_DELIVERY_FEE_CENTS", int(cfg.Dispatch.DeliveryFeeCents)))
	cfg.Dispatch.OperationTimeout = e.duration("DISPATCH_OPERATION_TIMEOUT", cfg.Dispatch.OperationTimeout)

	cfg.Sweeper.Interval = e.duration("SWEEPER_INTERVAL", cfg.Sweeper.Interval)

	cfg.Fanout.Workers = e.integer("FANOUT_WORKERS", cfg.Fanout.Workers)
	cfg.Fanout.QueueSize = e.integer("FANOUT_QUEUE_SIZE", cfg.Fanout.QueueSize)

	cfg.Kafka.Brokers = e.list("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.GroupID = e.str("KAFKA_GROUP_ID", cfg.Kafka.GroupID)
	cfg.Kafka.DeliveryTopic = e.str("KAFKA_DELIVERY_TOPIC", cfg.Kafka.DeliveryTopic)
	cfg.Kafka.EventsTopic = e.str("KAFKA_EVENTS_TOPIC", cfg.Kafka.EventsTopic)

	cfg.Redis.Addr = e.str("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = e.str("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = e.integer("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.ChannelPrefix = e.str("REDIS_CHANNEL_PREFIX", cfg.Redis.ChannelPrefix)

	cfg.RateLimit.Enabled = e.boolean("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = e.float("RATE_LIMIT_RPS", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = e.integer("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.TTL = e.duration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = e.integer("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	cfg.Catalog.MaxAttempts = e.integer("CATALOG_MAX_ATTEMPTS", cfg.Catalog.MaxAttempts)
	cfg.Catalog.BaseDelay = e.duration("CATALOG_BASE_DELAY", cfg.Catalog.BaseDelay)
	cfg.Catalog.MaxDelay = e.duration("CATALOG_MAX_DELAY", cfg.Catalog.MaxDelay)

	cfg.Admin.Addr = e.str("ADMIN_ADDR", cfg.Admin.Addr)
	cfg.Admin.User = e.str("ADMIN_USER", cfg.Admin.User)
	cfg.Admin.Pass = e.str("ADMIN_PASSWORD", cfg.Admin.Pass)

	cfg.Log.Level = e.str("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Pretty = e.boolean("LOG_PRETTY", cfg.Log.Pretty)

	if e.err != nil {
		return nil, e.err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.DurationVar(&cfg.Dispatch.ClaimWindow, "claim-window", cfg.Dispatch.ClaimWindow, "how long a broadcast stays claimable")
	pflag.DurationVar(&cfg.Sweeper.Interval, "sweep-interval", cfg.Sweeper.Interval, "expiry sweep period")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := strconv.Atoi(c.DB.Port); err != nil {
		return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.DB.Port, err)
	}
	if c.Dispatch.ClaimWindow <= 0 {
		return fmt.Errorf("invalid claim window: %s", c.Dispatch.ClaimWindow)
	}
	if c.Dispatch.RadiusKM <= 0 {
		return fmt.Errorf("invalid radius: %v km", c.Dispatch.RadiusKM)
	}
	if c.Dispatch.TaxRate < 0 || c.Dispatch.DeliveryFeeCents < 0 {
		return fmt.Errorf("invalid pricing: tax %v, fee %d", c.Dispatch.TaxRate, c.Dispatch.DeliveryFeeCents)
	}
	if c.Sweeper.Interval <= 0 {
		return fmt.Errorf("invalid sweep interval: %s", c.Sweeper.Interval)
	}
	if c.Catalog.MaxAttempts < 1 {
		return fmt.Errorf("invalid catalog attempts: %d", c.Catalog.MaxAttempts)
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rps %v, burst %d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	return nil
}

// envReader keeps the first parse error so Load can report it once.
type envReader struct{ err error }

func (e *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) fail(key, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
}

func (e *envReader) str(key, def string) string {
	if v, ok := e.lookup(key); ok {
		return v
	}
	return def
}

func (e *envReader) integer(key string, def int) int {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *envReader) float(key string, def float64) float64 {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return f
}

func (e *envReader) boolean(key string, def bool) bool {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *envReader) list(key string, def []string) []string {
	v, ok := e.lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
