package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "dispatch",
}

var defaultDispatch = Dispatch{
	ClaimWindow:      15 * time.Minute,
	RadiusKM:         5,
	TaxRate:          0.05,
	DeliveryFeeCents: 2000,
	OperationTimeout: 3 * time.Second,
}

var defaultSweeper = Sweeper{
	Interval: time.Minute,
}

var defaultFanout = Fanout{
	Workers:   4,
	QueueSize: 1024,
}

var defaultKafka = Kafka{
	GroupID:       "service-dispatch",
	DeliveryTopic: "delivery.status",
	EventsTopic:   "dispatch.events",
}

var defaultRedis = Redis{
	ChannelPrefix: "dispatch:",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

var defaultCatalog = CatalogRetry{
	MaxAttempts: 3,
	BaseDelay:   100 * time.Millisecond,
	MaxDelay:    400 * time.Millisecond,
}

var defaultLog = Log{Level: "info"}

func defaultConfig() Config {
	return Config{
		Port:      defaultPort,
		DB:        defaultDB,
		Dispatch:  defaultDispatch,
		Sweeper:   defaultSweeper,
		Fanout:    defaultFanout,
		Kafka:     defaultKafka,
		Redis:     defaultRedis,
		RateLimit: defaultRateLimit,
		Catalog:   defaultCatalog,
		Log:       defaultLog,
	}
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultDispatch returns the default claim window, radius and pricing.
func DefaultDispatch() Dispatch {
	return defaultDispatch
}

// DefaultSweeper returns the default sweep settings.
func DefaultSweeper() Sweeper {
	return defaultSweeper
}

// DefaultCatalog returns the default catalog retry policy.
func DefaultCatalog() CatalogRetry {
	return defaultCatalog
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}
