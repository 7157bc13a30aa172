package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type (
	AppConfig struct {
		Name           string `mapstructure:"name"`
		Version        string `mapstructure:"version"`
		Port           int    `mapstructure:"port"`
		Environment    string `mapstructure:"environment"`
		PathPrefix     string `mapstructure:"path_prefix"`     // Optional, base path of the JSON API
		RequestTimeout int    `mapstructure:"request_timeout"` // Seconds
		LoginPath      string `mapstructure:"login_path"`      // Front-end view unauthenticated users are sent to
	}

	LoggerConfig struct {
		Level       string `mapstructure:"level"`
		Format      string `mapstructure:"format"`
		FilePath    string `mapstructure:"filepath"`
		MaxSize     int    `mapstructure:"max_size"`
		MaxAge      int    `mapstructure:"max_age"`
		MaxBackups  int    `mapstructure:"max_backups"`
		Compress    bool   `mapstructure:"compress"`
		LocalTime   bool   `mapstructure:"localTime"`
		Environment string
	}

	SessionConfig struct {
		Store        string `mapstructure:"store"` // memory | redis | postgres | mongo
		CookieName   string `mapstructure:"cookie_name"`
		CookieDomain string `mapstructure:"cookie_domain"`
		CookieSecure bool   `mapstructure:"cookie_secure"`
		TTL          int    `mapstructure:"ttl"` // Seconds a session survives without activity
		Capacity     int    `mapstructure:"capacity"`
		KeyPrefix    string `mapstructure:"key_prefix"`
	}

	// BackendConfig holds the base URLs of the banking services the front-end talks to.
	BackendConfig struct {
		UserURL         string `mapstructure:"user_url"`
		DocumentURL     string `mapstructure:"document_url"`
		TheftURL        string `mapstructure:"theft_url"`
		CardURL         string `mapstructure:"card_url"`
		NotificationURL string `mapstructure:"notification_url"`
		LoginURL        string `mapstructure:"login_url"`
		WalletURL       string `mapstructure:"wallet_url"`
		Timeout         int    `mapstructure:"timeout"` // Seconds
	}

	RedisConfig struct {
		Type       string `mapstructure:"type"` // NORMAL | SENTINEL
		Addrs      string `mapstructure:"addrs"`
		MasterName string `mapstructure:"master_name"`
		Password   string `mapstructure:"password"`
		DB         int    `mapstructure:"db"`
	}

	PostgresConfig struct {
		Host             string `mapstructure:"host"`
		Port             int    `mapstructure:"port"`
		Username         string `mapstructure:"username"`
		Password         string `mapstructure:"password"`
		Database         string `mapstructure:"database"`
		SSLMode          string `mapstructure:"sslmode"`
		ConnectionString string `mapstructure:"connection_string"`
		ConnectTimeout   int    `mapstructure:"connect_timeout"`
		MaxConns         int    `mapstructure:"max_conns"`
		MinConns         int    `mapstructure:"min_conns"`
		ConnMaxLifetime  int    `mapstructure:"conn_max_lifetime"`
		ConnMaxIdleTime  int    `mapstructure:"conn_max_idle_time"`
	}

	MongoConfig struct {
		URI            string `mapstructure:"uri"`
		Database       string `mapstructure:"database"`
		Collection     string `mapstructure:"collection"`
		AuthSource     string `mapstructure:"authSource"`
		Username       string `mapstructure:"username"`
		Password       string `mapstructure:"password"`
		ConnectTimeout int    `mapstructure:"connect_timeout"`
		MaxPoolSize    int    `mapstructure:"max_pool_size"`
		MinPoolSize    int    `mapstructure:"min_pool_size"`
	}

	CacheConfig struct {
		Type       string `mapstructure:"type"` // LRU | FIFO
		Capacity   int    `mapstructure:"capacity"`
		DefaultTTL int    `mapstructure:"default_ttl"`
		RedisTTL   int    `mapstructure:"redis_ttl"`
		UseRedis   bool   `mapstructure:"use_redis"` // Second level for cached backend lookups
	}

	CORSConfig struct {
		Enabled          bool     `mapstructure:"enabled"`
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	}

	MetricsConfig struct {
		Enabled bool   `mapstructure:"enabled"`
		Path    string `mapstructure:"path"`
	}
)

type Env struct {
	AppConfig      AppConfig      `mapstructure:"app"`
	LoggerConfig   LoggerConfig   `mapstructure:"logging"`
	SessionConfig  SessionConfig  `mapstructure:"session"`
	BackendConfig  BackendConfig  `mapstructure:"backend"`
	RedisConfig    RedisConfig    `mapstructure:"redis"`
	PostgresConfig PostgresConfig `mapstructure:"postgres"`
	MongoConfig    MongoConfig    `mapstructure:"mongo"`
	CacheConfig    CacheConfig    `mapstructure:"cache"`
	CORSConfig     CORSConfig     `mapstructure:"cors"`
	MetricsConfig  MetricsConfig  `mapstructure:"metrics"`
}

var env *Env

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bank-web")
	v.SetDefault("app.port", 4200)
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.path_prefix", "/api")
	v.SetDefault("app.request_timeout", 15)
	v.SetDefault("app.login_path", "/login")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.filepath", "logs/bank-web.log")
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 14)

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.cookie_name", "bank_session")
	v.SetDefault("session.ttl", 7*24*3600)
	v.SetDefault("session.capacity", 10000)
	v.SetDefault("session.key_prefix", "bank:session:")

	v.SetDefault("backend.user_url", "http://localhost:8080")
	v.SetDefault("backend.document_url", "http://localhost:8081")
	v.SetDefault("backend.theft_url", "http://localhost:8082")
	v.SetDefault("backend.card_url", "http://localhost:8083")
	v.SetDefault("backend.notification_url", "http://localhost:8084")
	v.SetDefault("backend.login_url", "http://localhost:8085")
	v.SetDefault("backend.wallet_url", "http://localhost:8086")
	v.SetDefault("backend.timeout", 10)

	v.SetDefault("redis.type", "NORMAL")
	v.SetDefault("redis.addrs", "localhost:6379")

	v.SetDefault("mongo.collection", "sessions")

	v.SetDefault("cache.type", "LRU")
	v.SetDefault("cache.capacity", 1000)
	v.SetDefault("cache.default_ttl", 60)
	v.SetDefault("cache.redis_ttl", 300)

	v.SetDefault("metrics.path", "/metrics")
}

// Load reads the yaml file at path (or ./config/config.yaml when path is empty)
// and overlays ENV_ prefixed environment variables, e.g. ENV_SESSION_STORE=redis.
func Load(path string) (*Env, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	_ = v.BindEnv("app.name", "APP_NAME")

	var e Env
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	e.LoggerConfig.Environment = e.AppConfig.Environment
	if e.AppConfig.Environment == "production" {
		e.LoggerConfig.Level = "info"
	}

	switch e.SessionConfig.Store {
	case "memory", "redis", "postgres", "mongo":
	default:
		return nil, fmt.Errorf("unsupported session store %q", e.SessionConfig.Store)
	}

	return &e, nil
}

// Default returns the configuration built from defaults and ENV_ variables
// only, for tools that run without a config file.
func Default() (*Env, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	v.SetEnvPrefix("env")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var e Env
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	e.LoggerConfig.Environment = e.AppConfig.Environment
	return &e, nil
}

// GetEnv loads ./config/config.yaml once and exits the process when it is unusable.
func GetEnv() *Env {
	if env != nil {
		return env
	}
	loaded, err := Load("")
	if err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}
	env = loaded
	printStartupConfig(env)
	return env
}

func printStartupConfig(env *Env) {
	line := strings.Repeat("=", 40)
	fmt.Println(line)
	fmt.Println("🚀 Application Configuration")
	fmt.Println(line)

	fmt.Printf("%-15s: %s\n", "App Name", env.AppConfig.Name)
	fmt.Printf("%-15s: %s\n", "Version", env.AppConfig.Version)
	fmt.Printf("%-15s: %s\n", "Environment", env.AppConfig.Environment)
	fmt.Printf("%-15s: %d\n", "Port", env.AppConfig.Port)
	fmt.Printf("%-15s: %s\n", "Log Level", env.LoggerConfig.Level)
	fmt.Printf("%-15s: %s\n", "Session Store", env.SessionConfig.Store)

	fmt.Println(line)
}
