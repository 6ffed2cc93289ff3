package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"voltworks/pkg/client"
	"voltworks/pkg/logger"
)

type Config struct {
	APIBaseURL  string
	AuthBaseURL string
	APITimeout  time.Duration

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	KafkaBrokers      []string
	KafkaSessionTopic string
	KafkaGroupID      string

	Port string

	JWTSecret string

	SessionTTL      time.Duration
	CacheFreshFor   time.Duration
	CacheRetainFor  time.Duration
	SearchDebounce  time.Duration
	PageSize        int
	NotificationTTL time.Duration

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  getEnvStr(EnvAPIBaseURL, DefaultAPIBaseURL),
		AuthBaseURL: getEnvStr(EnvAuthBaseURL, DefaultAuthBaseURL),
		APITimeout:  getEnvDuration(EnvAPITimeout, DefaultAPITimeout),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		KafkaBrokers:      splitCSV(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),
		KafkaSessionTopic: getEnvStr(EnvKafkaSessionTopic, DefaultKafkaSessionTopic),
		KafkaGroupID:      getEnvStr(EnvKafkaGroupID, DefaultKafkaGroupID),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),

		SessionTTL:      getEnvDuration(EnvSessionTTL, DefaultSessionTTL),
		CacheFreshFor:   getEnvDuration(EnvCacheFreshFor, DefaultCacheFreshFor),
		CacheRetainFor:  getEnvDuration(EnvCacheRetainFor, DefaultCacheRetainFor),
		SearchDebounce:  getEnvDuration(EnvSearchDebounce, DefaultSearchDebounce),
		PageSize:        getEnvNum(EnvPageSize, DefaultPageSize),
		NotificationTTL: getEnvDuration(EnvNotificationTTL, DefaultNotificationTTL),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    "json",
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	urlRegex := regexp.MustCompile(`^https?://`)
	if !urlRegex.MatchString(cfg.APIBaseURL) {
		errs = append(errs, fmt.Sprintf("APIBaseURL must start with http:// or https://, got: %s", cfg.APIBaseURL))
	}
	if !urlRegex.MatchString(cfg.AuthBaseURL) {
		errs = append(errs, fmt.Sprintf("AuthBaseURL must start with http:// or https://, got: %s", cfg.AuthBaseURL))
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errs = append(errs, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	if len(cfg.KafkaBrokers) == 0 {
		errs = append(errs, "KafkaBrokers cannot be empty")
	}
	if cfg.KafkaSessionTopic == "" {
		errs = append(errs, "KafkaSessionTopic cannot be empty")
	}

	if cfg.APITimeout <= 0 {
		errs = append(errs, fmt.Sprintf("APITimeout must be positive, got: %s", cfg.APITimeout))
	}
	if cfg.MongoConnTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, fmt.Sprintf("SessionTTL must be positive, got: %s", cfg.SessionTTL))
	}
	if cfg.CacheFreshFor <= 0 {
		errs = append(errs, fmt.Sprintf("CacheFreshFor must be positive, got: %s", cfg.CacheFreshFor))
	}
	if cfg.CacheRetainFor < cfg.CacheFreshFor {
		errs = append(errs, fmt.Sprintf("CacheRetainFor (%s) must be >= CacheFreshFor (%s)", cfg.CacheRetainFor, cfg.CacheFreshFor))
	}
	if cfg.SearchDebounce < 0 {
		errs = append(errs, fmt.Sprintf("SearchDebounce cannot be negative, got: %s", cfg.SearchDebounce))
	}
	if cfg.PageSize <= 0 {
		errs = append(errs, fmt.Sprintf("PageSize must be positive, got: %d", cfg.PageSize))
	}
	if cfg.NotificationTTL <= 0 {
		errs = append(errs, fmt.Sprintf("NotificationTTL must be positive, got: %s", cfg.NotificationTTL))
	}
	if cfg.RateLimitRequests <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		errs = append(errs, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, e := range errs {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, e)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"api_base_url", cfg.APIBaseURL,
		"auth_base_url", cfg.AuthBaseURL,
		"api_timeout", cfg.APITimeout,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"kafka_brokers", strings.Join(cfg.KafkaBrokers, ","),
		"kafka_session_topic", cfg.KafkaSessionTopic,
		"kafka_group_id", cfg.KafkaGroupID,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != "",
		"session_ttl", cfg.SessionTTL,
		"cache_fresh_for", cfg.CacheFreshFor,
		"cache_retain_for", cfg.CacheRetainFor,
		"search_debounce", cfg.SearchDebounce,
		"page_size", cfg.PageSize,
		"notification_ttl", cfg.NotificationTTL,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

// NormalizePage keeps a requested page usable before the filtered total is
// known. Values below 1 collapse to 1; clamping against the upper bound
// happens in the list pipeline once the filtered count exists.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
