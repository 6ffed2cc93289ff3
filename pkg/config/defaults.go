package config

import "time"

const (
	DefaultAPIBaseURL  = "http://localhost:9000"
	DefaultAuthBaseURL = "http://localhost:9001"
	DefaultAPITimeout  = 10 * time.Second

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "voltworks"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultKafkaBrokers      = "localhost:9092"
	DefaultKafkaSessionTopic = "session-invalidated"
	DefaultKafkaGroupID      = "voltworks-dashboard"

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultSessionTTL      = 24 * time.Hour
	DefaultCacheFreshFor   = 5 * time.Minute
	DefaultCacheRetainFor  = 10 * time.Minute
	DefaultSearchDebounce  = 300 * time.Millisecond
	DefaultPageSize        = 10
	DefaultNotificationTTL = 15 * time.Minute

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
