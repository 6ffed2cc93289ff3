package config

const (
	EnvAPIBaseURL  = "WORKSHOP_API_BASE_URL"
	EnvAuthBaseURL = "AUTH_API_BASE_URL"
	EnvAPITimeout  = "WORKSHOP_API_TIMEOUT"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvKafkaBrokers      = "KAFKA_BROKERS"
	EnvKafkaSessionTopic = "KAFKA_SESSION_TOPIC"
	EnvKafkaGroupID      = "KAFKA_GROUP_ID"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"

	EnvSessionTTL      = "SESSION_TTL"
	EnvCacheFreshFor   = "CACHE_FRESH_FOR"
	EnvCacheRetainFor  = "CACHE_RETAIN_FOR"
	EnvSearchDebounce  = "SEARCH_DEBOUNCE"
	EnvPageSize        = "PAGE_SIZE"
	EnvNotificationTTL = "NOTIFICATION_TTL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
