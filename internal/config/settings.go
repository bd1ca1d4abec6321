package config

import "time"

var (
	ServiceVersion string
	CommitSHA      string
)

const (
	Development = 1 << iota
	Sandbox
	Staging
	Production
)

type (
	ServiceConfig struct {
		App            App            `json:"app"`
		HTTPServer     HTTPServer     `json:"http_server"`
		Database       Database       `json:"database"`
		Backoff        Backoff        `json:"backoff"`
		Cache          Cache          `json:"cache"`
		Calculator     Calculator     `json:"calculator"`
		CircuitBreaker CircuitBreaker `json:"circuit_breaker"`
		Logging        Logging        `json:"logging"`
		Telemetry      Telemetry      `json:"telemetry"`
	}

	App struct {
		ServiceName    string      `envconfig:"APP_SERVICE_NAME" default:"blogbridge" json:"service_name"`
		ServiceVersion string      `envconfig:"APP_SERVICE_VERSION" default:"dev" json:"service_version"`
		CommitSHA      string      `envconfig:"APP_COMMIT_SHA" default:"" json:"commit_sha,omitempty"`
		APIVersion     string      `envconfig:"APP_API_VERSION" default:"v1" json:"api_version"`
		Env            Environment `json:"environment"`
	}

	Environment struct {
		Name string `envconfig:"APP_ENVIRONMENT" default:"development" json:"env"`
	}

	HTTPServer struct {
		Host            string        `envconfig:"HTTP_SERVER_HOST" default:"0.0.0.0" json:"host"`
		Port            uint          `envconfig:"HTTP_SERVER_PORT" default:"8080" json:"port"`
		ReadTimeout     time.Duration `envconfig:"HTTP_SERVER_READ_TIMEOUT" default:"15s" json:"read_timeout"`
		WriteTimeout    time.Duration `envconfig:"HTTP_SERVER_WRITE_TIMEOUT" default:"15s" json:"write_timeout"`
		IdleTimeout     time.Duration `envconfig:"HTTP_SERVER_IDLE_TIMEOUT" default:"60s" json:"idle_timeout"`
		RequestTimeout  time.Duration `envconfig:"HTTP_SERVER_REQUEST_TIMEOUT" default:"10s" json:"request_timeout"`
		ShutdownTimeout time.Duration `envconfig:"HTTP_SERVER_SHUTDOWN_TIMEOUT" default:"30s" json:"shutdown_timeout"`
	}

	Database struct {
		Host            string        `envconfig:"POSTGRES_HOST" default:"postgres" json:"host"`
		Port            uint          `envconfig:"POSTGRES_PORT" default:"5432" json:"port"`
		Database        string        `envconfig:"POSTGRES_DATABASE" default:"blogbridge" json:"database"`
		Username        string        `envconfig:"POSTGRES_USERNAME" default:"postgres" json:"username"`
		Password        string        `envconfig:"POSTGRES_PASSWORD" default:"" json:"password,omitempty"`
		SSLMode         string        `envconfig:"POSTGRES_SSL_MODE" default:"disable" json:"ssl_mode"`
		MaxConnections  int           `envconfig:"POSTGRES_MAX_CONNECTIONS" default:"25" json:"max_connections"`
		MinConnections  int           `envconfig:"POSTGRES_MIN_CONNECTIONS" default:"5" json:"min_connections"`
		ConnectTimeout  time.Duration `envconfig:"POSTGRES_CONNECT_TIMEOUT" default:"10s" json:"connect_timeout"`
		ConnectRetries  uint          `envconfig:"POSTGRES_CONNECT_RETRIES" default:"5" json:"connect_retries"`
		MaxConnLifetime time.Duration `envconfig:"POSTGRES_MAX_CONN_LIFETIME" default:"1h" json:"max_conn_lifetime"`
		MaxConnIdleTime time.Duration `envconfig:"POSTGRES_MAX_CONN_IDLE_TIME" default:"30m" json:"max_conn_idle_time"`
	}

	Backoff struct {
		BaseDelay  time.Duration `envconfig:"BACKOFF_BASE_DELAY" default:"500ms" json:"base_delay"`
		Multiplier float64       `envconfig:"BACKOFF_MULTIPLIER" default:"1.5" json:"multiplier"`
		Jitter     float64       `envconfig:"BACKOFF_JITTER" default:"0.3" json:"jitter"`
		MaxDelay   time.Duration `envconfig:"BACKOFF_MAX_DELAY" default:"10s" json:"max_delay"`
	}

	Cache struct {
		Address      string        `envconfig:"CACHE_ADDRESS" default:"keydb:6379" json:"address"`
		Password     string        `envconfig:"CACHE_PASSWORD" default:"" json:"password,omitempty"`
		DB           int           `envconfig:"CACHE_DB" default:"0" json:"db"`
		DialTimeout  time.Duration `envconfig:"CACHE_DIAL_TIMEOUT" default:"5s" json:"dial_timeout"`
		ReadTimeout  time.Duration `envconfig:"CACHE_READ_TIMEOUT" default:"3s" json:"read_timeout"`
		WriteTimeout time.Duration `envconfig:"CACHE_WRITE_TIMEOUT" default:"3s" json:"write_timeout"`
		KeyPrefix    string        `envconfig:"CACHE_KEY_PREFIX" default:"smartfeed:v1:" json:"key_prefix"`
	}

	Calculator struct {
		Workers      int           `envconfig:"CALCULATOR_WORKERS" default:"2" json:"workers"`
		CloseTimeout time.Duration `envconfig:"CALCULATOR_CLOSE_TIMEOUT" default:"10s" json:"close_timeout"`
	}

	CircuitBreaker struct {
		Enabled          bool          `envconfig:"CIRCUIT_BREAKER_ENABLED" default:"true" json:"enabled"`
		MaxRequests      uint32        `envconfig:"CIRCUIT_BREAKER_MAX_REQUESTS" default:"5" json:"max_requests"`
		Interval         time.Duration `envconfig:"CIRCUIT_BREAKER_INTERVAL" default:"60s" json:"interval"`
		Timeout          time.Duration `envconfig:"CIRCUIT_BREAKER_TIMEOUT" default:"30s" json:"timeout"`
		FailureThreshold uint32        `envconfig:"CIRCUIT_BREAKER_FAILURE_THRESHOLD" default:"5" json:"failure_threshold"`
	}

	Logging struct {
		Level     string    `envconfig:"LOG_LEVEL" default:"info" json:"level"`
		Format    string    `envconfig:"LOG_FORMAT" default:"json" json:"format"`
		AccessLog AccessLog `json:"access_log"`
	}

	AccessLog struct {
		Enabled         bool `envconfig:"ACCESS_LOG_ENABLED" default:"true" json:"enabled"`
		LogHealthChecks bool `envconfig:"ACCESS_LOG_HEALTH_CHECKS" default:"false" json:"log_health_checks"`
	}

	Telemetry struct {
		Enabled        bool    `envconfig:"OTEL_ENABLED" default:"false" json:"enabled"`
		ExporterType   string  `envconfig:"OTEL_EXPORTER" default:"grpc" json:"exporter_type"`
		OTLPEndpoint   string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"" json:"otlp_endpoint"`
		ServiceName    string  `envconfig:"OTEL_SERVICE_NAME" default:"blogbridge" json:"service_name"`
		ServiceVersion string  `envconfig:"OTEL_SERVICE_VERSION" default:"1.0.0" json:"service_version"`
		Metrics        Metrics `json:"metrics"`
		Traces         Traces  `json:"traces"`
	}

	Metrics struct {
		Enabled bool `envconfig:"METRICS_ENABLED" default:"true" json:"enabled"`
	}

	Traces struct {
		Enabled      bool    `envconfig:"TRACES_ENABLED" default:"false" json:"enabled"`
		SamplerRatio float64 `envconfig:"TRACES_SAMPLER_RATIO" default:"1.0" json:"sampler_ratio"`
	}
)

func (c *ServiceConfig) GetEnvironment() int {
	switch c.App.Env.Name {
	case "production", "prod":
		return Production
	case "staging", "stg":
		return Staging
	case "sandbox", "sbx":
		return Sandbox
	default:
		return Development
	}
}

func (c *ServiceConfig) IsProduction() bool {
	return c.GetEnvironment() == Production
}
