package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "RESUMEBUILDER"

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Environment Variables (RESUMEBUILDER_AI_APIKEY, etc.)
// 3. Config File values
// 4. Default values - Lowest priority
type Config struct {
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	Store         StoreConfig         `mapstructure:"store"`
	Watch         WatchConfig         `mapstructure:"watch"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// Provider names accepted in ai.provider.
const (
	ProviderGemini   = "gemini"
	ProviderGateway  = "gateway"
	ProviderDisabled = "disabled"
)

// AIConfig holds content enhancement configuration
type AIConfig struct {
	Provider         string               `mapstructure:"provider"`
	Model            string               `mapstructure:"model"`
	Timeout          time.Duration        `mapstructure:"timeout"`
	APIKey           string               `mapstructure:"apiKey"`
	MaxRetries       int                  `mapstructure:"maxRetries"`
	Temperature      float32              `mapstructure:"temperature"`
	UseSystemPrompts bool                 `mapstructure:"useSystemPrompts"`
	Gateway          GatewayConfig        `mapstructure:"gateway"`
	CustomPrompts    PromptConfig         `mapstructure:"customPrompts"`
	CircuitBreaker   CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// GatewayConfig holds the OpenAI-compatible gateway endpoint
type GatewayConfig struct {
	URL string `mapstructure:"url"`
}

// PromptConfig holds prompt overrides. A *File path wins over the inline
// text when both are set.
type PromptConfig struct {
	System         string `mapstructure:"system"`
	SystemFile     string `mapstructure:"systemFile"`
	Summary        string `mapstructure:"summary"`
	SummaryFile    string `mapstructure:"summaryFile"`
	Experience     string `mapstructure:"experience"`
	ExperienceFile string `mapstructure:"experienceFile"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// TLSConfig holds the server certificate. TLS is on when both files are set.
type TLSConfig struct {
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
}

// Enabled reports whether the server should listen with TLS.
func (t TLSConfig) Enabled() bool {
	return t.CertFile != "" && t.KeyFile != ""
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int  `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int  `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
}

// CORSConfig holds cross-origin settings for browser editors
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// Store driver names accepted in store.driver.
const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
)

// StoreConfig selects where the document slot lives
type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	Dir         string `mapstructure:"dir"`
	DatabaseURL string `mapstructure:"databaseURL"`
	Key         string `mapstructure:"key"`
}

// WatchConfig holds settings for the watch command
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxRequestSize   int64    `mapstructure:"maxRequestSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool             `mapstructure:"enabled"`
	ServiceName     string           `mapstructure:"serviceName"`
	ServiceVersion  string           `mapstructure:"serviceVersion"`
	ServiceInstance string           `mapstructure:"serviceInstance"`
	SampleRate      float64          `mapstructure:"sampleRate"`
	Tracing         TracingConfig    `mapstructure:"tracing"`
	Metrics         MetricsConfig    `mapstructure:"metrics"`
	Prometheus      PrometheusConfig `mapstructure:"prometheus"`
	OTLP            OTLPConfig       `mapstructure:"otlp"`
}

// Trace exporter names accepted in observability.tracing.exporter.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Exporter    string `mapstructure:"exporter"`
	PrettyPrint bool   `mapstructure:"prettyPrint"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Console            bool          `mapstructure:"console"`
	OTLP               bool          `mapstructure:"otlp"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// LoadConfig loads configuration from environment variables and a config
// file found on the search path
func LoadConfig() (*Config, error) {
	return load("")
}

// LoadConfigFile loads configuration from an explicit config file path
func LoadConfigFile(path string) (*Config, error) {
	return load(path)
}

func load(explicitPath string) (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Printf("[CONFIG] Configured environment variable handling with prefix '%s'", EnvPrefix)

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
		log.Printf("[CONFIG] Using explicit config file: %s", explicitPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/resumebuilder/")
		v.AddConfigPath("$HOME/.resumebuilder")
		v.AddConfigPath(".")
		log.Println("[CONFIG] Configured config file search paths: /etc/resumebuilder/, $HOME/.resumebuilder, .")
	}

	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicitPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	config.logConfigurationSources(configFileUsed)

	if err := config.validatePromptFiles(); err != nil {
		return nil, fmt.Errorf("prompt file validation failed: %w", err)
	}

	if err := config.loadPromptsFromFiles(); err != nil {
		return nil, fmt.Errorf("failed to load custom prompts from files: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// aiKeyFromVault reports whether the AI key is still to be read from Vault
func (c *Config) aiKeyFromVault() bool {
	return c.Vault.Enabled && c.Vault.Secrets.AIKey != ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini, ProviderGateway:
		if c.AI.APIKey == "" && !c.aiKeyFromVault() {
			return fmt.Errorf("AI API key is required for provider %q (set %s_AI_APIKEY environment variable)", c.AI.Provider, EnvPrefix)
		}
	case ProviderDisabled:
	default:
		return fmt.Errorf("invalid AI provider: %s (must be '%s', '%s' or '%s')", c.AI.Provider, ProviderGemini, ProviderGateway, ProviderDisabled)
	}

	if c.AI.Provider == ProviderGateway && c.AI.Gateway.URL == "" {
		return fmt.Errorf("AI gateway URL is required for provider %q", ProviderGateway)
	}

	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if (c.Server.TLS.CertFile == "") != (c.Server.TLS.KeyFile == "") {
		return fmt.Errorf("TLS requires both certFile and keyFile")
	}

	switch c.Store.Driver {
	case StoreDriverFile:
		if c.Store.Dir == "" {
			return fmt.Errorf("store directory is required for the file driver")
		}
	case StoreDriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store databaseURL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid store driver: %s (must be '%s' or '%s')", c.Store.Driver, StoreDriverFile, StoreDriverPostgres)
	}

	if c.Store.Key == "" {
		return fmt.Errorf("store key is required")
	}

	if !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	switch c.Observability.Tracing.Exporter {
	case ExporterNone, ExporterStdout, ExporterOTLP:
	default:
		return fmt.Errorf("invalid trace exporter: %s", c.Observability.Tracing.Exporter)
	}

	return nil
}
