// Package config loads service configuration from config.toml and LEADLANE_ environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Log       LogConfig
	HTTP      HTTPConfig
	CRM       CRMConfig
	Sync      SyncConfig
	Refresh   RefreshConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// IsProduction reports whether the service runs in production
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
	LogLevel        string
}

// RedisConfig holds Redis connection settings. An empty Host disables Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds settings for validating caller access tokens
type JWTConfig struct {
	Secret    string
	Issuer    string
	AdminRole string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	WebhookMaxBody   int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// CRMConfig holds per-vendor settings
type CRMConfig struct {
	HubSpot    HubSpotConfig
	Salesforce SalesforceConfig
	SAPB1      SAPB1Config
}

// HubSpotConfig holds HubSpot API, OAuth and webhook settings
type HubSpotConfig struct {
	Enabled       bool
	BaseURL       string
	AuthorizeURL  string
	TokenURL      string
	ClientID      string
	ClientSecret  string
	RedirectURI   string
	Scopes        string
	WebhookSecret string
	// PublicBaseURL is prefixed to the request URI when verifying v2/v3 signatures
	PublicBaseURL string
}

// SalesforceConfig holds Salesforce settings
type SalesforceConfig struct {
	Enabled     bool
	APIVersion  string
	InstanceURL string
}

// SAPB1Config holds SAP Business One service layer settings
type SAPB1Config struct {
	Enabled         bool
	ServiceLayerURL string
	CompanyDB       string
}

// SyncConfig tunes the sync pipeline
type SyncConfig struct {
	ClockSkew         time.Duration
	HTTPTimeout       time.Duration
	DispatcherWorkers int
	DispatcherQueue   int
	MappingCacheSize  int
	MappingCacheTTL   time.Duration
	RedisLockEnabled  bool
	RedisLockTTL      time.Duration
	RedisLockWait     time.Duration
	WebhookTolerance  time.Duration
}

// RefreshConfig controls the proactive token refresh job
type RefreshConfig struct {
	Enabled   bool
	Schedule  string
	Lookahead time.Duration
}

// TelemetryConfig holds tracing configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
}

// Load loads configuration. Priority (highest to lowest):
// 1. Environment variables with LEADLANE_ prefix (e.g. LEADLANE_CRM_HUBSPOT_CLIENT_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("LEADLANE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
			LogLevel:        v.GetString("database.log_level"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:    v.GetString("jwt.secret"),
			Issuer:    v.GetString("jwt.issuer"),
			AdminRole: v.GetString("jwt.admin_role"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			WebhookMaxBody:   v.GetInt64("http.webhook_max_body"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		CRM: CRMConfig{
			HubSpot: HubSpotConfig{
				Enabled:       v.GetBool("crm.hubspot.enabled"),
				BaseURL:       v.GetString("crm.hubspot.base_url"),
				AuthorizeURL:  v.GetString("crm.hubspot.authorize_url"),
				TokenURL:      v.GetString("crm.hubspot.token_url"),
				ClientID:      v.GetString("crm.hubspot.client_id"),
				ClientSecret:  v.GetString("crm.hubspot.client_secret"),
				RedirectURI:   v.GetString("crm.hubspot.redirect_uri"),
				Scopes:        v.GetString("crm.hubspot.scopes"),
				WebhookSecret: v.GetString("crm.hubspot.webhook_secret"),
				PublicBaseURL: v.GetString("crm.hubspot.public_base_url"),
			},
			Salesforce: SalesforceConfig{
				Enabled:     v.GetBool("crm.salesforce.enabled"),
				APIVersion:  v.GetString("crm.salesforce.api_version"),
				InstanceURL: v.GetString("crm.salesforce.instance_url"),
			},
			SAPB1: SAPB1Config{
				Enabled:         v.GetBool("crm.sap_b1.enabled"),
				ServiceLayerURL: v.GetString("crm.sap_b1.service_layer_url"),
				CompanyDB:       v.GetString("crm.sap_b1.company_db"),
			},
		},
		Sync: SyncConfig{
			ClockSkew:         v.GetDuration("sync.clock_skew"),
			HTTPTimeout:       v.GetDuration("sync.http_timeout"),
			DispatcherWorkers: v.GetInt("sync.dispatcher_workers"),
			DispatcherQueue:   v.GetInt("sync.dispatcher_queue"),
			MappingCacheSize:  v.GetInt("sync.mapping_cache_size"),
			MappingCacheTTL:   v.GetDuration("sync.mapping_cache_ttl"),
			RedisLockEnabled:  v.GetBool("sync.redis_lock_enabled"),
			RedisLockTTL:      v.GetDuration("sync.redis_lock_ttl"),
			RedisLockWait:     v.GetDuration("sync.redis_lock_wait"),
			WebhookTolerance:  v.GetDuration("sync.webhook_tolerance"),
		},
		Refresh: RefreshConfig{
			Enabled:   v.GetBool("refresh.enabled"),
			Schedule:  v.GetString("refresh.schedule"),
			Lookahead: v.GetDuration("refresh.lookahead"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "leadlane-crm-sync"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "leadlane"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}
	if cfg.Database.SlowThreshold == 0 {
		cfg.Database.SlowThreshold = 200 * time.Millisecond
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "leadlane"
	}
	if cfg.JWT.AdminRole == "" {
		cfg.JWT.AdminRole = "admin"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}

	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 2 << 20
	}
	if cfg.HTTP.WebhookMaxBody == 0 {
		cfg.HTTP.WebhookMaxBody = 1 << 20
	}

	hs := &cfg.CRM.HubSpot
	if hs.BaseURL == "" {
		hs.BaseURL = "https://api.hubapi.com"
	}
	if hs.AuthorizeURL == "" {
		hs.AuthorizeURL = "https://app.hubspot.com/oauth/authorize"
	}
	if hs.TokenURL == "" {
		hs.TokenURL = "https://api.hubapi.com/oauth/v1/token"
	}
	if hs.Scopes == "" {
		hs.Scopes = "crm.objects.contacts.read crm.objects.contacts.write"
	}
	if cfg.CRM.Salesforce.APIVersion == "" {
		cfg.CRM.Salesforce.APIVersion = "v58.0"
	}

	if cfg.Sync.ClockSkew == 0 {
		cfg.Sync.ClockSkew = 60 * time.Second
	}
	if cfg.Sync.HTTPTimeout == 0 {
		cfg.Sync.HTTPTimeout = 10 * time.Second
	}
	if cfg.Sync.DispatcherWorkers == 0 {
		cfg.Sync.DispatcherWorkers = 4
	}
	if cfg.Sync.DispatcherQueue == 0 {
		cfg.Sync.DispatcherQueue = 1024
	}
	if cfg.Sync.MappingCacheSize == 0 {
		cfg.Sync.MappingCacheSize = 512
	}
	if cfg.Sync.MappingCacheTTL == 0 {
		cfg.Sync.MappingCacheTTL = 5 * time.Minute
	}
	if cfg.Sync.RedisLockTTL == 0 {
		cfg.Sync.RedisLockTTL = 30 * time.Second
	}
	if cfg.Sync.RedisLockWait == 0 {
		cfg.Sync.RedisLockWait = 10 * time.Second
	}
	if cfg.Sync.WebhookTolerance == 0 {
		cfg.Sync.WebhookTolerance = 5 * time.Minute
	}

	if cfg.Refresh.Schedule == "" {
		cfg.Refresh.Schedule = "@every 5m"
	}
	if cfg.Refresh.Lookahead == 0 {
		cfg.Refresh.Lookahead = 10 * time.Minute
	}

	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Sync.DispatcherWorkers < 0 || c.Sync.DispatcherQueue < 0 {
		return fmt.Errorf("sync.dispatcher_workers and sync.dispatcher_queue cannot be negative")
	}
	if c.Sync.RedisLockEnabled && c.Redis.Host == "" {
		return fmt.Errorf("sync.redis_lock_enabled requires redis.host")
	}
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	if _, err := url.Parse(c.CRM.HubSpot.BaseURL); err != nil {
		return fmt.Errorf("crm.hubspot.base_url is invalid: %w", err)
	}

	if c.App.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		if c.CRM.HubSpot.Enabled {
			if c.CRM.HubSpot.ClientSecret == "" {
				return fmt.Errorf("crm.hubspot.client_secret is required in production")
			}
			if c.CRM.HubSpot.WebhookSecret == "" {
				return fmt.Errorf("crm.hubspot.webhook_secret is required in production")
			}
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("http.cors_allow_origins cannot be '*' in production")
			}
		}
	}
	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
