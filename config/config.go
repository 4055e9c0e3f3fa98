package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers accepted by STORE_DRIVER
const (
	StoreDriverPostgres = "postgres"
	StoreDriverSupabase = "supabase"
	StoreDriverLog      = "log"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Store         StoreConfig
	Database      DatabaseConfig
	Supabase      SupabaseConfig
	FormToken     FormTokenConfig
	Submission    SubmissionConfig
	ReCAPTCHA     ReCAPTCHAConfig
	EventTriggers EventTriggersConfig
	ResumeStorage ResumeStorageConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	AppEnv         string
	BaseURL        string
	AllowedOrigins []string
}

type StoreConfig struct {
	Driver string
}

type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
}

// SupabaseConfig points at the hosted table store's REST endpoint
type SupabaseConfig struct {
	URL        string
	ServiceKey string
	Schema     string
}

type FormTokenConfig struct {
	Secret   string
	Issuer   string
	TTLHours int
}

type SubmissionConfig struct {
	InstanceTTLMinutes int
	PersistTimeoutSecs int
}

type ReCAPTCHAConfig struct {
	SecretKey string
	SiteKey   string
}

// EventTriggersConfig holds webhook URLs called after a lead is stored.
// The stored record ID is appended to the URL.
type EventTriggersConfig struct {
	DemoBookedTriggerURL         string
	EnquiryCreatedTriggerURL     string
	CorporateInquiryTriggerURL   string
	TutorApplicationTriggerURL   string
	LevelTestCompletedTriggerURL string
}

type ResumeStorageConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	PublicBaseURL   string
}

type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type ObservabilityConfig struct {
	AlloyEndpoint     string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8081")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("BASE_URL", "https://edushetra.com")
	v.SetDefault("ALLOWED_CORS_ORIGINS", "https://edushetra.com,https://www.edushetra.com")
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("DATABASE_MAX_CONNS", 10)
	v.SetDefault("DATABASE_MIN_CONNS", 1)
	v.SetDefault("SUPABASE_SCHEMA", "public")
	v.SetDefault("FORM_TOKEN_ISSUER", "edushetra-api")
	v.SetDefault("FORM_TOKEN_TTL_HOURS", 24)
	v.SetDefault("SUBMISSION_INSTANCE_TTL_MINUTES", 120)
	v.SetDefault("SUBMISSION_PERSIST_TIMEOUT_SECONDS", 15)
	v.SetDefault("RESUME_STORAGE_REGION", "ap-south-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "/app/logs")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 14)
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "edushetra-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "edushetra")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "edushetra-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,alloc_objects,goroutines,mutex,block")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			AppEnv:         v.GetString("APP_ENV"),
			BaseURL:        v.GetString("BASE_URL"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_CORS_ORIGINS")),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt32("DATABASE_MAX_CONNS"),
			MinConns: v.GetInt32("DATABASE_MIN_CONNS"),
		},
		Supabase: SupabaseConfig{
			URL:        strings.TrimRight(v.GetString("SUPABASE_URL"), "/"),
			ServiceKey: v.GetString("SUPABASE_SERVICE_KEY"),
			Schema:     v.GetString("SUPABASE_SCHEMA"),
		},
		FormToken: FormTokenConfig{
			Secret:   v.GetString("FORM_TOKEN_SECRET"),
			Issuer:   v.GetString("FORM_TOKEN_ISSUER"),
			TTLHours: v.GetInt("FORM_TOKEN_TTL_HOURS"),
		},
		Submission: SubmissionConfig{
			InstanceTTLMinutes: v.GetInt("SUBMISSION_INSTANCE_TTL_MINUTES"),
			PersistTimeoutSecs: v.GetInt("SUBMISSION_PERSIST_TIMEOUT_SECONDS"),
		},
		ReCAPTCHA: ReCAPTCHAConfig{
			SecretKey: v.GetString("RECAPTCHA_V2_SECRET_KEY"),
			SiteKey:   v.GetString("RECAPTCHA_V2_SITE_KEY"),
		},
		EventTriggers: EventTriggersConfig{
			DemoBookedTriggerURL:         v.GetString("DEMO_BOOKED_TRIGGER_URL"),
			EnquiryCreatedTriggerURL:     v.GetString("ENQUIRY_CREATED_TRIGGER_URL"),
			CorporateInquiryTriggerURL:   v.GetString("CORPORATE_INQUIRY_TRIGGER_URL"),
			TutorApplicationTriggerURL:   v.GetString("TUTOR_APPLICATION_TRIGGER_URL"),
			LevelTestCompletedTriggerURL: v.GetString("LEVEL_TEST_COMPLETED_TRIGGER_URL"),
		},
		ResumeStorage: ResumeStorageConfig{
			AccessKeyID:     v.GetString("RESUME_STORAGE_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("RESUME_STORAGE_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("RESUME_STORAGE_BUCKET_NAME"),
			Endpoint:        v.GetString("RESUME_STORAGE_ENDPOINT"),
			Region:          v.GetString("RESUME_STORAGE_REGION"),
			PublicBaseURL:   v.GetString("RESUME_STORAGE_PUBLIC_BASE_URL"),
		},
		Logging: LoggingConfig{
			Level:      v.GetString("LOG_LEVEL"),
			Dir:        v.GetString("LOG_DIR"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Observability: ObservabilityConfig{
			AlloyEndpoint:     v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated env value, dropping blanks
func splitList(raw string) []string {
	out := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case StoreDriverSupabase:
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required when STORE_DRIVER is supabase")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required when STORE_DRIVER is supabase")
		}
	case StoreDriverLog:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want postgres, supabase or log)", c.Store.Driver)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	if len(c.Server.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_CORS_ORIGINS is required")
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.AppEnv == "production"
}

// ResumeStorageEnabled reports whether resume uploads can be served
func (c *Config) ResumeStorageEnabled() bool {
	return c.ResumeStorage.AccessKeyID != "" && c.ResumeStorage.SecretAccessKey != "" && c.ResumeStorage.BucketName != ""
}
