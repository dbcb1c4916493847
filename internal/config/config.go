package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
)

// Parse failure policies for registration timestamps.
const (
	PolicySkip  = "skip"
	PolicyAbort = "abort"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	InputPath    string `validate:"required"`
	TemplatePath string `validate:"required"`
	OutputDir    string `validate:"required"`

	ParseFailurePolicy string `validate:"oneof=skip abort"`
	TrackWeekday       bool

	LogLevel        string `validate:"oneof=debug info warn warning error"`
	LogFormat       string `validate:"oneof=text json"`
	MetricsAddr     string
	ShutdownTimeout time.Duration

	// Civic information lookup configuration.
	CivicEnabled   bool
	CivicKeyFile   string        `validate:"required_if=CivicEnabled true"`
	CivicBaseURL   string        `validate:"required,url"`
	CivicTimeout   time.Duration `validate:"gt=0"`
	CivicCacheSize int           `validate:"gte=1"`
	CivicRateLimit float64       `validate:"gte=0"`
}

var validate = validator.New()

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	civicTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("CIVIC_TIMEOUT", "5s"))
	if err != nil || civicTimeout <= 0 {
		return nil, errors.New("invalid CIVIC_TIMEOUT")
	}

	civicRateLimit, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("CIVIC_RATE_LIMIT", "10"), 64)
	if err != nil || civicRateLimit < 0 {
		return nil, errors.New("invalid CIVIC_RATE_LIMIT: must be a non-negative number")
	}

	civicEnabled, err := parseBool("CIVIC_ENABLED", true)
	if err != nil {
		return nil, err
	}
	trackWeekday, err := parseBool("TRACK_WEEKDAY", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		InputPath:          sharedcfg.EnvOrDefault("INPUT_PATH", "event_attendees.csv"),
		TemplatePath:       sharedcfg.EnvOrDefault("TEMPLATE_PATH", "form_letter.html.tmpl"),
		OutputDir:          sharedcfg.EnvOrDefault("OUTPUT_DIR", "output"),
		ParseFailurePolicy: strings.ToLower(sharedcfg.EnvOrDefault("PARSE_FAILURE_POLICY", PolicySkip)),
		TrackWeekday:       trackWeekday,
		LogLevel:           strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		MetricsAddr:        os.Getenv("METRICS_ADDR"),
		ShutdownTimeout:    shutdownTimeout,

		CivicEnabled:   civicEnabled,
		CivicKeyFile:   sharedcfg.EnvOrDefault("CIVIC_KEY_FILE", "secret.key"),
		CivicBaseURL:   sharedcfg.EnvOrDefault("CIVIC_BASE_URL", "https://www.googleapis.com/civicinfo/v2"),
		CivicTimeout:   civicTimeout,
		CivicCacheSize: parseCivicCacheSize(),
		CivicRateLimit: civicRateLimit,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports the first violation by its
// environment variable name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return fmt.Errorf("invalid %s: failed %q validation", envNames[fe.StructField()], fe.Tag())
}

// AbortOnParseFailure reports whether an unparsable registration time ends the run.
func (c *Config) AbortOnParseFailure() bool {
	return c.ParseFailurePolicy == PolicyAbort
}

var envNames = map[string]string{
	"InputPath":          "INPUT_PATH",
	"TemplatePath":       "TEMPLATE_PATH",
	"OutputDir":          "OUTPUT_DIR",
	"ParseFailurePolicy": "PARSE_FAILURE_POLICY",
	"LogLevel":           "LOG_LEVEL",
	"LogFormat":          "LOG_FORMAT",
	"CivicKeyFile":       "CIVIC_KEY_FILE",
	"CivicBaseURL":       "CIVIC_BASE_URL",
	"CivicTimeout":       "CIVIC_TIMEOUT",
	"CivicCacheSize":     "CIVIC_CACHE_SIZE",
	"CivicRateLimit":     "CIVIC_RATE_LIMIT",
}

func parseBool(key string, fallback bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: must be true or false", key)
	}
	return v, nil
}

func parseCivicCacheSize() int {
	if s := os.Getenv("CIVIC_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}
