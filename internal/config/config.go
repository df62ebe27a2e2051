package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const defaultShareURL = "https://warpcast.com/~/compose?text=Pay%20anyone%20with%20any%20token"

// Config holds the application configuration
type Config struct {
	Port      string `validate:"required,numeric"`
	PublicURL string `validate:"required,url"`
	BasePath  string `validate:"required,startswith=/"`

	NeynarAPIKey  string `validate:"required"`
	NeynarBaseURL string `validate:"required,url"`

	GlideProjectID string `validate:"required"`
	GlideBaseURL   string `validate:"required,url"`

	DestinationChain string `validate:"required"`

	IdentityRetryAttempts  int           `validate:"gte=1"`
	IdentityRetryBaseDelay time.Duration `validate:"gt=0"`
	IdentityCacheSize      int           `validate:"gte=0"`
	IdentityCacheTTL       time.Duration `validate:"gte=0"`

	// FrameVerify selects how trusted frame messages are checked: neynar
	// validates signed messages upstream, jwt accepts locally signed
	// interactor tokens, none trusts untrustedData.
	FrameVerify       string `validate:"oneof=none neynar jwt"`
	FrameVerifySecret string `validate:"required_if=FrameVerify jwt"`

	SearchRateLimit  int           `validate:"gte=1"`
	SearchRateWindow time.Duration `validate:"gt=0"`

	MaxPollFailures int `validate:"gte=0"`

	ExplorerTxURL string `validate:"required,url"`
	ShareURL      string `validate:"required,url"`

	LogLevel       string `validate:"oneof=debug info warn error"`
	LogFormat      string `validate:"oneof=json console"`
	MetricsEnabled bool

	HTTPClientTimeout time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   "8080",
		PublicURL:              "http://localhost:8080",
		BasePath:               "/api/frame",
		NeynarBaseURL:          "https://api.neynar.com/v2/farcaster",
		GlideBaseURL:           "https://api.paywithglide.xyz",
		DestinationChain:       "base",
		FrameVerify:            "neynar",
		IdentityRetryAttempts:  5,
		IdentityRetryBaseDelay: time.Second,
		SearchRateLimit:        30,
		SearchRateWindow:       time.Minute,
		ExplorerTxURL:          "https://basescan.org/tx/",
		ShareURL:               defaultShareURL,
		LogLevel:               "info",
		LogFormat:              "json",
		MetricsEnabled:         true,
		HTTPClientTimeout:      15 * time.Second,
	}

	// Load NEYNAR_API_KEY (required)
	cfg.NeynarAPIKey = os.Getenv("NEYNAR_API_KEY")
	if cfg.NeynarAPIKey == "" {
		return nil, fmt.Errorf("NEYNAR_API_KEY environment variable is required")
	}

	// Load GLIDE_PROJECT_ID (required)
	cfg.GlideProjectID = os.Getenv("GLIDE_PROJECT_ID")
	if cfg.GlideProjectID == "" {
		return nil, fmt.Errorf("GLIDE_PROJECT_ID environment variable is required")
	}

	setString(&cfg.Port, "PORT")
	setString(&cfg.PublicURL, "PUBLIC_URL")
	setString(&cfg.BasePath, "BASE_PATH")
	setString(&cfg.NeynarBaseURL, "BASE_URL_NEYNAR_V2")
	setString(&cfg.GlideBaseURL, "GLIDE_BASE_URL")
	setString(&cfg.DestinationChain, "DESTINATION_CHAIN")
	setString(&cfg.FrameVerify, "FRAME_VERIFY")
	setString(&cfg.FrameVerifySecret, "FRAME_VERIFY_SECRET")
	setString(&cfg.ExplorerTxURL, "EXPLORER_TX_URL")
	setString(&cfg.ShareURL, "SHARE_URL")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")

	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")
	cfg.BasePath = "/" + strings.Trim(cfg.BasePath, "/")
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.FrameVerify = strings.ToLower(cfg.FrameVerify)

	var err error
	if cfg.IdentityRetryAttempts, err = getInt("IDENTITY_RETRY_ATTEMPTS", cfg.IdentityRetryAttempts); err != nil {
		return nil, err
	}
	if cfg.IdentityCacheSize, err = getInt("IDENTITY_CACHE_SIZE", cfg.IdentityCacheSize); err != nil {
		return nil, err
	}
	if cfg.SearchRateLimit, err = getInt("SEARCH_RATE_LIMIT", cfg.SearchRateLimit); err != nil {
		return nil, err
	}
	if cfg.MaxPollFailures, err = getInt("MAX_POLL_FAILURES", cfg.MaxPollFailures); err != nil {
		return nil, err
	}
	if cfg.IdentityRetryBaseDelay, err = getDuration("IDENTITY_RETRY_BASE_DELAY", cfg.IdentityRetryBaseDelay); err != nil {
		return nil, err
	}
	if cfg.IdentityCacheTTL, err = getDuration("IDENTITY_CACHE_TTL", cfg.IdentityCacheTTL); err != nil {
		return nil, err
	}
	if cfg.SearchRateWindow, err = getDuration("SEARCH_RATE_WINDOW", cfg.SearchRateWindow); err != nil {
		return nil, err
	}
	if cfg.HTTPClientTimeout, err = getDuration("HTTP_CLIENT_TIMEOUT", cfg.HTTPClientTimeout); err != nil {
		return nil, err
	}

	// Load METRICS_ENABLED (optional, defaults to true)
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.MetricsEnabled = v == "true" || v == "1"
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FrameURL joins PublicURL, BasePath and path
func (c *Config) FrameURL(path string) string {
	return c.PublicURL + c.BasePath + path
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}
