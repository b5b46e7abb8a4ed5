package config

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	RunAddress     string
	APIBaseURL     string
	DatabaseURI    string
	PasscodeHash   string
	CSRFKey        string
	APITimeout     time.Duration
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
	SecureCookies  bool
}

func New() *Config {
	return parse(flag.CommandLine, os.Args[1:])
}

func parse(fs *flag.FlagSet, args []string) *Config {
	cfg := &Config{}
	var origins string

	fs.StringVar(&cfg.RunAddress, "a", "localhost:8090", "console address and port")
	fs.StringVar(&cfg.APIBaseURL, "u", "http://localhost:8000/api", "platform API base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", "file:ownerconsole.db", "session store URI (postgres:// or sqlite path)")
	fs.StringVar(&cfg.PasscodeHash, "p", "", "bcrypt hash of the console passcode (empty disables)")
	fs.StringVar(&cfg.CSRFKey, "k", "", "32-byte hex CSRF key (random when empty)")
	fs.DurationVar(&cfg.APITimeout, "t", 15*time.Second, "platform API request timeout")
	fs.StringVar(&cfg.LogLevel, "l", "info", "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "f", "text", "log format: text, json")
	fs.BoolVar(&cfg.SecureCookies, "s", false, "mark CSRF cookies Secure (serve over https)")
	fs.StringVar(&origins, "o", "http://localhost:8090", "comma separated CORS origins")
	_ = fs.Parse(args)

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.APIBaseURL = strings.TrimRight(getEnv("API_BASE_URL", cfg.APIBaseURL), "/")
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.PasscodeHash = getEnv("CONSOLE_PASSCODE_HASH", cfg.PasscodeHash)
	cfg.CSRFKey = getEnv("CSRF_KEY", cfg.CSRFKey)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	origins = getEnv("ALLOWED_ORIGINS", origins)
	if v, ok := os.LookupEnv("API_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.APITimeout = d
		}
	}

	if v, ok := os.LookupEnv("SECURE_COOKIES"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SecureCookies = b
		}
	}

	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg
}

// CSRFKeyBytes decodes the configured key, generating a random one when the
// key is missing or malformed. A random key invalidates open forms on restart.
func (c *Config) CSRFKeyBytes() []byte {
	if key, err := hex.DecodeString(c.CSRFKey); err == nil && len(key) == 32 {
		return key
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
