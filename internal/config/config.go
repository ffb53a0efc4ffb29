package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Auth
	AuthToken   string
	OwnerNumber string

	// Ledger store
	StoreCapacity   int
	StoreTTL        time.Duration
	CleanupInterval time.Duration

	// AMQP (command event pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Archive
	SQLiteDBPath string

	// Collaborators
	GeminiModel string
	NewsFeedURL string
	NewsLimit   int
	GoldBaseURL string

	// Rate limiting
	RequestsPerMinute int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8086"),
		AuthToken:   getEnv("AUTH_TOKEN", ""),
		OwnerNumber: getEnv("MY_NUMBER", ""),

		StoreCapacity:   getEnvInt("STORE_CAPACITY", 1000),
		StoreTTL:        getEnvDuration("STORE_TTL", 7*24*time.Hour),
		CleanupInterval: getEnvDuration("STORE_CLEANUP_INTERVAL", time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "gullak"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "command_events"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/gullak.db"),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		NewsFeedURL: getEnv("NEWS_FEED_URL",
			"https://news.google.com/rss/search?q=finance+india&hl=en-IN&gl=IN&ceid=IN:en"),
		NewsLimit:   getEnvInt("NEWS_LIMIT", 5),
		GoldBaseURL: getEnv("GOLD_BASE_URL", "https://www.goodreturns.in/gold-rates/"),

		RequestsPerMinute: getEnvInt("REQUESTS_PER_MINUTE", 60),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.AuthToken == "" {
		errs = append(errs, "AUTH_TOKEN must be set")
	}
	if c.OwnerNumber == "" {
		errs = append(errs, "MY_NUMBER must be set")
	}

	if c.StoreCapacity < 1 {
		errs = append(errs, fmt.Sprintf("invalid store capacity %d: must be at least 1", c.StoreCapacity))
	}
	if c.StoreTTL < time.Minute {
		errs = append(errs, fmt.Sprintf("invalid store TTL %v: must be at least 1 minute", c.StoreTTL))
	}
	if c.CleanupInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid cleanup interval %v: must be at least 1 second", c.CleanupInterval))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.NewsLimit < 1 || c.NewsLimit > 50 {
		errs = append(errs, fmt.Sprintf("invalid news limit %d: must be between 1 and 50", c.NewsLimit))
	}
	if c.RequestsPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid requests per minute %d: must be at least 1", c.RequestsPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
