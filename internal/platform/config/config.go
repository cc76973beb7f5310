package config

import (
	"os"
	"strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// IndexBaseURL is the root of the CDX index server, without a trailing slash.
	IndexBaseURL string
	// PublicURL is the externally visible origin used in share links.
	PublicURL       string
	LogLevel        string
	LogFormat       string
	CalibrationFile string
	// RobotsUserAgent identifies robots.txt fetches made on behalf of /api/robots.
	RobotsUserAgent string
}

// Default values applied when the environment leaves a setting empty.
const (
	DefaultAddr            = ":8080"
	DefaultIndexBaseURL    = "https://index.commoncrawl.org"
	DefaultPublicURL       = "https://crawlerreceipt.com"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultRobotsUserAgent = "crawlreceipt/1.0 (+https://crawlerreceipt.com)"
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:            envOr("CRAWLRECEIPT_ADDR", DefaultAddr),
		IndexBaseURL:    strings.TrimRight(envOr("CRAWLRECEIPT_INDEX_BASE_URL", DefaultIndexBaseURL), "/"),
		PublicURL:       strings.TrimRight(envOr("CRAWLRECEIPT_PUBLIC_URL", DefaultPublicURL), "/"),
		LogLevel:        envOr("CRAWLRECEIPT_LOG_LEVEL", DefaultLogLevel),
		LogFormat:       envOr("CRAWLRECEIPT_LOG_FORMAT", DefaultLogFormat),
		CalibrationFile: os.Getenv("CRAWLRECEIPT_CALIBRATION_FILE"),
		RobotsUserAgent: envOr("CRAWLRECEIPT_ROBOTS_USER_AGENT", DefaultRobotsUserAgent),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
