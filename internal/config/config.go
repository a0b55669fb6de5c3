package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	AppName    = "feedpoll"
	AppVersion = "1.0.0"
)

// UserAgent identifies outbound requests to the CORS proxy.
var UserAgent = "Mozilla/5.0 (compatible; " + AppName + "/" + AppVersion + ")"

const (
	DefaultAddr          = ":8080"
	DefaultProxyURL      = "https://allorigins.hexlet.app"
	DefaultPollInterval  = 5000 * time.Millisecond
	DefaultSubmitTimeout = 5000 * time.Millisecond
	DefaultLocale        = "ru"
	DefaultLogLevel      = "info"
)

type Config struct {
	Addr     string
	ProxyURL string
	// EgressProxy is an optional http(s) or socks5 proxy used for every outbound request.
	EgressProxy     string
	PollInterval    time.Duration
	SubmitTimeout   time.Duration
	PollConcurrency int
	ProxyQPS        int
	Locale          string
	LogLevel        string
	NodeID          int64
	// StaticDir optionally serves a client page next to the API.
	StaticDir       string
}

func Load() Config {
	return Config{
		Addr:            envString("FEEDPOLL_ADDR", DefaultAddr),
		ProxyURL:        strings.TrimRight(envString("FEEDPOLL_PROXY_URL", DefaultProxyURL), "/"),
		EgressProxy:     envString("FEEDPOLL_EGRESS_PROXY", ""),
		PollInterval:    envDuration("FEEDPOLL_POLL_INTERVAL", DefaultPollInterval),
		SubmitTimeout:   envDuration("FEEDPOLL_SUBMIT_TIMEOUT", DefaultSubmitTimeout),
		PollConcurrency: envInt("FEEDPOLL_POLL_CONCURRENCY", 0),
		ProxyQPS:        envInt("FEEDPOLL_PROXY_QPS", 0),
		Locale:          envString("FEEDPOLL_LOCALE", DefaultLocale),
		LogLevel:        envString("FEEDPOLL_LOG_LEVEL", DefaultLogLevel),
		NodeID:          int64(envInt("FEEDPOLL_NODE_ID", 1)),
		StaticDir:       envString("FEEDPOLL_STATIC_DIR", ""),
	}
}

func envString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

// envDuration accepts Go duration strings ("5s") or a plain number of milliseconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms <= 0 {
			return fallback
		}
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
