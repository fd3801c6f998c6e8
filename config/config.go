package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// New snapshots the process environment into a plain map. Handlers and the
// server read configuration through the typed getters below instead of
// touching os.Getenv directly.
func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

// GetDuration reads a duration value. Accepts Go duration syntax ("90s",
// "2m") or a bare integer, which is interpreted as seconds.
func GetDuration(config map[string]string, key string, defaultValue time.Duration) time.Duration {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok || s == "" {
		return defaultValue
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d
	}

	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
