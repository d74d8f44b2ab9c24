package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mkanyika/shamba/internal/weather"
)

type Config struct {
	ListenAddr     string
	DBPath         string
	AdvisorBackend string
	ClaudeAPIKey   string
	ClaudeModel    string
	WeatherAPIKey  string
	WeatherBaseURL string
	ImagePath      string
	LogLevel       string
	LogFile        string
}

func Load() *Config {
	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		DBPath:         getEnv("DB_PATH", "/data/shamba.db"),
		AdvisorBackend: getEnv("ADVISOR_BACKEND", "mock"),
		ClaudeAPIKey:   getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:    getEnv("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		WeatherAPIKey:  getEnv("WEATHER_API_KEY", ""),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", weather.DefaultBaseURL),
		ImagePath:      getEnv("IMAGE_LOCAL_PATH", "/data/images"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
	}
}

func (c *Config) Validate() error {
	switch c.AdvisorBackend {
	case "mock":
	case "claude":
		if c.ClaudeAPIKey == "" {
			return fmt.Errorf("CLAUDE_API_KEY required when ADVISOR_BACKEND=claude")
		}
	default:
		return fmt.Errorf("unknown advisor backend %q", c.AdvisorBackend)
	}
	if _, err := strconv.Atoi(portOf(c.ListenAddr)); err != nil {
		return fmt.Errorf("invalid listen address %q", c.ListenAddr)
	}
	return nil
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return ""
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
