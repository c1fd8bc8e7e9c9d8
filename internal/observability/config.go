package observability

import (
	"os"
	"strings"
	"time"

	"kitchen-rush/server/logging"
)

// Config captures observability settings read from the environment.
type Config struct {
	// Sinks lists enabled logging sinks ("console", "json", "memory").
	Sinks []string
	// JSONLogPath receives newline-delimited events when the json sink is on.
	JSONLogPath string
	// DebugTelemetry lowers the logging severity floor to debug.
	DebugTelemetry bool
}

// FromEnv reads LOG_SINKS, LOG_JSON_PATH, and DEBUG_TELEMETRY.
func FromEnv() Config {
	cfg := Config{Sinks: []string{"console"}}
	if raw := os.Getenv("LOG_SINKS"); raw != "" {
		var sinks []string
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				sinks = append(sinks, name)
			}
		}
		if len(sinks) > 0 {
			cfg.Sinks = sinks
		}
	}
	cfg.JSONLogPath = os.Getenv("LOG_JSON_PATH")
	cfg.DebugTelemetry = os.Getenv("DEBUG_TELEMETRY") == "1"
	return cfg
}

// LoggingConfig converts the env settings into a logging.Config.
func (c Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.EnabledSinks = c.Sinks
	cfg.JSON.FilePath = c.JSONLogPath
	cfg.JSON.FlushInterval = 2 * time.Second
	if c.DebugTelemetry {
		cfg.MinimumSeverity = logging.SeverityDebug
	}
	return cfg
}
