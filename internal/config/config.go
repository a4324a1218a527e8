package config

import (
	"fmt"
	"strconv"

	"github.com/kelseyhightower/envconfig"
)

const Port = 8080
const Greeting = "Hello, Homeport!"

var ListenAddr = ":" + strconv.Itoa(Port)
var DefaultProbeAddr = "127.0.0.1:" + strconv.Itoa(Port)

const EnvPrefix = "RESPONDER"

type LogFormat string

const (
	LogFormatAuto LogFormat = "auto"
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Logging only shapes the process logger. Port, greeting and wire format
// are fixed.
type Logging struct {
	Level  string    `envconfig:"LOG_LEVEL" default:"info"`
	Format LogFormat `envconfig:"LOG_FORMAT" default:"auto"`
}

func ReadLogging() (Logging, error) {
	var logging Logging
	if err := envconfig.Process(EnvPrefix, &logging); err != nil {
		return Logging{}, fmt.Errorf("failed to read logging config: %w", err)
	}

	switch logging.Format {
	case LogFormatAuto, LogFormatText, LogFormatJSON:
	default:
		return Logging{}, fmt.Errorf("unknown log format %q", logging.Format)
	}

	return logging, nil
}
