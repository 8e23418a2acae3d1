package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/stretchr/testify/assert"

	"hotel/config"
	"hotel/shared/constant"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer

	initLogger(&buf, constant.ServerEnvProduction, "hotel")

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	log.Info().Str("room_id", "r1").Msg("hello")

	assert.True(t, strings.HasPrefix(strings.TrimSpace(lastLine(buf.String())), "{"), "production output is JSON")
	assert.Contains(t, buf.String(), `"room_id":"r1"`)
	assert.Contains(t, buf.String(), `"app":"hotel"`)
}

func TestInitLogger_Console(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer

	initLogger(&buf, constant.ServerEnvDevelopment, "hotel")
	log.Info().Msg("hello")

	assert.False(t, strings.HasPrefix(strings.TrimSpace(lastLine(buf.String())), "{"))
	assert.Contains(t, buf.String(), "hello")
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	ErrorWithStack(errors.New("exclusion violation"))

	assert.Contains(t, buf.String(), "exclusion violation")
	assert.Contains(t, buf.String(), `"stack":[`)
}

func TestSetLogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		logLevel string
		expected zerolog.Level
	}{
		{logLevel: "debug", expected: zerolog.DebugLevel},
		{logLevel: "info", expected: zerolog.InfoLevel},
		{logLevel: "error", expected: zerolog.ErrorLevel},
		{logLevel: "", expected: zerolog.TraceLevel},
		{logLevel: "chatty", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.logLevel

			SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")

	return lines[len(lines)-1]
}
