package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"example/analysis-board/app/config"

	"github.com/rs/zerolog"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LogConfig{Style: "json", Level: "debug"}, &buf)
	log.Debug().Str("cmd", "stop").Msg("engine ->")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json log line: %v (%q)", err, buf.String())
	}
	if entry["cmd"] != "stop" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry: %v", entry)
	}
}

func TestNewLoggerLevelFallback(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LogConfig{Style: "json", Level: "chatty"}, &buf)
	if log.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level = %s, want info", log.GetLevel())
	}
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level")
	}
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.LogConfig{Style: "console", Level: "info"}, &buf)
	log.Info().Msg("game loaded")
	if !strings.Contains(buf.String(), "game loaded") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("unexpected console output: %q", buf.String())
	}
}
