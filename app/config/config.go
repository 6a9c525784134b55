package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	// this will automatically load your .env file:
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Logs   LogConfig
	Engine EngineConfig
	HTTP   HTTPConfig
	Auth   AuthConfig
}

type LogConfig struct {
	Style string // "console" or "json"
	Level string
}

type HTTPConfig struct {
	Addr string
}

type AuthConfig struct {
	Disabled   bool
	Issuer     string
	Audience   string
	JWKSURL    string
	ReadScope  string
	WriteScope string
}

type EngineConfig struct {
	Path    string
	Threads int
	Hash    int // MB
	MultiPV int // how many ranked lines the engine reports
	Depth   int // fixed search depth for every position
	Options map[string]string
}

// engineFile is the shape of ENGINE_OPTIONS_FILE. Zero values leave the env settings alone.
type engineFile struct {
	Threads int               `yaml:"threads"`
	Hash    int               `yaml:"hash"`
	MultiPV int               `yaml:"multipv"`
	Depth   int               `yaml:"depth"`
	Options map[string]string `yaml:"options"`
}

const (
	defaultThreads = 12
	defaultHash    = 128
	defaultMultiPV = 5
	defaultDepth   = 20
	defaultAddr    = "0.0.0.0:8080"
)

func LoadConfig() (*Config, error) {
	threads, err := intEnv("ENGINE_THREADS", defaultThreads)
	if err != nil {
		return nil, err
	}

	hash, err := intEnv("ENGINE_HASH", defaultHash)
	if err != nil {
		return nil, err
	}

	multiPV, err := intEnv("ENGINE_MULTIPV", defaultMultiPV)
	if err != nil {
		return nil, err
	}

	depth, err := intEnv("ENGINE_DEPTH", defaultDepth)
	if err != nil {
		return nil, err
	}

	authDisabled, err := boolEnv("AUTH_DISABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Logs: LogConfig{
			Style: envOr("LOG_STYLE", "console"),
			Level: envOr("LOG_LEVEL", "info"),
		},
		Engine: EngineConfig{
			Path:    os.Getenv("ENGINE_PATH"),
			Threads: threads,
			Hash:    hash,
			MultiPV: multiPV,
			Depth:   depth,
		},
		HTTP: HTTPConfig{
			Addr: envOr("HTTP_ADDR", defaultAddr),
		},
		Auth: AuthConfig{
			Disabled:   authDisabled,
			Issuer:     strings.TrimSpace(os.Getenv("AUTH0_ISSUER")),
			Audience:   strings.TrimSpace(os.Getenv("AUTH0_AUDIENCE")),
			JWKSURL:    strings.TrimSpace(os.Getenv("AUTH_JWKS_URL")),
			ReadScope:  os.Getenv("AUTH_READ_SCOPE"),
			WriteScope: os.Getenv("AUTH_WRITE_SCOPE"),
		},
	}

	if path := os.Getenv("ENGINE_OPTIONS_FILE"); path != "" {
		if err := cfg.Engine.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if cfg.Engine.MultiPV < 1 {
		return nil, fmt.Errorf("ENGINE_MULTIPV must be at least 1, got %d", cfg.Engine.MultiPV)
	}
	if cfg.Engine.Depth < 1 {
		return nil, fmt.Errorf("ENGINE_DEPTH must be at least 1, got %d", cfg.Engine.Depth)
	}

	return cfg, nil
}

func (e *EngineConfig) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read engine options %s: %w", path, err)
	}

	var f engineFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse engine options %s: %w", path, err)
	}

	if f.Threads > 0 {
		e.Threads = f.Threads
	}
	if f.Hash > 0 {
		e.Hash = f.Hash
	}
	if f.MultiPV > 0 {
		e.MultiPV = f.MultiPV
	}
	if f.Depth > 0 {
		e.Depth = f.Depth
	}
	if len(f.Options) > 0 {
		e.Options = f.Options
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("error converting string to int: %s: %w", key, err)
	}
	return n, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("error parsing %s: %w", key, err)
	}
	return b, nil
}
