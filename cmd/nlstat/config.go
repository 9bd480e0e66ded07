package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/hupe1980/neighborhood"
	"github.com/hupe1980/neighborhood/snapshot"
)

// Config holds the environment defaults. Flags override them.
type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	Compression string `envconfig:"COMPRESSION" default:"none"`

	// Object storage for s3:// and minio:// snapshot locations.
	AWSRegion      string `envconfig:"AWS_REGION"`
	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" default:"localhost:9000"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY"`
	MinioSecure    bool   `envconfig:"MINIO_SECURE" default:"false"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("NLSTAT", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) logger() (*neighborhood.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(c.LogFormat) {
	case "text":
		return neighborhood.NewLogger(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return neighborhood.NewLogger(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.LogFormat)
	}
}

func (c Config) compression() (snapshot.Compression, error) {
	return snapshot.ParseCompression(c.Compression)
}
