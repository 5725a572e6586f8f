package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/rampcon/internal/expr"
	"github.com/specialistvlad/rampcon/internal/publish"
	"github.com/specialistvlad/rampcon/internal/report"
)

// Assignment is a name = expression pair given outside a palette file.
type Assignment struct {
	Name   string
	Source string
}

// PublishConfig holds the optional socket.io publisher settings. Publishing
// is disabled when URL is empty.
type PublishConfig struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Options converts the config into publisher options.
func (p PublishConfig) Options() publish.Options {
	return publish.Options{
		URL:                p.URL,
		Namespace:          p.Namespace,
		Event:              p.Event,
		AckEvent:           p.AckEvent,
		Timeout:            p.Timeout,
		InsecureSkipVerify: p.InsecureSkipVerify,
	}
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PalettePaths []string // hcl files or directories

	// Ad-hoc palette built from the command line.
	Model string
	Count uint32
	Set   []Assignment
	Aux   []Assignment

	Format      report.Format
	ListModels  bool
	WorkerCount int

	LogFormat string
	LogLevel  string
	HTTPPort  int
	// MaxHTTPCount bounds the ?count= override of the palette endpoint.
	// 0 uses DefaultMaxHTTPCount.
	MaxHTTPCount uint32

	Publish PublishConfig
}

const (
	// AdHocPaletteName names the palette built from Model, Set and Aux.
	AdHocPaletteName = "adhoc"
	// DefaultMaxHTTPCount is the largest count a palette request may ask for
	// unless configured otherwise.
	DefaultMaxHTTPCount uint32 = 4096
)

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.PalettePaths) == 0 && cfg.Model == "" && !cfg.ListModels && cfg.HTTPPort <= 0 {
		return nil, errors.New("nothing to do: provide a palette path, a -model, -list-models or an -http-port")
	}
	if cfg.Model == "" && (len(cfg.Set) > 0 || len(cfg.Aux) > 0) {
		return nil, errors.New("-set and -aux require -model")
	}
	for _, a := range append(append([]Assignment{}, cfg.Set...), cfg.Aux...) {
		if !expr.ValidIdentifier(a.Name) {
			return nil, fmt.Errorf("invalid assignment name '%s'", a.Name)
		}
	}

	if cfg.Format == "" {
		cfg.Format = report.FormatHex
	}
	format, err := report.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	if cfg.WorkerCount < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.WorkerCount)
	}
	if cfg.HTTPPort < 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("http port %d is out of range", cfg.HTTPPort)
	}
	if cfg.MaxHTTPCount == 0 {
		cfg.MaxHTTPCount = DefaultMaxHTTPCount
	}
	if cfg.Publish.URL != "" {
		if err := cfg.Publish.Options().Validate(); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (c *Config) maxHTTPCount() uint32 {
	if c.MaxHTTPCount == 0 {
		return DefaultMaxHTTPCount
	}
	return c.MaxHTTPCount
}
