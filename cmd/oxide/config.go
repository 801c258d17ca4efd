package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/oxide"
)

// config holds settings from a configuration file. Flags given on the
// command line override it.
type config struct {
	// Precision is the number of digits after the decimal point to round
	// results to. Nil means no rounding.
	Precision *uint32 `yaml:"precision"`
	// Workers is the number of expressions to evaluate concurrently.
	Workers int `yaml:"workers"`
	// Lines is whether each input line is a separate expression.
	Lines bool `yaml:"lines"`
	// JSON is whether to print results as a JSON array.
	JSON bool `yaml:"json"`
}

// loadConfig reads a configuration file. An empty name gives the zero
// config.
func loadConfig(name string) (config, error) {
	var cfg config
	if name == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", name)
	}
	if cfg.Workers < 0 {
		return cfg, errors.Errorf("config %s: workers (%d) must not be negative", name, cfg.Workers)
	}
	return cfg, nil
}

func (cfg config) options() []oxide.Option {
	var opts []oxide.Option
	if cfg.Precision != nil {
		opts = append(opts, oxide.Precision(*cfg.Precision))
	}
	if cfg.Workers > 0 {
		opts = append(opts, oxide.Workers(cfg.Workers))
	}
	return opts
}

// readBatch reads an array of expressions from a file. Files named .json are
// decoded as JSON and anything else as YAML.
func readBatch(name string) ([]string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "reading batch")
	}
	var srcs []string
	if strings.EqualFold(filepath.Ext(name), ".json") {
		err = json.Unmarshal(b, &srcs)
	} else {
		err = yaml.Unmarshal(b, &srcs)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding batch %s", name)
	}
	return srcs, nil
}
