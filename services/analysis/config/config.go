// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the demo configuration.
//
// A default configuration is embedded in the binary; an optional YAML
// file overlays it. Every loaded configuration passes struct
// validation before use.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/dynalyze/services/analysis/heisenbug"
	"github.com/AleutianAI/dynalyze/services/analysis/spectrum"
)

// MaxYAMLFileSize is the maximum allowed configuration file size (1MB).
const MaxYAMLFileSize = 1024 * 1024

//go:embed demo.yaml
var defaultConfigYAML []byte

var (
	// ErrConfigTooLarge indicates a configuration file above
	// MaxYAMLFileSize.
	ErrConfigTooLarge = errors.New("config: file exceeds maximum size")
)

// Config is the root demo configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" validate:"required"`
	Heisenbug HeisenbugConfig `yaml:"heisenbug" validate:"required"`
	Localize  LocalizeConfig  `yaml:"localize" validate:"required"`
	Demo      DemoConfig      `yaml:"demo"`
}

// LoggingConfig controls structured log output.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// HeisenbugConfig parameterizes the race condition trials.
type HeisenbugConfig struct {
	Workers        int    `yaml:"workers" validate:"gte=2,lte=64"`
	InitialBalance int64  `yaml:"initial_balance" validate:"gt=0"`
	Amount         int64  `yaml:"amount" validate:"gt=0"`
	Strategy       string `yaml:"strategy" validate:"oneof=unsynchronized lock_guarded"`
	PerturbDelayMS int    `yaml:"perturb_delay_ms" validate:"gte=0,lte=1000"`
	Trials         int    `yaml:"trials" validate:"gte=1,lte=1000"`
}

// LocalizeConfig parameterizes fault localization output.
type LocalizeConfig struct {
	Formula string `yaml:"formula" validate:"oneof=tarantula ochiai"`
	TopN    int    `yaml:"top_n" validate:"gte=1,lte=100"`
}

// DemoConfig controls the guided demo pacing.
type DemoConfig struct {
	Quick   bool `yaml:"quick"`
	PauseMS int  `yaml:"pause_ms" validate:"gte=0,lte=10000"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := parse(defaultConfigYAML)
	if err != nil {
		// The embedded default ships with the binary; failing to parse
		// it is a build defect, not a runtime condition.
		panic(fmt.Sprintf("config: embedded default invalid: %v", err))
	}
	return cfg
}

// Load reads a YAML file over the embedded defaults and validates the
// result. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.Size() > MaxYAMLFileSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrConfigTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := overlay(cfg, data); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(c)
}

// PerturbDelay returns the perturbation delay as a duration.
func (h HeisenbugConfig) PerturbDelay() time.Duration {
	return time.Duration(h.PerturbDelayMS) * time.Millisecond
}

// TrialConfig converts the section into a runnable trial
// configuration. The perturbator is attached by the caller when the
// scenario calls for one.
func (h HeisenbugConfig) TrialConfig() (heisenbug.TrialConfig, error) {
	strategy, err := heisenbug.ParseStrategy(h.Strategy)
	if err != nil {
		return heisenbug.TrialConfig{}, err
	}
	return heisenbug.TrialConfig{
		Workers:  h.Workers,
		Initial:  h.InitialBalance,
		Amount:   h.Amount,
		Strategy: strategy,
	}, nil
}

// ParsedFormula returns the configured suspiciousness formula.
func (l LocalizeConfig) ParsedFormula() (spectrum.Formula, error) {
	return spectrum.ParseFormula(l.Formula)
}

// Pause returns the inter-section demo pause, zero in quick mode.
func (d DemoConfig) Pause() time.Duration {
	if d.Quick {
		return 0
	}
	return time.Duration(d.PauseMS) * time.Millisecond
}

func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := overlay(cfg, data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlay(cfg *Config, data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
