package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*StructuredConfig
	err     error

	// parseFlags is swapped in tests; defaults to ParseFlags.
	parseFlags func() (*StructuredConfig, error)
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs:    make([]*StructuredConfig, 0, 4),
		parseFlags: ParseFlags,
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := config.loadSignKey(); err != nil {
		return nil, err
	}
	config.setDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags() *configBuilder {
	flags, err := b.parseFlags()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withJSON() *configBuilder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
		}
	}

	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.configs = append(b.configs, jsonCfg)

	return b
}

// loadSignKey reads the signing secret from TokenSignKeyFile when no inline
// secret was given. An unreadable file is a startup error.
func (cfg *StructuredConfig) loadSignKey() error {
	if cfg.App.TokenSignKey != "" || cfg.App.TokenSignKeyFile == "" {
		return nil
	}

	raw, err := os.ReadFile(cfg.App.TokenSignKeyFile)
	if err != nil {
		return fmt.Errorf("%w: reading token sign key file: %w", ErrInvalidAppConfigs, err)
	}

	cfg.App.TokenSignKey = strings.TrimSpace(string(raw))
	return nil
}
