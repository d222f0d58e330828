// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

type configBuilder struct {
	configs []*Paths
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Paths, 0, 3),
	}
}

func (b *configBuilder) build() (*Paths, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	paths := new(Paths)
	for _, cfg := range b.configs {
		if err := mergo.Merge(paths, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	if err := paths.resolve(); err != nil {
		return nil, err
	}

	return paths, paths.validate()
}

func (b *configBuilder) withDefaults() *configBuilder {
	defaults, err := defaultPaths()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, defaults)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &Paths{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withFlags(flags Paths) *configBuilder {
	b.configs = append(b.configs, &flags)
	return b
}
