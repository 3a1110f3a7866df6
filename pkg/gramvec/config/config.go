// Package config loads pipeline configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognitext/gramvec/pkg/gramvec/encode"
	"github.com/cognitext/gramvec/pkg/gramvec/vocab"
)

// Pipeline configures a full counting, mapping and encoding run.
type Pipeline struct {
	// Corpus is the labeled CSV corpus to read.
	Corpus string `yaml:"corpus"`
	// Mapping is the bigram mapping file to write or read.
	Mapping string `yaml:"mapping"`
	// Output is the representation file to write. A .zst suffix
	// enables compression.
	Output string `yaml:"output"`
	// Labels is the label source CSV used for dataset loading.
	Labels string `yaml:"labels"`

	TopTarget  int    `yaml:"top_target"`
	TopOther   int    `yaml:"top_other"`
	FlushEvery int    `yaml:"flush_every"`
	Shards     int    `yaml:"shards"`
	Delimiter  string `yaml:"delimiter"`

	// CountsDB is an optional SQLite database for count snapshots.
	CountsDB string `yaml:"counts_db"`
}

// LoadPipeline reads, defaults and validates the config at path.
func LoadPipeline(path string) (Pipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("failed to read config: %w", err)
	}

	var p Pipeline
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Pipeline{}, fmt.Errorf("failed to parse config: %w", err)
	}

	p.ApplyDefaults()
	if err := p.Validate(); err != nil {
		return Pipeline{}, err
	}
	return p, nil
}

// ApplyDefaults fills unset values with the pipeline defaults.
func (p *Pipeline) ApplyDefaults() {
	if p.TopTarget == 0 {
		p.TopTarget = vocab.DefaultTargetN
	}
	if p.TopOther == 0 {
		p.TopOther = vocab.DefaultOtherN
	}
	if p.FlushEvery == 0 {
		p.FlushEvery = encode.DefaultFlushEvery
	}
	if p.Shards == 0 {
		p.Shards = 1
	}
	if p.Delimiter == "" {
		p.Delimiter = encode.DefaultDelimiter
	}
}

// Validate rejects settings the pipeline cannot run with.
func (p Pipeline) Validate() error {
	if p.TopTarget < 0 {
		return fmt.Errorf("top_target must not be negative, got %d", p.TopTarget)
	}
	if p.TopOther < 0 {
		return fmt.Errorf("top_other must not be negative, got %d", p.TopOther)
	}
	if p.FlushEvery < 1 {
		return fmt.Errorf("flush_every must be at least 1, got %d", p.FlushEvery)
	}
	if p.Shards < 1 {
		return fmt.Errorf("shards must be at least 1, got %d", p.Shards)
	}
	return nil
}
