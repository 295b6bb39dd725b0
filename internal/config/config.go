// Package config loads optimizer settings from yulopt.toml and the environment.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pelletier/go-toml/v2"
	"github.com/xyproto/env/v2"
	"yulopt/internal/ast"
	"yulopt/internal/dialect"
	"yulopt/internal/errors"
	"yulopt/internal/optimizer"
)

// FileName is the configuration file looked up in the working directory
const FileName = "yulopt.toml"

// Config is the yulopt.toml file structure.
//
//	dialect = "evm-object"
//	steps = ["unused-parameter-pruner", "memory-escalation"]
//	reserved_memory = "0x80"
//
//	[slots.f]
//	x = 0
type Config struct {
	Dialect        string                       `toml:"dialect"`
	Steps          []string                     `toml:"steps"`
	ReservedMemory string                       `toml:"reserved_memory"` // empty: taken from memoryinit
	Slots          map[string]map[string]uint64 `toml:"slots"`           // function -> variable -> slot
	LogVerbosity   int                          `toml:"log_verbosity"`
}

// Default returns the settings used without configuration file
func Default() *Config {
	return &Config{
		Dialect: "evm-object",
		Steps:   append([]string(nil), optimizer.DefaultSteps...),
		Slots:   make(map[string]map[string]uint64),
	}
}

// Load reads path on top of the defaults. An empty path only yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.InvalidConfig(path, err)
	}
	if cfg.Slots == nil {
		cfg.Slots = make(map[string]map[string]uint64)
	}
	return cfg, nil
}

// Discover returns the path of yulopt.toml in dir, or "" when there is none
func Discover(dir string) string {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// ApplyEnv overrides settings from YULOPT_* environment variables
func (c *Config) ApplyEnv() {
	c.Dialect = env.Str("YULOPT_DIALECT", c.Dialect)
	if env.Has("YULOPT_STEPS") {
		c.Steps = SplitSteps(env.Str("YULOPT_STEPS"))
	}
	c.ReservedMemory = env.Str("YULOPT_RESERVED_MEMORY", c.ReservedMemory)
	c.LogVerbosity = env.Int("YULOPT_VERBOSITY", c.LogVerbosity)
}

// SplitSteps parses a comma separated step list
func SplitSteps(list string) []string {
	steps := []string{}
	for _, step := range strings.Split(list, ",") {
		if step = strings.TrimSpace(step); step != "" {
			steps = append(steps, step)
		}
	}
	return steps
}

// Validate checks that every named dialect and step exists and that the reserved
// memory base is a number.
func (c *Config) Validate() error {
	if _, ok := dialect.ByName(c.Dialect); !ok {
		return errors.UnknownDialect(c.Dialect, dialect.Names())
	}
	for _, step := range c.Steps {
		if _, ok := optimizer.StepByName(step, optimizer.StepConfig{}); !ok {
			return errors.UnknownStep(step, optimizer.StepNames())
		}
	}
	if _, err := c.Reserved(); err != nil {
		return errors.InvalidConfig("reserved_memory", err)
	}
	return nil
}

// TargetDialect returns the configured dialect
func (c *Config) TargetDialect() (dialect.Dialect, error) {
	d, ok := dialect.ByName(c.Dialect)
	if !ok {
		return nil, errors.UnknownDialect(c.Dialect, dialect.Names())
	}
	return d, nil
}

// Reserved returns the configured reserved memory base, or nil if none is set
func (c *Config) Reserved() (*uint256.Int, error) {
	if c.ReservedMemory == "" {
		return nil, nil
	}
	return optimizer.LiteralValue(ast.NewNumber(ast.Position{}, c.ReservedMemory))
}

// SlotMap converts the [slots] tables
func (c *Config) SlotMap() optimizer.SlotMap {
	slots := make(optimizer.SlotMap, len(c.Slots))
	for fn, variables := range c.Slots {
		entry := make(map[ast.Symbol]uint64, len(variables))
		for name, slot := range variables {
			entry[ast.Symbol(name)] = slot
		}
		slots[ast.Symbol(fn)] = entry
	}
	return slots
}

// Pipeline builds the configured step sequence
func (c *Config) Pipeline() (*optimizer.Pipeline, error) {
	reserved, err := c.Reserved()
	if err != nil {
		return nil, errors.InvalidConfig("reserved_memory", err)
	}
	stepConfig := optimizer.StepConfig{ReservedMemory: reserved, Slots: c.SlotMap()}

	pipeline := optimizer.NewPipeline()
	for _, name := range c.Steps {
		step, ok := optimizer.StepByName(name, stepConfig)
		if !ok {
			return nil, errors.UnknownStep(name, optimizer.StepNames())
		}
		pipeline.AddStep(step)
	}
	return pipeline, nil
}
