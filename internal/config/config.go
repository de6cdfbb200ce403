// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the word game configuration. Values come, in
// increasing order of precedence, from defaults, an optional config file,
// WORDGAME_* environment variables and command line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cockroachdb/dhash"
	"github.com/cockroachdb/dhash/internal/word"
)

const (
	EnvPrefix = "WORDGAME"

	KeyConfigFile    = "config"
	KeyTableSize     = "table.size"
	KeyTableHash     = "table.hash"
	KeyListLimit     = "list.limit"
	KeyLogLevel      = "log.level"
	KeyMetricAddress = "metric.address"
	KeyFiles         = "files"
)

// DefaultFiles are the games played when none are named.
var DefaultFiles = []string{"game0.txt", "game1.txt", "game2.txt", "game3.txt", "game4.txt"}

type TableConfig struct {
	// Size is the approximate initial table size, rounded up to a prime.
	Size int `mapstructure:"size"`
	// Hash names the word hasher; see word.Names.
	Hash string `mapstructure:"hash"`
}

type ListConfig struct {
	// Limit is the number of table entries printed after each game.
	Limit int `mapstructure:"limit"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type MetricConfig struct {
	// Address of a statsd agent. Empty disables metrics.
	Address string `mapstructure:"address"`
}

type Config struct {
	Table  TableConfig  `mapstructure:"table"`
	List   ListConfig   `mapstructure:"list"`
	Log    LogConfig    `mapstructure:"log"`
	Metric MetricConfig `mapstructure:"metric"`
	Files  []string     `mapstructure:"files"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"size":           KeyTableSize,
	"hash":           KeyTableHash,
	"limit":          KeyListLimit,
	"log-level":      KeyLogLevel,
	"metric-address": KeyMetricAddress,
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfigFile, "", "path to a config file (yaml, json or toml)")
	fs.Int("size", dhash.DefaultSize, "approximate initial hash table size")
	fs.String("hash", word.HashXX, fmt.Sprintf("word hash function %v", word.Names()))
	fs.Int("limit", 20, "number of table entries listed after each game")
	fs.String("log-level", "info", "log level")
	fs.String("metric-address", "", "statsd agent address, empty to disable metrics")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyTableSize, dhash.DefaultSize)
	v.SetDefault(KeyTableHash, word.HashXX)
	v.SetDefault(KeyListLimit, 20)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetricAddress, "")
	v.SetDefault(KeyFiles, DefaultFiles)
}

// Load builds the Config from fs, which must have been registered with
// RegisterFlags and parsed. Positional arguments of fs name the game files.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	if args := fs.Args(); len(args) > 0 {
		v.Set(KeyFiles, args)
	}

	file, err := fs.GetString(KeyConfigFile)
	if err != nil {
		return Config{}, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the game cannot use.
func (c Config) Validate() error {
	if c.Table.Size < 0 {
		return fmt.Errorf("%s must not be negative: %d", KeyTableSize, c.Table.Size)
	}
	if _, err := word.Lookup(c.Table.Hash); err != nil {
		return fmt.Errorf("%s: %w", KeyTableHash, err)
	}
	if c.List.Limit < 0 {
		return fmt.Errorf("%s must not be negative: %d", KeyListLimit, c.List.Limit)
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("no game files")
	}
	return nil
}
