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

// Command wordgame plays the word game over one or more text files and
// prints, for each, the total score, the hash table statistics and the first
// entries of the table.
//
// Usage:
//
//	wordgame [flags] [file ...]
//
// Files ending in .gz or .zst are decompressed. With no files the game plays
// game0.txt through game4.txt.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/cockroachdb/dhash/internal/config"
	"github.com/cockroachdb/dhash/internal/game"
	"github.com/cockroachdb/dhash/internal/logger"
	"github.com/cockroachdb/dhash/internal/metric"
	"github.com/cockroachdb/dhash/internal/word"
)

func main() {
	fs := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	config.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wordgame: %v\n", err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "wordgame: %v\n", err)
		os.Exit(2)
	}
	if err := metric.Init(cfg.Metric.Address); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}
	defer func() {
		if err := metric.Close(); err != nil {
			log.Warn().Err(err).Msg("closing metrics client")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		log.Error().Err(err).Msg("wordgame failed")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	hasher, err := word.Lookup(cfg.Table.Hash)
	if err != nil {
		return err
	}

	for _, path := range cfg.Files {
		g := game.New(path, cfg.Table.Size, hasher)
		if err := g.PlayFile(ctx, path); err != nil {
			if ctx.Err() != nil {
				return err
			}
			// A game whose source cannot be read still reports what it has.
			log.Error().Err(err).Str("file", path).Msg("file exception")
		}

		stats := g.Stats()
		stats.Report()
		log.Debug().Str("file", path).Int("words", stats.Words).Int("distinct", stats.Distinct).
			Int("resizes", stats.Resizes).Msg("game finished")
		if _, err := stats.WriteTo(out); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "\n---First %d non-null entries of the hash table---\n\n%s\n",
			cfg.List.Limit, g.FormatListing(cfg.List.Limit)); err != nil {
			return err
		}
	}
	return nil
}
