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

// Package metric reports word game statistics to a statsd agent. Until Init
// is called with an address, every call is a no-op.
package metric

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"
)

const (
	GameScore     = "wordgame.score"
	GameWords     = "wordgame.words"
	TableFinds    = "wordgame.table.finds"
	TableProbes   = "wordgame.table.probes"
	TableOccupied = "wordgame.table.occupied"
	TableCapacity = "wordgame.table.capacity"
	TableResizes  = "wordgame.table.resizes"

	TagGame = "game"
)

var client statsd.ClientInterface = &statsd.NoOpClient{}

// Init points the package at the statsd agent listening on address. An
// empty address keeps the no-op client.
func Init(address string, tags ...string) error {
	if address == "" {
		client = &statsd.NoOpClient{}
		return nil
	}
	c, err := statsd.New(address, statsd.WithTags(tags))
	if err != nil {
		return fmt.Errorf("statsd client for %s: %w", address, err)
	}
	client = c
	log.Info().Str("address", address).Strs("tags", tags).Msg("metrics client initialized")
	return nil
}

// Close flushes and closes the client.
func Close() error {
	return client.Close()
}

// Tag formats a statsd tag.
func Tag(name, value string) string {
	return name + ":" + value
}

// Gauge records value under name.
func Gauge(name string, value float64, tags []string) {
	if err := client.Gauge(name, value, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("statsd gauge failed")
	}
}

// Incr increments the counter name by one.
func Incr(name string, tags []string) {
	if err := client.Incr(name, tags, 1); err != nil {
		log.Warn().Err(err).Str("metric", name).Msg("statsd incr failed")
	}
}
