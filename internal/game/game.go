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

// Package game plays the word game: it reads words from a text source,
// counts them in a dhash.Table and totals their scores.
package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/cockroachdb/dhash"
	"github.com/cockroachdb/dhash/internal/metric"
	"github.com/cockroachdb/dhash/internal/score"
	"github.com/cockroachdb/dhash/internal/word"
)

// Stats summarizes a played game and the state of its table.
type Stats struct {
	Name       string
	TotalScore int
	// Words is the number of words read; Distinct the number of different
	// words among them.
	Words    int
	Distinct int
	Finds    int
	Probes   int
	Occupied int
	Capacity int
	Resizes  int
}

// Game is one play through of a word source. A Game is NOT goroutine-safe.
type Game struct {
	name    string
	table   *dhash.Table[*word.Word]
	score   int
	words   int
	resizes int
}

// New returns a Game named name whose table starts at approximately size
// slots and hashes words with hasher.
func New(name string, size int, hasher word.Hasher) *Game {
	g := &Game{name: name}
	g.table = dhash.New[*word.Word](size,
		dhash.WithHash(func(w *word.Word) uint64 {
			return hasher(w.Text())
		}),
		dhash.WithGrowthHook[*word.Word](g.grew))
	return g
}

func (g *Game) grew(oldCapacity, newCapacity int) {
	g.resizes++
	log.Debug().Str("game", g.name).Int("from", oldCapacity).Int("to", newCapacity).
		Msg("table resized")
	metric.Incr(metric.TableResizes, []string{metric.Tag(metric.TagGame, g.name)})
}

// Play reads whitespace separated words from r and scores each one. The
// first sighting of a word is inserted into the table; every sighting looks
// the stored word up, scores it by how often it has been seen so far and
// records the sighting. Play may be called repeatedly to continue the game
// with more input. Cancellation is checked between words.
func (g *Game) Play(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.play(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", g.name, err)
	}
	return nil
}

func (g *Game) play(text string) {
	w := word.New(text)
	g.table.Insert(w)

	// The stored word carries the sightings; w is only a probe when the word
	// was already present.
	w, _ = g.table.Find(w)
	points := score.Compute(w)
	w.Incr()

	g.score += points
	g.words++
	log.Trace().Str("word", w.Text()).Int("seen", w.Seen()).Int("points", points).Msg("scored")
}

// Stats returns the game's current statistics.
func (g *Game) Stats() Stats {
	return Stats{
		Name:       g.name,
		TotalScore: g.score,
		Words:      g.words,
		Distinct:   g.table.Len(),
		Finds:      g.table.FindCount(),
		Probes:     g.table.ProbeCount(),
		Occupied:   g.table.OccupiedCount(),
		Capacity:   g.table.Capacity(),
		Resizes:    g.resizes,
	}
}

// Listing returns up to limit of the table's entries in slot order.
func (g *Game) Listing(limit int) []dhash.Entry[*word.Word] {
	return g.table.Entries(limit)
}

// FormatListing renders up to limit of the table's entries, one
// "index: word(seen)" per line.
func (g *Game) FormatListing(limit int) string {
	return g.table.Format(limit)
}

// Report emits the statistics as gauges tagged with the game name.
func (s Stats) Report() {
	tags := []string{metric.Tag(metric.TagGame, s.Name)}
	metric.Gauge(metric.GameScore, float64(s.TotalScore), tags)
	metric.Gauge(metric.GameWords, float64(s.Words), tags)
	metric.Gauge(metric.TableFinds, float64(s.Finds), tags)
	metric.Gauge(metric.TableProbes, float64(s.Probes), tags)
	metric.Gauge(metric.TableOccupied, float64(s.Occupied), tags)
	metric.Gauge(metric.TableCapacity, float64(s.Capacity), tags)
}

// WriteTo writes the summary lines for the game.
func (s Stats) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, line := range [][2]string{
		{"Total Score: ", strconv.Itoa(s.TotalScore)},
		{"Total finds ", strconv.Itoa(s.Finds)},
		{"Total probes ", strconv.Itoa(s.Probes)},
		{"Total items in hash ", strconv.Itoa(s.Occupied)},
		{"Size of hash table ", strconv.Itoa(s.Capacity)},
	} {
		m, err := fmt.Fprintf(w, "%s %s%s\n", s.Name, line[0], line[1])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
