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

// Package word provides the element stored in the word game's table: a
// lowercased word together with the number of times it has been seen.
package word

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Word is a case-insensitive word and a count of the times it has been seen.
// Identity (Hash and Equal) depends only on the text, so the count may be
// updated while the Word is stored in a table.
type Word struct {
	text   string
	length int
	seen   int
}

// New returns a Word for text, which is lowercased. The word starts out
// unseen.
func New(text string) *Word {
	text = strings.ToLower(text)
	return &Word{
		text:   text,
		length: utf8.RuneCountInString(text),
	}
}

// Text returns the lowercased text of the word.
func (w *Word) Text() string {
	return w.text
}

// Len returns the number of runes in the word.
func (w *Word) Len() int {
	return w.length
}

// Seen returns the number of times the word has been seen.
func (w *Word) Seen() int {
	return w.seen
}

// Incr records another sighting of the word.
func (w *Word) Incr() {
	w.seen++
}

// Hash returns the default (xxhash) hash of the word's text.
func (w *Word) Hash() uint64 {
	return XXHash(w.text)
}

// Equal compares words by text.
func (w *Word) Equal(other *Word) bool {
	return w == other || w.text == other.text
}

// String renders the word as "text(seen)".
func (w *Word) String() string {
	return fmt.Sprintf("%s(%d)", w.text, w.seen)
}
