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

package word

import (
	"fmt"
	"sort"
	"unicode/utf16"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
)

// Hasher hashes a word's text.
type Hasher func(text string) uint64

// Hasher names accepted by Lookup.
const (
	HashXX     = "xxhash"
	HashMurmur = "murmur3"
	HashJava   = "java"
)

var hashers = map[string]Hasher{
	HashXX:     XXHash,
	HashMurmur: MurmurHash,
	HashJava:   JavaHash,
}

// Lookup returns the Hasher registered under name.
func Lookup(name string) (Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("unknown hash %q (want one of %v)", name, Names())
	}
	return h, nil
}

// Names returns the registered hasher names in sorted order.
func Names() []string {
	names := make([]string, 0, len(hashers))
	for name := range hashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// XXHash is the 64-bit xxHash of text.
func XXHash(text string) uint64 {
	return xxhash.Sum64String(text)
}

// MurmurHash is the 64-bit MurmurHash3 of text.
func MurmurHash(text string) uint64 {
	return murmur3.Sum64([]byte(text))
}

// JavaHash is the magnitude of the 32-bit polynomial string hash
// s[0]*31^(n-1) + ... + s[n-1] computed over UTF-16 code units. It spreads
// short words poorly, which makes probe sequences longer and easier to
// observe.
func JavaHash(text string) uint64 {
	var h int32
	for _, c := range utf16.Encode([]rune(text)) {
		h = 31*h + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return uint64(v)
}
