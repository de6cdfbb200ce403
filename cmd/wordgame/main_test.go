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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/dhash/internal/config"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game0.txt")
	require.NoError(t, os.WriteFile(path, []byte("cat dog cat"), 0644))

	cfg := config.Config{
		Table: config.TableConfig{Size: 101, Hash: "java"},
		List:  config.ListConfig{Limit: 20},
		Files: []string{path, filepath.Join(dir, "missing.txt")},
	}
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, &out))

	// "cat" and "dog" hash to 98262 and 99644 under the java hash, which land
	// in slots 90 and 58 of a 101 slot table.
	expected := path + ` Total Score: 70
` + path + ` Total finds 3
` + path + ` Total probes 0
` + path + ` Total items in hash 2
` + path + ` Size of hash table 101

---First 20 non-null entries of the hash table---

58: dog(1)
90: cat(2)

`
	missing := filepath.Join(dir, "missing.txt")
	expected += missing + ` Total Score: 0
` + missing + ` Total finds 0
` + missing + ` Total probes 0
` + missing + ` Total items in hash 0
` + missing + ` Size of hash table 101

---First 20 non-null entries of the hash table---


`
	require.Equal(t, expected, out.String())
}
