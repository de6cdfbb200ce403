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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	w := New("Hello")
	require.Equal(t, "hello", w.Text())
	require.Equal(t, 5, w.Len())
	require.Equal(t, 0, w.Seen())
	require.Equal(t, "hello(0)", w.String())

	w.Incr()
	w.Incr()
	require.Equal(t, 2, w.Seen())
	require.Equal(t, "hello(2)", w.String())

	require.Equal(t, 4, New("Éclo").Len())
}

func TestEqualAndHash(t *testing.T) {
	a, b, c := New("Cat"), New("cAT"), New("dog")
	require.True(t, a.Equal(b))
	require.True(t, a.Equal(a))
	require.False(t, a.Equal(c))
	require.Equal(t, a.Hash(), b.Hash())

	// The seen count does not participate in identity.
	h := a.Hash()
	a.Incr()
	require.True(t, a.Equal(b))
	require.Equal(t, h, a.Hash())
}

func TestJavaHash(t *testing.T) {
	testCases := []struct {
		text     string
		expected uint64
	}{
		{"", 0},
		{"a", 97},
		{"cat", 98262},
		{"hello", 99162322},
		// "polygenelubricants".hashCode() == math.MinInt32.
		{"polygenelubricants", 1 << 31},
	}
	for _, c := range testCases {
		t.Run(c.text, func(t *testing.T) {
			require.Equal(t, c.expected, JavaHash(c.text))
		})
	}
}

func TestLookup(t *testing.T) {
	require.Equal(t, []string{HashJava, HashMurmur, HashXX}, Names())
	for _, name := range Names() {
		h, err := Lookup(name)
		require.NoError(t, err)
		require.Equal(t, h("cat"), h("cat"))
		require.NotEqual(t, h("cat"), h("dog"))
	}

	h, err := Lookup(HashXX)
	require.NoError(t, err)
	require.Equal(t, New("cat").Hash(), h("cat"))

	_, err = Lookup("sha1")
	require.ErrorContains(t, err, `unknown hash "sha1"`)
}
