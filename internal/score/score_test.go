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

package score

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cockroachdb/dhash/internal/word"
)

func TestLetters(t *testing.T) {
	require.Equal(t, 5, Letters("cat"))
	require.Equal(t, 87, Letters("abcdefghijklmnopqrstuvwxyz"))
	require.Equal(t, 20, Letters("q-z!"))
	require.Equal(t, 0, Letters("CAT"))
	require.Equal(t, 0, Letters("42"))
}

func TestLengthMultiplier(t *testing.T) {
	expected := []int{0, 0, 0, 1, 2, 3, 4, 5, 6, 6, 6, 6}
	for n, e := range expected {
		require.Equal(t, e, LengthMultiplier(n), "length=%d", n)
	}
}

func TestRepeatMultiplier(t *testing.T) {
	testCases := []struct {
		seen     int
		expected int
	}{
		{0, 5}, {1, 4}, {5, 4}, {6, 3}, {10, 3}, {11, 2}, {15, 2}, {16, 1}, {100, 1},
	}
	for _, c := range testCases {
		t.Run(fmt.Sprint(c.seen), func(t *testing.T) {
			require.Equal(t, c.expected, RepeatMultiplier(c.seen))
		})
	}
}

func TestCompute(t *testing.T) {
	w := word.New("Cat")
	require.Equal(t, 25, Compute(w))
	w.Incr()
	require.Equal(t, 20, Compute(w))

	// h+i+g+h+w+a+y+w+a+y+s = 30, eleven letters scale by 6, first sighting
	// by 5.
	require.Equal(t, 30*6*5, Compute(word.New("highwayWays")))

	require.Equal(t, 0, Compute(word.New("ox")))
}
