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

// Package score implements the word game's scoring policy. A word is worth
// the sum of its letter values, scaled by its length and by a bonus which
// shrinks each time the word is repeated.
package score

// letterValues holds the value of 'a' through 'z'.
var letterValues = [26]int{
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3, 1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10,
}

// Word is the view of a word the scoring policy needs.
type Word interface {
	Text() string
	Len() int
	Seen() int
}

// Compute returns the score for w given the number of times it has already
// been seen.
func Compute(w Word) int {
	return Letters(w.Text()) * LengthMultiplier(w.Len()) * RepeatMultiplier(w.Seen())
}

// LetterValue returns the value of r. Only lowercase ASCII letters score.
func LetterValue(r rune) int {
	if r < 'a' || r > 'z' {
		return 0
	}
	return letterValues[r-'a']
}

// Letters sums the letter values of text.
func Letters(text string) int {
	var sum int
	for _, r := range text {
		sum += LetterValue(r)
	}
	return sum
}

// LengthMultiplier returns 0 for words of two letters or fewer, length-2 for
// words of up to eight letters and 6 beyond that.
func LengthMultiplier(length int) int {
	switch {
	case length <= 2:
		return 0
	case length <= 8:
		return length - 2
	default:
		return 6
	}
}

// RepeatMultiplier returns the bonus for a word already seen the given number
// of times: 5 the first time, then 4, 3 and 2 through 5, 10 and 15 repeats.
func RepeatMultiplier(seen int) int {
	switch {
	case seen <= 0:
		return 5
	case seen <= 5:
		return 4
	case seen <= 10:
		return 3
	case seen <= 15:
		return 2
	default:
		return 1
	}
}
