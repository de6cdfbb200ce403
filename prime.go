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

package dhash

// nextPrime returns the smallest prime >= n. Even n are bumped to the next
// odd number first, so nextPrime(2) is 3; the result is never less than 3,
// which keeps the double hashing modulus (capacity-2) positive.
func nextPrime(n int) int {
	if n%2 == 0 {
		n++
	}
	if n < 3 {
		n = 3
	}
	for !isPrime(n) {
		n += 2
	}
	return n
}

// isPrime reports whether n is prime using trial division by odd numbers up
// to sqrt(n).
func isPrime(n int) bool {
	if n == 2 || n == 3 {
		return true
	}
	if n < 2 || n%2 == 0 {
		return false
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
