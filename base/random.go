// Copyright 2026 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

import (
	"math/rand"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
)

// RandomGenerator is the random generator for splitters. It is not safe for concurrent use,
// goroutines that split in parallel should own one generator each.
type RandomGenerator struct {
	*rand.Rand
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{rand.New(rand.NewSource(seed))}
}

// NewTimeRandomGenerator creates a RandomGenerator seeded by the current time.
func NewTimeRandomGenerator() RandomGenerator {
	return NewRandomGenerator(time.Now().UnixNano())
}

// IsZero returns true if the generator has no source.
func (rng RandomGenerator) IsZero() bool {
	return rng.Rand == nil
}

// Sample n values between low and high, but not in exclude. The values are returned in the
// order they are drawn. If n covers every candidate, all candidates are returned in ascending order.
func (rng RandomGenerator) Sample(low, high, n int, exclude ...mapset.Set[int]) []int {
	intervalLength := high - low
	excludeSet := mapset.NewSet[int]()
	for _, set := range exclude {
		excludeSet = excludeSet.Union(set)
	}
	if n <= 0 || intervalLength <= 0 {
		return []int{}
	}
	sampled := make([]int, 0, n)
	if n >= intervalLength-excludeSet.Cardinality() {
		for i := low; i < high; i++ {
			if !excludeSet.Contains(i) {
				sampled = append(sampled, i)
				excludeSet.Add(i)
			}
		}
	} else if n > intervalLength/2 {
		// rejection sampling degrades when most candidates are taken
		perm := rng.Perm(intervalLength)
		for _, v := range perm {
			if len(sampled) >= n {
				break
			}
			if !excludeSet.Contains(v + low) {
				sampled = append(sampled, v+low)
			}
		}
	} else {
		for len(sampled) < n {
			v := rng.Intn(intervalLength) + low
			if !excludeSet.Contains(v) {
				sampled = append(sampled, v)
				excludeSet.Add(v)
			}
		}
	}
	return sampled
}
