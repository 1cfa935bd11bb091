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
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_Sample(t *testing.T) {
	excludeSet := mapset.NewSet(0, 1, 2, 3, 4)
	rng := NewRandomGenerator(0)
	for i := 1; i <= 10; i++ {
		sampled := rng.Sample(0, 10, i, excludeSet)
		assert.LessOrEqual(t, len(sampled), i)
		for j := range sampled {
			assert.False(t, excludeSet.Contains(sampled[j]))
		}
		assert.Equal(t, len(sampled), mapset.NewSet(sampled...).Cardinality())
	}
}

func TestRandomGenerator_SampleWithoutReplacement(t *testing.T) {
	rng := NewRandomGenerator(0)
	for _, n := range []int{0, 1, 30, 70, 99, 100} {
		sampled := rng.Sample(0, 100, n)
		assert.Len(t, sampled, n)
		assert.Equal(t, n, mapset.NewSet(sampled...).Cardinality())
		for _, v := range sampled {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 100)
		}
	}
	assert.Empty(t, rng.Sample(0, 0, 5))
	assert.Empty(t, rng.Sample(0, 10, -1))
}

func TestRandomGenerator_Deterministic(t *testing.T) {
	a := NewRandomGenerator(42).Sample(0, 1000, 10)
	b := NewRandomGenerator(42).Sample(0, 1000, 10)
	assert.Equal(t, a, b)
	assert.False(t, NewRandomGenerator(42).IsZero())
	assert.True(t, RandomGenerator{}.IsZero())
}
