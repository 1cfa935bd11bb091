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

package dataset

import (
	"math"

	"github.com/gorse-io/tabular/base"
	"github.com/gorse-io/tabular/common/log"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Split partitions a table into len(weights) disjoint tables whose sizes follow the weights.
// The k-way split is a chain of binary splits: the first weight is split off the whole table,
// the second off the remainder, and so on. Each step draws round(n * w_i / sum(w_i..w_k))
// rows with ties to even, so the last partition absorbs the rounding.
//
// A single weight returns the table itself. Every row of the input appears in exactly one
// partition. rng is advanced by every draw.
func Split(table *Table, weights []float64, rng base.RandomGenerator) ([]*Table, error) {
	if table == nil {
		return nil, errors.NotValidf("nil table")
	}
	if err := validateWeights(weights); err != nil {
		return nil, errors.Trace(err)
	}
	if rng.IsZero() {
		return nil, errors.NotValidf("random generator")
	}
	if len(weights) == 1 {
		return []*Table{table}, nil
	}

	parts := make([]*Table, 0, len(weights))
	rest := table
	for i := 0; i < len(weights)-1; i++ {
		fraction := weights[i] / lo.Sum(weights[i:])
		count := int(math.RoundToEven(float64(rest.Len()) * fraction))
		var first *Table
		first, rest = splitCount(rest, count, rng)
		parts = append(parts, first)
	}
	parts = append(parts, rest)

	log.Logger().Debug("split table",
		zap.Int("rows", table.Len()),
		zap.Float64s("weights", weights),
		zap.Ints("sizes", lo.Map(parts, func(t *Table, _ int) int { return t.Len() })))
	return parts, nil
}

// BinarySplit splits a table in two. The first table holds floor(n * fraction) rows drawn
// uniformly without replacement, in draw order. The second holds the remaining rows in
// their original order. fraction must be within [0, 1].
func BinarySplit(table *Table, fraction float64, rng base.RandomGenerator) (*Table, *Table, error) {
	if table == nil {
		return nil, nil, errors.NotValidf("nil table")
	}
	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return nil, nil, errors.NotValidf("fraction %v", fraction)
	}
	if rng.IsZero() {
		return nil, nil, errors.NotValidf("random generator")
	}
	count := int(math.Floor(float64(table.Len()) * fraction))
	first, second := splitCount(table, count, rng)
	return first, second, nil
}

// KFold splits a table into k folds. The i-th test table is the i-th fold and the i-th
// train table is everything else. Fold sizes differ by at most one.
func KFold(table *Table, k int, rng base.RandomGenerator) (trainFolds, testFolds []*Table, err error) {
	if table == nil {
		return nil, nil, errors.NotValidf("nil table")
	}
	if k < 1 || (table.Len() > 0 && k > table.Len()) {
		return nil, nil, errors.NotValidf("%d folds for %d rows", k, table.Len())
	}
	if rng.IsZero() {
		return nil, nil, errors.NotValidf("random generator")
	}
	trainFolds = make([]*Table, k)
	testFolds = make([]*Table, k)
	perm := rng.Perm(table.Len())
	foldSize := table.Len() / k
	begin, end := 0, 0
	for i := 0; i < k; i++ {
		end += foldSize
		if i < table.Len()%k {
			end++
		}
		testFolds[i] = table.SubSet(perm[begin:end])
		trainIndex := append(append(make([]int, 0, table.Len()-(end-begin)), perm[:begin]...), perm[end:]...)
		trainFolds[i] = table.SubSet(trainIndex)
		begin = end
	}
	return trainFolds, testFolds, nil
}

// splitCount draws count rows into the first table and keeps the rest in order.
func splitCount(table *Table, count int, rng base.RandomGenerator) (*Table, *Table) {
	n := table.Len()
	count = min(max(count, 0), n)
	sampled := rng.Sample(0, n, count)
	taken := make([]bool, n)
	for _, index := range sampled {
		taken[index] = true
	}
	remain := make([]int, 0, n-count)
	for i := 0; i < n; i++ {
		if !taken[i] {
			remain = append(remain, i)
		}
	}
	return table.SubSet(sampled), table.SubSet(remain)
}

func validateWeights(weights []float64) error {
	if len(weights) == 0 {
		return errors.NotValidf("empty weights")
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return errors.NotValidf("weight %v at position %d", w, i)
		}
	}
	return nil
}
