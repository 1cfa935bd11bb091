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

package format

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInferColumn(t *testing.T) {
	// numbers
	assert.Equal(t, []any{1.0, nil, -2.5}, inferColumn([]string{"1", " ", "-2.5"}, nil))
	// booleans
	assert.Equal(t, []any{true, false, nil}, inferColumn([]string{"True", "false", "x"}, []bool{false, false, true}))
	// strings
	assert.Equal(t, []any{"1", "a", nil}, inferColumn([]string{"1", "a", ""}, nil))
	// all missing
	assert.Equal(t, []any{nil, nil}, inferColumn([]string{"", ""}, nil))

	// dates
	values := inferColumn([]string{"2024-01-02", "2024-01-03 04:05:06"}, nil)
	if assert.IsType(t, time.Time{}, values[0]) {
		assert.Equal(t, "2024-01-02", FormatCell(values[0]))
		assert.Equal(t, "2024-01-03 04:05:06", FormatCell(values[1]))
	}
	// a single non-date turns the column into strings
	assert.Equal(t, []any{"2024-01-02", "tomorrow"}, inferColumn([]string{"2024-01-02", "tomorrow"}, nil))
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil))
	assert.Equal(t, "", FormatCell(math.NaN()))
	assert.Equal(t, "3", FormatCell(3.0))
	assert.Equal(t, "0.1", FormatCell(0.1))
	assert.Equal(t, "1000000", FormatCell(1e6))
	assert.Equal(t, "7", FormatCell(int64(7)))
	assert.Equal(t, "true", FormatCell(true))
	assert.Equal(t, "text", FormatCell("text"))
	assert.Equal(t, "2024-05-06", FormatCell(time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06 07:08:09", FormatCell(time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)))
}

func TestBuildTable(t *testing.T) {
	table, err := buildTable([]string{"a"}, [][]string{{"1", "x"}, {}, {"3"}})
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "Column 2"}, table.Columns())
	assert.Equal(t, []any{1.0, "x"}, table.Row(0))
	assert.Equal(t, []any{nil, nil}, table.Row(1))
	assert.Equal(t, []any{3.0, nil}, table.Row(2))
}
