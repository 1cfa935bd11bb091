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
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/gorse-io/tabular/dataset"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// inferColumn converts text cells to typed values. Blank cells become nil. The column
// becomes float64 if every present cell is a number, bool if every present cell is
// true/false, time.Time if every present cell is a date, and string otherwise.
func inferColumn(values []string, missing []bool) []any {
	isMissing := func(i int) bool {
		return (missing != nil && missing[i]) || strings.TrimSpace(values[i]) == ""
	}
	present := 0
	numbers, bools, dates := true, true, true
	for i, value := range values {
		if isMissing(i) {
			continue
		}
		present++
		value = strings.TrimSpace(value)
		if numbers {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				numbers = false
			}
		}
		if bools {
			if _, ok := parseBool(value); !ok {
				bools = false
			}
		}
		if dates {
			if _, err := parseDate(value); err != nil {
				dates = false
			}
		}
	}

	result := make([]any, len(values))
	for i, value := range values {
		if isMissing(i) {
			continue
		}
		value = strings.TrimSpace(value)
		switch {
		case present > 0 && numbers:
			result[i], _ = strconv.ParseFloat(value, 64)
		case present > 0 && bools:
			result[i], _ = parseBool(value)
		case present > 0 && dates:
			result[i], _ = parseDate(value)
		default:
			result[i] = values[i]
		}
	}
	return result
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

func parseDate(s string) (time.Time, error) {
	if !strings.ContainsFunc(s, unicode.IsDigit) {
		return time.Time{}, fmt.Errorf("%q is not a date", s)
	}
	return dateparse.ParseStrict(s)
}

// FormatCell renders a cell as text. Missing values render as an empty string.
func FormatCell(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case time.Time:
		if typed.Hour() == 0 && typed.Minute() == 0 && typed.Second() == 0 && typed.Nanosecond() == 0 {
			return typed.Format(dateLayout)
		}
		return typed.Format(dateTimeLayout)
	case float64:
		if math.IsNaN(typed) {
			return ""
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return cast.ToString(v)
	}
}

// buildTable creates a table from a header and text records. Records longer than the header
// get extra columns named "Column k", shorter records are padded with missing values.
func buildTable(header []string, records [][]string) (*dataset.Table, error) {
	width := len(header)
	for _, record := range records {
		width = max(width, len(record))
	}
	columns := make([]string, width)
	for j := range columns {
		if j < len(header) {
			columns[j] = header[j]
		} else {
			columns[j] = fmt.Sprintf("Column %d", j+1)
		}
	}
	values := make([][]any, width)
	for j := range values {
		cells := make([]string, len(records))
		missing := make([]bool, len(records))
		for i, record := range records {
			if j < len(record) {
				cells[i] = record[j]
			} else {
				missing[i] = true
			}
		}
		values[j] = inferColumn(cells, missing)
	}
	return fromColumns(columns, values, len(records))
}

// fromColumns creates a table from column-major values.
func fromColumns(columns []string, values [][]any, n int) (*dataset.Table, error) {
	table := dataset.NewTable(columns...)
	for i := 0; i < n; i++ {
		row := lo.Map(values, func(column []any, _ int) any {
			return column[i]
		})
		if err := table.Append(row...); err != nil {
			return nil, err
		}
	}
	return table, nil
}
