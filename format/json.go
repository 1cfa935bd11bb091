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
	"bytes"
	"io"
	"math"
	"slices"
	"strconv"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/gorse-io/tabular/dataset"
	jsoniter "github.com/json-iterator/go"
	"github.com/juju/errors"
)

// maxExactInt is the largest integer magnitude a float64 holds exactly.
const maxExactInt = 1 << 53

var json = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// splitDocument is the "split" orientation: column names plus row-major data.
type splitDocument struct {
	Columns []string `json:"columns"`
	Data    [][]any  `json:"data"`
}

// jsonCodec writes the split orientation. It reads the split orientation, an array of
// records, or an object of columns whose values are arrays or objects keyed by row label.
type jsonCodec struct{}

func (jsonCodec) Encode(w io.Writer, table *dataset.Table) error {
	doc := splitDocument{
		Columns: table.Columns(),
		Data:    make([][]any, table.Len()),
	}
	for i := range doc.Data {
		row := table.Row(i)
		for j, v := range row {
			switch typed := v.(type) {
			case time.Time:
				row[j] = FormatCell(typed)
			case float64:
				if math.IsNaN(typed) || math.IsInf(typed, 0) {
					row[j] = nil
				}
			}
		}
		doc.Data[i] = row
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = w.Write(data)
	return errors.Trace(err)
}

func (jsonCodec) Decode(r io.ReadSeeker) (*dataset.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	data = bytes.TrimSpace(bytes.TrimPrefix(data, utf8BOM))
	if len(data) == 0 {
		return dataset.NewTable(), nil
	}
	iter := jsoniter.ParseBytes(json, data)
	var table *dataset.Table
	switch iter.WhatIsNext() {
	case jsoniter.ArrayValue:
		table, err = decodeRecords(iter)
	case jsoniter.ObjectValue:
		table, err = decodeObject(iter)
	default:
		return nil, errors.NotValidf("json table must be an array or an object")
	}
	if err != nil {
		return nil, errors.Trace(err)
	}
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Annotate(iter.Error, "failed to parse json")
	}
	return table, nil
}

// decodeRecords decodes [{"a": 1, "b": 2}, ...]. Columns are ordered by first appearance.
func decodeRecords(iter *jsoniter.Iterator) (*dataset.Table, error) {
	var (
		columns []string
		records []map[string]any
		err     error
	)
	seen := mapset.NewThreadUnsafeSet[string]()
	iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		if iter.WhatIsNext() != jsoniter.ObjectValue {
			err = errors.NotValidf("json record must be an object")
			return false
		}
		record := make(map[string]any)
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
			if seen.Add(field) {
				columns = append(columns, field)
			}
			record[field] = readCell(iter)
			return true
		})
		records = append(records, record)
		return iter.Error == nil
	})
	if err != nil {
		return nil, err
	}
	table := dataset.NewTable(columns...)
	for _, record := range records {
		row := make([]any, len(columns))
		for j, column := range columns {
			row[j] = record[column]
		}
		if err = table.Append(row...); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// decodeObject decodes either the split orientation or an object of columns.
func decodeObject(iter *jsoniter.Iterator) (*dataset.Table, error) {
	var (
		fields []string
		raws   [][]byte
	)
	iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
		fields = append(fields, field)
		raws = append(raws, iter.SkipAndReturnBytes())
		return iter.Error == nil
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Annotate(iter.Error, "failed to parse json")
	}

	columnsAt, dataAt := slices.Index(fields, "columns"), slices.Index(fields, "data")
	if columnsAt >= 0 && dataAt >= 0 {
		var doc splitDocument
		if err := json.Unmarshal(raws[columnsAt], &doc.Columns); err != nil {
			return nil, errors.Annotate(err, "failed to parse json columns")
		}
		table := dataset.NewTable(doc.Columns...)
		rows := jsoniter.ParseBytes(json, raws[dataAt])
		var err error
		rows.ReadArrayCB(func(rows *jsoniter.Iterator) bool {
			var row []any
			rows.ReadArrayCB(func(cells *jsoniter.Iterator) bool {
				row = append(row, readCell(cells))
				return true
			})
			err = table.Append(row...)
			return err == nil && rows.Error == nil
		})
		if err != nil {
			return nil, err
		}
		if rows.Error != nil && rows.Error != io.EOF {
			return nil, errors.Annotate(rows.Error, "failed to parse json data")
		}
		return table, nil
	}

	// object of columns
	var labels []string
	seen := mapset.NewThreadUnsafeSet[string]()
	columns := make([]map[string]any, len(fields))
	for j, raw := range raws {
		columns[j] = make(map[string]any)
		column := jsoniter.ParseBytes(json, raw)
		switch column.WhatIsNext() {
		case jsoniter.ArrayValue:
			i := 0
			column.ReadArrayCB(func(cells *jsoniter.Iterator) bool {
				label := strconv.Itoa(i)
				if seen.Add(label) {
					labels = append(labels, label)
				}
				columns[j][label] = readCell(cells)
				i++
				return true
			})
		case jsoniter.ObjectValue:
			column.ReadObjectCB(func(cells *jsoniter.Iterator, label string) bool {
				if seen.Add(label) {
					labels = append(labels, label)
				}
				columns[j][label] = readCell(cells)
				return true
			})
		default:
			return nil, errors.NotValidf("json column %s must be an array or an object", fields[j])
		}
		if column.Error != nil && column.Error != io.EOF {
			return nil, errors.Annotate(column.Error, "failed to parse json column")
		}
	}
	table := dataset.NewTable(fields...)
	for _, label := range labels {
		row := make([]any, len(fields))
		for j := range fields {
			row[j] = columns[j][label]
		}
		if err := table.Append(row...); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// readCell reads a scalar. Numbers are float64 except integers too large for a float64 to
// hold exactly, which stay int64. Nested arrays and objects are kept as their JSON text.
func readCell(iter *jsoniter.Iterator) any {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		number := iter.ReadNumber()
		if i, err := number.Int64(); err == nil && (i > maxExactInt || i < -maxExactInt) {
			return i
		}
		f, err := number.Float64()
		if err != nil {
			iter.ReportError("readCell", err.Error())
		}
		return f
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	default:
		return string(iter.SkipAndReturnBytes())
	}
}
