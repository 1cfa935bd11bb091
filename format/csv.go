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
	"encoding/csv"
	"io"

	"github.com/gorse-io/tabular/dataset"
	"github.com/juju/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvCodec reads and writes comma separated text with a header row and no index column.
type csvCodec struct{}

func (csvCodec) Decode(r io.ReadSeeker) (*dataset.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return dataset.NewTable(), nil
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Annotate(err, "failed to read csv")
	}
	if len(records) == 0 {
		return dataset.NewTable(), nil
	}
	// every column is read as text, types are inferred over all rows afterwards
	return buildTable(records[0], records[1:])
}

func (csvCodec) Encode(w io.Writer, table *dataset.Table) error {
	if table.Width() == 0 {
		return nil
	}
	writer := csv.NewWriter(w)
	if err := writer.Write(table.Columns()); err != nil {
		return errors.Trace(err)
	}
	record := make([]string, table.Width())
	for i := 0; i < table.Len(); i++ {
		for j := range record {
			record[j] = FormatCell(table.Value(i, j))
		}
		if err := writer.Write(record); err != nil {
			return errors.Trace(err)
		}
	}
	writer.Flush()
	return errors.Trace(writer.Error())
}
