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
	"io"
	"math"
	"time"

	"github.com/extrame/xls"
	"github.com/gorse-io/tabular/dataset"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// xlsxCodec reads the first worksheet of a workbook and writes a single worksheet.
type xlsxCodec struct{}

func (xlsxCodec) Decode(r io.ReadSeeker) (*dataset.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open xlsx")
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.NewTable(), nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Trace(err)
	}
	if len(rows) == 0 {
		return dataset.NewTable(), nil
	}
	return buildTable(rows[0], rows[1:])
}

func (xlsxCodec) Encode(w io.Writer, table *dataset.Table) error {
	f := excelize.NewFile()
	defer f.Close()
	if table.Width() > 0 {
		if err := setRow(f, 1, lo.ToAnySlice(table.Columns())); err != nil {
			return err
		}
	}
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		for j, v := range row {
			switch typed := v.(type) {
			case time.Time:
				// stored as text so that reading back does not depend on the number format
				row[j] = FormatCell(typed)
			case float64:
				if math.IsNaN(typed) || math.IsInf(typed, 0) {
					row[j] = nil
				}
			}
		}
		if err := setRow(f, i+2, row); err != nil {
			return err
		}
	}
	return errors.Trace(f.Write(w))
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(f.SetSheetRow(defaultSheet, cell, &values))
}

// xlsCodec reads the first worksheet of a legacy BIFF workbook. Writing is not supported.
type xlsCodec struct{}

func (xlsCodec) Decode(r io.ReadSeeker) (*dataset.Table, error) {
	book, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, errors.Annotate(err, "failed to open xls")
	}
	sheet := book.GetSheet(0)
	if sheet == nil {
		return dataset.NewTable(), nil
	}
	var records [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		record := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			record = append(record, row.Col(j))
		}
		records = append(records, record)
	}
	// trailing empty rows are not part of the table
	for len(records) > 0 && len(records[len(records)-1]) == 0 {
		records = records[:len(records)-1]
	}
	if len(records) == 0 {
		return dataset.NewTable(), nil
	}
	return buildTable(records[0], records[1:])
}

// sheetRow returns nil for rows absent from the sheet, which WorkSheet.Row dereferences.
func sheetRow(sheet *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return sheet.Row(i)
}

func (xlsCodec) Encode(io.Writer, *dataset.Table) error {
	return errors.NotSupportedf("writing xls")
}
