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
	"io"
	"strings"

	"github.com/gorse-io/tabular/common/fileutil"
	"github.com/gorse-io/tabular/dataset"
	"github.com/juju/errors"
)

// Format is a container format of tables.
type Format int

const (
	Unknown Format = iota
	CSV
	JSON
	XLS
	XLSX
)

var formatNames = map[Format]string{
	CSV:  "csv",
	JSON: "json",
	XLS:  "xls",
	XLSX: "xlsx",
}

// Formats lists every supported format.
var Formats = []Format{CSV, JSON, XLS, XLSX}

// String returns the extension name of the format without the dot.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Codec encodes and decodes tables of one format.
type Codec interface {
	Decode(r io.ReadSeeker) (*dataset.Table, error)
	Encode(w io.Writer, table *dataset.Table) error
}

var codecs = map[Format]Codec{
	CSV:  csvCodec{},
	JSON: jsonCodec{},
	XLS:  xlsCodec{},
	XLSX: xlsxCodec{},
}

// GetCodec returns the codec of a format.
func GetCodec(f Format) (Codec, error) {
	codec, ok := codecs[f]
	if !ok {
		return nil, errors.NotSupportedf("format %v", f)
	}
	return codec, nil
}

// ParseFormat parses a format name such as "csv" or ".xlsx".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return Unknown, errors.NotSupportedf("format %q", name)
}

// InferFormat infers the format of a file from its extension.
func InferFormat(path string) (Format, error) {
	ext := fileutil.Ext(path)
	if ext == "" {
		return Unknown, errors.NewNotSupported(nil,
			fmt.Sprintf("%s has no extension, cannot infer a format", path))
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return Unknown, errors.Annotatef(err, "extension of %s", path)
	}
	return f, nil
}
