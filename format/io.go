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
	"context"
	"io"

	"github.com/gorse-io/tabular/common/fileutil"
	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/dataset"
	"github.com/gorse-io/tabular/storage/blob"
	"github.com/juju/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Read reads a table from a file. The format is inferred from the extension.
func Read(path string) (*dataset.Table, error) {
	f, err := InferFormat(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return ReadFormat(path, f)
}

// ReadFormat reads a table from a file in the given format.
func ReadFormat(path string, f Format) (*dataset.Table, error) {
	codec, err := GetCodec(f)
	if err != nil {
		return nil, errors.Trace(err)
	}
	file, err := fileutil.OS.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	table, err := codec.Decode(file)
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read %s", path)
	}
	log.Logger().Debug("read table", zap.String("path", path), zap.Stringer("format", f),
		zap.Int("rows", table.Len()), zap.Int("columns", table.Width()))
	return table, nil
}

// Write writes a table to a file. The format is inferred from the extension and missing
// parent directories are created.
func Write(path string, table *dataset.Table) error {
	f, err := InferFormat(path)
	if err != nil {
		return errors.Trace(err)
	}
	return WriteFormat(path, table, f)
}

// WriteFormat writes a table to a file in the given format. Nothing is written if encoding
// fails.
func WriteFormat(path string, table *dataset.Table, f Format) error {
	codec, err := GetCodec(f)
	if err != nil {
		return errors.Trace(err)
	}
	var buf bytes.Buffer
	if err = codec.Encode(&buf, table); err != nil {
		return errors.Annotatef(err, "failed to write %s", path)
	}
	if err = fileutil.EnsureDir(fileutil.OS, path); err != nil {
		return errors.Trace(err)
	}
	if err = afero.WriteFile(fileutil.OS, path, buf.Bytes(), 0644); err != nil {
		return errors.Trace(err)
	}
	log.Logger().Debug("write table", zap.String("path", path), zap.Stringer("format", f),
		zap.Int("rows", table.Len()), zap.Int("columns", table.Width()))
	return nil
}

// ReadBlob reads a table from a blob store. The format is inferred from the name.
func ReadBlob(ctx context.Context, store blob.Store, name string) (*dataset.Table, error) {
	f, err := InferFormat(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	codec, err := GetCodec(f)
	if err != nil {
		return nil, errors.Trace(err)
	}
	r, err := store.Open(ctx, name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer r.Close()
	// spreadsheets need to seek
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	table, err := codec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Annotatef(err, "failed to read %s", name)
	}
	return table, nil
}

// WriteBlob writes a table to a blob store. The format is inferred from the name.
func WriteBlob(ctx context.Context, store blob.Store, name string, table *dataset.Table) error {
	f, err := InferFormat(name)
	if err != nil {
		return errors.Trace(err)
	}
	codec, err := GetCodec(f)
	if err != nil {
		return errors.Trace(err)
	}
	var buf bytes.Buffer
	if err = codec.Encode(&buf, table); err != nil {
		return errors.Annotatef(err, "failed to write %s", name)
	}
	w, err := store.Create(ctx, name)
	if err != nil {
		return errors.Trace(err)
	}
	if _, err = buf.WriteTo(w); err != nil {
		_ = w.Close()
		return errors.Trace(err)
	}
	return errors.Trace(w.Close())
}

// Transform converts a file to another format. The output is written next to the input with
// the extension replaced, and its path is returned.
func Transform(inPath string, outFormat Format) (string, error) {
	table, err := Read(inPath)
	if err != nil {
		return "", errors.Trace(err)
	}
	outPath := fileutil.ReplaceExt(inPath, outFormat.String())
	if err = WriteFormat(outPath, table, outFormat); err != nil {
		return "", errors.Trace(err)
	}
	return outPath, nil
}

// Concat concatenates rows of files into one file. Input formats may differ but columns must
// match in name and order.
func Concat(files []string, outPath string) error {
	if len(files) == 0 {
		return errors.NotValidf("no files to concatenate")
	}
	tables := make([]*dataset.Table, len(files))
	for i, file := range files {
		table, err := Read(file)
		if err != nil {
			return errors.Trace(err)
		}
		tables[i] = table
	}
	table, err := dataset.Concat(tables...)
	if err != nil {
		return errors.Trace(err)
	}
	return Write(outPath, table)
}
