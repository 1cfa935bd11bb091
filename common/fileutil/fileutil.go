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

// Package fileutil contains helpers for paths and plain files. Functions touching the disk
// take an afero.Fs so callers can swap in an in-memory filesystem.
package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/spf13/afero"
)

// AnyExtension matches every file in ListFiles.
const AnyExtension = "*"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OS is the filesystem of the operating system.
var OS afero.Fs = afero.NewOsFs()

// Ext returns the extension of a file with the leading dot, e.g. "dir/file.txt" -> ".txt".
// It returns an empty string if there is none.
func Ext(path string) string {
	return filepath.Ext(path)
}

// Leaf returns the file name without directories. A trailing separator is ignored.
func Leaf(path string) string {
	return filepath.Base(strings.TrimRight(path, `/\`))
}

// ReplaceExt replaces the extension of a path. ext may be given with or without a dot.
func ReplaceExt(path, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// ListFiles walks dir recursively and returns files whose extension is in exts. No
// extensions, or AnyExtension, matches every file. The result is sorted.
func ListFiles(fsys afero.Fs, dir string, exts ...string) ([]string, error) {
	matchAll := len(exts) == 0 || lo.Contains(exts, AnyExtension)
	var files []string
	err := afero.Walk(fsys, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if matchAll || lo.Contains(exts, Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	sort.Strings(files)
	return files, nil
}

// Remove removes all files. It stops at the first failure.
func Remove(fsys afero.Fs, paths ...string) error {
	for _, path := range paths {
		if err := fsys.Remove(path); err != nil {
			return errors.Annotatef(err, "failed to remove %s", path)
		}
	}
	return nil
}

// EnsureDir creates the parent directories of a file path.
func EnsureDir(fsys afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return errors.Trace(fsys.MkdirAll(dir, os.ModePerm))
}

// ReadText reads a UTF-8 text file and strips carriage returns.
func ReadText(fsys afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return "", errors.Trace(err)
	}
	return strings.ReplaceAll(string(data), "\r", ""), nil
}

// WriteText writes a text file, creating parent directories.
func WriteText(fsys afero.Fs, path, content string) error {
	if err := EnsureDir(fsys, path); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(afero.WriteFile(fsys, path, []byte(content), 0644))
}

// ReadJSON decodes a JSON file into v.
func ReadJSON(fsys afero.Fs, path string, v any) error {
	text, err := ReadText(fsys, path)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(json.UnmarshalFromString(text, v))
}

// WriteJSON encodes v into a JSON file indented by two spaces.
func WriteJSON(fsys afero.Fs, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}
	return WriteText(fsys, path, string(data))
}
