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

package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/gorse-io/tabular/common/fileutil"
	"github.com/juju/errors"
	"github.com/spf13/afero"
)

// POSIX stores files in a directory.
type POSIX struct {
	fs  afero.Fs
	dir string
}

func NewPOSIX(dir string) *POSIX {
	return &POSIX{fs: fileutil.OS, dir: dir}
}

// Open a file for reading. It returns an io.Reader that can be used to read the file's content.
func (p *POSIX) Open(_ context.Context, name string) (io.ReadCloser, error) {
	file, err := p.fs.Open(filepath.Join(p.dir, name))
	if err != nil {
		return nil, errors.Trace(err)
	}
	return file, nil
}

// Create a new file for writing. Parent directories are created if not exist.
func (p *POSIX) Create(_ context.Context, name string) (io.WriteCloser, error) {
	fullPath := filepath.Join(p.dir, name)
	if err := p.fs.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return nil, errors.Trace(err)
	}
	file, err := p.fs.Create(fullPath)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return file, nil
}

func (p *POSIX) List(_ context.Context) ([]string, error) {
	if exist, err := afero.DirExists(p.fs, p.dir); err != nil {
		return nil, errors.Trace(err)
	} else if !exist {
		return nil, nil
	}
	files, err := fileutil.ListFiles(p.fs, p.dir)
	if err != nil {
		return nil, errors.Trace(err)
	}
	names := make([]string, 0, len(files))
	for _, file := range files {
		name, err := filepath.Rel(p.dir, file)
		if err != nil {
			return nil, errors.Trace(err)
		}
		names = append(names, filepath.ToSlash(name))
	}
	sort.Strings(names)
	return names, nil
}

func (p *POSIX) Remove(_ context.Context, name string) error {
	return fileutil.Remove(p.fs, filepath.Join(p.dir, name))
}
