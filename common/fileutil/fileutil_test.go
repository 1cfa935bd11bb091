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

package fileutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestExt(t *testing.T) {
	assert.Equal(t, ".txt", Ext("dir/file.txt"))
	assert.Equal(t, ".xlsx", Ext("a.b/c.xlsx"))
	assert.Equal(t, "", Ext("dir/file"))
}

func TestLeaf(t *testing.T) {
	assert.Equal(t, "file.txt", Leaf("a/b/file.txt"))
	assert.Equal(t, "b", Leaf("a/b/"))
	assert.Equal(t, "file.txt", Leaf("file.txt"))
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "out/data.xlsx", ReplaceExt("out/data.csv", "xlsx"))
	assert.Equal(t, "out/data.json", ReplaceExt("out/data.csv", ".json"))
	assert.Equal(t, "csv/data.xls", ReplaceExt("csv/data.csv", "xls"))
	assert.Equal(t, "data.csv", ReplaceExt("data", "csv"))
}

func TestListFiles(t *testing.T) {
	fsys := afero.NewMemMapFs()
	for _, name := range []string{"root/a.csv", "root/b.json", "root/sub/c.csv", "root/sub/deep/d.xlsx"} {
		assert.NoError(t, WriteText(fsys, name, "x"))
	}

	files, err := ListFiles(fsys, "root", ".csv")
	assert.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("root", "a.csv"), filepath.Join("root", "sub", "c.csv")}, files)

	files, err = ListFiles(fsys, "root", ".csv", ".xlsx")
	assert.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = ListFiles(fsys, "root")
	assert.NoError(t, err)
	assert.Len(t, files, 4)
	files, err = ListFiles(fsys, "root", AnyExtension)
	assert.NoError(t, err)
	assert.Len(t, files, 4)

	_, err = ListFiles(fsys, "missing")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, WriteText(fsys, "a.txt", "a"))
	assert.NoError(t, WriteText(fsys, "b.txt", "b"))
	assert.NoError(t, Remove(fsys, "a.txt", "b.txt"))
	exist, err := afero.Exists(fsys, "a.txt")
	assert.NoError(t, err)
	assert.False(t, exist)
	assert.Error(t, Remove(fsys, "a.txt"))
}

func TestText(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, WriteText(fsys, "x/y/z.txt", "héllo\r\nworld\r\n"))
	text, err := ReadText(fsys, "x/y/z.txt")
	assert.NoError(t, err)
	assert.Equal(t, "héllo\nworld\n", text)
	_, err = ReadText(fsys, "missing.txt")
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	fsys := afero.NewMemMapFs()
	value := map[string]any{"name": "ümlaut", "values": []any{1.0, 2.0}}
	assert.NoError(t, WriteJSON(fsys, "out/v.json", value))
	text, err := ReadText(fsys, "out/v.json")
	assert.NoError(t, err)
	assert.Contains(t, text, "\n  \"name\"")

	var decoded map[string]any
	assert.NoError(t, ReadJSON(fsys, "out/v.json", &decoded))
	assert.Equal(t, value, decoded)
}
