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
	"path"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestPOSIX(t *testing.T) {
	ctx := context.Background()
	// create client
	client := NewPOSIX(path.Join(t.TempDir(), "blob"))

	// missing directory is empty
	names, err := client.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)

	// write a temp file
	w, err := client.Create(ctx, "sub/test")
	assert.NoError(t, err)
	_, err = w.Write([]byte("hello world"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	// read the file
	r, err := client.Open(ctx, "sub/test")
	assert.NoError(t, err)
	content, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
	assert.NoError(t, r.Close())

	// list files
	names, err = client.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"sub/test"}, names)

	// remove file
	assert.NoError(t, client.Remove(ctx, "sub/test"))
	_, err = client.Open(ctx, "sub/test")
	assert.Error(t, err)
}

func TestPOSIX_MemMapFs(t *testing.T) {
	ctx := context.Background()
	client := &POSIX{fs: afero.NewMemMapFs(), dir: "data"}
	for _, name := range []string{"b.csv", "a.json"} {
		w, err := client.Create(ctx, name)
		assert.NoError(t, err)
		assert.NoError(t, w.Close())
	}
	names, err := client.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.csv"}, names)
}
