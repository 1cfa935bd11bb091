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
	"testing"

	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/assert"
)

func TestGCS(t *testing.T) {
	ctx := context.Background()
	server := fakestorage.NewServer(nil)
	defer server.Stop()
	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: "tabular-test"})

	// create client
	client := newGCS(server.Client(), "tabular-test", "blob")

	// create file
	w, err := client.Create(ctx, "test.txt")
	assert.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())

	// list files
	names, err := client.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"test.txt"}, names)

	// read file
	r, err := client.Open(ctx, "test.txt")
	assert.NoError(t, err)
	data, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.NoError(t, r.Close())

	// remove file
	assert.NoError(t, client.Remove(ctx, "test.txt"))

	// list files again
	names, err = client.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, names)
}

func TestGCS_ListPrefix(t *testing.T) {
	ctx := context.Background()
	server := fakestorage.NewServer([]fakestorage.Object{
		{ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "tabular-test", Name: "data/a.csv"}, Content: []byte("a")},
		{ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "tabular-test", Name: "data/sub/b.csv"}, Content: []byte("b")},
		{ObjectAttrs: fakestorage.ObjectAttrs{BucketName: "tabular-test", Name: "database/x.csv"}, Content: []byte("x")},
	})
	defer server.Stop()

	names, err := newGCS(server.Client(), "tabular-test", "data").List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "sub/b.csv"}, names)
}
