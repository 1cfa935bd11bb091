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
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/gorse-io/tabular/config"
	jujuerrors "github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestOpen(t *testing.T) {
	cfg := config.BlobConfig{
		S3:    config.S3Config{Endpoint: "localhost:9000"},
		GCS:   config.GCSConfig{Endpoint: "http://localhost:4443/storage/v1/"},
		Azure: config.AzureBlobConfig{AccountName: "devstoreaccount1", AccountKey: "a2V5", Endpoint: "http://localhost:10000/devstoreaccount1"},
	}

	store, err := Open("s3://bucket/dir/sub/", cfg)
	assert.NoError(t, err)
	if assert.IsType(t, &S3{}, store) {
		assert.Equal(t, "bucket", store.(*S3).bucket)
		assert.Equal(t, "dir/sub", store.(*S3).prefix)
	}

	store, err = Open("gs://bucket", cfg)
	assert.NoError(t, err)
	if assert.IsType(t, &GCS{}, store) {
		assert.Equal(t, "bucket", store.(*GCS).bucket)
		assert.Empty(t, store.(*GCS).prefix)
	}

	store, err = Open("azblob://container/prefix", cfg)
	assert.NoError(t, err)
	if assert.IsType(t, &AzureBlob{}, store) {
		assert.Equal(t, "container", store.(*AzureBlob).container)
		assert.Equal(t, "prefix", store.(*AzureBlob).prefix)
	}

	dir := t.TempDir()
	store, err = Open("file://"+dir, cfg)
	assert.NoError(t, err)
	assert.Equal(t, dir, store.(*POSIX).dir)
	store, err = Open(dir, cfg)
	assert.NoError(t, err)
	assert.Equal(t, dir, store.(*POSIX).dir)

	_, err = Open("ftp://host/dir", cfg)
	assert.True(t, jujuerrors.Is(err, jujuerrors.NotSupported))
	_, err = Open("s3:///dir", cfg)
	assert.True(t, jujuerrors.Is(err, jujuerrors.NotValid))
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "a.csv", objectName("", "a.csv"))
	assert.Equal(t, "dir/a.csv", objectName("dir", "a.csv"))
	assert.Equal(t, "dir/a.csv", objectName("dir/", "/a.csv"))
	assert.Equal(t, "a.csv", relativeName("dir", "dir/a.csv"))
	assert.Equal(t, "sub/a.csv", relativeName("dir/", "dir/sub/a.csv"))
	assert.Equal(t, "a.csv", relativeName("", "a.csv"))
	assert.Empty(t, relativeName("data", "database/x.csv"))
	assert.Empty(t, relativeName("data", "data"))
	assert.Equal(t, "x.csv", relativeName("/data/", "data/x.csv"))
	assert.Equal(t, "data/", listPrefix("/data/"))
	assert.Empty(t, listPrefix(""))
}

func TestPipeWriter(t *testing.T) {
	var received []byte
	w := newPipeWriter(func(r io.Reader) (err error) {
		received, err = io.ReadAll(r)
		return err
	})
	_, err := w.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.Equal(t, "hello", string(received))

	// upload failure is reported by writes and close
	failure := errors.New("upload failed")
	w = newPipeWriter(func(r io.Reader) error {
		return failure
	})
	_, err = w.Write([]byte("hello"))
	assert.ErrorIs(t, err, failure)
	assert.ErrorIs(t, w.Close(), failure)
}

func TestPOSIX_Store(t *testing.T) {
	var store Store = NewPOSIX(filepath.Join(t.TempDir(), "store"))
	w, err := store.Create(context.Background(), "x.csv")
	assert.NoError(t, err)
	assert.NoError(t, w.Close())
	names, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"x.csv"}, names)
}
