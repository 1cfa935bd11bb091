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

// Package blob stores table files in a local directory or an object storage bucket.
package blob

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/gorse-io/tabular/config"
	"github.com/juju/errors"
)

const (
	s3Prefix    = "s3://"
	gcsPrefix   = "gs://"
	azurePrefix = "azblob://"
	filePrefix  = "file://"
)

// Store is a flat namespace of named files.
type Store interface {
	// Open a file for reading.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Create a file for writing. The file is complete once Close returns without an error.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
	// List names of all files, sorted.
	List(ctx context.Context) ([]string, error)
	// Remove a file.
	Remove(ctx context.Context, name string) error
}

// Open creates a store from a URL:
//
//	s3://bucket/prefix
//	gs://bucket/prefix
//	azblob://container/prefix
//	file:///path/to/dir or /path/to/dir
//
// Credentials come from cfg, the bucket and prefix from the URL.
func Open(rawURL string, cfg config.BlobConfig) (Store, error) {
	switch {
	case strings.HasPrefix(rawURL, s3Prefix):
		bucket, prefix, err := parseBucket(rawURL)
		if err != nil {
			return nil, errors.Trace(err)
		}
		s3Config := cfg.S3
		s3Config.Bucket, s3Config.Prefix = bucket, prefix
		return NewS3(s3Config)
	case strings.HasPrefix(rawURL, gcsPrefix):
		bucket, prefix, err := parseBucket(rawURL)
		if err != nil {
			return nil, errors.Trace(err)
		}
		gcsConfig := cfg.GCS
		gcsConfig.Bucket, gcsConfig.Prefix = bucket, prefix
		return NewGCS(gcsConfig)
	case strings.HasPrefix(rawURL, azurePrefix):
		container, prefix, err := parseBucket(rawURL)
		if err != nil {
			return nil, errors.Trace(err)
		}
		azureConfig := cfg.Azure
		azureConfig.Container, azureConfig.Prefix = container, prefix
		return NewAzureBlob(azureConfig)
	case strings.HasPrefix(rawURL, filePrefix):
		return NewPOSIX(strings.TrimPrefix(rawURL, filePrefix)), nil
	case strings.Contains(rawURL, "://"):
		return nil, errors.NotSupportedf("blob store %s", rawURL)
	default:
		return NewPOSIX(rawURL), nil
	}
}

func parseBucket(rawURL string) (bucket, prefix string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", errors.Trace(err)
	}
	if u.Host == "" {
		return "", "", errors.NotValidf("bucket of %s", rawURL)
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// objectName joins a prefix and a name with a slash, regardless of the platform.
func objectName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(name, "/")
}

// listPrefix is the prefix to list objects under a directory-like prefix.
func listPrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

// relativeName strips the prefix from an object name. Objects outside the prefix directory
// yield an empty name.
func relativeName(prefix, name string) string {
	dir := listPrefix(prefix)
	if dir == "" {
		return name
	}
	if !strings.HasPrefix(name, dir) {
		return ""
	}
	return strings.TrimPrefix(name, dir)
}

// pipeWriter streams writes into an upload running in the background. Close waits for the
// upload and returns its error.
type pipeWriter struct {
	*io.PipeWriter
	done chan error
}

func newPipeWriter(upload func(r io.Reader) error) *pipeWriter {
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := upload(pr)
		if err != nil {
			// unblock writers if the upload stops early
			_ = pr.CloseWithError(err)
		} else {
			_ = pr.Close()
		}
		done <- err
	}()
	return &pipeWriter{PipeWriter: pw, done: done}
}

func (w *pipeWriter) Close() error {
	if err := w.PipeWriter.Close(); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(<-w.done)
}
