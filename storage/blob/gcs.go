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
	"sort"

	"cloud.google.com/go/storage"
	"github.com/gorse-io/tabular/config"
	"github.com/juju/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCS stores files in a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCS(cfg config.GCSConfig) (*GCS, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
		opts = append(opts, option.WithoutAuthentication())
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return newGCS(client, cfg.Bucket, cfg.Prefix), nil
}

func newGCS(client *storage.Client, bucket, prefix string) *GCS {
	return &GCS{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (g *GCS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := g.client.Bucket(g.bucket).Object(objectName(g.prefix, name)).NewReader(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return r, nil
}

func (g *GCS) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	return g.client.Bucket(g.bucket).Object(objectName(g.prefix, name)).NewWriter(ctx), nil
}

func (g *GCS) List(ctx context.Context) ([]string, error) {
	var names []string
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{
		Prefix: listPrefix(g.prefix),
	})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Trace(err)
		}
		if name := relativeName(g.prefix, attrs.Name); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (g *GCS) Remove(ctx context.Context, name string) error {
	return errors.Trace(g.client.Bucket(g.bucket).Object(objectName(g.prefix, name)).Delete(ctx))
}
