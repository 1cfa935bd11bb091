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

	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/config"
	"github.com/juju/errors"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3 stores files in a bucket of S3 compatible storage.
type S3 struct {
	*minio.Client
	bucket string
	prefix string
}

func NewS3(cfg config.S3Config) (*S3, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &S3{
		Client: minioClient,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

func (s *S3) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	object, err := s.Client.GetObject(ctx, s.bucket, objectName(s.prefix, name), minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Trace(err)
	}
	// GetObject is lazy, stat reports missing objects
	if _, err = object.Stat(); err != nil {
		_ = object.Close()
		return nil, errors.Trace(err)
	}
	return object, nil
}

func (s *S3) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	fullPath := objectName(s.prefix, name)
	return newPipeWriter(func(r io.Reader) error {
		_, err := s.Client.PutObject(ctx, s.bucket, fullPath, r, -1, minio.PutObjectOptions{})
		if err != nil {
			log.Logger().Error("failed to upload file to S3", zap.String("file", fullPath), zap.Error(err))
		}
		return err
	}), nil
}

func (s *S3) List(ctx context.Context) ([]string, error) {
	var names []string
	for object := range s.Client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix(s.prefix),
		Recursive: true,
	}) {
		if object.Err != nil {
			return nil, errors.Trace(object.Err)
		}
		if name := relativeName(s.prefix, object.Key); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *S3) Remove(ctx context.Context, name string) error {
	return errors.Trace(s.Client.RemoveObject(ctx, s.bucket, objectName(s.prefix, name), minio.RemoveObjectOptions{}))
}
