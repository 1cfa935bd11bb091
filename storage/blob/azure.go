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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/config"
	"github.com/juju/errors"
	"go.uber.org/zap"
)

// AzureBlob stores files in a container of Azure Blob Storage.
type AzureBlob struct {
	client    *azblob.Client
	container string
	prefix    string
}

func NewAzureBlob(cfg config.AzureBlobConfig) (*AzureBlob, error) {
	var (
		client *azblob.Client
		err    error
	)
	if cfg.ConnectionString != "" {
		client, err = azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
		if err != nil {
			return nil, errors.Trace(err)
		}
	} else {
		if cfg.AccountName == "" || cfg.AccountKey == "" {
			return nil, errors.NotValidf("azure blob requires account_name and account_key or connection_string")
		}
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AccountName)
		}
		cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
		if err != nil {
			return nil, errors.Trace(err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
		if err != nil {
			return nil, errors.Trace(err)
		}
	}
	return &AzureBlob{
		client:    client,
		container: cfg.Container,
		prefix:    strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (a *AzureBlob) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := a.client.DownloadStream(ctx, a.container, objectName(a.prefix, name), nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return resp.Body, nil
}

func (a *AzureBlob) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	fullPath := objectName(a.prefix, name)
	return newPipeWriter(func(r io.Reader) error {
		_, err := a.client.UploadStream(ctx, a.container, fullPath, r, nil)
		if err != nil {
			log.Logger().Error("failed to upload file to Azure Blob", zap.String("file", fullPath), zap.Error(err))
		}
		return err
	}), nil
}

func (a *AzureBlob) List(ctx context.Context) ([]string, error) {
	var (
		prefix *string
		names  []string
	)
	if dir := listPrefix(a.prefix); dir != "" {
		prefix = &dir
	}
	pager := a.client.NewListBlobsFlatPager(a.container, &azblob.ListBlobsFlatOptions{Prefix: prefix})
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, item := range resp.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			if name := relativeName(a.prefix, *item.Name); name != "" {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

func (a *AzureBlob) Remove(ctx context.Context, name string) error {
	fullPath := objectName(a.prefix, name)
	_, err := a.client.DeleteBlob(ctx, a.container, fullPath, nil)
	if err != nil {
		log.Logger().Error("failed to remove file from Azure Blob", zap.String("file", fullPath), zap.Error(err))
		return errors.Trace(err)
	}
	return nil
}
