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

package main

import (
	"context"
	"os"

	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/format"
	"github.com/gorse-io/tabular/storage/blob"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var lsCommand = &cobra.Command{
	Use:   "ls [flags] DIR",
	Short: "List table files in a directory or a bucket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store, err := blob.Open(args[0], conf.Blob)
		if err != nil {
			log.Logger().Fatal("failed to open store", zap.String("dir", args[0]), zap.Error(err))
		}
		formats, _ := cmd.Flags().GetStringSlice("format")
		files, err := listTables(cmd.Context(), store, formats)
		if err != nil {
			log.Logger().Fatal("failed to list files", zap.String("dir", args[0]), zap.Error(err))
		}
		table := tablewriter.NewWriter(os.Stdout)
		table.Header([]string{"file", "format"})
		for _, file := range files {
			if err = table.Append([]string{file.Name, file.Format.String()}); err != nil {
				log.Logger().Fatal("failed to print files", zap.Error(err))
			}
		}
		if err = table.Render(); err != nil {
			log.Logger().Fatal("failed to print files", zap.Error(err))
		}
	},
}

func init() {
	lsCommand.Flags().StringSlice("format", nil, "list only these formats (default all)")
	rootCommand.AddCommand(lsCommand)
}

type tableFile struct {
	Name   string
	Format format.Format
}

// listTables lists files of supported formats. Empty formats matches every supported format.
func listTables(ctx context.Context, store blob.Store, formats []string) ([]tableFile, error) {
	accepted := make(map[format.Format]struct{})
	for _, name := range formats {
		f, err := format.ParseFormat(name)
		if err != nil {
			return nil, errors.Trace(err)
		}
		accepted[f] = struct{}{}
	}
	names, err := store.List(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var files []tableFile
	for _, name := range names {
		f, err := format.InferFormat(name)
		if err != nil {
			continue
		}
		if _, ok := accepted[f]; len(accepted) > 0 && !ok {
			continue
		}
		files = append(files, tableFile{Name: name, Format: f})
	}
	return files, nil
}
