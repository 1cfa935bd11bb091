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

	"github.com/gorse-io/tabular/common/fileutil"
	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/common/parallel"
	"github.com/gorse-io/tabular/format"
	"github.com/juju/errors"
	"github.com/samber/lo"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var convertCommand = &cobra.Command{
	Use:   "convert [flags] PATH...",
	Short: "Convert files to another format",
	Long:  "Convert files to another format. Directories are searched recursively for supported files.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		to, _ := cmd.Flags().GetString("to")
		outFormat, err := format.ParseFormat(to)
		if err != nil {
			log.Logger().Fatal("invalid output format", zap.String("format", to), zap.Error(err))
		}
		jobs := conf.Convert.Jobs
		if cmd.Flags().Changed("jobs") {
			jobs, _ = cmd.Flags().GetInt("jobs")
		}
		files, err := expandFiles(fileutil.OS, args)
		if err != nil {
			log.Logger().Fatal("failed to list files", zap.Error(err))
		}

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Converting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish())
		outputs, err := convertFiles(cmd.Context(), files, outFormat, jobs, func() {
			_ = bar.Add(1)
		})
		_ = bar.Finish()
		if err != nil {
			log.Logger().Fatal("failed to convert files", zap.Error(err))
		}
		log.Logger().Info("convert files", zap.Int("files", len(files)),
			zap.Int("converted", len(lo.Compact(outputs))), zap.Stringer("format", outFormat))
	},
}

func init() {
	convertCommand.Flags().StringP("to", "t", format.CSV.String(), "output format (csv, json, xlsx)")
	convertCommand.Flags().IntP("jobs", "j", 0, "number of files converted concurrently, overrides the config")
	rootCommand.AddCommand(convertCommand)
}

// expandFiles replaces directories by the supported files in them.
func expandFiles(fsys afero.Fs, paths []string) ([]string, error) {
	exts := lo.Map(format.Formats, func(f format.Format, _ int) string { return "." + f.String() })
	var files []string
	for _, path := range paths {
		isDir, err := afero.IsDir(fsys, path)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !isDir {
			files = append(files, path)
			continue
		}
		found, err := fileutil.ListFiles(fsys, path, exts...)
		if err != nil {
			return nil, errors.Trace(err)
		}
		files = append(files, found...)
	}
	return lo.Uniq(files), nil
}

// convertFiles converts files concurrently. Files already in the output format are skipped
// and have an empty output path.
func convertFiles(ctx context.Context, files []string, outFormat format.Format, jobs int, done func()) ([]string, error) {
	outputs := make([]string, len(files))
	err := parallel.Parallel(ctx, len(files), jobs, func(_, jobId int) error {
		defer done()
		if inFormat, err := format.InferFormat(files[jobId]); err == nil && inFormat == outFormat {
			log.Logger().Debug("skip file in output format", zap.String("file", files[jobId]))
			return nil
		}
		output, err := format.Transform(files[jobId], outFormat)
		if err != nil {
			return errors.Trace(err)
		}
		outputs[jobId] = output
		return nil
	})
	if err != nil {
		return nil, errors.Trace(err)
	}
	return outputs, nil
}
