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
	"github.com/gorse-io/tabular/common/fileutil"
	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/format"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var concatCommand = &cobra.Command{
	Use:   "concat [flags] PATH...",
	Short: "Concatenate rows of files into one file",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		files, err := expandFiles(fileutil.OS, args)
		if err != nil {
			log.Logger().Fatal("failed to list files", zap.Error(err))
		}
		if err = format.Concat(files, output); err != nil {
			log.Logger().Fatal("failed to concatenate files", zap.Error(err))
		}
		log.Logger().Info("concatenate files", zap.Strings("files", files), zap.String("output", output))
	},
}

func init() {
	concatCommand.Flags().StringP("output", "o", "concat.csv", "output file")
	rootCommand.AddCommand(concatCommand)
}
