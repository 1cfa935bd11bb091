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
	"io"
	"os"

	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/dataset"
	"github.com/gorse-io/tabular/format"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var headCommand = &cobra.Command{
	Use:   "head [flags] FILE",
	Short: "Print the first rows of a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		n, _ := cmd.Flags().GetInt("lines")
		table, err := format.Read(args[0])
		if err != nil {
			log.Logger().Fatal("failed to read file", zap.String("file", args[0]), zap.Error(err))
		}
		if err = printHead(os.Stdout, table, n); err != nil {
			log.Logger().Fatal("failed to print file", zap.Error(err))
		}
	},
}

func init() {
	headCommand.Flags().IntP("lines", "n", 10, "number of rows")
	rootCommand.AddCommand(headCommand)
}

func printHead(w io.Writer, table *dataset.Table, n int) error {
	writer := tablewriter.NewWriter(w)
	writer.Header(table.Columns())
	for i := 0; i < min(n, table.Len()); i++ {
		if err := writer.Append(lo.Map(table.Row(i), func(v any, _ int) string {
			return format.FormatCell(v)
		})); err != nil {
			return errors.Trace(err)
		}
	}
	return errors.Trace(writer.Render())
}
