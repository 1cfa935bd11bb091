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
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorse-io/tabular/base"
	"github.com/gorse-io/tabular/common/fileutil"
	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/common/util"
	"github.com/gorse-io/tabular/dataset"
	"github.com/gorse-io/tabular/format"
	"github.com/gorse-io/tabular/storage/blob"
	"github.com/juju/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var splitCommand = &cobra.Command{
	Use:   "split [flags] FILE",
	Short: "Split a file into random disjoint parts",
	Long: `Split a file into random disjoint parts whose sizes follow the weights. Part i is
written as <name>_<names[i]>.<ext> into the output directory, which is either a local
directory or a bucket URL (s3://, gs://, azblob://).`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		weights := conf.Split.Weights
		if cmd.Flags().Changed("weights") {
			text, _ := cmd.Flags().GetString("weights")
			var err error
			if weights, err = util.ParseFloats(text); err != nil {
				log.Logger().Fatal("invalid weights", zap.String("weights", text), zap.Error(err))
			}
		}
		names := conf.Split.Names
		if cmd.Flags().Changed("names") {
			names, _ = cmd.Flags().GetStringSlice("names")
		}
		store := openOutput(cmd, args[0])
		parts, err := splitFile(cmd.Context(), store, args[0], weights, names, newRandomGenerator(cmd))
		if err != nil {
			log.Logger().Fatal("failed to split file", zap.String("file", args[0]), zap.Error(err))
		}
		printParts(parts)
	},
}

var kfoldCommand = &cobra.Command{
	Use:   "kfold [flags] FILE",
	Short: "Split a file into folds for cross validation",
	Long: `Split a file into k folds. Fold i is written as <name>_fold<i>_train.<ext> and
<name>_fold<i>_test.<ext> into the output directory.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		k := conf.Split.Folds
		if cmd.Flags().Changed("folds") {
			k, _ = cmd.Flags().GetInt("folds")
		}
		store := openOutput(cmd, args[0])
		parts, err := kfoldFile(cmd.Context(), store, args[0], k, newRandomGenerator(cmd))
		if err != nil {
			log.Logger().Fatal("failed to split file", zap.String("file", args[0]), zap.Error(err))
		}
		printParts(parts)
	},
}

func init() {
	for _, command := range []*cobra.Command{splitCommand, kfoldCommand} {
		command.Flags().Int64("seed", 0, "random seed, overrides the config")
		command.Flags().StringP("out-dir", "o", "", "output directory or bucket URL (default is the directory of FILE)")
		rootCommand.AddCommand(command)
	}
	splitCommand.Flags().StringP("weights", "w", "", "comma separated weights of parts, overrides the config")
	splitCommand.Flags().StringSlice("names", nil, "names of parts, overrides the config")
	kfoldCommand.Flags().IntP("folds", "k", 0, "number of folds, overrides the config")
}

// part is a table written to a store.
type part struct {
	Name string
	Rows int
}

func newRandomGenerator(cmd *cobra.Command) base.RandomGenerator {
	seed := conf.Split.Seed
	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetInt64("seed")
	}
	if seed == 0 {
		return base.NewTimeRandomGenerator()
	}
	return base.NewRandomGenerator(seed)
}

func openOutput(cmd *cobra.Command, file string) blob.Store {
	outDir, _ := cmd.Flags().GetString("out-dir")
	if outDir == "" {
		outDir = filepath.Dir(file)
	}
	store, err := blob.Open(outDir, conf.Blob)
	if err != nil {
		log.Logger().Fatal("failed to open output", zap.String("out-dir", outDir), zap.Error(err))
	}
	return store
}

// partNames returns names if they match k parts, and part0, part1, ... otherwise.
func partNames(names []string, k int) []string {
	if len(names) == k {
		return names
	}
	if len(names) > 0 {
		log.Logger().Warn("number of names does not match number of parts, use default names",
			zap.Strings("names", names), zap.Int("parts", k))
	}
	result := make([]string, k)
	for i := range result {
		result[i] = "part" + strconv.Itoa(i)
	}
	return result
}

// outputName derives the name of a part from the input file. Parts of xls files are written as
// xlsx since xls is read only.
func outputName(file, suffix string) string {
	ext := fileutil.Ext(file)
	if f, err := format.InferFormat(file); err == nil && f == format.XLS {
		ext = "." + format.XLSX.String()
	}
	stem := strings.TrimSuffix(fileutil.Leaf(file), fileutil.Ext(file))
	return stem + "_" + suffix + ext
}

func splitFile(ctx context.Context, store blob.Store, file string, weights []float64, names []string, rng base.RandomGenerator) ([]part, error) {
	table, err := format.Read(file)
	if err != nil {
		return nil, errors.Trace(err)
	}
	tables, err := dataset.Split(table, weights, rng)
	if err != nil {
		return nil, errors.Trace(err)
	}
	names = partNames(names, len(tables))
	parts := make([]part, len(tables))
	for i, t := range tables {
		parts[i] = part{Name: outputName(file, names[i]), Rows: t.Len()}
		if err = format.WriteBlob(ctx, store, parts[i].Name, t); err != nil {
			return nil, errors.Trace(err)
		}
	}
	return parts, nil
}

func kfoldFile(ctx context.Context, store blob.Store, file string, k int, rng base.RandomGenerator) ([]part, error) {
	table, err := format.Read(file)
	if err != nil {
		return nil, errors.Trace(err)
	}
	trainFolds, testFolds, err := dataset.KFold(table, k, rng)
	if err != nil {
		return nil, errors.Trace(err)
	}
	var parts []part
	for i := range testFolds {
		for _, fold := range []struct {
			suffix string
			table  *dataset.Table
		}{
			{fmt.Sprintf("fold%d_train", i), trainFolds[i]},
			{fmt.Sprintf("fold%d_test", i), testFolds[i]},
		} {
			p := part{Name: outputName(file, fold.suffix), Rows: fold.table.Len()}
			if err = format.WriteBlob(ctx, store, p.Name, fold.table); err != nil {
				return nil, errors.Trace(err)
			}
			parts = append(parts, p)
		}
	}
	return parts, nil
}

func printParts(parts []part) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"file", "rows"})
	for _, p := range parts {
		if err := table.Append([]string{p.Name, strconv.Itoa(p.Rows)}); err != nil {
			log.Logger().Fatal("failed to print parts", zap.Error(err))
		}
	}
	if err := table.Render(); err != nil {
		log.Logger().Fatal("failed to print parts", zap.Error(err))
	}
}
