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
	"fmt"

	"github.com/gorse-io/tabular/cmd/version"
	"github.com/gorse-io/tabular/common/log"
	"github.com/gorse-io/tabular/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var conf *config.Config

var rootCommand = &cobra.Command{
	Use:   "tabular",
	Short: "Convert, concatenate and split tabular data files.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// setup logger
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(cmd.Flags(), debug)

		// load config
		configPath, _ := cmd.Flags().GetString("config")
		var err error
		conf, err = config.LoadConfig(configPath)
		if err != nil {
			log.Logger().Fatal("failed to load config", zap.String("config", configPath), zap.Error(err))
		}
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Show the version of tabular",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(version.BuildInfo())
	},
}

func init() {
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().StringP("config", "c", "", "configuration file path")
	rootCommand.AddCommand(versionCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute", zap.Error(err))
	}
}
