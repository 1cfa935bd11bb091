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

package config

import (
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration of the tabular command.
type Config struct {
	Split   SplitConfig   `mapstructure:"split"`
	Convert ConvertConfig `mapstructure:"convert"`
	Blob    BlobConfig    `mapstructure:"blob"`
}

// SplitConfig is the configuration of dataset splitting.
type SplitConfig struct {
	Seed    int64     `mapstructure:"seed"`
	Weights []float64 `mapstructure:"weights" validate:"required,dive,gt=0"`
	Names   []string  `mapstructure:"names"`
	Folds   int       `mapstructure:"folds" validate:"gte=1"`
}

// ConvertConfig is the configuration of format conversion.
type ConvertConfig struct {
	Jobs int `mapstructure:"jobs" validate:"gt=0"`
}

type BlobConfig struct {
	S3    S3Config        `mapstructure:"s3"`
	GCS   GCSConfig       `mapstructure:"gcs"`
	Azure AzureBlobConfig `mapstructure:"azure"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
}

type GCSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Bucket          string `mapstructure:"bucket"`
	Prefix          string `mapstructure:"prefix"`
}

type AzureBlobConfig struct {
	Endpoint         string `mapstructure:"endpoint"`
	AccountName      string `mapstructure:"account_name"`
	AccountKey       string `mapstructure:"account_key"`
	ConnectionString string `mapstructure:"connection_string"`
	Container        string `mapstructure:"container"`
	Prefix           string `mapstructure:"prefix"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Split: SplitConfig{
			Seed:    0,
			Weights: []float64{0.8, 0.2},
			Names:   []string{"train", "test"},
			Folds:   5,
		},
		Convert: ConvertConfig{
			Jobs: runtime.NumCPU(),
		},
		Blob: BlobConfig{
			S3: S3Config{
				UseSSL: true,
			},
		},
	}
}

func setDefault(v *viper.Viper) {
	defaultConfig := GetDefaultConfig()
	// [split]
	v.SetDefault("split.seed", defaultConfig.Split.Seed)
	v.SetDefault("split.weights", defaultConfig.Split.Weights)
	v.SetDefault("split.names", defaultConfig.Split.Names)
	v.SetDefault("split.folds", defaultConfig.Split.Folds)
	// [convert]
	v.SetDefault("convert.jobs", defaultConfig.Convert.Jobs)
	// [blob.s3]
	v.SetDefault("blob.s3.use_ssl", defaultConfig.Blob.S3.UseSSL)
}

type configBinding struct {
	key string
	env string
}

var bindings = []configBinding{
	{"split.seed", "TABULAR_SPLIT_SEED"},
	{"split.weights", "TABULAR_SPLIT_WEIGHTS"},
	{"split.names", "TABULAR_SPLIT_NAMES"},
	{"convert.jobs", "TABULAR_CONVERT_JOBS"},
	{"blob.s3.endpoint", "S3_ENDPOINT"},
	{"blob.s3.access_key_id", "S3_ACCESS_KEY_ID"},
	{"blob.s3.secret_access_key", "S3_SECRET_ACCESS_KEY"},
	{"blob.gcs.endpoint", "GCS_EMULATOR_ENDPOINT"},
	{"blob.gcs.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS"},
	{"blob.azure.connection_string", "AZURE_STORAGE_CONNECTION_STRING"},
	{"blob.azure.account_name", "AZURE_STORAGE_ACCOUNT"},
	{"blob.azure.account_key", "AZURE_STORAGE_KEY"},
}

// LoadConfig loads configuration from a TOML file. Environment variables override the file
// and an empty path loads defaults and environment variables only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefault(v)
	for _, binding := range bindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return nil, errors.Trace(err)
		}
	}
	if path != "" {
		v.SetConfigType("toml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Annotatef(err, "failed to read config %s", path)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToWeakSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, errors.Trace(err)
	}
	for i := range conf.Split.Names {
		conf.Split.Names[i] = strings.TrimSpace(conf.Split.Names[i])
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks value ranges. Names, if given, must match weights one to one.
func (config *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return errors.NewNotValid(err, "invalid config")
	}
	if len(config.Split.Names) > 0 && len(config.Split.Names) != len(config.Split.Weights) {
		return errors.NotValidf("%d split names for %d weights", len(config.Split.Names), len(config.Split.Weights))
	}
	return nil
}
