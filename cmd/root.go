/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/valpere/linguacast/internal/config"
	"github.com/valpere/linguacast/internal/logging"
)

var version = "0.1.0"

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "linguacast",
	Short: "Translation and text-to-speech relay",
	Long: `A small HTTP service that forwards translation and text-to-speech
requests to a configured third-party provider and returns JSON.

Endpoints (linguacast serve):
  POST /translate        {"text", "src_lang", "dest_lang"}
  POST /text-to-speech   {"text", "language_code"}

Settings come from linguacast.yaml, a .env file and LINGUACAST_* variables.
Use "linguacast translate" and "linguacast speak" to try a provider from the
command line.`,
	Version:      version,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./linguacast.yaml or ./config/linguacast.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file to load before reading LINGUACAST_* variables (default .env)")
}

// loadConfig reads configuration and installs the process logger.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)
	return cfg, logger, nil
}
