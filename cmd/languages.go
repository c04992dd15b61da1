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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/valpere/linguacast/internal/config"
	"github.com/valpere/linguacast/internal/relay"
)

var languagesProvider string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List language codes the translation provider accepts",
	Long: `List the language codes the configured translation provider accepts,
one per line. Providers backed by an API ask it; the rest report a
built-in list.

Examples:
  linguacast languages
  linguacast languages --provider mymemory`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if languagesProvider != "" {
			cfg.Translation.Provider = languagesProvider
			if err := cfg.Validate(); err != nil {
				return err
			}
		}

		tr, err := buildTranslator(cfg)
		if err != nil {
			return err
		}
		svc := relay.NewService(tr, nil,
			relay.WithLogger(logger),
			relay.WithProviderTimeout(cfg.Server.ProviderTimeout))

		return printLanguages(cmd.Context(), cmd.OutOrStdout(), svc)
	},
}

func printLanguages(ctx context.Context, w io.Writer, svc *relay.Service) error {
	if ctx == nil {
		ctx = context.Background()
	}
	langs, err := svc.TranslatorLanguages(ctx)
	if err != nil {
		return err
	}
	if len(langs) == 0 {
		return fmt.Errorf("%s reported no languages", svc.TranslatorName())
	}
	_, err = fmt.Fprintln(w, strings.Join(langs, "\n"))
	return err
}

func init() {
	rootCmd.AddCommand(languagesCmd)

	languagesCmd.Flags().StringVar(&languagesProvider, "provider", "", fmt.Sprintf("Translation provider, one of %v (overrides translation.provider)", config.TranslationProviders))
}
