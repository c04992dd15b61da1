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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valpere/linguacast/internal/httpserver"
	"github.com/valpere/linguacast/internal/observability"
	"github.com/valpere/linguacast/internal/relay"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP relay",
	Long: `Start the HTTP server hosting POST /translate and POST /text-to-speech.

The translation and speech providers are chosen by translation.provider and
speech.provider. GET /healthz reports them; GET /metrics serves Prometheus
metrics unless metrics.enabled is false.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.Server.ListenAddr = listenAddr
		}

		tr, err := buildTranslator(cfg)
		if err != nil {
			return err
		}
		syn, err := buildSynthesizer(cfg)
		if err != nil {
			return err
		}

		opts := []relay.Option{
			relay.WithLogger(logger),
			relay.WithProviderTimeout(cfg.Server.ProviderTimeout),
		}

		var metrics *observability.Metrics
		if cfg.Metrics.Enabled {
			metrics, err = observability.New()
			if err != nil {
				return fmt.Errorf("failed to set up metrics: %w", err)
			}
			opts = append(opts, relay.WithRecorder(metrics))
		}

		srv, err := httpserver.New(relay.NewService(tr, syn, opts...), httpserver.Options{
			ListenAddr:      cfg.Server.ListenAddr,
			BodyLimitMB:     cfg.Server.BodyLimitMB,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
			Metrics:         metrics,
			Logger:          logger,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("listening",
			"addr", cfg.Server.ListenAddr,
			"translator", tr.Name(),
			"synthesizer", syn.Name())

		if err := srv.Listen(ctx); err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "Listen address (overrides server.listen_addr)")
}
