package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/pageforge/internal/cli"
	httpAdapter "github.com/aretw0/pageforge/pkg/adapters/http"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes sessions over a JSON API with server-sent events for live updates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		var reg *prometheus.Registry
		if flag, _ := cmd.Flags().GetBool("metrics"); flag || cfg.Server.Metrics {
			reg = prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		}

		rt, err := newRuntime(cfg, true, registerer(reg))
		if err != nil {
			return err
		}
		defer rt.build.Close()

		opts := []httpAdapter.Option{httpAdapter.WithLogger(rt.logger)}
		for name, exp := range cli.Exporters() {
			opts = append(opts, httpAdapter.WithExporter(name, exp))
		}
		if reg != nil {
			opts = append(opts, httpAdapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
		}
		handler, err := httpAdapter.NewHandler(rt.build.Engine.Sessions(), opts...)
		if err != nil {
			return err
		}

		port := rt.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			rt.logger.Info("Starting Pageforge server", "address", srv.Addr, "store", rt.cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-ctx.Done():
			rt.logger.Info("Start shutdown", "signal", fmt.Sprint(ctx.Signal()))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return errors.Join(fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err), srv.Close())
			}
			rt.logger.Info("Pageforge server stopped gracefully")
			return nil
		}
	},
}

// registerer avoids handing a typed nil to BuildEngine.
func registerer(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics at /metrics (or set server.metrics)")
}
