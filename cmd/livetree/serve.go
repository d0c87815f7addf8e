package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/livetree/internal/demo"
	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
	"github.com/vango-dev/livetree/pkg/preview"
	"github.com/vango-dev/livetree/pkg/telemetry"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port   int
		host   string
		record bool
		sinks  sinkOptions
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo as a live preview",
		Long: `Run the todo demo behind a preview server.

Browsers connected to the preview receive the rendered HTML after every
update and forward their events back to the in-memory document.

Routes:
  /         preview page
  /ws       websocket
  /healthz  health check
  /metrics  Prometheus metrics

Examples:
  livetree serve
  livetree serve --port=8080 --record`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Preview.Port = port
			}
			if host != "" {
				cfg.Preview.Host = host
			}
			if record {
				cfg.Journal.Record = true
			}
			sinks.apply(cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			recOpts, closeJournal, err := openRecorder(cfg, logger)
			if err != nil {
				return err
			}
			defer closeJournal()

			reg := prometheus.NewRegistry()
			opts := []app.Option{app.WithLogger(logger)}
			var previewOpts []preview.Option
			if cfg.Metrics.Enabled {
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				metrics := telemetry.New(telemetry.WithNamespace(cfg.Metrics.Namespace), telemetry.WithRegistry(reg))
				opts = append(opts, app.WithObserver(metrics))
				previewOpts = append(previewOpts, preview.WithMetrics(metrics))
			}
			opts = append(opts, snapshotObservers(cfg, logger)...)
			opts = append(opts, recOpts...)

			a := demo.New(opts...)
			title := cfg.Name
			if title == "" {
				title = "livetree todo"
			}
			srv := preview.New(a, append(previewOpts,
				preview.WithLogger(logger),
				preview.WithGatherer(reg),
				preview.WithTitle(title),
			)...)
			a.Observe(srv)

			doc := memdom.NewDocument()
			d, err := demo.Mount(a, doc.Body())
			if err != nil {
				return err
			}
			defer d.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printBanner()
			info("Preview running at %s", cfg.URL())
			info("Press Ctrl+C to stop")
			return srv.Run(ctx, cfg.Addr())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().BoolVar(&record, "record", false, "Journal dispatched messages (default from config)")
	cmd.Flags().StringVar(&sinks.dir, "snapshot-dir", "", "Write a snapshot per cycle to this directory")
	cmd.Flags().StringVar(&sinks.bucket, "s3-bucket", "", "Upload a snapshot per cycle to this S3 bucket")

	return cmd
}
