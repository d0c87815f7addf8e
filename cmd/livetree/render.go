package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/livetree/internal/demo"
	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		eventsPath string
		outPath    string
		record     bool
		sinks      sinkOptions
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo to HTML",
		Long: `Mount the todo demo into an in-memory document, apply scripted
messages and print the resulting HTML.

The script holds one JSON message per line:

  {"kind":"set_draft","text":"milk"}
  {"kind":"add"}
  {"kind":"toggle","id":1}

Examples:
  livetree render
  livetree render --events script.jsonl --out todo.html
  livetree render --events - --snapshot-dir snapshots < script.jsonl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			sinks.apply(cfg)
			if record {
				cfg.Journal.Record = true
			}

			var msgs []demo.Msg
			if eventsPath != "" {
				msgs, err = readScript(cmd, eventsPath)
				if err != nil {
					return err
				}
			}

			recOpts, closeJournal, err := openRecorder(cfg, logger)
			if err != nil {
				return err
			}
			defer closeJournal()

			opts := append([]app.Option{app.WithLogger(logger)}, snapshotObservers(cfg, logger)...)
			a := demo.New(append(opts, recOpts...)...)
			doc := memdom.NewDocument()
			d, err := demo.Mount(a, doc.Body())
			if err != nil {
				return err
			}
			defer d.Close()

			for _, m := range msgs {
				if err := a.Dispatch(m); err != nil {
					return err
				}
			}
			return writeHTML(cmd, outPath, memdom.InnerHTML(doc.Body()))
		},
	}

	cmd.Flags().StringVarP(&eventsPath, "events", "e", "", "JSON lines message script (- for stdin)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&record, "record", false, "Journal dispatched messages (default from config)")
	cmd.Flags().StringVar(&sinks.dir, "snapshot-dir", "", "Write a snapshot per cycle to this directory")
	cmd.Flags().StringVar(&sinks.bucket, "s3-bucket", "", "Upload a snapshot per cycle to this S3 bucket")

	return cmd
}

func readScript(cmd *cobra.Command, path string) ([]demo.Msg, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	msgs, err := demo.ReadScript(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return msgs, nil
}

func writeHTML(cmd *cobra.Command, path, html string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), html)
		return err
	}
	if err := os.WriteFile(path, []byte(html+"\n"), 0o644); err != nil {
		return err
	}
	success("Wrote %s", path)
	return nil
}
