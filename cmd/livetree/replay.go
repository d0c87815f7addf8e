package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/livetree/internal/demo"
	"github.com/vango-dev/livetree/pkg/app"
	"github.com/vango-dev/livetree/pkg/dom/memdom"
	"github.com/vango-dev/livetree/pkg/journal"
)

func replayCmd(g *globals) *cobra.Command {
	var (
		from    uint64
		outPath string
		sinks   sinkOptions
	)

	cmd := &cobra.Command{
		Use:   "replay <journal>",
		Short: "Replay a recorded journal",
		Long: `Replay the messages recorded in a journal into a fresh demo app and
print the resulting HTML.

Examples:
  livetree replay livetree.db
  livetree replay livetree.db --from 10 --snapshot-dir replay`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			sinks.apply(cfg)

			j, err := journal.Open(args[0], journal.WithLogger(logger))
			if err != nil {
				return err
			}
			defer j.Close()

			opts := append([]app.Option{app.WithLogger(logger)}, snapshotObservers(cfg, logger)...)
			a := demo.New(opts...)
			doc := memdom.NewDocument()
			d, err := demo.Mount(a, doc.Body())
			if err != nil {
				return err
			}
			defer d.Close()

			n, err := journal.Replay(j, from, a.Dispatch)
			if err != nil {
				return err
			}
			success("Replayed %d messages", n)
			return writeHTML(cmd, outPath, memdom.InnerHTML(doc.Body()))
		},
	}

	cmd.Flags().Uint64Var(&from, "from", 1, "First sequence number to replay")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().StringVar(&sinks.dir, "snapshot-dir", "", "Write a snapshot per cycle to this directory")

	return cmd
}
