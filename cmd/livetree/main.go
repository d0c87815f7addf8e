package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/livetree/internal/config"
	"github.com/vango-dev/livetree/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ┬┬  ┬┌─┐┌┬┐┬─┐┌─┐┌─┐
  ║  │└┐┌┘├┤  │ ├┬┘├┤ ├┤
  ╩═╝┴ └┘ └─┘ ┴ ┴└─└─┘└─┘
`

// globals holds the persistent flags.
type globals struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:   "livetree",
		Short: "Reconcile virtual trees into a live document",
		Long: `livetree renders a virtual UI tree into an in-memory document and
keeps it in sync as messages update the model.

The bundled todo demo can be rendered to HTML, served as a live
preview, recorded to a journal and replayed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Config file (default: livetree.json or livetree.yaml in the current directory)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")

	rootCmd.AddCommand(
		renderCmd(g),
		serveCmd(g),
		replayCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// load reads the configuration and installs the default logger. A missing
// config file is not an error unless --config names one.
func (g *globals) load() (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configPath != "" {
		cfg, err = config.LoadFile(g.configPath)
	} else {
		cfg, err = config.Load(".")
		if errors.HasCode(err, "E010") {
			cfg, err = config.New(), nil
		}
	}
	if err != nil {
		return nil, nil, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s\n", fmt.Sprintf(format, args...))
}
