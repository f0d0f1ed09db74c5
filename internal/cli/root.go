// Package cli implements the venndy command-line interface.
//
// # Commands
//
//   - sections: print every section of the Venn diagram of the input files
//   - draw: render the diagram of up to five input files as SVG
//
// Each input file holds one set, one element per line. Blank lines and lines
// starting with '#' are ignored.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdeusser/venn/fsutil"
	"github.com/rdeusser/venn/goroutine"
	"github.com/rdeusser/venn/internal/config"
	"github.com/rdeusser/venn/internal/logging"
)

// cli holds state shared by all commands of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	logFormat  string
	logFile    string

	cfg    config.Config
	logger *zap.Logger
}

// Execute runs the venndy command with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree writing results to stdout and logs
// to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		stdout: stdout,
		stderr: stderr,
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "venndy",
		Short:         "Compute and draw the sections of Venn diagrams",
		Long:          `venndy splits overlapping sets into the disjoint sections of their Venn diagram and renders diagrams of up to five sets as SVG.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			// Syncing a terminal fails on some platforms; there is nothing
			// left to flush in that case.
			_ = c.logger.Sync()
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a TOML configuration file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "", "log format: cli (default) or json")
	root.PersistentFlags().StringVar(&c.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(c.newSectionsCmd())
	root.AddCommand(c.newDrawCmd())

	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	opts := logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Writer: c.stderr,
	}

	if c.verbose {
		opts.Level = "debug"
	}

	if cmd.Flags().Changed("log-format") {
		opts.Format = c.logFormat
	}

	if c.logFile != "" {
		opts.Writer = nil
		opts.OutputPaths = []string{c.logFile}
	}

	logger, err := logging.New(opts)
	if err != nil {
		return err
	}

	c.logger = logger.Named(cmd.Name())
	c.logger.Debug("configuration loaded",
		zap.String("config", c.configPath),
		zap.Stringer("mode", cfg.Mode),
	)

	return nil
}

// readInputs loads every file as one input set. It gives up when ctx is
// done, which matters for inputs such as pipes that may block.
func (c *cli) readInputs(ctx context.Context, paths []string) ([][]string, error) {
	var data [][]string

	err := goroutine.Launch(ctx, func() error {
		loaded := make([][]string, 0, len(paths))

		for _, path := range paths {
			lines, err := fsutil.ReadLines(path)
			if err != nil {
				return err
			}

			c.logger.Debug("read input", zap.String("file", path), zap.Int("lines", len(lines)))
			loaded = append(loaded, lines)
		}

		data = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}
