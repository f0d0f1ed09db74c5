package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rdeusser/venn/fsutil"
	"github.com/rdeusser/venn/render"
	"github.com/rdeusser/venn/venn"
)

type drawOpts struct {
	mode       venn.Mode
	labels     []string
	fileLabels bool
	output     string // "" or "-" writes to stdout
}

func (c *cli) newDrawCmd() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "draw [file...]",
		Short: "Render the Venn diagram of up to five input files as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("mode") {
				opts.mode = c.cfg.Mode
			}
			if !cmd.Flags().Changed("labels") {
				opts.labels = c.cfg.Labels
				if opts.labels == nil && opts.fileLabels {
					opts.labels = fileLabels(args)
				}
			}
			if !cmd.Flags().Changed("output") {
				opts.output = c.cfg.Output
			}
			return c.runDraw(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().VarP(&opts.mode, "mode", "m", "section value: set, count (default) or fraction")
	cmd.Flags().StringSliceVarP(&opts.labels, "labels", "l", nil, "set labels in file order (default A, B, C...)")
	cmd.Flags().BoolVar(&opts.fileLabels, "file-labels", false, "label sets by input file name")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *cli) runDraw(ctx context.Context, paths []string, opts drawOpts) error {
	data, err := c.readInputs(ctx, paths)
	if err != nil {
		return err
	}

	r := render.New(
		render.WithMode(opts.mode),
		render.WithLogger(c.logger),
	)

	svg, err := render.Draw(r, data, opts.labels)
	if err != nil {
		return err
	}

	if opts.output == "" || opts.output == "-" {
		_, err := c.stdout.Write(svg)
		return err
	}

	if err := fsutil.WriteFile(opts.output, svg, 0o644); err != nil {
		return err
	}

	c.logger.Info("wrote diagram", zap.String("file", opts.output), zap.Int("sets", len(data)))

	return nil
}

// fileLabels names each input after its file, without directory or
// extension.
func fileLabels(paths []string) []string {
	labels := make([]string, 0, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		labels = append(labels, strings.TrimSuffix(base, filepath.Ext(base)))
	}
	return labels
}
