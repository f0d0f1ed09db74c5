package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rdeusser/venn/venn"
)

const (
	formatText = "text" // one "KEY<TAB>VALUE" line per section
	formatJSON = "json" // array of {"key", "value"} objects
)

var _ pflag.Value = (*venn.Mode)(nil)

type sectionsOpts struct {
	mode   venn.Mode
	format string
}

func (c *cli) newSectionsCmd() *cobra.Command {
	var opts sectionsOpts

	cmd := &cobra.Command{
		Use:   "sections [file...]",
		Short: "Print every section of the Venn diagram of the input files",
		Long: `Print every section of the Venn diagram of the input files.

Sections are keyed by one letter per input file in argument order: I when the
section lies inside that file's set and O when it lies outside. Keys are
printed in binary counting order with the first file varying slowest.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("mode") {
				opts.mode = c.cfg.Mode
			}
			if !cmd.Flags().Changed("format") {
				opts.format = c.cfg.Format
			}
			return c.runSections(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().VarP(&opts.mode, "mode", "m", "section value: set, count (default) or fraction")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatText, "output format: text or json")

	return cmd
}

func (c *cli) runSections(ctx context.Context, paths []string, opts sectionsOpts) error {
	if opts.format != formatText && opts.format != formatJSON {
		return &venn.ConfigurationError{Reason: fmt.Sprintf("unknown output format %q", opts.format)}
	}

	data, err := c.readInputs(ctx, paths)
	if err != nil {
		return err
	}

	sections, err := venn.Compute(data, opts.mode)
	if err != nil {
		return err
	}

	c.logger.Debug("computing sections",
		zap.Int("sets", len(data)),
		zap.Int("elements", venn.Total(data)),
		zap.Stringer("mode", opts.mode),
	)

	switch opts.format {
	case formatJSON:
		err = writeJSON(c.stdout, venn.Collect(sections))
	default:
		err = writeText(c.stdout, sections)
	}

	return errors.Wrap(err, "writing sections")
}

func writeText(w io.Writer, sections iter.Seq2[venn.Key, venn.Value[string]]) error {
	for key, value := range sections {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, sections []venn.Section[string]) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sections)
}
