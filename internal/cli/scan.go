package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"reqschema/internal/config"
	"reqschema/internal/endpoint"
	"reqschema/internal/export"
	"reqschema/internal/scan"
)

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "List the endpoints declared under a source directory",
		Args:  exactArgs(1, "a source directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScan(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("keyword", "", "Only list endpoints containing this text")
	flags.String("mode", "", "Fields the keyword is matched against: all, url or method")
	flags.Int("offset", 0, "Skip this many matching endpoints")
	flags.Int("limit", 0, "List at most this many endpoints (0 means all)")
	flags.String("format", "", "Output format: table, json or yaml")

	return cmd
}

func (a *app) scanOptions(cmd *cobra.Command) (scan.Options, error) {
	schemaOpts, err := a.cfg.SchemaOptions()
	if err != nil {
		return scan.Options{}, err
	}

	opts := scan.Options{
		Limit:   a.cfg.Scan.Limit,
		Workers: a.cfg.Scan.Workers,
		Schema:  schemaOpts,
		Logger:  a.logger,
	}

	modeName := a.cfg.Scan.Mode

	flags := cmd.Flags()
	if opts.Keyword, err = flags.GetString("keyword"); err != nil {
		return opts, err
	}
	if opts.Offset, err = flags.GetInt("offset"); err != nil {
		return opts, err
	}
	if flags.Changed("limit") {
		if opts.Limit, err = flags.GetInt("limit"); err != nil {
			return opts, err
		}
	}
	if flags.Changed("mode") {
		if modeName, err = flags.GetString("mode"); err != nil {
			return opts, err
		}
	}

	if opts.Offset < 0 || opts.Limit < 0 {
		return opts, newUsageError("--offset and --limit cannot be negative")
	}

	if opts.Mode, err = scan.ParseMode(modeName); err != nil {
		return opts, newUsageError(err.Error())
	}

	return opts, nil
}

func (a *app) runScan(cmd *cobra.Command, dir string) error {
	opts, err := a.scanOptions(cmd)
	if err != nil {
		return err
	}

	format, err := a.outputFormat(cmd.Flags(), config.FormatTable, config.FormatJSON, config.FormatYAML)
	if err != nil {
		return err
	}

	model, err := a.loadModel(cmd.Context(), dir)
	if err != nil {
		return err
	}

	endpoints, err := scan.Scan(cmd.Context(), model, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch format {
	case config.FormatJSON:
		return export.Write(out, export.NewDocument(dir, endpoints), export.FormatJSON)
	case config.FormatYAML:
		return export.Write(out, export.NewDocument(dir, endpoints), export.FormatYAML)
	default:
		return writeTable(out, endpoints)
	}
}

func writeTable(w io.Writer, endpoints []endpoint.Descriptor) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "VERB\tURL\tENDPOINT\tNAME")
	for _, d := range endpoints {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Verb, d.URL, d.Key(), d.Name)
	}

	return tw.Flush()
}
