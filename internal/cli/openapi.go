package cli

import (
	"github.com/spf13/cobra"

	"reqschema/internal/config"
	"reqschema/internal/export"
	"reqschema/internal/scan"
)

func newOpenAPICmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi <dir>",
		Short: "Write an OpenAPI 3 document covering every endpoint",
		Args:  exactArgs(1, "a source directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOpenAPI(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("format", "", "Output format: yaml or json")
	flags.String("title", "", "Document title (default \"reqschema\")")
	flags.String("version", "", "Document version (default \"1.0.0\")")

	return cmd
}

func (a *app) runOpenAPI(cmd *cobra.Command, dir string) error {
	flags := cmd.Flags()

	title, err := flags.GetString("title")
	if err != nil {
		return err
	}

	version, err := flags.GetString("version")
	if err != nil {
		return err
	}

	name, err := a.outputFormat(flags, config.FormatYAML, config.FormatJSON)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	schemaOpts, err := a.cfg.SchemaOptions()
	if err != nil {
		return err
	}

	model, err := a.loadModel(cmd.Context(), dir)
	if err != nil {
		return err
	}

	endpoints, err := scan.Scan(cmd.Context(), model, scan.Options{
		Workers: a.cfg.Scan.Workers,
		Schema:  schemaOpts,
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}

	doc, skipped := export.OpenAPI(endpoints, export.Info{Title: title, Version: version})
	for _, key := range skipped {
		a.logger.Warn("endpoint has no single HTTP verb, left out of the document", "endpoint", key)
	}

	if err := doc.Validate(cmd.Context()); err != nil {
		a.logger.Warn("generated document does not validate", "error", err)
	}

	data, err := export.MarshalOpenAPI(doc, format)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
