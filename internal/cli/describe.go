package cli

import (
	"github.com/spf13/cobra"

	"reqschema/internal/config"
	"reqschema/internal/endpoint"
	"reqschema/internal/export"
)

func newDescribeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <dir>",
		Short: "Print the full descriptor of one endpoint",
		Args:  exactArgs(1, "a source directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.describe(cmd, args[0])
			if err != nil {
				return err
			}

			format, err := a.documentFormat(cmd)
			if err != nil {
				return err
			}

			return export.Write(cmd.OutOrStdout(), d, format)
		},
	}

	flags := cmd.Flags()
	flags.String("class", "", "Controller class, simple or qualified name")
	flags.String("method", "", "Handler method name")
	flags.String("format", "", "Output format: json or yaml")

	return cmd
}

// describe extracts the endpoint named by --class and --method.
func (a *app) describe(cmd *cobra.Command, dir string) (*endpoint.Descriptor, error) {
	className, err := requireFlag(cmd, "class")
	if err != nil {
		return nil, err
	}

	methodName, err := requireFlag(cmd, "method")
	if err != nil {
		return nil, err
	}

	schemaOpts, err := a.cfg.SchemaOptions()
	if err != nil {
		return nil, err
	}

	model, err := a.loadModel(cmd.Context(), dir)
	if err != nil {
		return nil, err
	}

	class, err := findClass(model, className)
	if err != nil {
		return nil, err
	}

	method, err := findMethod(class, methodName)
	if err != nil {
		return nil, err
	}

	if !endpoint.IsRouted(method) {
		a.logger.Warn("method has no routing annotation", "endpoint", class.QualifiedName()+"#"+method.Name)
	}

	d := endpoint.NewExtractor(model, schemaOpts).Extract(class, method)

	return &d, nil
}

// documentFormat maps --format or output.format to a document format. The
// table format has no document form and falls back to JSON.
func (a *app) documentFormat(cmd *cobra.Command) (export.Format, error) {
	format, err := a.outputFormat(cmd.Flags(), config.FormatJSON, config.FormatYAML)
	if err != nil {
		return export.FormatJSON, err
	}

	return export.ParseFormat(format)
}
