package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"reqschema/internal/classify"
	"reqschema/internal/config"
	"reqschema/internal/export"
	"reqschema/internal/flatten"
	"reqschema/internal/schema"
)

func newSchemaCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema <dir>",
		Short: "Print the field tree of one class",
		Args:  exactArgs(1, "a source directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSchema(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("class", "", "Class, simple or qualified name")
	flags.Bool("flat", false, "Flatten the tree into dotted field paths")
	flags.Bool("dump", false, "Dump the Go values instead of a document")
	flags.String("format", "", "Output format: table, json or yaml")

	return cmd
}

func (a *app) runSchema(cmd *cobra.Command, dir string) error {
	className, err := requireFlag(cmd, "class")
	if err != nil {
		return err
	}

	flat, err := cmd.Flags().GetBool("flat")
	if err != nil {
		return err
	}

	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return err
	}

	format, err := a.outputFormat(cmd.Flags(), config.FormatTable, config.FormatJSON, config.FormatYAML)
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

	class, err := findClass(model, className)
	if err != nil {
		return err
	}

	nodes := schema.NewBuilder(model, schemaOpts).Build(class, "", nil)
	if nodes == nil {
		nodes = []schema.ParamNode{}
	}

	if flat {
		root := schema.ParamNode{Name: class.Name, Kind: classify.DataKindObject, RawType: class.QualifiedName(), Children: nodes}
		nodes = flatten.Flatten([]schema.ParamNode{root})
	}

	if dump {
		spew.Fdump(cmd.OutOrStdout(), nodes)
		return nil
	}

	if format == config.FormatTable {
		return writeTree(cmd.OutOrStdout(), nodes)
	}

	docFormat, err := export.ParseFormat(format)
	if err != nil {
		return err
	}

	return export.Write(cmd.OutOrStdout(), nodes, docFormat)
}

// writeTree prints one row per node, children indented under their parent.
func writeTree(w io.Writer, nodes []schema.ParamNode) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "FIELD\tTYPE\tRAW TYPE\tDESCRIPTION")

	schema.Walk(nodes, func(n *schema.ParamNode, depth int) bool {
		name := strings.Repeat("  ", depth) + n.Name
		if n.Recursive {
			name += " (recursive)"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, n.Kind, n.RawType, n.Description)

		return true
	})

	return tw.Flush()
}
