package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"reqschema/internal/example"
)

func newExampleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "example <dir>",
		Short: "Print a sample JSON request body of one endpoint",
		Args:  exactArgs(1, "a source directory"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExample(cmd, args[0])
		},
	}

	flags := cmd.Flags()
	flags.String("class", "", "Controller class, simple or qualified name")
	flags.String("method", "", "Handler method name")
	flags.Bool("response", false, "Render the response payload instead of the request body")
	flags.Bool("random", false, "Fill leaves with random values")
	flags.Uint64("seed", 0, "Random seed (0 picks one from the clock)")

	return cmd
}

func (a *app) runExample(cmd *cobra.Command, dir string) error {
	d, err := a.describe(cmd, dir)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	response, err := flags.GetBool("response")
	if err != nil {
		return err
	}

	random, err := flags.GetBool("random")
	if err != nil {
		return err
	}

	seed, err := flags.GetUint64("seed")
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	var out string

	nodes := d.Body
	if response {
		nodes = d.Response
	}

	switch {
	case random && response:
		out = example.Random(nodes, rand.New(rand.NewPCG(seed, seed)))
	case random:
		out = example.RandomBody(nodes, rand.New(rand.NewPCG(seed, seed)))
	case response:
		out = example.JSON(nodes)
	default:
		out = example.Body(nodes)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

	return err
}
