package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"reqschema/internal/config"
)

// Execute runs the reqschema CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// app holds the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	source     string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "reqschema",
		Short: "Describe the HTTP endpoints declared in a codebase",
		Long: "reqschema reads controller classes from Java sources, Go packages or YAML model files " +
			"and prints the URL, verb, parameters and payload schemas of every endpoint.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (default ~/.reqschema/config.yaml)")
	flags.StringVar(&a.source, "source", "", "Source kind: java, go or model (overrides source.kind)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	for _, sub := range []*cobra.Command{
		newScanCmd(a),
		newDescribeCmd(a),
		newSchemaCmd(a),
		newExampleCmd(a),
		newOpenAPICmd(a),
	} {
		sub.SetFlagErrorFunc(flagError)
		cmd.AddCommand(sub)
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	cmd.SetFlagErrorFunc(flagError)

	return cmd
}

func flagError(c *cobra.Command, err error) error {
	return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
}

// init loads the config, applies the global flags and builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(strings.TrimSpace(a.configPath))
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("source") {
		cfg.Source.Kind = strings.ToLower(strings.TrimSpace(a.source))
	}

	if a.verbose {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return newUsageError(err.Error())
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	return nil
}

func exactArgs(n int, what string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return newUsageError(fmt.Sprintf("%s requires %s\n\n%s", cmd.CommandPath(), what, cmd.UsageString()))
		}

		return nil
	}
}

func requireFlag(cmd *cobra.Command, name string) (string, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", err
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", newUsageError(fmt.Sprintf("--%s is required\n\n%s", name, cmd.UsageString()))
	}

	return value, nil
}

// outputFormat returns the --format flag when set, else the configured one.
// Formats outside allowed fall back to the first allowed format.
func (a *app) outputFormat(flags *pflag.FlagSet, allowed ...string) (string, error) {
	format := a.cfg.Output.Format
	if flags.Changed("format") {
		value, err := flags.GetString("format")
		if err != nil {
			return "", err
		}

		format = strings.ToLower(strings.TrimSpace(value))
		for _, f := range allowed {
			if f == format {
				return format, nil
			}
		}

		return "", newUsageError(fmt.Sprintf("--format must be one of %s; got %q", strings.Join(allowed, ", "), value))
	}

	for _, f := range allowed {
		if f == format {
			return format, nil
		}
	}

	return allowed[0], nil
}
