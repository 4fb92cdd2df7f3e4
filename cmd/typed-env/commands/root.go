package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"typed-env/internal/schemafile"
)

// ErrCheckFailed is returned by check when the input has errors; the diagnostics are already printed.
var ErrCheckFailed = errors.New("check failed")

// Execute runs the root command
func Execute(ctx context.Context, settings Settings, version, commit, buildDate string) error {
	rootCmd := newRootCommand(settings, version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(settings Settings, version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typed-env",
		Short: "Bind KEY=VALUE configuration to a typed schema",
		Long: `typed-env reads KEY=VALUE lines (an env file, stdin or the process
environment) and casts every value to the type its schema declares.

Schemas are YAML files listing field names, type tags and defaults:

  fields:
    - name: Port
      type: int
      default: 8080
    - name: Hosts
      type: list[str]`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newBindCommand(settings))
	rootCmd.AddCommand(newCheckCommand(settings))
	rootCmd.AddCommand(newDescribeCommand(settings))

	return rootCmd
}

// schemaFlag is the --schema flag shared by every command.
type schemaFlag struct {
	path string
}

func (s *schemaFlag) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.path, "schema", "s", "", "schema file path (YAML)")
	_ = cmd.MarkFlagRequired("schema")
}

func (s *schemaFlag) load() (*schemafile.File, error) {
	return schemafile.LoadFile(s.path)
}
