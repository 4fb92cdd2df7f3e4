package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"typed-env/internal/match"
)

func newDescribeCommand(settings Settings) *cobra.Command {
	var (
		schema schemaFlag
		output = settings.Output
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "List the fields of a schema",
		Long: `List the fields of a schema with their lookup key, type tag and default.
The text output also shows the conventional environment variable name.`,
		Example: `  typed-env describe --schema service.yaml -o yaml`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := schema.load()
			if err != nil {
				return err
			}

			infos, err := file.Describe()
			if err != nil {
				return fmt.Errorf("failed to build schema %s: %w", schema.path, err)
			}

			w := cmd.OutOrStdout()
			if output != FormatText {
				return write(w, output, infos)
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tENV\tTYPE\tDEFAULT\tDESCRIPTION")

			for _, info := range infos {
				def := "-"
				if info.Default != nil {
					def = fmt.Sprint(info.Default)
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", info.Name, match.EnvName(info.Name), info.Type, def, info.Description)
			}

			return tw.Flush()
		},
	}

	schema.register(cmd)
	cmd.Flags().VarP(&output, "output", "o", "output format: text, yaml, json or dump")

	return cmd
}
