package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"typed-env/binder"
)

func newCheckCommand(settings Settings) *cobra.Command {
	var (
		schema schemaFlag
		input  inputFlags
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report every problem in the input without binding",
		Long: `Check KEY=VALUE input against a schema.

Every line is checked, so all problems are reported at once:
  - lines without '='
  - values that do not cast to their field's type
  - unknown keys, with a suggestion when a field name is close
  - keys set more than once

The command exits with status 1 when any error is found; warnings alone pass.`,
		Example: `  typed-env check --schema service.yaml --env-file .env`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := schema.load()
			if err != nil {
				return err
			}

			s, _, err := file.Schema()
			if err != nil {
				return fmt.Errorf("failed to build schema %s: %w", schema.path, err)
			}

			raw, err := input.read(cmd)
			if err != nil {
				return err
			}

			diags := binder.Check(s, raw)

			w := cmd.OutOrStdout()
			for _, d := range diags.All() {
				fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
			}

			log.Debug().
				Int("errors", len(diags.Errors)).
				Int("warnings", len(diags.Warnings)).
				Msg("Checked input")

			if diags.HasErrors() {
				return fmt.Errorf("%w: %d error(s)", ErrCheckFailed, len(diags.Errors))
			}

			fmt.Fprintln(w, "ok")

			return nil
		},
	}

	schema.register(cmd)
	input.register(cmd, settings)

	return cmd
}
