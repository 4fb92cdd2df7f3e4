package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"typed-env/binder"
	"typed-env/internal/match"
	"typed-env/internal/schemafile"
)

func newBindCommand(settings Settings) *cobra.Command {
	var (
		schema schemaFlag
		input  inputFlags
		output = settings.Output
	)

	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind input to a schema and print the typed record",
		Long: `Bind KEY=VALUE input to a schema and print the typed record.

Keys match field names case-insensitively. Unknown keys are ignored with a
warning. The first value that does not cast to its field's type fails the
whole command.`,
		Example: `  # Bind an env file
  typed-env bind --schema service.yaml --env-file .env

  # Bind the process environment and print JSON
  typed-env bind --schema service.yaml --environ -o json

  # Bind a dotenv file with comments and quoted values
  typed-env bind -s service.yaml -f .env --dotenv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := schema.load()
			if err != nil {
				return err
			}

			s, record, err := file.Schema()
			if err != nil {
				return fmt.Errorf("failed to build schema %s: %w", schema.path, err)
			}

			raw, err := input.read(cmd)
			if err != nil {
				return err
			}

			names := s.Names()
			warnUnknown := binder.OnUnknownKey(func(line int, key, _ string) {
				event := log.Warn().Int("line", line).Str("key", key)
				if suggestion, ok := match.Suggest(key, names); ok {
					event = event.Str("suggestion", suggestion)
				}
				event.Msg("Ignoring unknown key")
			})

			if err = binder.Bind(s, raw, warnUnknown); err != nil {
				return err
			}

			log.Debug().Str("schema", schema.path).Int("fields", s.Len()).Msg("Bound record")

			return printRecord(cmd, output, record)
		},
	}

	schema.register(cmd)
	input.register(cmd, settings)
	cmd.Flags().VarP(&output, "output", "o", "output format: text, yaml, json or dump")

	return cmd
}

func printRecord(cmd *cobra.Command, format Format, record *schemafile.Record) error {
	w := cmd.OutOrStdout()

	switch format {
	case FormatText:
		for _, name := range record.Names() {
			value, _ := record.Get(name)
			fmt.Fprintf(w, "%s=%v\n", name, schemafile.Plain(value))
		}

		return nil

	case FormatYAML:
		return write(w, format, record)

	default:
		return write(w, format, record.Map())
	}
}
