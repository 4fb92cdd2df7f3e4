package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"typed-env/binder"
)

// inputFlags selects where KEY=VALUE lines are read from.
type inputFlags struct {
	envFile string
	environ bool
	dotenv  bool
}

func (in *inputFlags) register(cmd *cobra.Command, settings Settings) {
	cmd.Flags().StringVarP(&in.envFile, "env-file", "f", "-", `input file, "-" reads stdin`)
	cmd.Flags().BoolVar(&in.environ, "environ", false, "read the process environment instead of a file")
	cmd.Flags().BoolVar(&in.dotenv, "dotenv", settings.Dotenv,
		"parse input as a dotenv file (comments, quotes, export) before binding")
	cmd.MarkFlagsMutuallyExclusive("env-file", "environ")
}

// read returns the input as KEY=VALUE lines.
func (in *inputFlags) read(cmd *cobra.Command) (string, error) {
	if in.environ {
		return binder.Lines(binder.Environ(os.Environ())), nil
	}

	r := cmd.InOrStdin()
	name := "stdin"

	if in.envFile != "-" && in.envFile != "" {
		f, err := os.Open(in.envFile)
		if err != nil {
			return "", fmt.Errorf("failed to open env file: %w", err)
		}
		defer f.Close()

		r, name = f, in.envFile
	}

	if in.dotenv {
		environ, err := godotenv.Parse(r)
		if err != nil {
			return "", fmt.Errorf("failed to parse dotenv %s: %w", name, err)
		}

		return binder.Lines(environ), nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	return string(data), nil
}
