// Command transposition encrypts and decrypts text with a columnar
// transposition cipher.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ai8future/transposition"
	"github.com/ai8future/transposition/internal/config"
	"github.com/ai8future/transposition/internal/logging"
	"github.com/ai8future/transposition/internal/textio"
)

var version = "dev" // set by the linker

var errArgsAndInput = errors.New("give the text as arguments or with --in, not both")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// app carries state shared by one command tree.
type app struct {
	cfgFile string
	cfg     config.Config
}

// newRootCmd builds a fresh command tree, so tests get isolated instances.
func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "transposition",
		Short: "Encrypt and decrypt text with a columnar transposition cipher",
		Long: `transposition writes a message row by row into a grid as wide as the key
and reads it out column by column in the alphabetical order of the key's letters.

The key is taken from --key, then TRANSPOSITION_KEY, then "key" in
transposition.yaml; if none is set and stdin is a terminal you are prompted.

This is a classical cipher for learning and puzzles. It is not secure.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.loadConfig,
	}
	cmd.Version = version

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/transposition/transposition.yaml or ./transposition.yaml)")
	cmd.PersistentFlags().StringP("key", "k", "", "cipher key (at least 2 unique letters)")
	cmd.PersistentFlags().String("log-level", "warn", `log level ("debug", "info", "warn", "error")`)

	cmd.AddCommand(
		a.newCipherCmd(transposition.ModeEncrypt),
		a.newCipherCmd(transposition.ModeDecrypt),
		a.newKeyCmd(),
		a.newRekeyCmd(),
		a.newInitConfigCmd(),
	)

	return cmd
}

// loadConfig resolves configuration for whichever subcommand is running.
func (a *app) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, used, err := config.LoadConfig[config.Config](cmd, config.Defaults(), a.cfgFile)
	if err != nil {
		return err
	}
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if used != "" {
		logging.Debugf("using config %s", used)
	}
	a.cfg = cfg
	return nil
}

func (a *app) newCipherCmd(mode transposition.Mode) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   mode.String() + " [text...]",
		Short: strings.ToUpper(mode.String()[:1]) + mode.String()[1:] + " text",
		Long: fmt.Sprintf(`Reads text from the arguments, from --in, or from stdin, and writes the
%s result to stdout or to --out.`, mode),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.resolveKey(cmd)
			if err != nil {
				return err
			}
			key, err := transposition.ParseKey(raw)
			if err != nil {
				return err
			}

			text, err := readText(cmd, args, in)
			if err != nil {
				return err
			}

			logging.Debugf("%s %d chars with key %s (%d columns)", mode, len([]rune(text)), key.Fingerprint(), key.Columns())
			result, err := key.Process(mode, text)
			if err != nil {
				return err
			}
			return writeResult(cmd, out, result)
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", `read text from file ("-" for stdin)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write result to file instead of stdout")
	return cmd
}

func (a *app) newKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key [key]",
		Short: "Show how a key is normalized and which column order it gives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				var err error
				if raw, err = a.resolveKey(cmd); err != nil {
					return err
				}
			}

			key, err := transposition.ParseKey(raw)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Processed key: %s\n", key.Normalized())
			fmt.Fprintf(w, "Column order:  %v\n", key.DisplayOrder())
			fmt.Fprintf(w, "Columns:       %d\n", key.Columns())
			fmt.Fprintf(w, "Fingerprint:   %s\n", key.Fingerprint())
			return nil
		},
	}
}

func (a *app) newRekeyCmd() *cobra.Command {
	var in, out, newKey string

	cmd := &cobra.Command{
		Use:   "rekey --new-key KEY [ciphertext...]",
		Short: "Re-encrypt ciphertext from the current key to a new one",
		RunE: func(cmd *cobra.Command, args []string) error {
			oldKey, err := a.resolveKey(cmd)
			if err != nil {
				return err
			}
			if !transposition.NeedsRekey(oldKey, newKey) {
				logging.Warnf("old and new keys normalize identically; ciphertext is only re-padded")
			}

			text, err := readText(cmd, args, in)
			if err != nil {
				return err
			}

			result, err := transposition.Rekey(text, oldKey, newKey)
			if err != nil {
				return err
			}
			return writeResult(cmd, out, result)
		},
	}

	cmd.Flags().StringVar(&newKey, "new-key", "", "key to re-encrypt with")
	cmd.Flags().StringVarP(&in, "in", "i", "", `read ciphertext from file ("-" for stdin)`)
	cmd.Flags().StringVarP(&out, "out", "o", "", "write result to file instead of stdout")
	_ = cmd.MarkFlagRequired("new-key")
	return cmd
}

func (a *app) newInitConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-config",
		Short: "Write a default config file",
		Long: `Writes a default transposition.yaml to the user config directory, or to the
path given by --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfgFile
			if path == "" {
				var err error
				if path, err = config.Path(); err != nil {
					return err
				}
			}

			defaults := config.Config{LogLevel: config.Defaults()["log-level"].(string)}
			if err := config.WriteConfigFile(&defaults, path, force); err != nil {
				return err
			}
			logging.Infof("wrote default config to %s", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
		// A --config that does not exist yet is the point of this command,
		// so only the log level is applied.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level, err := cmd.Flags().GetString("log-level")
			if err != nil {
				return err
			}
			return logging.SetLevel(level)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

// readText returns the positional arguments joined by spaces, or the
// contents of --in, or stdin.
func readText(cmd *cobra.Command, args []string, in string) (string, error) {
	if len(args) > 0 {
		if in != "" {
			return "", errArgsAndInput
		}
		return strings.Join(args, " "), nil
	}
	text, err := textio.ReadInput(in, cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	if in != "" && in != "-" {
		logging.Debugf("read %d bytes from %s", len(text), in)
	}
	return text, nil
}

// writeResult prints result, or saves it when out is set.
func writeResult(cmd *cobra.Command, out, result string) error {
	if out == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result)
		return err
	}
	if err := textio.WriteOutput(out, result); err != nil {
		return err
	}
	logging.Infof("saved %d chars to %s", len([]rune(result)), out)
	return nil
}
