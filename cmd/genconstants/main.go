// Command genconstants prints the canonical little-endian encoding of a
// GF(2^255-19) element given as five radix 2^51 limbs, and converts Rust
// constant tables from limb literals to byte literals.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	genconstants "github.com/bunnie/genconstants-25519"
	"github.com/bunnie/genconstants-25519/config"
	"github.com/bunnie/genconstants-25519/convert"
	"github.com/bunnie/genconstants-25519/field"
	"github.com/bunnie/genconstants-25519/internal/log"
	"github.com/bunnie/genconstants-25519/internal/rustfmt"
)

const stdio = "-"

func main() {
	executeWithFang(newRootCommand())
}

// newRootCommand creates the root cobra command
func newRootCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "genconstants <l0> <l1> <l2> <l3> <l4>",
		Short: "Canonical encodings of GF(2^255-19) elements",
		Long: `Prints the canonical 32-byte little-endian encoding of the field element
l0 + l1*2^51 + l2*2^102 + l3*2^153 + l4*2^204 mod 2^255-19, as a Rust byte
array. Limbs are unsigned 64-bit base 10 integers and need not be reduced.`,
		Example: `  # The Montgomery coefficient A = 486662
  genconstants 486662 0 0 0 0

  # Rewrite a constants table for a byte array backed field type
  genconstants convert -i constants.rs -o constants_gen.rs --to Engine25519`,
		Args:          cobra.MaximumNArgs(5),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fe, err := parseElement(args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rustfmt.Bytes(fe.Bytes()))
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "logging level (DEBUG, INFO, NOTICE, WARNING, ERROR), overrides the config file")

	cmd.AddCommand(
		newConvertCommand(&logLevel),
		newConstantsCommand(),
		newVerifyCommand(&logLevel),
	)

	return cmd
}

// parseElement builds a field element from the l0..l4 arguments.
func parseElement(args []string) (*field.Element, error) {
	var limbs [5]uint64
	for i := range limbs {
		if i >= len(args) {
			return nil, fmt.Errorf("missing limb l%d, all five limbs l0..l4 are required", i)
		}
		l, err := strconv.ParseUint(args[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limb l%d: %w", i, err)
		}
		limbs[i] = l
	}
	return new(field.Element).SetLimbs(limbs), nil
}

func newConvertCommand(logLevel *string) *cobra.Command {
	var (
		configFile string
		flagCfg    config.Convert
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite limb literals in a Rust source as byte literals",
		Long: `Reads a Rust source, replaces every radix 2^51 limb literal of the source
type with the canonical byte array of the target type, renames every other
occurrence of the source type, and writes the result. The output is only
written when the whole input converts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configFile != "" {
				var err error
				if cfg, err = config.LoadFile(configFile); err != nil {
					return err
				}
			}

			// Flags take precedence over the config file.
			flags := cmd.Flags()
			if flags.Changed("input") {
				cfg.Convert.Input = flagCfg.Input
			}
			if flags.Changed("output") {
				cfg.Convert.Output = flagCfg.Output
			}
			if flags.Changed("from") {
				cfg.Convert.SourceType = flagCfg.SourceType
			}
			if flags.Changed("to") {
				cfg.Convert.TargetType = flagCfg.TargetType
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = *logLevel
			}
			if err := cfg.FixupAndValidate(); err != nil {
				return err
			}

			backend, err := log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
			if err != nil {
				return err
			}
			defer backend.Close()

			return runConvert(cmd, cfg.Convert, backend)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "configuration file")
	cmd.Flags().StringVarP(&flagCfg.Input, "input", "i", "", "Rust source to convert, - for stdin (default \"constants.rs\")")
	cmd.Flags().StringVarP(&flagCfg.Output, "output", "o", "", "converted Rust source, - for stdout (default \"constants_gen.rs\")")
	cmd.Flags().StringVar(&flagCfg.SourceType, "from", "", "limb backed field element type (default \"FieldElement51\")")
	cmd.Flags().StringVar(&flagCfg.TargetType, "to", "", "byte array backed field element type (default \"Engine25519\")")

	return cmd
}

func runConvert(cmd *cobra.Command, cfg *config.Convert, backend *log.Backend) error {
	l := backend.GetLogger("convert")

	var r io.Reader = cmd.InOrStdin()
	if cfg.Input != stdio {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	var out bytes.Buffer
	n, err := convert.New(cfg.SourceType, cfg.TargetType, l).Convert(r, &out)
	if err != nil {
		return err
	}

	if cfg.Output == stdio {
		_, err = out.WriteTo(cmd.OutOrStdout())
		return err
	}
	if err := os.WriteFile(cfg.Output, out.Bytes(), 0644); err != nil {
		return err
	}
	l.Noticef("wrote %d converted literals to %s", n, cfg.Output)
	return nil
}

func newConstantsCommand() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "constants",
		Short: "Print the curve25519 constant table as Rust source",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return genconstants.WriteRust(cmd.OutOrStdout(), typeName)
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "Engine25519", "field element type wrapping each byte array")

	return cmd
}

func newVerifyCommand(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check every table constant against its definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := "NOTICE"
			if *logLevel != "" {
				level = *logLevel
			}
			backend, err := log.NewWriter(cmd.ErrOrStderr(), level)
			if err != nil {
				return err
			}
			l := backend.GetLogger("verify")

			var failed int
			for _, c := range genconstants.Constants() {
				l.Debugf("%s: %d coordinate(s)", c.Name, len(c.Limbs))
				if err := genconstants.Verify(c); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", c.Name)
			}
			if failed != 0 {
				return fmt.Errorf("%d of %d constants failed verification", failed, len(genconstants.Constants()))
			}
			return nil
		},
	}
}
