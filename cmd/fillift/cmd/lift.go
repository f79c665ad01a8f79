package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/fillift/pkg/fillift"
	"github.com/spf13/cobra"
)

var (
	liftOutputFile  string
	liftMinify      bool
	liftNoComments  bool
	liftDumpTypes   bool
)

var liftCmd = &cobra.Command{
	Use:   "lift [file.fil.json]",
	Short: "Lift a FIL program to JavaScript",
	Long: `Lift reads a FIL program from its JSON encoding and writes the
equivalent JavaScript to stdout (or -o), with any embedded Wasm module
inlined as a byte array literal where the module appears in the program.

Examples:
  # Lift a program to JavaScript on stdout
  fillift lift program.fil.json

  # Lift to a file, minified
  fillift lift program.fil.json -o out.js --minify`,
	Args: cobra.ExactArgs(1),
	RunE: runLift,
}

func init() {
	rootCmd.AddCommand(liftCmd)

	liftCmd.Flags().StringVarP(&liftOutputFile, "output", "o", "", "output file (default: stdout)")
	liftCmd.Flags().BoolVar(&liftMinify, "minify", false, "emit compact output with no indentation or blank lines")
	liftCmd.Flags().BoolVar(&liftNoComments, "no-comments", false, "drop per-instruction comments from the lifted output")
	liftCmd.Flags().BoolVar(&liftDumpTypes, "dump-types", false, "emit inferred type annotations as comments")
}

func runLift(_ *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Fprintf(os.Stderr, "Lifting %s...\n", filename)
	}

	program, err := readProgram(filename)
	if err != nil {
		return err
	}

	lifter := fillift.New(
		fillift.WithMinify(liftMinify),
		fillift.WithComments(!liftNoComments),
		fillift.WithDumpTypes(liftDumpTypes),
	)

	out, err := lifter.LiftProgram(program)
	if err != nil {
		return fmt.Errorf("lifting %s failed: %w", filename, err)
	}

	if err := writeOutput(liftOutputFile, []byte(out)); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Lifted %s (%d instructions)\n", filename, len(program.Code))
	}
	return nil
}
