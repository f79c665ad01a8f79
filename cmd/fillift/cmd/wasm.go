package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/fillift/internal/typer"
	"github.com/cwbudde/fillift/pkg/fillift"
	"github.com/spf13/cobra"
)

var wasmOutputFile string

var wasmCmd = &cobra.Command{
	Use:   "wasm [file.fil.json]",
	Short: "Lift the embedded Wasm module to raw .wasm bytes",
	Long: `Wasm reads a FIL program from its JSON encoding, lifts only the
Wasm-opcode range embedded in it, and writes the assembled .wasm byte
stream to stdout (or -o). The program must carry no type information
the Wasm lifter cannot resolve on its own (imports with an unresolved
static type fail the lift); this command runs with an empty Typer, so
it only succeeds on modules with no ambiguous imports.`,
	Args: cobra.ExactArgs(1),
	RunE: runWasm,
}

func init() {
	rootCmd.AddCommand(wasmCmd)

	wasmCmd.Flags().StringVarP(&wasmOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runWasm(_ *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Fprintf(os.Stderr, "Lifting Wasm module from %s...\n", filename)
	}

	program, err := readProgram(filename)
	if err != nil {
		return err
	}

	result, err := fillift.New().LiftWasm(program.Code, typer.NewStaticInfo())
	if err != nil {
		return fmt.Errorf("lifting Wasm from %s failed: %w", filename, err)
	}

	if err := writeOutput(wasmOutputFile, result.Bytes); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Lifted %d bytes, %d imported variable(s)\n", len(result.Bytes), len(result.ImportedVariables))
	}
	return nil
}
