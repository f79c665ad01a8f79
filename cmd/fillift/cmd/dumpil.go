package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/fillift/pkg/fillift"
	"github.com/spf13/cobra"
)

var dumpILOutputFile string

var dumpILCmd = &cobra.Command{
	Use:   "dump-il [file.fil.json]",
	Short: "Dump a FIL program as flat IL text",
	Long: `Dump-il reads a FIL program from its JSON encoding and writes a flat,
human-readable trace of its instructions -- one line per instruction,
"<output> <- Opcode field, field, [variadic]", indented to reflect
nested blocks.`,
	Args: cobra.ExactArgs(1),
	RunE: runDumpIL,
}

func init() {
	rootCmd.AddCommand(dumpILCmd)

	dumpILCmd.Flags().StringVarP(&dumpILOutputFile, "output", "o", "", "output file (default: stdout)")
}

func runDumpIL(_ *cobra.Command, args []string) error {
	filename := args[0]

	if verbose {
		fmt.Fprintf(os.Stderr, "Dumping IL for %s...\n", filename)
	}

	program, err := readProgram(filename)
	if err != nil {
		return err
	}

	out, err := fillift.New().DumpIL(program)
	if err != nil {
		return fmt.Errorf("dumping %s failed: %w", filename, err)
	}

	return writeOutput(dumpILOutputFile, []byte(out))
}
