// Package cmd implements the fillift command-line interface.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "fillift",
	Short: "Lift FIL programs to JavaScript, IL text, or Wasm bytes",
	Long: `fillift lifts a FIL (Fuzzer Intermediate Language) program -- the
instruction stream a coverage-guided JS/Wasm fuzzer mutates -- into one
of its executable forms:

  - JavaScript source, with any embedded Wasm module inlined as a byte
    array literal where the module appears in the program
  - a flat, human-readable IL text trace, one line per instruction
  - the raw .wasm bytes of an embedded Wasm module, on their own

It takes no part in generating or mutating the program; it only
translates an already-built one.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
