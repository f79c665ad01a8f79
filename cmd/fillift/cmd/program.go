package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/fillift/internal/fil"
)

// readProgram loads a fil.Program from its JSON encoding on disk.
func readProgram(filename string) (*fil.Program, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var program fil.Program
	if err := json.Unmarshal(content, &program); err != nil {
		return nil, fmt.Errorf("failed to parse %s as a FIL program: %w", filename, err)
	}
	if err := program.Code.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &program, nil
}

// writeOutput writes data either to outputFile or, if empty, to stdout.
func writeOutput(outputFile string, data []byte) error {
	if outputFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}
	return nil
}
