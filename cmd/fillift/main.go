// Command fillift lifts FIL programs to JavaScript, IL text, or Wasm bytes.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/fillift/cmd/fillift/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
