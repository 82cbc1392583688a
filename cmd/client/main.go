// Command palmer-client checks a running prediction service and sends the
// sample penguins to every model.
//
// Usage:
//
//	palmer-client [--base-url URL] [--samples file.yaml] [--model name ...]
//	palmer-client health
//	palmer-client models
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
