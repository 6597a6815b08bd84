package main

import (
	"fmt"
	"os"

	"github.com/temirov/pom-audit/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the pom-audit command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
