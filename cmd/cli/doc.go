// Package cli constructs the pom-audit command-line interface, wiring the
// Cobra command hierarchy, the layered configuration loader and the zap
// logger. The root command and its report subcommand share one drift
// command builder.
package cli
