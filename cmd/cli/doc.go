// Package cli constructs the sweep command-line interface, wiring the Cobra
// root command, configuration loader, and structured logging primitives.
package cli
