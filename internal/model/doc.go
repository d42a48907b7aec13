// Package model defines the domain types and value objects for the
// vodyfont CLI.
//
// This package contains pure data structures with no external dependencies:
// the Variant enum identifying the members of the VoDy font family, the
// exit codes used by the CLI surface, and a custom error type (CLIError)
// that carries exit codes for proper OS process exit handling.
package model
