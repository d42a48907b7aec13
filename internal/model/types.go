package model

import (
	"fmt"
	"strings"
)

// Variant identifies one member of the VoDy font family. Each variant
// applies a different visual treatment to the vowel glyphs of the base
// font; consonants are never touched.
type Variant string

const (
	// VariantSmall renders vowels at 50% size with proportionally
	// narrowed advance widths.
	VariantSmall Variant = "small"

	// VariantBig renders vowels 20% larger than the base design.
	VariantBig Variant = "big"

	// VariantSpace keeps vowel shapes unchanged but adds 20% extra
	// side bearing on both sides of every vowel.
	VariantSpace Variant = "space"

	// VariantHigh renders vowels 5% smaller, anchored to the ascender
	// line so they sit visually "high" relative to consonants.
	VariantHigh Variant = "high"

	// VariantShaped gives each vowel a unique treatment: A widened,
	// E with opened counters, I thickened, O heavier, U with a deeper
	// bottom curve.
	VariantShaped Variant = "shaped"
)

// AllVariants lists every variant in generation order. The order matters
// for deterministic `generate` output and for the variants listing.
var AllVariants = []Variant{
	VariantSmall,
	VariantBig,
	VariantSpace,
	VariantHigh,
	VariantShaped,
}

// String returns the string representation of the Variant.
// This method satisfies the fmt.Stringer interface.
func (v Variant) String() string {
	return string(v)
}

// IsValid checks whether the Variant value is one of the predefined
// family members.
func (v Variant) IsValid() bool {
	switch v {
	case VariantSmall, VariantBig, VariantSpace, VariantHigh, VariantShaped:
		return true
	default:
		return false
	}
}

// FamilyName returns the user-visible font family name for the variant,
// e.g. "VoDy Small". This is the name written into the font's name table
// and shown in font pickers.
func (v Variant) FamilyName() string {
	return "VoDy " + titleCase(string(v))
}

// FileName returns the output file name for the variant's TTF,
// e.g. "VoDy_Small.ttf".
func (v Variant) FileName() string {
	return "VoDy_" + titleCase(string(v)) + ".ttf"
}

// titleCase upper-cases the first letter of an ASCII variant name.
// Variant names are always lowercase ASCII, so no Unicode handling is needed.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Description returns a one-line summary of the variant's treatment,
// used by the `variants` listing and the generated manifest.
func (v Variant) Description() string {
	switch v {
	case VariantSmall:
		return "vowels scaled to 50% with tightened advance widths"
	case VariantBig:
		return "vowels scaled to 120%"
	case VariantSpace:
		return "20% extra spacing on both sides of each vowel"
	case VariantHigh:
		return "vowels at 95%, top-aligned to the ascender"
	case VariantShaped:
		return "unique per-vowel shape treatments (wider A, open E, thick I/O, deep U)"
	default:
		return ""
	}
}

// ParseVariant converts a string to a Variant.
// Returns an error if the string does not match any family member.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(s))
	if !v.IsValid() {
		return "", fmt.Errorf("unknown variant: %q (valid: small, big, space, high, shaped)", s)
	}
	return v, nil
}

// Vowels are the characters whose glyphs receive variant treatments.
// Both cases are treated; vowels absent from the base font's character
// map are silently skipped.
const Vowels = "aeiouAEIOU"

// ExitCode defines standard CLI exit codes. These codes allow scripts
// and CI systems to programmatically determine the outcome of a command.
//
// Note that `deploy` is special: when wrangler itself fails, its exit
// code is propagated verbatim rather than translated into one of these.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitFontError indicates the base font could not be read, parsed,
	// or re-encoded.
	ExitFontError ExitCode = 2

	// ExitUnknownVariant indicates a variant name was not recognized.
	ExitUnknownVariant ExitCode = 3

	// ExitWranglerNotFound indicates the wrangler binary could not be
	// started at all (not installed or not on PATH).
	ExitWranglerNotFound ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
