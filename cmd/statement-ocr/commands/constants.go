// Package commands provides CLI command implementations for the statement
// OCR toolkit.
package commands

// Output format constants.
const (
	// OutputFormatJSON represents JSON output format.
	OutputFormatJSON = "json"
	// OutputFormatYAML represents YAML output format.
	OutputFormatYAML = "yaml"
)

// setupCompletionMessage is printed once the model prefetch finished. It is
// only printed on success.
const setupCompletionMessage = "Motor OCR listo."
