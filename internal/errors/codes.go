package errors

// Error codes for the yulopt toolchain
// These codes are used in diagnostics so that problems can be identified consistently
// across the CLI, the REPL and the language server.
//
// Error code ranges:
// E0100-E0199: Parser errors
// E0300-E0399: Input and configuration errors
// E0900-E0999: Internal errors (violated pipeline preconditions)

const (
	// E0100: Source text does not match the grammar
	ErrorSyntax = "E0100"

	// E0101: A keyword was used where a name is expected
	ErrorReservedKeyword = "E0101"

	// E0300: Configuration file or environment could not be used
	ErrorInvalidConfig = "E0300"

	// E0301: Unknown optimizer step name
	ErrorUnknownStep = "E0301"

	// E0302: Unknown dialect name
	ErrorUnknownDialect = "E0302"

	// E0900: Internal assertion failed; this is a bug in an earlier pipeline stage
	ErrorInternalAssertion = "E0900"
)

// GetErrorDescription returns a human-readable description of the error code
func GetErrorDescription(code string) string {
	switch code {
	case ErrorSyntax:
		return "Source text is not a well-formed block"
	case ErrorReservedKeyword:
		return "A reserved keyword cannot be used as an identifier"
	case ErrorInvalidConfig:
		return "Configuration could not be loaded"
	case ErrorUnknownStep:
		return "Optimizer step does not exist"
	case ErrorUnknownDialect:
		return "Dialect does not exist"
	case ErrorInternalAssertion:
		return "Internal precondition violated"
	default:
		return "Unknown error"
	}
}
