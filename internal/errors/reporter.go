package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"yulopt/internal/ast"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
)

// CompilerError represents a structured diagnostic with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0100
	Message     string       // Primary error message
	Position    ast.Position // Location in source; zero Line means no location
	Length      int          // Length of the problematic region
	Suggestions []string
	Notes       []string
	HelpText    string
}

func (e CompilerError) Error() string {
	if e.Position.Line == 0 {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s",
		e.Position.Filename, e.Position.Line, e.Position.Column, e.Level, e.Code, e.Message)
}

// ErrorReporter renders diagnostics against the source they refer to
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError formats a diagnostic with a source excerpt, marker and suggestions
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := er.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	// Header: error[E0100]: message
	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(err.Level)), err.Message))
	}

	lineNumberWidth := er.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	if err.Position.Line > 0 {
		result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
			indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

		if err.Position.Line <= len(er.lines) {
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
				dim("│"),
				er.lines[err.Position.Line-1]))
			result.WriteString(fmt.Sprintf("%s %s %s\n",
				indent, dim("│"), er.createMarker(err.Position.Column, err.Length, err.Level)))
		}
	}

	suggestionColor := color.New(color.FgCyan).SprintFunc()
	for i, suggestion := range err.Suggestions {
		if i == 0 {
			result.WriteString(fmt.Sprintf("%s %s: %s\n", indent, suggestionColor("help"), suggestion))
		} else {
			result.WriteString(fmt.Sprintf("%s       %s\n", indent, suggestion))
		}
	}

	noteColor := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

// getLevelColor returns the appropriate color function for an error level
func (er *ErrorReporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// createMarker creates the underline marker for errors
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + er.getLevelColor(level)(strings.Repeat("^", length))
}

// getLineNumberWidth calculates the width needed for line numbers
func (er *ErrorReporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
