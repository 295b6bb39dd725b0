// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"yulopt/internal/driver"
	"yulopt/internal/errors"
	"yulopt/internal/parser"
)

const (
	PROMPT      = ">> "
	CONTINUE    = ".. "
	historyFile = ".yulopt_history"
)

// LineReader is the part of liner.State the loop needs
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// Session optimizes one input at a time with a fixed optimizer
type Session struct {
	optimizer *driver.Optimizer
	inputs    int
}

func NewSession(opt *driver.Optimizer) *Session {
	return &Session{optimizer: opt}
}

// Start runs the interactive loop on the terminal until :quit or end of input
func Start(opt *driver.Optimizer) {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := NewSession(opt)
	for {
		code, ok := ReadInput(ln)
		if !ok {
			fmt.Println()
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		output, quit := session.Handle(code)
		if quit {
			return
		}
		fmt.Print(output)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// ReadInput reads lines until they form a complete block, a command or a definite
// syntax error. It reports false at end of input.
func ReadInput(r LineReader) (string, bool) {
	var b strings.Builder

	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONTINUE
		}
		line, err := r.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl-C drops the pending input
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		_, parseErrors := parser.ParseSource("<repl>", src)
		if parser.IsIncomplete(src, parseErrors) {
			continue
		}
		return src, true
	}
}

// Handle runs a command or optimizes a block and returns what to print. quit is set
// by :quit.
func (s *Session) Handle(code string) (output string, quit bool) {
	trimmed := strings.TrimSpace(code)
	if strings.HasPrefix(trimmed, ":") {
		switch strings.ToLower(trimmed) {
		case ":quit", ":q":
			return "", true
		case ":steps":
			return strings.Join(s.optimizer.Steps(), "\n") + "\n", false
		case ":dialect":
			return s.optimizer.Dialect().Name() + "\n", false
		case ":help":
			return "Enter a block such as { let x := 1 } to optimize it.\n" +
				"Commands: :steps, :dialect, :help, :quit\n", false
		default:
			return fmt.Sprintf("unknown command %s. Type :help for a list.\n", trimmed), false
		}
	}

	s.inputs++
	name := fmt.Sprintf("<input %d>", s.inputs)
	block, err := s.optimizer.Optimize(name, code)
	if err != nil {
		return s.describe(name, code, err), false
	}
	return block.String() + "\n", false
}

func (s *Session) describe(name, code string, err error) string {
	reporter := errors.NewErrorReporter(name, code)

	var syntaxErrors driver.SyntaxErrors
	var assertionErr *errors.AssertionError
	switch {
	case stderrors.As(err, &syntaxErrors):
		var b strings.Builder
		for _, e := range syntaxErrors {
			b.WriteString(reporter.FormatError(e))
		}
		return b.String()
	case stderrors.As(err, &assertionErr):
		return reporter.FormatError(errors.InternalError(assertionErr))
	default:
		return color.RedString("error") + ": " + err.Error() + "\n"
	}
}
