package grammar

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
)

var parser = buildParser()

func buildParser() *participle.Parser[Program] {
	p, err := participle.Build[Program](
		participle.Lexer(YulLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.UseLookahead(3),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}

	return p
}

// ParseFile reads and parses a source file
func ParseFile(path string) (*Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ParseString(path, string(source))
}

// ParseString parses source text; name is used in error positions
func ParseString(name string, source string) (*Program, error) {
	return parser.ParseString(name, source)
}

// EBNF returns the grammar in EBNF notation, for documentation and debugging
func EBNF() string {
	return parser.String()
}
