package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

var YulLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		// Comments
		{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*+[^*/])*\*+/`},

		// String literals
		{Name: "String", Pattern: `"(\\.|[^"\\])*"`},

		// Number literals (hex before decimal)
		{Name: "Number", Pattern: `0x[0-9a-fA-F]+|[0-9]+`},

		// Keywords and identifiers (order matters)
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$.]*`},

		// Operators (must come before punctuation so ":=" is not split)
		{Name: "Operator", Pattern: `:=|->`},

		// Punctuation
		{Name: "Punctuation", Pattern: `[{}(),:]`},

		// Whitespace
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})
