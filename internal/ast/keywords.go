package ast

var KEYWORDS = map[Symbol]bool{
	"function": true,
	"let":      true,
	"if":       true,
	"switch":   true,
	"case":     true,
	"default":  true,
	"for":      true,
	"break":    true,
	"continue": true,
	"leave":    true,
	"true":     true,
	"false":    true,
}

// IsKeyword reports whether name can never be used as an identifier
func IsKeyword(name Symbol) bool {
	return KEYWORDS[name]
}
