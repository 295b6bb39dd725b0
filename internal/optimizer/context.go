// Package optimizer implements in-place rewrite steps over the IR tree.
package optimizer

import (
	"github.com/tliron/commonlog"
	"yulopt/internal/ast"
	"yulopt/internal/dialect"
)

var log = commonlog.GetLogger("yulopt.optimizer")

// Context is shared by every step of one optimization run
type Context struct {
	Dialect   dialect.Dialect
	Dispenser *NameDispenser
}

// NewContext creates a context whose dispenser knows every name used in block
func NewContext(d dialect.Dialect, block *ast.Block) *Context {
	return &Context{
		Dialect:   d,
		Dispenser: NewNameDispenser(d, CollectNames(block)),
	}
}
