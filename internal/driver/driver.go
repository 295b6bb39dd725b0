// Package driver assembles the configured optimizer and runs it on source text.
package driver

import (
	"fmt"

	"github.com/samber/do"
	"github.com/tliron/commonlog"
	"yulopt/internal/ast"
	"yulopt/internal/config"
	"yulopt/internal/dialect"
	"yulopt/internal/errors"
	"yulopt/internal/optimizer"
	"yulopt/internal/parser"
)

var log = commonlog.GetLogger("yulopt.driver")

// Optimizer runs a fixed pipeline for one dialect
type Optimizer struct {
	config   *config.Config
	dialect  dialect.Dialect
	pipeline *optimizer.Pipeline
}

// SyntaxErrors is returned when the source does not parse
type SyntaxErrors []errors.CompilerError

func (e SyntaxErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", e[0].Error(), len(e)-1)
}

// NewInjector registers the optimizer services for cfg
func NewInjector(cfg *config.Config) *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.Provide(injector, func(i *do.Injector) (dialect.Dialect, error) {
		return do.MustInvoke[*config.Config](i).TargetDialect()
	})
	do.Provide(injector, func(i *do.Injector) (*optimizer.Pipeline, error) {
		return do.MustInvoke[*config.Config](i).Pipeline()
	})
	do.Provide(injector, NewOptimizer)

	return injector
}

// NewOptimizer creates the optimizer from the services registered in i
func NewOptimizer(i *do.Injector) (*Optimizer, error) {
	d, err := do.Invoke[dialect.Dialect](i)
	if err != nil {
		return nil, err
	}
	pipeline, err := do.Invoke[*optimizer.Pipeline](i)
	if err != nil {
		return nil, err
	}

	return &Optimizer{
		config:   do.MustInvoke[*config.Config](i),
		dialect:  d,
		pipeline: pipeline,
	}, nil
}

// New validates cfg and builds an optimizer for it
func New(cfg *config.Config) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return do.Invoke[*Optimizer](NewInjector(cfg))
}

func (o *Optimizer) Dialect() dialect.Dialect {
	return o.dialect
}

// Steps returns the names of the pipeline steps in execution order
func (o *Optimizer) Steps() []string {
	steps := o.pipeline.Steps()
	names := make([]string, len(steps))
	for i, step := range steps {
		names[i] = step.Name()
	}
	return names
}

// Optimize parses source and runs the pipeline on it. Syntax problems are returned
// as SyntaxErrors, failed internal assertions as *errors.AssertionError.
func (o *Optimizer) Optimize(name, source string) (*ast.Block, error) {
	block, parseErrors := parser.ParseSource(name, source)
	if len(parseErrors) > 0 {
		diagnostics := make(SyntaxErrors, len(parseErrors))
		for i, pe := range parseErrors {
			diagnostics[i] = errors.FromParseError(pe)
		}
		return nil, diagnostics
	}

	if err := o.Run(block); err != nil {
		return nil, err
	}
	return block, nil
}

// Run optimizes block in place with a fresh context
func (o *Optimizer) Run(block *ast.Block) (err error) {
	defer func() { err = errors.Recover(recover(), err) }()

	log.Debugf("optimizing with dialect %s, steps %v", o.dialect.Name(), o.Steps())
	ctx := optimizer.NewContext(o.dialect, block)
	o.pipeline.Run(ctx, block)
	return nil
}
