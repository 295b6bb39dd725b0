package optimizer

import (
	"sort"

	"github.com/holiman/uint256"
	"yulopt/internal/ast"
)

// Step is a single in-place rewrite of a program
type Step interface {
	Name() string
	Description() string
	Run(ctx *Context, block *ast.Block)
}

// Pipeline manages the sequence of optimizer steps
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline running steps in the given order
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// AddStep appends a step to the pipeline
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Run executes every step on block. Failed preconditions inside a step panic with an
// *errors.AssertionError and abort the run.
func (p *Pipeline) Run(ctx *Context, block *ast.Block) {
	log.Infof("running %d optimizer steps", len(p.steps))

	for _, step := range p.steps {
		log.Infof("%s: %s", step.Name(), step.Description())
		step.Run(ctx, block)
		log.Debugf("after %s:\n%s", step.Name(), block)
	}
}

// StepConfig holds the inputs of steps that need more than the program
type StepConfig struct {
	ReservedMemory *uint256.Int
	Slots          SlotMap
}

var registry = map[string]func(StepConfig) Step{
	"unused-parameter-pruner": func(StepConfig) Step {
		return &UnusedFunctionArgumentPruner{}
	},
	"stack-to-memory": func(cfg StepConfig) Step {
		return &StackToMemory{Reserved: cfg.ReservedMemory, Slots: cfg.Slots}
	},
	"memory-escalation": func(cfg StepConfig) Step {
		return &MemoryEscalation{Reserved: cfg.ReservedMemory, Slots: cfg.Slots}
	},
}

// DefaultSteps is the step sequence used when none is configured
var DefaultSteps = []string{"unused-parameter-pruner", "memory-escalation"}

// StepNames lists every registered step in alphabetical order
func StepNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// StepByName creates the step registered under name
func StepByName(name string, cfg StepConfig) (Step, bool) {
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(cfg), true
}
