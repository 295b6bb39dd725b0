// SPDX-License-Identifier: Apache-2.0
package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"yulopt/internal/config"
	"yulopt/internal/driver"
	"yulopt/internal/errors"
	"yulopt/internal/optimizer"
)

func main() {
	configPath := flag.String("config", "", "configuration file (default: "+config.FileName+" in the working directory)")
	steps := flag.String("steps", "", "comma separated optimizer steps, overrides the configuration")
	dialectName := flag.String("dialect", "", "target dialect, overrides the configuration")
	output := flag.String("o", "", "write the optimized code to this file instead of stdout")
	verbosity := flag.Int("v", -1, "log verbosity, overrides the configuration")
	listSteps := flag.Bool("list-steps", false, "list the available optimizer steps and exit")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: yulopt [flags] <file.yul | ->")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *listSteps {
		for _, name := range optimizer.StepNames() {
			step, _ := optimizer.StepByName(name, optimizer.StepConfig{})
			fmt.Printf("%-26s %s\n", name, step.Description())
		}
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	startTime := time.Now()
	path := flag.Arg(0)

	if *configPath == "" {
		if wd, err := os.Getwd(); err == nil {
			*configPath = config.Discover(wd)
		}
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fail(err, nil, startTime)
	}
	cfg.ApplyEnv()
	if *steps != "" {
		cfg.Steps = config.SplitSteps(*steps)
	}
	if *dialectName != "" {
		cfg.Dialect = *dialectName
	}
	if *verbosity >= 0 {
		cfg.LogVerbosity = *verbosity
	}
	commonlog.Configure(cfg.LogVerbosity, nil)

	opt, err := driver.New(cfg)
	if err != nil {
		fail(err, nil, startTime)
	}

	source, err := readSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read file: %v\n", err)
		os.Exit(1)
	}

	block, err := opt.Optimize(path, source)
	if err != nil {
		fail(err, errors.NewErrorReporter(path, source), startTime)
	}

	result := block.String() + "\n"
	if *output != "" {
		if err := os.WriteFile(*output, []byte(result), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(result)
	}

	color.Green("Successfully optimized %s in %s (%s)", path, formatDuration(time.Since(startTime)),
		strings.Join(opt.Steps(), ", "))
}

func readSource(path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	return string(data), err
}

// fail reports err and exits. Diagnostics are rendered against the source when a
// reporter is given.
func fail(err error, reporter *errors.ErrorReporter, startTime time.Time) {
	if reporter == nil {
		reporter = errors.NewErrorReporter("", "")
	}

	var syntaxErrors driver.SyntaxErrors
	var compilerErr errors.CompilerError
	var assertionErr *errors.AssertionError

	switch {
	case stderrors.As(err, &syntaxErrors):
		for _, e := range syntaxErrors {
			fmt.Fprint(os.Stderr, reporter.FormatError(e))
		}
	case stderrors.As(err, &compilerErr):
		fmt.Fprint(os.Stderr, reporter.FormatError(compilerErr))
	case stderrors.As(err, &assertionErr):
		fmt.Fprint(os.Stderr, reporter.FormatError(errors.InternalError(assertionErr)))
	default:
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString("error"), err)
	}

	color.Red("Optimization failed after %s", formatDuration(time.Since(startTime)))
	os.Exit(1)
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
