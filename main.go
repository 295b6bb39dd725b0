// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"yulopt/internal/config"
	"yulopt/internal/driver"
	"yulopt/repl"
)

func main() {
	currentUser, err := user.Current()
	if err != nil {
		fmt.Printf("Error getting current user: %v\n", err)
		return
	}

	cfg := config.Default()
	if wd, err := os.Getwd(); err == nil {
		if cfg, err = config.Load(config.Discover(wd)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.ApplyEnv()
	commonlog.Configure(cfg.LogVerbosity, nil)

	opt, err := driver.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Welcome to the yulopt REPL, %s! (dialect %s)\n", currentUser.Username, opt.Dialect().Name())
	repl.Start(opt)
}
