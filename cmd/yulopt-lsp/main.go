// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"yulopt/internal/config"
	"yulopt/internal/lsp"
)

const lsName = "yulopt" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	cfg := config.Default()
	if wd, err := os.Getwd(); err == nil {
		if loaded, err := config.Load(config.Discover(wd)); err == nil {
			cfg = loaded
		}
	}
	cfg.ApplyEnv()

	// Configure logging (nil = default logger on stderr, stdout carries the protocol)
	commonlog.Configure(max(cfg.LogVerbosity, 1), nil)
	log := commonlog.GetLogger("yulopt.lsp.main")

	d, err := cfg.TargetDialect()
	if err != nil {
		log.Errorf("%s", err)
		os.Exit(1)
	}

	yulHandler := lsp.NewYulHandler(d)

	// Wire up the handler with specific LSP method implementations
	handler = protocol.Handler{
		Initialize:                     yulHandler.Initialize,
		Initialized:                    yulHandler.Initialized,
		Shutdown:                       yulHandler.Shutdown,
		SetTrace:                       yulHandler.SetTrace,
		TextDocumentDidOpen:            yulHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           yulHandler.TextDocumentDidClose,
		TextDocumentDidChange:          yulHandler.TextDocumentDidChange,
		TextDocumentCompletion:         yulHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: yulHandler.TextDocumentSemanticTokensFull,
		TextDocumentFormatting:         yulHandler.TextDocumentFormatting,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting %s language server %s (dialect %s)", lsName, version, d.Name())

	// Editors talk to the server over standard input/output
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
