// hubchat TUI - a terminal client for the Knowledge Hub group chat.
//
// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/knowhub/hubchat-tui/internal/config"
	"github.com/knowhub/hubchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file (default ~/.hubchat/config.toml)")
		profileName = flag.String("profile", "", "backend profile to use")
		displayName = flag.String("name", "", "display name, overriding the stored identity")
		showVersion = flag.Bool("version", false, "print version and exit")
		debug       = flag.Bool("debug", false, "write debug logs to ~/.hubchat/debug.log")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("hubchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *profileName != "" {
		cfg.Profile = *profileName
	}
	if *displayName != "" {
		cfg.DisplayName = *displayName
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Debug logging goes to a file; stdout belongs to the TUI.
	if cfg.Debug {
		f, err := tea.LogToFile(debugLogPath(), "hubchat")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(nopWriter{})
	}

	m, err := chat.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func debugLogPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return "hubchat-debug.log"
	}
	if err := config.EnsureConfigDir(); err != nil {
		return "hubchat-debug.log"
	}
	return filepath.Join(dir, "debug.log")
}

// nopWriter drops log output when debug logging is off, keeping the
// alternate screen clean.
type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
