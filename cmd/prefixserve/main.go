// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the prefix completion server and CLI [DBG] application.

prefixserve keeps a set of lowercase words in a 26-way trie and answers prefix
queries with the matching words, shortest first, limited to k distinct word
lengths. It can operate as a MessagePack IPC server for integration with
editors and other processes, or as a CLI application for testing and debugging.

# Usage

Start the server with default settings:

	prefixserve

Load word lists and enable debug mode:

	prefixserve -dict words.txt,extra.txt -d

Run in CLI mode for interactive testing:

	prefixserve -c -k 2

In CLI mode the [cli] seed words are loaded first, every line is a prefix,
each suggestion is printed on its own line, and the line "exit" ends the
session. Server mode starts from the dictionary files only.

# Configuration

Runtime configuration is read from a TOML file, created with defaults in the
user config dir if missing:

	[matcher]
	min_word_length = 3
	default_k = 3
	backend = "rway"

	[server]
	max_prefix = 60
	cache_size = 256

	[cli]
	exit_token = "exit"
	seed = "one oneapple onedrive"
	color = true

	[dict]
	files = []
	max_words = 0

Flags override the matching config values.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout, see package server:

	{"id": "req1", "op": "complete", "p": "one", "k": 2}
	{"id": "req1", "s": [{"w": "one", "r": 1}, {"w": "oneapple", "r": 2}, {"w": "onedrive", "r": 3}], "c": 3, "t": 12}

# Command Line Flags

	-version
	    Show current version
	-config string
	    Path to a custom config file
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-k int
	    Number of distinct suggestion lengths (default from config)
	-dict string
	    Comma separated word lists to load on top of the configured ones
	-backend string
	    Trie backend, "rway" or "patricia" (default from config)
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/bastiangx/prefixserve/internal/cli"
	"github.com/bastiangx/prefixserve/internal/utils"
	"github.com/bastiangx/prefixserve/pkg/config"
	"github.com/bastiangx/prefixserve/pkg/dictionary"
	"github.com/bastiangx/prefixserve/pkg/server"
	"github.com/bastiangx/prefixserve/pkg/suggest"
	"github.com/bastiangx/prefixserve/pkg/trie"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "prefixserve"
	gh      = "https://github.com/bastiangx/prefixserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow, the logic lives in the packages it wires.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "", "Path to a custom config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	k := flag.Int("k", 0, "Number of distinct suggestion lengths (0 uses the config default)")
	dictFiles := flag.String("dict", "", "Comma separated word lists (.txt) to load")
	backend := flag.String("backend", "", "Trie backend: rway or patricia (empty uses the config default)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, configPath, err := config.LoadConfigWithPriority(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(configPath))

	if *backend != "" {
		appConfig.Matcher.Backend = *backend
	}
	if *k > 0 {
		appConfig.Matcher.DefaultK = *k
	}

	store, err := trie.New(appConfig.Matcher.Backend)
	if err != nil {
		log.Fatalf("Failed to create trie: %v", err)
	}

	matcher := suggest.NewPrefixMatches(
		suggest.WithTrie(store),
		suggest.WithMinWordLength(appConfig.Matcher.MinWordLength),
		suggest.WithDefaultK(appConfig.Matcher.DefaultK),
	)
	seedMatcher(matcher, appConfig, *cliMode)

	files := dictionaryPaths(appConfig, *dictFiles)
	if len(files) > 0 {
		loadDictionaries(matcher, files, appConfig.Dict.MaxWords)
	}
	log.Debug("Matcher ready", "backend", appConfig.Matcher.Backend, "k", matcher.DefaultK(), "size", matcher.Size())

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(matcher, appConfig.Matcher.DefaultK, appConfig.CLI.ExitToken, os.Stdin, os.Stdout)
		inputHandler.SetColor(appConfig.CLI.Color)
		log.Print(AppName + " CLI [BETA]")
		log.Printf("type a prefix and press Enter to see the suggestions (%q or Ctrl+C to exit):", appConfig.CLI.ExitToken)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv, err := server.NewServer(matcher, appConfig, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	showStartupInfo(appConfig, configPath, matcher.Size())

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// seedMatcher loads the [cli] seed words. They are a demo set for
// interactive sessions, so server mode skips them.
func seedMatcher(matcher *suggest.PrefixMatches, cfg *config.Config, cliMode bool) {
	if cliMode && cfg.CLI.Seed != "" {
		matcher.Load(cfg.CLI.Seed)
	}
}

// dictionaryPaths joins the configured word lists with the -dict flag into
// a fresh slice, so resolving paths never touches the config.
func dictionaryPaths(cfg *config.Config, extra string) []string {
	return slices.Concat(cfg.Dict.Files, utils.SplitList(extra))
}

// loadDictionaries feeds word lists into the matcher. Relative paths that do
// not exist in the working dir are looked up next to the executable.
func loadDictionaries(matcher *suggest.PrefixMatches, files []string, maxWords int) {
	if resolver, err := utils.NewPathResolver(); err == nil {
		for i, f := range files {
			files[i] = resolver.ResolveRelativePath(f)
		}
	} else {
		log.Warnf("Failed to init path resolver, using paths as given: %v", err)
	}

	stats, err := dictionary.NewLoader(matcher, maxWords).LoadFiles(files...)
	if err != nil {
		log.Warnf("Some word lists failed to load: %v", err)
	}
	log.Debug("Word lists loaded", "files", stats.Files, "tokens", stats.Tokens, "size", stats.Size)
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ prefixserve ] Prefix completions from a 26-way trie")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(cfg *config.Config, configPath string, size int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=============")
	println(" prefixserve ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("config: ( %s )", config.GetActiveConfigPath(configPath))
	log.Infof("backend: %s, words: %d", cfg.Matcher.Backend, size)
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
