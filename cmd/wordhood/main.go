// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordhood suggestion server and CLI [DBG] application.

wordhood keeps a dictionary in a prefix tree whose nodes branch through small
Robin Hood hash tables, and ranks words by importance: how often they appear
in a usage corpus. For a typed word it returns the k most important words
that share its prefix, have the same length, or have a similar letter mix.

# Usage

Start the server over a word list and a usage corpus:

	wordhood -dict words.txt -usage corpus.txt

Run the interactive CLI with debug logging:

	wordhood -dict words.txt -usage corpus.txt -c -d

Write 10000 synthetic words for benchmarking:

	wordhood -gen 10000 -seed 7 > words.txt

The dictionary is either a text file with one word per line or a directory
of chunk files named dict_0001.bin, dict_0002.bin and so on. Words with
characters outside a-z are skipped. The usage corpus is any text; it is
read once at startup and never modified.

# Configuration

Runtime configuration lives in a TOML file created with defaults on first run:

	[query]
	similarity_threshold = 0.7
	min_length_delta = -1
	max_length_delta = 2
	default_k = 10

	[server]
	max_limit = 64
	max_query_len = 60

	[dict]
	dictionary_path = "dictionary.txt"
	usage_path = ""

Flags override the [dict] paths.

# IPC Protocol

The default mode is a MessagePack server on stdin/stdout:

	{"id": "q1", "action": "query", "w": "hel", "k": 3}
	{"id": "q1", "s": [{"w": "hello", "i": 12}, {"w": "help", "i": 7}], "c": 2, "t": 38}

See package server for the full list of actions.

# Command Line Flags

	-dict string
	    Word list file or chunk directory (default from config)
	-usage string
	    Usage corpus used to rank words (default from config)
	-config string
	    Path to config.toml
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-k int
	    Number of suggestions in CLI mode (default from config)
	-no-filter
	    Disable CLI input filtering
	-gen int
	    Write n synthetic words to stdout and exit
	-seed uint
	    Seed for -gen
	-mem
	    Print trie size after loading and exit
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordhood/internal/cli"
	"github.com/bastiangx/wordhood/internal/logger"
	"github.com/bastiangx/wordhood/internal/utils"
	"github.com/bastiangx/wordhood/pkg/config"
	"github.com/bastiangx/wordhood/pkg/dictionary"
	"github.com/bastiangx/wordhood/pkg/server"
	"github.com/bastiangx/wordhood/pkg/suggest"
	"github.com/bastiangx/wordhood/pkg/wordgen"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordhood"
	gh      = "https://github.com/bastiangx/wordhood"
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

// main only manages the flow; loading, serving and the CLI live in their packages.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	dictPath := flag.String("dict", "", "Word list file or directory of dict_*.bin chunks")
	usagePath := flag.String("usage", "", "Usage corpus used to rank words")
	configPath := flag.String("config", "", "Path to config.toml")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("k", 0, "Number of suggestions to return in CLI mode")
	noFilter := flag.Bool("no-filter", false, "Disable CLI input filtering (DBG only)")
	genWords := flag.Int("gen", 0, "Write n synthetic words to stdout and exit")
	seed := flag.Uint64("seed", 1, "Seed for -gen")
	showMem := flag.Bool("mem", false, "Print trie size after loading and exit")

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

	if *genWords > 0 {
		gen := wordgen.New(*seed, wordgen.DefaultOptions())
		if _, err := gen.Write(os.Stdout, *genWords); err != nil {
			log.Fatalf("Failed to write words: %v", err)
		}
		return
	}

	appConfig, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))

	if *dictPath == "" {
		*dictPath = appConfig.Dict.DictionaryPath
	}
	if *usagePath == "" {
		*usagePath = appConfig.Dict.UsagePath
	}

	completer := suggest.NewCompleter(suggest.Options{
		SimilarityThreshold: appConfig.Query.SimilarityThreshold,
		MinLengthDelta:      appConfig.Query.MinLengthDelta,
		MaxLengthDelta:      appConfig.Query.MaxLengthDelta,
	})

	resolvedDict := loadDictionary(completer, *dictPath, *usagePath)

	if *showMem {
		stats := completer.Trie().Stats()
		fmt.Printf("words:     %s\n", utils.FormatWithCommas(stats.Words))
		fmt.Printf("nodes:     %s\n", utils.FormatWithCommas(stats.Nodes))
		fmt.Printf("slots:     %s\n", utils.FormatWithCommas(stats.Slots))
		fmt.Printf("max probe: %d\n", stats.MaxProbe)
		fmt.Printf("bytes:     %s\n", utils.FormatWithCommas(stats.Bytes))
		return
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.SetReportTimestamp(false)
		k := *limit
		if k <= 0 {
			k = appConfig.CLI.DefaultLimit
		}
		log.Debug("Input info:", "limit", k, "noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, appConfig.Server.MaxQueryLen, k, *noFilter)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(completer, appConfig)

	showStartupInfo(resolvedDict, completer.Trie().Stats().Words)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// loadDictionary fills the completer's trie and returns the resolved
// dictionary path. A missing dictionary leaves the trie empty.
func loadDictionary(completer *suggest.Completer, dictPath, usagePath string) string {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	loader := dictionary.NewLoader(completer.Trie())

	if dictPath == "" {
		log.Warn("No dictionary given, running with empty dict...")
		return ""
	}
	resolvedDict, err := pathResolver.Resolve(dictPath)
	if err != nil {
		log.Warnf("Dictionary %q not found, running with empty dict...", dictPath)
		return ""
	}

	var stats dictionary.LoadStats
	if utils.IsDir(resolvedDict) {
		stats, err = loader.LoadDir(resolvedDict)
	} else {
		stats, err = loader.LoadFile(resolvedDict)
	}
	if err != nil {
		log.Fatalf("Failed to load dictionary %s: %v", resolvedDict, err)
	}
	log.Debugf("Dictionary: %d words, %d duplicates, %d rejected",
		stats.Inserted, stats.Duplicates, stats.Rejected)

	if usagePath == "" {
		log.Warn("No usage corpus given, every word has importance 0 and no suggestions will be returned")
		return resolvedDict
	}
	resolvedUsage, err := pathResolver.Resolve(usagePath)
	if err != nil {
		log.Fatalf("Usage corpus %q not found", usagePath)
	}
	usage, err := loader.ApplyUsageFile(resolvedUsage)
	if err != nil {
		log.Fatalf("Failed to apply usage: %v", err)
	}
	log.Debugf("Usage: %d tokens, %d kept, %d applied", usage.Tokens, usage.Kept, usage.Applied)
	return resolvedDict
}

func printVersion() {
	banner := logger.NewWithConfig("", log.InfoLevel, false, false, log.TextFormatter)

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordhood ] ranked word suggestions from a Robin Hood trie")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
// Everything goes to stderr; stdout carries the IPC stream.
func showStartupInfo(dictPath string, words int) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "==========")
	fmt.Fprintln(os.Stderr, " wordhood ")
	fmt.Fprintln(os.Stderr, "==========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("words: %s", utils.FormatWithCommas(words))
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "==========")

	log.SetLevel(currentLevel)
}
