// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordkit completion server and CLI [DBG] application.

wordkit serves prefix completions from a weighted word list held in a prefix
tree. Suggestions are ranked by weight, heaviest first. It can operate as a
MessagePack IPC server for integration with text editors, or as a CLI
application for testing and debugging.

# Usage

Start the server with default settings:

	wordkit

Use a custom word list and enable debug mode:

	wordkit -data /path/to/words.tsv -d

Run in CLI mode for interactive testing:

	wordkit -c -limit 10 -prmin 2

Expose Prometheus metrics next to the IPC server:

	wordkit -metrics :9090

The data path is either a single word list or a directory of .tsv/.txt word
lists. A word list starts with a header line followed by one
"<weight>\t<word>" record per line.

# Configuration

Runtime configuration is read from a TOML file (or YAML when the path ends
in .yaml/.yml):

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 60
	enable_filter = true

	[index]
	max_suggestions = 64
	min_weight = 0
	cache_size = 1024
	fuzzy = true

	[dict]
	path = ""

	[map]
	initial_capacity = 16
	load_factor = 0.75

The config file is automatically created with defaults if it doesn't exist.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See package
server for the message layout.

	{"id": "req1", "p": "char", "l": 20}
	{"id": "req1", "s": [{"w": "charizard", "r": 1, "f": 100}], "c": 1, "t": 41}

# Command Line Flags

	-data string
	    Word list file or directory (default from config, then data/)
	-config string
	    Config file path
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-k int
	    Maximum suggestions the index hands out
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for suggestions
	-prmax int
	    Maximum prefix length for suggestions
	-no-filter
	    Disable input filtering for debugging
	-metrics string
	    Address to serve /metrics on, e.g. :9090
	-rebuild-config
	    Overwrite the default config file with defaults and exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordkit/internal/cli"
	"github.com/bastiangx/wordkit/internal/logger"
	"github.com/bastiangx/wordkit/internal/metrics"
	"github.com/bastiangx/wordkit/internal/utils"
	"github.com/bastiangx/wordkit/pkg/config"
	"github.com/bastiangx/wordkit/pkg/dictionary"
	"github.com/bastiangx/wordkit/pkg/server"
	"github.com/bastiangx/wordkit/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

const (
	Version = "0.1.0"
	AppName = "wordkit"
	gh      = "https://github.com/bastiangx/wordkit"
)

// sigHandler is a simple handler for OS signals to exit normally.
// A blocked stdin read cannot be interrupted, so this exits the process.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main parses flags and wires the packages together. It does not implement
// logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	dataPath := flag.String("data", "", "Word list file or directory of word lists")
	configPath := flag.String("config", "", "Path to a TOML or YAML config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	k := flag.Int("k", 0, "Maximum suggestions the index hands out (default from config)")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of suggestions to return")
	minPrefix := flag.Int("prmin", defaultConfig.CLI.DefaultMinLen, "Minimum prefix length for suggestions (1 < n <= prmax)")
	maxPrefix := flag.Int("prmax", defaultConfig.CLI.DefaultMaxLen, "Maximum prefix length for suggestions")
	noFilter := flag.Bool("no-filter", defaultConfig.CLI.DefaultNoFilter, "Disable input filtering (DBG only)")
	metricsAddr := flag.String("metrics", "", "Serve Prometheus metrics on this address, e.g. :9090")
	rebuildConfig := flag.Bool("rebuild-config", false, "Overwrite the default config file with defaults and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	if *rebuildConfig {
		if err := config.RebuildConfigFile(); err != nil {
			log.Fatalf("Failed to rebuild config: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Config rebuilt at %s\n", config.GetActiveConfigPath(""))
		os.Exit(0)
	}

	cfg, usedConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config: %s", config.GetActiveConfigPath(usedConfig))
	if *k > 0 {
		cfg.Index.MaxSuggestions = *k
	}

	idx, err := suggest.NewIndex(cfg.Index.MaxSuggestions)
	if err != nil {
		log.Fatalf("Failed to create index: %v", err)
	}
	if err := loadWords(cfg, *dataPath, idx); err != nil {
		log.Fatalf("Failed to load word lists: %v", err)
	}
	completer := suggest.NewCompleter(idx, cfg.CompleterOptions())

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		log.Debug("Input info:",
			"minPrefix", *minPrefix,
			"maxPrefix", *maxPrefix,
			"limit", *limit,
			"noFilter", *noFilter)

		inputHandler := cli.NewInputHandler(completer, os.Stdout, *minPrefix, *maxPrefix, *limit, *noFilter)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if err := serve(context.Background(), completer, cfg, *metricsAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadWords fills idx from the -data flag, the [dict] path or the data/
// directory next to the binary, in that order.
func loadWords(cfg *config.Config, flagPath string, idx *suggest.Index) error {
	wanted := flagPath
	if wanted == "" {
		wanted = cfg.Dict.Path
	}

	resolver, err := utils.NewPathResolver()
	if err != nil {
		return fmt.Errorf("path resolver: %w", err)
	}
	path, err := resolver.GetDataPath(wanted)
	if err != nil {
		if wanted != "" {
			return err
		}
		log.Warn("No word lists found, running with an empty index...")
		return nil
	}

	loader := cfg.Loader()
	var stats dictionary.Stats
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		stats, err = loader.LoadDir(path, idx)
	} else {
		stats, err = loader.LoadFile(path, idx)
	}
	if err != nil {
		return err
	}

	log.Debugf("Indexed %s words from %s (%s records, %s skipped, %s duplicates)",
		humanize.Comma(int64(stats.Indexed)), path,
		humanize.Comma(int64(stats.Lines)),
		humanize.Comma(int64(stats.Skipped)),
		humanize.Comma(int64(stats.Duplicates)))
	return nil
}

// serve runs the IPC loop and, when addr is set, the metrics endpoint.
// Closing stdin ends the server; the metrics endpoint follows.
func serve(ctx context.Context, completer *suggest.Completer, cfg *config.Config, addr string) error {
	opts := []server.Option{}
	g, gctx := errgroup.WithContext(ctx)
	serveCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	if addr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, server.WithMetrics(metrics.New(reg)))
		g.Go(func() error {
			return metrics.Serve(serveCtx, addr, reg)
		})
	}

	srv := server.NewServer(completer, cfg.Server, opts...)
	showStartupInfo(completer)

	g.Go(func() error {
		defer cancel()
		return srv.Start(serveCtx)
	})
	return g.Wait()
}

// printVersion shows the styled version banner.
func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ wordkit ] weighted prefix completions")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
	l.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(completer *suggest.Completer) {
	l := logger.New(AppName)
	l.SetLevel(log.InfoLevel)

	stats := completer.Stats()
	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("words: %s (k = %d)", humanize.Comma(int64(stats["totalWords"])), stats["maxSuggestions"])
	l.Info("status: ready")
}
