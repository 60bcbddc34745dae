package main

import (
	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Options holds the parsed command-line configuration for the hpm CLI.
// Grounded on main.rs's Args struct and projectdiscovery-alterx's
// goflags-based ParseFlags.
type Options struct {
	Automaton string
	Inputs    goflags.StringSlice
	Quiet     bool
	Graphviz  bool
	Output    string
	Verbose   bool
	Trace     bool
	Mode      string
}

var validModes = map[string]bool{
	"naive": true, "online": true, "fjs": true,
	"naive-filtered": true, "online-filtered": true,
}

// ParseFlags parses os.Args into Options, exiting the process via
// gologger.Fatal on an invalid invocation. Values in the optional
// defaults file at defaultConfigFilePath seed the flag defaults so
// that explicit command-line flags still take precedence, mirroring
// projectdiscovery-alterx's layered config/flags convention.
func ParseFlags() *Options {
	defaults, err := loadDefaults(defaultConfigFilePath)
	if err != nil {
		gologger.Debug().Msgf("ignoring malformed defaults file %s: %v", defaultConfigFilePath, err)
	}
	mode := "naive"
	if defaults.Mode != "" {
		mode = defaults.Mode
	}

	opts := &Options{Output: defaults.Output, Verbose: defaults.Verbose}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription("A prototype tool for online hyper pattern matching.")

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.Automaton, "automaton", "f", "", "read an automaton written in JSON format from FILE"),
		flagSet.StringSliceVarP(&opts.Inputs, "input", "i", nil, "read a track log from FILE (may be repeated)", goflags.FileCommaSeparatedStringSliceOptions),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress match results"),
		flagSet.BoolVarP(&opts.Graphviz, "graphviz", "g", false, "print the automaton in Graphviz DOT format instead of matching"),
		flagSet.StringVarP(&opts.Output, "output", "o", opts.Output, "write output to FILE instead of stdout"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "debug-level logging"),
		flagSet.BoolVar(&opts.Trace, "trace", false, "trace-level logging"),
	)

	flagSet.CreateGroup("matching", "Matching",
		flagSet.StringVarP(&opts.Mode, "mode", "m", mode, "matching mode: naive, online, fjs, naive-filtered, online-filtered"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("could not read flags: %s", err)
	}

	if !validModes[opts.Mode] {
		gologger.Fatal().Msgf("invalid mode: %s", opts.Mode)
	}

	switch {
	case opts.Quiet:
		gologger.DefaultLogger.SetMaxLevel(levels.LevelWarning)
	case opts.Trace:
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	case opts.Verbose:
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	default:
		gologger.DefaultLogger.SetMaxLevel(levels.LevelInfo)
	}

	return opts
}
