// Command hpm is a prototype tool for online hyper pattern matching:
// it reads a k-track NFAH from a JSON file and, for each of a set of
// input track logs, reports every accepted match. Grounded on main.rs.
package main

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"

	"github.com/coregx/hyperpattern/automaton"
	"github.com/coregx/hyperpattern/engine"
	"github.com/coregx/hyperpattern/notify"
	"github.com/coregx/hyperpattern/serialize"
	"github.com/coregx/hyperpattern/stream"
)

// newEngine builds the engine.Engine for the requested matching mode.
// Grounded on the five matching-mode variants main.rs dispatches on.
func newEngine(mode string, a *automaton.NFAH, notifier notify.Notifier, n int) (engine.Engine, error) {
	switch mode {
	case "naive":
		return engine.NewCoordinator(a, notifier, n), nil
	case "online":
		return engine.NewOnlineCoordinator(a, notifier, n), nil
	case "fjs":
		return engine.NewFJSCoordinator(a, notifier, n), nil
	case "naive-filtered":
		return engine.NewFilteredCoordinator(a, notifier, n), nil
	case "online-filtered":
		return engine.NewFilteredOnlineCoordinator(a, notifier, n), nil
	default:
		return nil, fmt.Errorf("unknown matching mode: %s", mode)
	}
}

func main() {
	opts := ParseFlags()

	gologger.Debug().Msgf("automaton file: %s", opts.Automaton)
	if len(opts.Inputs) > 0 {
		gologger.Debug().Msgf("input file(s): %v", []string(opts.Inputs))
	}
	gologger.Debug().Msgf("matching mode: %s", opts.Mode)

	contents, err := os.ReadFile(opts.Automaton)
	if err != nil {
		gologger.Error().Msgf("failed to read automaton file: %v", err)
		return
	}

	automaton, err := serialize.UnmarshalNFAH(contents)
	if err != nil {
		gologger.Error().Msgf("failed to parse automaton file: %v", err)
		return
	}
	gologger.Debug().Msgf("automaton constructed successfully: %d states, %d initial, %d dimensions",
		automaton.States(), len(automaton.Initial()), automaton.Dims())

	if opts.Graphviz {
		dot := serialize.ToDOT(automaton)
		if opts.Output != "" {
			if err := os.WriteFile(opts.Output, []byte(dot), 0o644); err != nil {
				gologger.Error().Msgf("failed to write DOT output to file: %v", err)
				return
			}
			gologger.Info().Msgf("DOT output written to file: %s", opts.Output)
			return
		}
		gologger.Info().Msg(dot)
		return
	}

	if len(opts.Inputs) == 0 {
		gologger.Info().Msg("no input files specified; nothing to do")
		return
	}

	sources := make([]stream.Source, len(opts.Inputs))
	for i, path := range opts.Inputs {
		f, err := os.Open(path)
		if err != nil {
			gologger.Error().Msgf("failed to open input file %s: %v", path, err)
			return
		}
		defer f.Close()
		sources[i] = stream.NewFileSource(f)
	}

	notifier, closeNotifier, err := buildNotifier(opts)
	if err != nil {
		gologger.Error().Msgf("failed to set up result notifier: %v", err)
		return
	}
	if closeNotifier != nil {
		defer closeNotifier()
	}

	gologger.Info().Msgf("starting hyper pattern matching in %s mode", opts.Mode)

	coordinator, err := newEngine(opts.Mode, automaton, notifier, len(sources))
	if err != nil {
		gologger.Error().Msgf("%v", err)
		return
	}
	reader := stream.NewMultiReader(sources)
	driver := stream.NewDriver(coordinator, reader)
	driver.Run()

	gologger.Info().Msg("hyper pattern matching completed successfully")
}

func buildNotifier(opts *Options) (notify.Notifier, func(), error) {
	if opts.Output == "" {
		return notify.Stdout{}, nil, nil
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return nil, nil, err
	}
	return notify.NewFile(f), func() { f.Close() }, nil
}
