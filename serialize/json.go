// Package serialize implements the automaton on-disk formats (spec.md
// §4's persistence needs): a JSON encoding for saving/loading an NFAH,
// and a DOT export for visualizing one with Graphviz. Grounded on
// serialization.rs's serialize_nfa/deserialize_nfa/automaton_to_dot.
//
// No third-party JSON library appears anywhere in the example pack
// (only a YAML encoder, used elsewhere for configuration), so this
// package uses the standard library's encoding/json rather than
// reaching for an unrelated-to-the-corpus dependency.
package serialize

import (
	"encoding/json"
	"fmt"

	"github.com/coregx/hyperpattern/automaton"
)

type jsonState struct {
	ID        int  `json:"id"`
	IsInitial bool `json:"is_initial"`
	IsFinal   bool `json:"is_final"`
}

type jsonTransition struct {
	From   int    `json:"from"`
	To     int    `json:"to"`
	Symbol string `json:"symbol"`
	Track  int    `json:"track"`
}

type jsonAutomaton struct {
	Dimensions  int              `json:"dimensions"`
	States      []jsonState      `json:"states"`
	Transitions []jsonTransition `json:"transitions"`
}

// MarshalNFAH serializes a to an indented JSON document. States are
// already densely indexed by the automaton package, so ids are used
// as-is rather than being reassigned by a reachability walk.
func MarshalNFAH(a *automaton.NFAH) ([]byte, error) {
	initial := make(map[automaton.StateID]bool, len(a.Initial()))
	for _, id := range a.Initial() {
		initial[id] = true
	}

	doc := jsonAutomaton{Dimensions: a.Dims()}
	for s := 0; s < a.States(); s++ {
		id := automaton.StateID(s)
		doc.States = append(doc.States, jsonState{
			ID:        s,
			IsInitial: initial[id],
			IsFinal:   a.IsFinal(id),
		})
		for _, t := range a.Transitions(id) {
			doc.Transitions = append(doc.Transitions, jsonTransition{
				From: s, To: int(t.Target), Symbol: t.Symbol, Track: t.Track,
			})
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalNFAH parses data (as produced by MarshalNFAH) into a fresh NFAH.
func UnmarshalNFAH(data []byte) (*automaton.NFAH, error) {
	var doc jsonAutomaton
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("serialize: decode automaton: %w", err)
	}

	b := automaton.NewBuilder(doc.Dimensions)
	idToState := make(map[int]automaton.StateID, len(doc.States))
	for _, s := range doc.States {
		idToState[s.ID] = b.AddState(s.IsInitial, s.IsFinal)
	}

	for _, t := range doc.Transitions {
		from, ok := idToState[t.From]
		if !ok {
			return nil, fmt.Errorf("serialize: transition references unknown state id %d", t.From)
		}
		to, ok := idToState[t.To]
		if !ok {
			return nil, fmt.Errorf("serialize: transition references unknown state id %d", t.To)
		}
		if err := b.AddTransition(from, t.Symbol, t.Track, to); err != nil {
			return nil, fmt.Errorf("serialize: %w", err)
		}
	}

	return b.Build(), nil
}
