package schedule

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/hyperpattern/automaton"
)

// QSTable holds Quick-Search-style skip values per track, built from
// every labeled path whose length is that of the shortest accepted
// word: for a symbol not appearing in any such path (projected to that
// track), a fresh matching attempt can safely skip past the path's
// projected length, exactly as Quick-Search does for flat string
// matching. Grounded on quick_search_skip_values.rs.
type QSTable struct {
	ShortestLength []int
	LastWord       []map[string]bool
	skipValues     []map[string]int
	lastWordAC     []*ahocorasick.Automaton
}

// NewQSTable builds the skip table for autom.
func NewQSTable(autom *automaton.NFAH) *QSTable {
	dims := autom.Dims()
	length, ok := automaton.ShortestAcceptedWordLength(autom)
	if !ok {
		length = 0
	}
	// Every labeled path of exactly length steps from an initial state,
	// whether or not it ends in a final state: the first length symbols
	// of any accepted word follow one of these paths.
	var prefixes [][]automaton.LabeledSymbol
	if ok {
		var path []automaton.LabeledSymbol
		var walk func(state automaton.StateID, remaining int)
		walk = func(state automaton.StateID, remaining int) {
			if remaining == 0 {
				prefixes = append(prefixes, append([]automaton.LabeledSymbol(nil), path...))
				return
			}
			for _, t := range autom.Transitions(state) {
				path = append(path, automaton.LabeledSymbol{Symbol: t.Symbol, Track: t.Track})
				walk(t.Target, remaining-1)
				path = path[:len(path)-1]
			}
		}
		for _, id := range autom.Initial() {
			walk(id, length)
		}
	}

	shortestPerTrack := make([]int, dims)
	words := make([][][]string, dims)
	for v := 0; v < dims; v++ {
		min := -1
		ws := make([][]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			proj := automaton.ProjectLabels(prefix, v)
			ws = append(ws, proj)
			if min == -1 || len(proj) < min {
				min = len(proj)
			}
		}
		if min == -1 {
			min = 0
		}
		shortestPerTrack[v] = min
		words[v] = ws
	}

	lastWord := make([]map[string]bool, dims)
	for v := 0; v < dims; v++ {
		set := make(map[string]bool)
		if shortestPerTrack[v] > 0 {
			idx := shortestPerTrack[v] - 1
			for _, word := range words[v] {
				if idx < len(word) {
					set[word[idx]] = true
				}
			}
		}
		lastWord[v] = set
	}

	lastWordAC := make([]*ahocorasick.Automaton, dims)
	for v := 0; v < dims; v++ {
		lastWordAC[v] = buildMembershipAutomaton(lastWord[v])
	}

	skipValues := make([]map[string]int, dims)
	for v := 0; v < dims; v++ {
		sv := make(map[string]int)
		n := shortestPerTrack[v]
		for _, word := range words[v] {
			for i := 0; i < n; i++ {
				key := word[n-1-i]
				cur, ok := sv[key]
				if !ok {
					sv[key] = i + 1
					break
				}
				if cur > i+1 {
					sv[key] = i + 1
				}
			}
		}
		skipValues[v] = sv
	}

	return &QSTable{
		ShortestLength: shortestPerTrack,
		LastWord:       lastWord,
		skipValues:     skipValues,
		lastWordAC:     lastWordAC,
	}
}

// quickSearchDelim wraps every pattern and query fed to the membership
// automaton so a symbol can only match a whole last-word symbol, never
// a substring of one — Aho-Corasick alone tests substring containment,
// not equality. Track symbols are opaque action tokens and never
// contain a NUL byte, so this delimiter can't collide with one.
const quickSearchDelim = "\x00"

// buildMembershipAutomaton builds an Aho-Corasick automaton recognizing
// exactly the symbols in words (via delimiter-wrapped patterns), or nil
// if words is empty.
func buildMembershipAutomaton(words map[string]bool) *ahocorasick.Automaton {
	if len(words) == 0 {
		return nil
	}
	builder := ahocorasick.NewBuilder()
	for w := range words {
		builder.AddPattern([]byte(quickSearchDelim + w + quickSearchDelim))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return auto
}

// InLastWord reports whether symbol appears in track variable's
// last-symbol set (LastWord), via a single Aho-Corasick
// membership probe instead of a map lookup — the same division of
// labor the teacher uses Aho-Corasick for (fast multi-pattern
// membership ahead of the slow path, meta/compile.go's UseAhoCorasick
// strategy).
func (t *QSTable) InLastWord(variable int, symbol string) bool {
	auto := t.lastWordAC[variable]
	if auto == nil {
		return false
	}
	return auto.IsMatch([]byte(quickSearchDelim + symbol + quickSearchDelim))
}

// SkipValue returns how many positions a fresh matching attempt may
// safely advance track variable when its next symbol is action: either
// the recorded skip value for that symbol, or shortestLength+1 if the
// symbol never appears on that track in any of the table's paths.
func (t *QSTable) SkipValue(action string, variable int) int {
	if v, ok := t.skipValues[variable][action]; ok {
		return v
	}
	return t.ShortestLength[variable] + 1
}
