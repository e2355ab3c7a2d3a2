// Package ranking produces the deterministic total order over candidates
// and the platoon partition used by reports.
package ranking

import (
	"sort"
	"unicode"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/eligibility"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/scoring"
)

// Platoon identifies a report partition bucket.
type Platoon string

// Platoon buckets. Names whose first letter falls outside A-J land in
// Unassigned instead of being dropped.
const (
	First      Platoon = "1º Pelotão"
	Second     Platoon = "2º Pelotão"
	Unassigned Platoon = "Sem Pelotão"
)

// Platoons lists the buckets in report order.
var Platoons = []Platoon{First, Second, Unassigned}

// Entry is one ranked row: the record plus every derived value.
type Entry struct {
	Position int
	Record   conscript.Record
	Verdict  eligibility.Verdict
	Reason   eligibility.Reason
	Weight   int
	Score    float64
	Platoon  Platoon
}

// Engine ranks record sets. It holds the scorer so weight configuration is
// applied uniformly across global and per-platoon orderings.
type Engine struct {
	scorer *scoring.Scorer
}

// New creates a ranking engine backed by the given scorer.
func New(scorer *scoring.Scorer) *Engine {
	if scorer == nil {
		scorer = scoring.New()
	}
	return &Engine{scorer: scorer}
}

// less is the strict total order over entries: Apto ranks before Inapto,
// then higher score, then name ascending. The name key guarantees no two
// distinct records compare equal even when composite scores tie exactly.
func less(a, b Entry) bool {
	if (a.Verdict == eligibility.Apto) != (b.Verdict == eligibility.Apto) {
		return a.Verdict == eligibility.Apto
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Record.Name < b.Record.Name
}

// Rank derives verdicts and scores for every record and returns them in
// rank order with positions assigned from 1. The result depends only on the
// record set, never on store order.
func (e *Engine) Rank(records []conscript.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		v, reason := eligibility.Classify(r)
		entries = append(entries, Entry{
			Record:  r,
			Verdict: v,
			Reason:  reason,
			Weight:  e.scorer.Weight(r.Mention),
			Score:   e.scorer.RankScore(r),
			Platoon: PlatoonOf(r.Name),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries
}

// PlatoonOf buckets a candidate by the uppercase first letter of the name:
// A-E first platoon, F-J second, everything else Unassigned.
func PlatoonOf(name string) Platoon {
	runes := []rune(name)
	if len(runes) == 0 {
		return Unassigned
	}
	switch c := unicode.ToUpper(runes[0]); {
	case c >= 'A' && c <= 'E':
		return First
	case c >= 'F' && c <= 'J':
		return Second
	default:
		return Unassigned
	}
}

// Partition splits records into platoons and ranks each bucket on its own.
// Positions restart at 1 within each platoon. With a strict total order the
// per-bucket ranking equals the restriction of the global order.
func (e *Engine) Partition(records []conscript.Record) map[Platoon][]Entry {
	byPlatoon := make(map[Platoon][]conscript.Record, len(Platoons))
	for _, r := range records {
		p := PlatoonOf(r.Name)
		byPlatoon[p] = append(byPlatoon[p], r)
	}
	out := make(map[Platoon][]Entry, len(Platoons))
	for _, p := range Platoons {
		out[p] = e.Rank(byPlatoon[p])
	}
	return out
}
