// Package scoring computes interview weights and the composite rank score.
package scoring

import (
	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
)

// defaultHalfPoint is the contribution of each passing binary criterion to
// the composite score.
const defaultHalfPoint = 0.5

// defaultWeights is the fixed mention weight table. Insuficiente maps to 0:
// it is also an automatic disqualifier, so its weight only orders
// disqualified candidates among themselves.
var defaultWeights = map[conscript.Mention]int{
	conscript.Excelente:    10,
	conscript.MuitoBom:     8,
	conscript.Bom:          6,
	conscript.Regular:      4,
	conscript.Insuficiente: 0,
}

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithMentionWeights overrides entries of the mention weight table.
// Unknown mention names and negative weights are ignored.
func WithMentionWeights(weights map[string]int) Option {
	return func(s *Scorer) {
		for raw, w := range weights {
			m, ok := conscript.ParseMention(raw)
			if !ok || w < 0 {
				continue
			}
			s.weights[m] = w
		}
	}
}

// WithHalfPoint sets the per-criterion composite contribution.
func WithHalfPoint(p float64) Option {
	return func(s *Scorer) {
		if p > 0 {
			s.halfPoint = p
		}
	}
}

// Scorer maps records to interview weights and composite rank scores.
type Scorer struct {
	weights   map[conscript.Mention]int
	halfPoint float64
}

// New creates a Scorer with the fixed default table.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		weights:   make(map[conscript.Mention]int, len(defaultWeights)),
		halfPoint: defaultHalfPoint,
	}
	for m, w := range defaultWeights {
		s.weights[m] = w
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Weight returns the table weight for a mention. Mentions outside the table
// weigh 0, the defined floor; parsed records always carry a known mention,
// so the floor is only reachable through raw strings.
func (s *Scorer) Weight(m conscript.Mention) int {
	return s.weights[m]
}

// RankScore returns the composite tie-break score: the interview weight plus
// one half-point for each passing binary criterion. Despite the historical
// "ML Score" label, nothing here is learned.
func (s *Scorer) RankScore(r conscript.Record) float64 {
	score := float64(s.Weight(r.Mention))
	for _, pass := range []bool{
		r.PhysicalTest == conscript.Yes,
		r.HealthFit == conscript.Yes,
		r.InstructionFit == conscript.Yes,
		r.Contraindicated == conscript.No,
		r.Obese == conscript.No,
	} {
		if pass {
			score += s.halfPoint
		}
	}
	return score
}
