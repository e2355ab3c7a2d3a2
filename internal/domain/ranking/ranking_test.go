package ranking_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/eligibility"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func record(name string, mention conscript.Mention, healthFit conscript.YesNo) conscript.Record {
	return conscript.Record{
		Name:            name,
		HealthFit:       healthFit,
		PhysicalTest:    conscript.Yes,
		Mention:         mention,
		Contraindicated: conscript.No,
		InstructionFit:  conscript.Yes,
		Obese:           conscript.No,
	}
}

// randomRecords builds a deterministic pseudo-random record set with distinct
// names spanning all buckets and both verdicts.
func randomRecords(rng *rand.Rand, n int) []conscript.Record {
	letters := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	mentions := []conscript.Mention{
		conscript.Excelente, conscript.MuitoBom, conscript.Bom,
		conscript.Regular, conscript.Insuficiente,
	}
	yn := []conscript.YesNo{conscript.Yes, conscript.No}
	out := make([]conscript.Record, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, conscript.Record{
			Name:            fmt.Sprintf("%c-%04d", letters[rng.Intn(len(letters))], i),
			HealthFit:       yn[rng.Intn(2)],
			PhysicalTest:    yn[rng.Intn(2)],
			Mention:         mentions[rng.Intn(len(mentions))],
			Contraindicated: yn[rng.Intn(2)],
			InstructionFit:  yn[rng.Intn(2)],
			Obese:           yn[rng.Intn(2)],
		})
	}
	return out
}

// beforeInOrder reproduces the documented order for verification: Apto first,
// then score descending, then name ascending.
func beforeInOrder(a, b ranking.Entry) bool {
	if (a.Verdict == eligibility.Apto) != (b.Verdict == eligibility.Apto) {
		return a.Verdict == eligibility.Apto
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Record.Name < b.Record.Name
}

func TestRank(t *testing.T) {
	Convey("Given a mixed record set", t, func() {
		engine := ranking.New(scoring.New())
		records := []conscript.Record{
			record("Caio", conscript.Bom, conscript.Yes),
			record("Ana", conscript.Excelente, conscript.Yes),
			record("Beto", conscript.Bom, conscript.No),
			record("Bia", conscript.Bom, conscript.Yes),
		}
		entries := engine.Rank(records)

		Convey("Then positions are contiguous from 1", func() {
			So(entries, ShouldHaveLength, 4)
			for i, e := range entries {
				So(e.Position, ShouldEqual, i+1)
			}
		})

		Convey("Then Apto candidates precede Inapto ones", func() {
			So(entries[0].Record.Name, ShouldEqual, "Ana")
			So(entries[3].Record.Name, ShouldEqual, "Beto")
			So(entries[3].Verdict, ShouldEqual, eligibility.Inapto)
		})

		Convey("Then equal scores break ties by name ascending", func() {
			// Bia and Caio share mention and criteria, so scores tie.
			So(entries[1].Record.Name, ShouldEqual, "Bia")
			So(entries[2].Record.Name, ShouldEqual, "Caio")
			So(entries[1].Score, ShouldEqual, entries[2].Score)
		})

		Convey("Then the result is independent of input order", func() {
			reversed := make([]conscript.Record, len(records))
			for i, r := range records {
				reversed[len(records)-1-i] = r
			}
			again := engine.Rank(reversed)
			So(again, ShouldResemble, entries)
		})
	})
}

func TestRankTotalOrder(t *testing.T) {
	Convey("Given pseudo-random record sets", t, func() {
		engine := ranking.New(scoring.New())
		rng := rand.New(rand.NewSource(7)) //nolint:gosec // deterministic seed for reproducible tests

		for trial := 0; trial < 10; trial++ {
			entries := engine.Rank(randomRecords(rng, 40))

			Convey(fmt.Sprintf("Then trial %d yields a strict total order", trial), func() {
				for i := 0; i < len(entries); i++ {
					for j := i + 1; j < len(entries); j++ {
						// Exactly one of a<b, b<a for distinct entries.
						So(beforeInOrder(entries[i], entries[j]), ShouldBeTrue)
						So(beforeInOrder(entries[j], entries[i]), ShouldBeFalse)
					}
				}
			})
		}
	})
}

func TestPlatoonOf(t *testing.T) {
	Convey("Given candidate names", t, func() {
		Convey("Then A-E names go to the first platoon", func() {
			So(ranking.PlatoonOf("Ana"), ShouldEqual, ranking.First)
			So(ranking.PlatoonOf("eduardo"), ShouldEqual, ranking.First)
		})

		Convey("Then F-J names go to the second platoon", func() {
			So(ranking.PlatoonOf("Fabio"), ShouldEqual, ranking.Second)
			So(ranking.PlatoonOf("joana"), ShouldEqual, ranking.Second)
		})

		Convey("Then out-of-range names are routed to Unassigned, not dropped", func() {
			So(ranking.PlatoonOf("Zara"), ShouldEqual, ranking.Unassigned)
			So(ranking.PlatoonOf("0scar"), ShouldEqual, ranking.Unassigned)
			So(ranking.PlatoonOf(""), ShouldEqual, ranking.Unassigned)
		})
	})
}

func TestPartition(t *testing.T) {
	Convey("Given a pseudo-random record set", t, func() {
		engine := ranking.New(scoring.New())
		rng := rand.New(rand.NewSource(11)) //nolint:gosec // deterministic seed for reproducible tests
		records := randomRecords(rng, 60)

		parts := engine.Partition(records)
		global := engine.Rank(records)

		Convey("Then the partition is a disjoint cover", func() {
			total := 0
			seen := map[string]ranking.Platoon{}
			for _, p := range ranking.Platoons {
				for _, e := range parts[p] {
					_, dup := seen[e.Record.Name]
					So(dup, ShouldBeFalse)
					seen[e.Record.Name] = p
					So(e.Platoon, ShouldEqual, p)
				}
				total += len(parts[p])
			}
			So(total, ShouldEqual, len(records))
		})

		Convey("Then each bucket preserves the global relative order", func() {
			// With a strict total order, ranking a subset must equal the
			// restriction of the global order to that subset.
			for _, p := range ranking.Platoons {
				var restricted []string
				for _, e := range global {
					if e.Platoon == p {
						restricted = append(restricted, e.Record.Name)
					}
				}
				var bucket []string
				for _, e := range parts[p] {
					bucket = append(bucket, e.Record.Name)
				}
				So(bucket, ShouldResemble, restricted)
			}
		})

		Convey("Then positions restart at 1 within each bucket", func() {
			for _, p := range ranking.Platoons {
				for i, e := range parts[p] {
					So(e.Position, ShouldEqual, i+1)
				}
			}
		})
	})
}
