package smoketest

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// Name-initial pools: mostly platoon-assignable names plus a few that land
// in the Unassigned bucket, so smoke runs exercise all three.
var (
	assignable   = "ABCDEFGHIJ"
	unassignable = "KLMXYZ"
)

var mentions = []string{"Excelente", "Muito Bom", "Bom", "Regular", "Insuficiente"}

// unassignedShare is roughly one candidate in ten.
const unassignedShare = 10

// yesNo flips a weighted coin: p is the chance of "Sim" out of 100.
func yesNo(rng *rand.Rand, p int) string {
	if rng.Intn(100) < p {
		return "Sim"
	}
	return "Não"
}

// generate produces n distinct candidates. Names carry a uuid suffix so
// repeated runs against the same store never collide on the duplicate check.
func generate(rng *rand.Rand, n int) []Candidate {
	out := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		pool := assignable
		if rng.Intn(unassignedShare) == 0 {
			pool = unassignable
		}
		initial := string(pool[rng.Intn(len(pool))])
		name := initial + "-" + strings.Split(uuid.NewString(), "-")[0]

		c := Candidate{
			Nome:           name,
			SaudeApto:      yesNo(rng, 85),
			SaudeMotivo:    "-",
			TAF:            yesNo(rng, 80),
			Mencao:         mentions[rng.Intn(len(mentions))],
			Observacoes:    "-",
			Contraindicado: yesNo(rng, 10),
			InstrucaoApto:  yesNo(rng, 90),
			Obeso:          yesNo(rng, 15),
		}
		if c.SaudeApto == "Não" {
			c.SaudeMotivo = "Restrição médica"
		}
		out = append(out, c)
	}
	return out
}
