// Package eligibility decides the Apto/Inapto verdict for a candidate.
package eligibility

import (
	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
)

// Verdict is the pass/fail outcome of classification.
type Verdict string

// Verdict values.
const (
	Apto   Verdict = "Apto"
	Inapto Verdict = "Inapto"
)

// Reason identifies the first failing gate for an Inapto verdict.
type Reason string

// Reason codes in gate order. ReasonNone accompanies Apto.
const (
	ReasonNone            Reason = ""
	ReasonHealth          Reason = "Saúde"
	ReasonPhysicalTest    Reason = "Teste Físico"
	ReasonInterview       Reason = "Entrevista"
	ReasonContraindicated Reason = "Contraindicado"
	ReasonInstructionTeam Reason = "Não Apto pela Instrução"
	ReasonObesity         Reason = "Obesidade"
)

// Classify runs the six disqualification gates in fixed priority order and
// returns the verdict with the first failing gate's reason. Records reach
// this function already validated, so every gate comparison is total.
func Classify(r conscript.Record) (Verdict, Reason) {
	switch {
	case r.HealthFit == conscript.No:
		return Inapto, ReasonHealth
	case r.PhysicalTest == conscript.No:
		return Inapto, ReasonPhysicalTest
	case r.Mention == conscript.Insuficiente:
		return Inapto, ReasonInterview
	case r.Contraindicated == conscript.Yes:
		return Inapto, ReasonContraindicated
	case r.InstructionFit == conscript.No:
		return Inapto, ReasonInstructionTeam
	case r.Obese == conscript.Yes:
		return Inapto, ReasonObesity
	default:
		return Apto, ReasonNone
	}
}

// Status renders the verdict the way the sheet historically stored it,
// e.g. "Apto" or "Inapto - Saúde".
func Status(v Verdict, reason Reason) string {
	if v == Apto {
		return string(Apto)
	}
	return string(Inapto) + " - " + string(reason)
}
