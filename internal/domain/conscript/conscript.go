// Package conscript contains the typed candidate record and the single
// parse/validate step applied at the store boundary.
package conscript

import (
	"strings"
)

// Column count for a well-formed sheet row.
const RowWidth = 9

// Sheet column positions (0-based within a row slice).
const (
	ColName = iota
	ColHealthFit
	ColHealthReason
	ColPhysicalTest
	ColMention
	ColNotes
	ColContraindicated
	ColInstructionFit
	ColObese
)

// Header holds the store's first-row labels in sheet column order.
var Header = []string{
	"Nome",
	"Saúde_Apto",
	"Saúde_Motivo",
	"TAF",
	"Entrevista_Menção",
	"Entrevista_Obs",
	"Contraindicado",
	"Instrução_Apto",
	"Obeso",
}

// YesNo is a normalized binary answer.
type YesNo string

// YesNo values as stored in the sheet.
const (
	Yes YesNo = "Sim"
	No  YesNo = "Não"
)

// Mention is the categorical interview outcome.
type Mention string

// Mention values ordered best to worst.
const (
	Excelente    Mention = "Excelente"
	MuitoBom     Mention = "Muito Bom"
	Bom          Mention = "Bom"
	Regular      Mention = "Regular"
	Insuficiente Mention = "Insuficiente"
)

// Record is one candidate row after validation. Free-text fields keep their
// stored value verbatim; enum fields are canonicalized.
type Record struct {
	Name            string
	HealthFit       YesNo
	HealthReason    string
	PhysicalTest    YesNo
	Mention         Mention
	Notes           string
	Contraindicated YesNo
	InstructionFit  YesNo
	Obese           YesNo
}

// normalize lowercases, trims, and strips the Portuguese diacritics used in
// the domain vocabulary so enum matching tolerates inconsistent data entry.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	replacer := strings.NewReplacer(
		"ã", "a", "á", "a", "â", "a",
		"ç", "c",
		"é", "e", "ê", "e",
		"í", "i",
		"ó", "o", "õ", "o", "ô", "o",
		"ú", "u",
	)
	return replacer.Replace(s)
}

// parseYesNo canonicalizes a binary answer.
func parseYesNo(s string) (YesNo, bool) {
	switch normalize(s) {
	case "sim":
		return Yes, true
	case "nao":
		return No, true
	default:
		return "", false
	}
}

// ParseMention canonicalizes an interview mention.
func ParseMention(s string) (Mention, bool) {
	switch normalize(s) {
	case "excelente":
		return Excelente, true
	case "muito bom":
		return MuitoBom, true
	case "bom":
		return Bom, true
	case "regular":
		return Regular, true
	case "insuficiente":
		return Insuficiente, true
	default:
		return "", false
	}
}

// ParseRow validates one sheet row and returns the typed record. It is the
// only place raw store strings become domain values; business logic never
// sees unvalidated input. row identifies the store row for error messages.
func ParseRow(row int, fields []string) (Record, error) {
	if len(fields) < RowWidth {
		return Record{}, &MalformedRecordError{Row: row, Field: "row", Value: "", Reason: "too few columns"}
	}

	name := strings.TrimSpace(fields[ColName])
	if name == "" {
		return Record{}, &MalformedRecordError{Row: row, Field: Header[ColName], Value: "", Reason: "empty name"}
	}

	r := Record{
		Name:         name,
		HealthReason: strings.TrimSpace(fields[ColHealthReason]),
		Notes:        strings.TrimSpace(fields[ColNotes]),
	}

	yesNoCols := []struct {
		col int
		dst *YesNo
	}{
		{ColHealthFit, &r.HealthFit},
		{ColPhysicalTest, &r.PhysicalTest},
		{ColContraindicated, &r.Contraindicated},
		{ColInstructionFit, &r.InstructionFit},
		{ColObese, &r.Obese},
	}
	for _, c := range yesNoCols {
		v, ok := parseYesNo(fields[c.col])
		if !ok {
			return Record{}, &MalformedRecordError{Row: row, Name: name, Field: Header[c.col], Value: fields[c.col], Reason: "expected Sim or Não"}
		}
		*c.dst = v
	}

	m, ok := ParseMention(fields[ColMention])
	if !ok {
		return Record{}, &MalformedRecordError{Row: row, Name: name, Field: Header[ColMention], Value: fields[ColMention], Reason: "unknown mention"}
	}
	r.Mention = m

	return r, nil
}

// Row projects the record back into sheet column order.
func (r Record) Row() []string {
	return []string{
		r.Name,
		string(r.HealthFit),
		r.HealthReason,
		string(r.PhysicalTest),
		string(r.Mention),
		r.Notes,
		string(r.Contraindicated),
		string(r.InstructionFit),
		string(r.Obese),
	}
}

// SameName reports whether two names identify the same candidate. Identity
// is trimmed and case-insensitive, which is stricter than exact matching:
// "ana" and "Ana" are the same person, not two records.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
