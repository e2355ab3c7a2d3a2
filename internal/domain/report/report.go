// Package report projects ranked entries into exportable tabular text.
// Formatting is pure; delivery of the bytes is the caller's concern.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/eligibility"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
)

// Columns is the fixed output column order. Stored fields appear verbatim;
// Ordem, Entrevista Peso, ML Score and Situação Calculada are derived.
var Columns = []string{
	"Ordem",
	"Nome",
	"Saúde_Apto",
	"Saúde_Motivo",
	"TAF",
	"Entrevista_Menção",
	"Entrevista Peso",
	"ML Score",
	"Entrevista_Obs",
	"Contraindicado?",
	"Instrução_Apto",
	"Obeso",
	"Situação Calculada",
}

// row projects one entry into column order.
func row(e ranking.Entry) []string {
	return []string{
		strconv.Itoa(e.Position),
		e.Record.Name,
		string(e.Record.HealthFit),
		e.Record.HealthReason,
		string(e.Record.PhysicalTest),
		string(e.Record.Mention),
		strconv.Itoa(e.Weight),
		strconv.FormatFloat(e.Score, 'f', -1, 64),
		e.Record.Notes,
		string(e.Record.Contraindicated),
		string(e.Record.InstructionFit),
		string(e.Record.Obese),
		eligibility.Status(e.Verdict, e.Reason),
	}
}

// WriteCSV renders entries, already in rank order, as an RFC 4180 CSV
// document. Field separators and newlines inside values are quoted by the
// encoder and UTF-8 keeps the Portuguese vocabulary intact.
func WriteCSV(w io.Writer, entries []ranking.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(row(e)); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.Position, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// ParseCSV reads a document produced by WriteCSV back into entries. It is
// the inverse projection for both stored and derived columns, which makes
// the formatter's round-trip property checkable.
func ParseCSV(r io.Reader) ([]ranking.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read csv: missing header")
	}
	entries := make([]ranking.Entry, 0, len(rows)-1)
	for i, raw := range rows[1:] {
		e, err := parseRow(raw)
		if err != nil {
			return nil, fmt.Errorf("parse csv row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseRow(raw []string) (ranking.Entry, error) {
	pos, err := strconv.Atoi(raw[0])
	if err != nil {
		return ranking.Entry{}, fmt.Errorf("ordem: %w", err)
	}
	weight, err := strconv.Atoi(raw[6])
	if err != nil {
		return ranking.Entry{}, fmt.Errorf("entrevista peso: %w", err)
	}
	score, err := strconv.ParseFloat(raw[7], 64)
	if err != nil {
		return ranking.Entry{}, fmt.Errorf("ml score: %w", err)
	}
	rec, err := conscript.ParseRow(pos, []string{
		raw[1], raw[2], raw[3], raw[4], raw[5], raw[8], raw[9], raw[10], raw[11],
	})
	if err != nil {
		return ranking.Entry{}, err
	}
	verdict := eligibility.Apto
	reason := eligibility.ReasonNone
	if status := raw[12]; status != string(eligibility.Apto) {
		verdict = eligibility.Inapto
		reason = eligibility.Reason(strings.TrimPrefix(status, string(eligibility.Inapto)+" - "))
	}
	return ranking.Entry{
		Position: pos,
		Record:   rec,
		Verdict:  verdict,
		Reason:   reason,
		Weight:   weight,
		Score:    score,
		Platoon:  ranking.PlatoonOf(rec.Name),
	}, nil
}

// WriteTable renders entries as an aligned plain-text table for terminal
// display.
func WriteTable(w io.Writer, entries []ranking.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(Columns)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, e := range entries {
		table.Append(row(e))
	}
	table.Render()
}
