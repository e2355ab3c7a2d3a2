// Command rosterctl ranks a local roster snapshot and prints or exports the
// platoon reports without needing a running server.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/eligibility"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/report"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/scoring"
)

// exportFiles maps platoons to their report artifact names.
var exportFiles = map[ranking.Platoon]string{
	ranking.First:      "relatorio_1pelotao.csv",
	ranking.Second:     "relatorio_2pelotao.csv",
	ranking.Unassigned: "relatorio_sem_pelotao.csv",
}

func main() {
	var (
		input     = flag.String("input", "", "Roster snapshot CSV (header row + nine columns per candidate)")
		exportDir = flag.String("export", "", "Directory to write per-platoon report CSVs (optional)")
	)
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: rosterctl -input roster.csv [-export dir]")
		os.Exit(2)
	}
	if err := run(*input, *exportDir); err != nil {
		color.Red("rosterctl: %v", err)
		os.Exit(1)
	}
}

func run(input, exportDir string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return fmt.Errorf("read roster: %w", err)
	}
	if len(rows) < 1 {
		return fmt.Errorf("read roster: missing header row")
	}

	var records []conscript.Record
	for i, raw := range rows[1:] {
		rec, err := conscript.ParseRow(i+2, raw)
		if err != nil {
			color.Yellow("skipping %v", err)
			continue
		}
		records = append(records, rec)
	}

	engine := ranking.New(scoring.New())
	parts := engine.Partition(records)

	for _, p := range ranking.Platoons {
		entries := parts[p]
		if len(entries) == 0 {
			continue
		}
		color.Cyan("\n%s (%d candidatos)", p, len(entries))
		report.WriteTable(os.Stdout, entries)
		for _, e := range entries {
			if e.Verdict == eligibility.Inapto {
				color.Red("  %s: %s", e.Record.Name, eligibility.Status(e.Verdict, e.Reason))
			} else {
				color.Green("  %s: Apto (score %.1f)", e.Record.Name, e.Score)
			}
		}
	}

	if exportDir == "" {
		return nil
	}
	for _, p := range ranking.Platoons {
		path := filepath.Join(exportDir, exportFiles[p])
		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report %s: %w", path, err)
		}
		if err := report.WriteCSV(out, parts[p]); err != nil {
			out.Close()
			return fmt.Errorf("write report %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close report %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}
