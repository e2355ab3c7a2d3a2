// Package smoketest enrolls generated candidates against a running server
// and verifies the ranking invariants end to end.
package smoketest

import "time"

// Config holds configuration for the smoke run.
type Config struct {
	BaseURL    string        // Base URL of the service
	Candidates int           // Number of candidates to generate
	Timeout    time.Duration // HTTP request timeout
	Seed       int64         // Seed for the candidate generator
	Verbose    bool          // Enable verbose logging
}

// Candidate mirrors the enrollment request body.
type Candidate struct {
	Nome           string `json:"nome"`
	SaudeApto      string `json:"saude_apto"`
	SaudeMotivo    string `json:"saude_motivo"`
	TAF            string `json:"taf"`
	Mencao         string `json:"entrevista_mencao"`
	Observacoes    string `json:"entrevista_obs"`
	Contraindicado string `json:"contraindicado"`
	InstrucaoApto  string `json:"instrucao_apto"`
	Obeso          string `json:"obeso"`
}

// Entry mirrors one ranked row in API responses.
type Entry struct {
	Ordem    int     `json:"ordem"`
	Nome     string  `json:"nome"`
	Situacao string  `json:"situacao"`
	Motivo   string  `json:"motivo"`
	Peso     int     `json:"entrevista_peso"`
	Score    float64 `json:"ml_score"`
	Pelotao  string  `json:"pelotao"`
}

// Stats holds smoke run statistics.
type Stats struct {
	Generated int
	Enrolled  int
	Rejected  int
	RosterLen int
	StartTime time.Time
	Duration  time.Duration
}
