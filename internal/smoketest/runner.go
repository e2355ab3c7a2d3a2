package smoketest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/Htr33ml/CS25-2CIA/pkg/logger"
)

// rosterResponse mirrors the GET /roster body.
type rosterResponse struct {
	Entries []Entry `json:"entries"`
}

// Run executes the complete smoke test: health check, enrollment, roster
// retrieval, and invariant verification.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting selection smoke test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("candidates", config.Candidates),
		logger.String("timeout", config.Timeout.String()),
	)

	client := &http.Client{Timeout: config.Timeout}

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	rng := rand.New(rand.NewSource(config.Seed)) //nolint:gosec // deterministic seed for reproducible runs
	candidates := generate(rng, config.Candidates)
	stats.Generated = len(candidates)

	for _, c := range candidates {
		status, err := enroll(ctx, client, config.BaseURL, c)
		if err != nil {
			return fmt.Errorf("enroll %s: %w", c.Nome, err)
		}
		switch status {
		case http.StatusCreated:
			stats.Enrolled++
		case http.StatusConflict:
			stats.Rejected++
		default:
			return fmt.Errorf("enroll %s: unexpected status %d", c.Nome, status)
		}
		if config.Verbose {
			logger.Get().Debug(ctx, "enrolled candidate", logger.String("name", c.Nome), logger.Int("status", status))
		}
	}

	roster, err := fetchRoster(ctx, client, config.BaseURL)
	if err != nil {
		return fmt.Errorf("roster retrieval failed: %w", err)
	}
	stats.RosterLen = len(roster)

	if err := verifyRoster(roster); err != nil {
		return fmt.Errorf("roster verification failed: %w", err)
	}

	stats.Duration = time.Since(stats.StartTime)
	logger.Get().Info(ctx, "smoke test completed",
		logger.Int("generated", stats.Generated),
		logger.Int("enrolled", stats.Enrolled),
		logger.Int("rejected", stats.Rejected),
		logger.Int("rosterLen", stats.RosterLen),
		logger.String("duration", stats.Duration.String()),
	)
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *http.Client, config *Config) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// enroll posts one candidate and returns the HTTP status.
func enroll(ctx context.Context, client *http.Client, baseURL string, c Candidate) (int, error) {
	body, err := json.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("marshal candidate: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/conscripts", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build enroll request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

// fetchRoster retrieves the global ranking.
func fetchRoster(ctx context.Context, client *http.Client, baseURL string) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/roster", nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster request failed with status: %d", resp.StatusCode)
	}
	var body rosterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return body.Entries, nil
}

// verifyRoster checks the ranking invariants: positions are contiguous from
// 1, every Apto entry precedes every Inapto entry, and scores never rise
// within a verdict group.
func verifyRoster(roster []Entry) error {
	seenInapto := false
	for i, e := range roster {
		if e.Ordem != i+1 {
			return fmt.Errorf("entry %d has position %d", i, e.Ordem)
		}
		switch e.Situacao {
		case "Inapto":
			seenInapto = true
		case "Apto":
			if seenInapto {
				return fmt.Errorf("Apto entry %q ranked after an Inapto entry", e.Nome)
			}
		default:
			return fmt.Errorf("entry %q has unknown verdict %q", e.Nome, e.Situacao)
		}
		if i > 0 && roster[i-1].Situacao == e.Situacao && e.Score > roster[i-1].Score {
			return fmt.Errorf("score rises from %q to %q within the %s group", roster[i-1].Nome, e.Nome, e.Situacao)
		}
	}
	return nil
}
