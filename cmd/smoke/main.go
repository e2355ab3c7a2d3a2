package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/Htr33ml/CS25-2CIA/internal/smoketest"
	"github.com/Htr33ml/CS25-2CIA/pkg/logger"
)

// Default configuration constants.
const (
	defaultCandidates  = 50
	defaultTimeout     = 10 * time.Second
	defaultSeed        = 42
	defaultRunDeadline = 5 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		candidates = flag.Int("candidates", defaultCandidates, "Number of candidates to generate and enroll")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		seed       = flag.Int64("seed", defaultSeed, "Candidate generator seed")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunDeadline)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:    *baseURL,
		Candidates: *candidates,
		Timeout:    *timeout,
		Seed:       *seed,
		Verbose:    *verbose,
	}

	if err := smoketest.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Smoke test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
