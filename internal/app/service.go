// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Htr33ml/CS25-2CIA/internal/adapters/sheet"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/credential"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/report"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/scoring"
	"github.com/Htr33ml/CS25-2CIA/pkg/logger"
	"github.com/Htr33ml/CS25-2CIA/pkg/metrics"
)

// Service implements the selection engine over the two store collaborators.
// Every operation re-derives state from a fresh store snapshot; verdicts and
// scores are never persisted.
type Service struct {
	// mu serializes check-then-act writes (duplicate-name checks, in-place
	// updates) within this process. Independent processes sharing the same
	// backing store can still interleave; that guarantee has to come from
	// the store itself.
	mu sync.Mutex

	records     sheet.RecordStore
	credentials sheet.CredentialStore
	logins      sheet.LoginLog

	scorer   *scoring.Scorer
	engine   *ranking.Engine
	verifier *credential.Verifier

	mentionWeights map[string]int
	halfPoint      float64
	bcryptCost     int
	maxImportRows  int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithRecordStore sets the candidate row store.
func WithRecordStore(s sheet.RecordStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.records = s
		}
	}
}

// WithCredentialStore sets the user/password row store.
func WithCredentialStore(s sheet.CredentialStore) Option {
	return func(svc *Service) {
		if s != nil {
			svc.credentials = s
		}
	}
}

// WithLoginLog sets the append-only login event sink.
func WithLoginLog(l sheet.LoginLog) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logins = l
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(svc *Service) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithMentionWeights overrides mention weight table entries.
func WithMentionWeights(weights map[string]int) Option {
	return func(svc *Service) {
		svc.mentionWeights = weights
	}
}

// WithHalfPoint sets the per-criterion composite score contribution.
func WithHalfPoint(p float64) Option {
	return func(svc *Service) {
		if p > 0 {
			svc.halfPoint = p
		}
	}
}

// WithBcryptCost sets the work factor for credential migration.
func WithBcryptCost(cost int) Option {
	return func(svc *Service) {
		if cost > 0 {
			svc.bcryptCost = cost
		}
	}
}

// WithMaxImportRows caps the row count accepted by a single bulk import.
func WithMaxImportRows(n int) Option {
	return func(svc *Service) {
		if n > 0 {
			svc.maxImportRows = n
		}
	}
}

// New constructs a Service. Stores default to empty in-memory sheets so
// tests and local runs work without collaborators.
func New(opts ...Option) (*Service, error) {
	svc := &Service{
		halfPoint:     0.5,
		bcryptCost:    10,
		maxImportRows: 1000,
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.records == nil {
		svc.records = sheet.NewMemorySheet(sheet.WithHeader(conscript.Header))
	}
	if svc.credentials == nil {
		svc.credentials = sheet.NewMemorySheet(sheet.WithHeader([]string{"Usuário", "Senha"}))
	}
	if svc.logins == nil {
		svc.logins = sheet.NewMemorySheet(sheet.WithHeader([]string{"Usuário", "Data"}))
	}
	if svc.logger == nil {
		if err := logger.Init(); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		svc.logger = logger.Get()
	}

	scorerOpts := []scoring.Option{scoring.WithHalfPoint(svc.halfPoint)}
	if svc.mentionWeights != nil {
		scorerOpts = append(scorerOpts, scoring.WithMentionWeights(svc.mentionWeights))
	}
	svc.scorer = scoring.New(scorerOpts...)
	svc.engine = ranking.New(svc.scorer)

	verifier, err := credential.New(svc.credentials, credential.WithCost(svc.bcryptCost))
	if err != nil {
		return nil, fmt.Errorf("init credential verifier: %w", err)
	}
	svc.verifier = verifier
	return svc, nil
}

// snapshot reads the current record rows and parses them. Malformed rows are
// reported per-row and excluded from the parsed set; they never abort the
// batch. The raw rows are returned too, for name lookups by store position.
func (s *Service) snapshot(ctx context.Context) ([][]string, []conscript.Record, []RowError, error) {
	start := time.Now()
	rows, err := s.records.ListAll(ctx)
	metrics.RecordStoreLatency("list_records", float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list records: %w", err)
	}

	var (
		records []conscript.Record
		rowErrs []RowError
	)
	for i := sheet.HeaderRows; i < len(rows); i++ {
		storeRow := i + 1
		rec, err := conscript.ParseRow(storeRow, rows[i])
		if err != nil {
			metrics.RecordMalformedRow()
			rowErrs = append(rowErrs, RowError{Row: storeRow, Err: err})
			continue
		}
		records = append(records, rec)
	}
	return rows, records, rowErrs, nil
}

// hasName reports whether any raw row already uses name. Malformed rows
// count too: a bad row still owns its name cell.
func hasName(rows [][]string, name string) bool {
	for i := sheet.HeaderRows; i < len(rows); i++ {
		if len(rows[i]) > conscript.ColName && conscript.SameName(rows[i][conscript.ColName], name) {
			return true
		}
	}
	return false
}

// Enroll validates and appends one candidate, then returns its ranked entry
// derived from the updated snapshot.
func (s *Service) Enroll(ctx context.Context, rec conscript.Record) (ranking.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, records, _, err := s.snapshot(ctx)
	if err != nil {
		return ranking.Entry{}, err
	}
	if hasName(rows, rec.Name) {
		metrics.RecordDuplicateRejected()
		return ranking.Entry{}, &DuplicateNameError{Name: rec.Name}
	}

	start := time.Now()
	err = s.records.Append(ctx, rec.Row())
	metrics.RecordStoreLatency("append_record", float64(time.Since(start).Milliseconds()))
	if err != nil {
		return ranking.Entry{}, fmt.Errorf("append record: %w", err)
	}
	metrics.RecordEnrollment()

	entries := s.engine.Rank(append(records, rec))
	metrics.UpdateRosterSize(len(entries))
	for _, e := range entries {
		if conscript.SameName(e.Record.Name, rec.Name) {
			s.logger.Info(ctx, "candidate enrolled",
				logger.String("name", rec.Name),
				logger.String("verdict", string(e.Verdict)),
				logger.Int("position", e.Position),
			)
			return e, nil
		}
	}
	// Unreachable: the appended record is part of the ranked set.
	return ranking.Entry{}, fmt.Errorf("enroll %q: ranked entry missing", rec.Name)
}

// Roster returns the global ranking plus per-row errors for malformed rows.
func (s *Service) Roster(ctx context.Context) ([]ranking.Entry, []RowError, error) {
	_, records, rowErrs, err := s.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	entries := s.engine.Rank(records)
	metrics.UpdateRosterSize(len(entries))
	return entries, rowErrs, nil
}

// Platoons returns the per-platoon rankings plus per-row errors.
func (s *Service) Platoons(ctx context.Context) (map[ranking.Platoon][]ranking.Entry, []RowError, error) {
	_, records, rowErrs, err := s.snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	parts := s.engine.Partition(records)
	for p, entries := range parts {
		metrics.UpdatePlatoonSize(string(p), len(entries))
	}
	return parts, rowErrs, nil
}

// PlatoonReport renders one platoon's ranking as a CSV artifact. Delivery
// (download headers, MIME type) belongs to the caller.
func (s *Service) PlatoonReport(ctx context.Context, p ranking.Platoon) ([]byte, error) {
	parts, _, err := s.Platoons(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, parts[p]); err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}
	metrics.RecordReportGenerated(string(p))
	return buf.Bytes(), nil
}

// BulkImport appends many raw rows, tolerating partial failure: each row
// gets its own result and one malformed row never aborts the rest.
func (s *Service) BulkImport(ctx context.Context, rawRows [][]string) ([]ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rawRows) > s.maxImportRows {
		return nil, fmt.Errorf("%w: %d rows exceeds limit of %d", ErrTooManyRows, len(rawRows), s.maxImportRows)
	}

	rows, _, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]ImportResult, 0, len(rawRows))
	for i, raw := range rawRows {
		res := ImportResult{Row: i + 1}
		rec, err := conscript.ParseRow(i+1, raw)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}
		res.Name = rec.Name
		if hasName(rows, rec.Name) {
			metrics.RecordDuplicateRejected()
			res.Err = &DuplicateNameError{Name: rec.Name}
			results = append(results, res)
			continue
		}
		if err := s.records.Append(ctx, rec.Row()); err != nil {
			res.Err = fmt.Errorf("append record: %w", err)
			results = append(results, res)
			continue
		}
		metrics.RecordEnrollment()
		rows = append(rows, rec.Row())
		results = append(results, res)
	}
	return results, nil
}

// UpdateRecord overwrites one field of an existing candidate, addressed by
// name. The updated row is re-validated before the write so an edit can
// never introduce a malformed value.
func (s *Service) UpdateRecord(ctx context.Context, name, field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := -1
	for i, h := range conscript.Header {
		if strings.EqualFold(strings.TrimSpace(field), h) {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	rows, _, _, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	for i := sheet.HeaderRows; i < len(rows); i++ {
		if len(rows[i]) <= conscript.ColName || !conscript.SameName(rows[i][conscript.ColName], name) {
			continue
		}
		storeRow := i + 1
		updated := make([]string, len(rows[i]))
		copy(updated, rows[i])
		updated[col] = value
		if _, err := conscript.ParseRow(storeRow, updated); err != nil {
			return err
		}
		// A rename is subject to the same uniqueness rule as an enrollment.
		// Case-variants of the row's own name stay allowed.
		if col == conscript.ColName && !conscript.SameName(rows[i][conscript.ColName], value) && hasName(rows, value) {
			metrics.RecordDuplicateRejected()
			return &DuplicateNameError{Name: value}
		}
		start := time.Now()
		err := s.records.Update(ctx, storeRow, col+1, []string{value})
		metrics.RecordStoreLatency("update_record", float64(time.Since(start).Milliseconds()))
		if err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		s.logger.Info(ctx, "candidate updated",
			logger.String("name", name),
			logger.String("field", conscript.Header[col]),
		)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Login verifies a credential pair and appends a login event on success.
// Every failure mode reports the same ErrAuthentication; store failures are
// returned as such, never masked as a mismatch.
func (s *Service) Login(ctx context.Context, username, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.verifier.Verify(ctx, username, secret)
	if err != nil {
		return fmt.Errorf("verify credentials: %w", err)
	}
	if !ok {
		metrics.RecordLogin(false)
		s.logger.Warn(ctx, "login rejected", logger.String("user", strings.TrimSpace(username)))
		return ErrAuthentication
	}

	ts := time.Now().UTC().Format(time.RFC3339)
	if err := s.logins.Append(ctx, []string{strings.TrimSpace(username), ts}); err != nil {
		return fmt.Errorf("append login event: %w", err)
	}
	metrics.RecordLogin(true)
	s.logger.Info(ctx, "login accepted", logger.String("user", strings.TrimSpace(username)))
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"half_point":  s.halfPoint,
		"bcrypt_cost": s.bcryptCost,
	}
	_, records, rowErrs, err := s.snapshot(ctx)
	if err != nil {
		stats["store"] = "unavailable"
		return stats
	}
	stats["candidates"] = len(records)
	stats["malformed_rows"] = len(rowErrs)
	counts := map[string]int{}
	for _, e := range s.engine.Rank(records) {
		counts[string(e.Verdict)]++
	}
	stats["verdicts"] = counts
	return stats
}
