// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Htr33ml/CS25-2CIA/internal/adapters/sheet"
	service "github.com/Htr33ml/CS25-2CIA/internal/app"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Enroll(ctx context.Context, rec conscript.Record) (ranking.Entry, error)
	BulkImport(ctx context.Context, rows [][]string) ([]service.ImportResult, error)
	Roster(ctx context.Context) ([]ranking.Entry, []service.RowError, error)
	Platoons(ctx context.Context) (map[ranking.Platoon][]ranking.Entry, []service.RowError, error)
	PlatoonReport(ctx context.Context, p ranking.Platoon) ([]byte, error)
	UpdateRecord(ctx context.Context, name, field, value string) error
	Login(ctx context.Context, username, secret string) error
}

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats(ctx context.Context) map[string]interface{}
}

// Server wires HTTP routes for the business API.
type Server struct {
	conscriptsHandler *ConscriptsHandler
	rosterHandler     *RosterHandler
	reportHandler     *ReportHandler
	loginHandler      *LoginHandler
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		conscriptsHandler: NewConscriptsHandler(deps),
		rosterHandler:     NewRosterHandler(deps),
		reportHandler:     NewReportHandler(deps),
		loginHandler:      NewLoginHandler(deps),
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/conscripts", MetricsMiddleware(s.conscriptsHandler.HandleConscripts, "conscripts"))
	mux.HandleFunc("/conscripts/import", MetricsMiddleware(s.conscriptsHandler.HandleImport, "import"))
	mux.HandleFunc("/roster", MetricsMiddleware(s.rosterHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/platoons", MetricsMiddleware(s.rosterHandler.HandleGetPlatoons, "platoons"))
	mux.HandleFunc("/report/", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/login", MetricsMiddleware(s.loginHandler.HandleLogin, "login"))
}

// conscriptRequest mirrors the nine-column candidate row.
type conscriptRequest struct {
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

// fields projects the request into sheet column order for ParseRow.
func (c conscriptRequest) fields() []string {
	return []string{
		c.Nome, c.SaudeApto, c.SaudeMotivo, c.TAF, c.Mencao,
		c.Observacoes, c.Contraindicado, c.InstrucaoApto, c.Obeso,
	}
}

// entryResponse mirrors one ranked row.
type entryResponse struct {
	Ordem    int     `json:"ordem"`
	Nome     string  `json:"nome"`
	Situacao string  `json:"situacao"`
	Motivo   string  `json:"motivo,omitempty"`
	Peso     int     `json:"entrevista_peso"`
	Score    float64 `json:"ml_score"`
	Pelotao  string  `json:"pelotao"`
}

func toEntryResponse(e ranking.Entry) entryResponse {
	return entryResponse{
		Ordem:    e.Position,
		Nome:     e.Record.Name,
		Situacao: string(e.Verdict),
		Motivo:   string(e.Reason),
		Peso:     e.Weight,
		Score:    e.Score,
		Pelotao:  string(e.Platoon),
	}
}

// rowErrorResponse reports one malformed store row.
type rowErrorResponse struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

func toRowErrors(rowErrs []service.RowError) []rowErrorResponse {
	out := make([]rowErrorResponse, len(rowErrs))
	for i, re := range rowErrs {
		out[i] = rowErrorResponse{Row: re.Row, Error: re.Err.Error()}
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service error kinds to HTTP responses.
// Authentication failures stay uniform and store internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrAuthentication):
		writeError(w, http.StatusUnauthorized, "unauthorized", service.ErrAuthentication)
	case errors.Is(err, service.ErrDuplicateName):
		writeError(w, http.StatusConflict, "duplicate_name", err)
	case errors.Is(err, conscript.ErrMalformed), errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrTooManyRows):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, sheet.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", errors.New("backing store unavailable"))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
