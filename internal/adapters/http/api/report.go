// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
)

// ReportHandler serves platoon CSV downloads.
type ReportHandler struct {
	deps Dependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps Dependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// parsePlatoon maps the path parameter to a platoon bucket.
func parsePlatoon(s string) (ranking.Platoon, string, bool) {
	switch strings.ToLower(s) {
	case "1":
		return ranking.First, "relatorio_1pelotao.csv", true
	case "2":
		return ranking.Second, "relatorio_2pelotao.csv", true
	case "unassigned", "sem-pelotao":
		return ranking.Unassigned, "relatorio_sem_pelotao.csv", true
	default:
		return "", "", false
	}
}

// HandleGetReport handles GET /report/{platoon} requests and returns the
// platoon ranking as a downloadable CSV.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/report/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	platoon, filename, ok := parsePlatoon(path)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	data, err := h.deps.PlatoonReport(r.Context(), platoon)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
