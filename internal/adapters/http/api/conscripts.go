// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/conscript"
)

// ConscriptsHandler handles enrollment and bulk import requests.
type ConscriptsHandler struct {
	deps Dependencies
}

// NewConscriptsHandler creates a new conscripts handler.
func NewConscriptsHandler(deps Dependencies) *ConscriptsHandler {
	return &ConscriptsHandler{deps: deps}
}

// HandleConscripts handles POST /conscripts (enroll) and
// PATCH /conscripts (field-scoped update).
func (h *ConscriptsHandler) HandleConscripts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleEnroll(w, r)
	case http.MethodPatch:
		h.handleUpdate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ConscriptsHandler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	const op = "api.enroll"
	var req conscriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	rec, err := conscript.ParseRow(0, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	entry, err := h.deps.Enroll(r.Context(), rec)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// updateRequest mirrors a field-scoped record update.
type updateRequest struct {
	Nome  string `json:"nome"`
	Campo string `json:"campo"`
	Valor string `json:"valor"`
}

func (h *ConscriptsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update"
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.UpdateRecord(r.Context(), req.Nome, req.Campo, req.Valor); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// importRequest carries raw rows in sheet column order.
type importRequest struct {
	Rows [][]string `json:"rows"`
}

// importResultResponse is the per-row outcome of a bulk import.
type importResultResponse struct {
	Row   int    `json:"row"`
	Nome  string `json:"nome,omitempty"`
	Error string `json:"error,omitempty"`
}

// HandleImport handles POST /conscripts/import requests; one malformed row
// never aborts the batch.
func (h *ConscriptsHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	const op = "api.import"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(req.Rows) == 0 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	results, err := h.deps.BulkImport(r.Context(), req.Rows)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]importResultResponse, len(results))
	for i, res := range results {
		out[i] = importResultResponse{Row: res.Row, Nome: res.Name}
		if res.Err != nil {
			out[i].Error = res.Err.Error()
		}
	}
	writeJSON(w, http.StatusMultiStatus, out)
}
