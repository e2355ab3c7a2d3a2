// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/Htr33ml/CS25-2CIA/internal/domain/ranking"
)

// RosterHandler handles ranking read requests.
type RosterHandler struct {
	deps Dependencies
}

// NewRosterHandler creates a new roster handler.
func NewRosterHandler(deps Dependencies) *RosterHandler {
	return &RosterHandler{deps: deps}
}

// rosterResponse carries the global ranking plus any malformed rows.
type rosterResponse struct {
	Entries   []entryResponse    `json:"entries"`
	Malformed []rowErrorResponse `json:"malformed,omitempty"`
}

// HandleGetRoster handles GET /roster requests.
func (h *RosterHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	entries, rowErrs, err := h.deps.Roster(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := rosterResponse{Entries: make([]entryResponse, len(entries))}
	for i, e := range entries {
		resp.Entries[i] = toEntryResponse(e)
	}
	if len(rowErrs) > 0 {
		resp.Malformed = toRowErrors(rowErrs)
	}
	writeJSON(w, http.StatusOK, resp)
}

// platoonsResponse carries per-platoon rankings in report order.
type platoonsResponse struct {
	Platoons  map[string][]entryResponse `json:"platoons"`
	Malformed []rowErrorResponse         `json:"malformed,omitempty"`
}

// HandleGetPlatoons handles GET /platoons requests.
func (h *RosterHandler) HandleGetPlatoons(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	parts, rowErrs, err := h.deps.Platoons(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	resp := platoonsResponse{Platoons: make(map[string][]entryResponse, len(ranking.Platoons))}
	for _, p := range ranking.Platoons {
		entries := make([]entryResponse, len(parts[p]))
		for i, e := range parts[p] {
			entries[i] = toEntryResponse(e)
		}
		resp.Platoons[string(p)] = entries
	}
	if len(rowErrs) > 0 {
		resp.Malformed = toRowErrors(rowErrs)
	}
	writeJSON(w, http.StatusOK, resp)
}
