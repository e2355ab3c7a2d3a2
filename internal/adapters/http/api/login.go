// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LoginHandler handles credential verification requests.
type LoginHandler struct {
	deps Dependencies
}

// NewLoginHandler creates a new login handler.
func NewLoginHandler(deps Dependencies) *LoginHandler {
	return &LoginHandler{deps: deps}
}

// loginRequest mirrors the credential pair.
type loginRequest struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

func (l loginRequest) validate() error {
	switch {
	case strings.TrimSpace(l.Usuario) == "":
		return ErrBadRequest
	case strings.TrimSpace(l.Senha) == "":
		return ErrBadRequest
	}
	return nil
}

// HandleLogin handles POST /login requests. Every failure mode answers the
// same 401 body so the response does not reveal which check failed.
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	const op = "api.login"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if err := h.deps.Login(r.Context(), req.Usuario, req.Senha); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
