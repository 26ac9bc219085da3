package http

import (
	"net/http"

	"tally/internal/log"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	session := s.auth.Session(r.Context())
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.Register(ctx, sanitizeInput(req.Name), sanitizeInput(req.Email), req.Password)
	if err != nil {
		logger.WarnContext(ctx, "Registration rejected",
			log.FieldOperation, log.OpRegister,
			log.FieldError, err.Error())
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContext(ctx)

	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.auth.Login(ctx, sanitizeInput(req.Email), req.Password)
	if err != nil {
		logger.WarnContext(ctx, "Login rejected",
			log.FieldOperation, log.OpLogin,
			log.FieldEmail, req.Email)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := s.auth.Logout(ctx); err != nil {
		log.FromContext(ctx).ErrorContext(ctx, "Logout failed",
			log.FieldOperation, log.OpLogout,
			log.FieldError, err.Error())
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
