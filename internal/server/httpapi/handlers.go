package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gophaccounts/internal/common"
	"github.com/dmitrijs2005/gophaccounts/internal/server/models"
	"github.com/julienschmidt/httprouter"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input models.UserInput
	if err := decodeJSON(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.svc.Users.Create(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := s.svc.Users.ReadOneByUsername(r.Context(), ps.ByName("username"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) patchUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var patch models.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.svc.Users.Update(r.Context(), ps.ByName("username"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in credentials
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.svc.Auth.GetAuthenticatedUser(r.Context(), in.Email, in.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	session, err := s.svc.Sessions.Create(r.Context(), user.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	http.SetCookie(w, s.sessionCookie(session.Token))
	writeJSON(w, http.StatusCreated, session)
}

// currentUser resolves the user owning the session cookie.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var token string
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		token = c.Value
	}

	session, err := s.svc.Sessions.FindOneValidByToken(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.svc.Users.ReadOneByID(r.Context(), session.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	status, err := s.svc.Status.Get(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// listMigrations is a dry run: it reports pending migrations only.
func (s *Server) listMigrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	pending, err := s.svc.Migrations.Pending(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) runMigrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	applied, err := s.svc.Migrations.Up(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if len(applied) > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, applied)
}
