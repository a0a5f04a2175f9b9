package api

import (
	"net/http"

	"task-manager/internal/service"
)

func (s *Server) handleUserList(w http.ResponseWriter, r *http.Request) {
	users, total, err := s.svc.Users.List(r.Context(), query(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeList(w, users, total)
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	u, err := s.svc.Users.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var in service.UserCreate
	if !s.decode(w, r, &in) {
		return
	}
	u, err := s.svc.Users.Create(r.Context(), principal(r), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var in service.UserUpdate
	if !s.decode(w, r, &in) {
		return
	}
	u, err := s.svc.Users.Update(r.Context(), principal(r), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Users.Delete(r.Context(), principal(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
