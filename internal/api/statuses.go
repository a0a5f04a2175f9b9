package api

import (
	"net/http"

	"task-manager/internal/service"
)

func (s *Server) handleStatusList(w http.ResponseWriter, r *http.Request) {
	statuses, total, err := s.svc.Statuses.List(r.Context(), query(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeList(w, statuses, total)
}

func (s *Server) handleStatusGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	st, err := s.svc.Statuses.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleStatusCreate(w http.ResponseWriter, r *http.Request) {
	var in service.StatusCreate
	if !s.decode(w, r, &in) {
		return
	}
	st, err := s.svc.Statuses.Create(r.Context(), principal(r), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleStatusUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var in service.StatusUpdate
	if !s.decode(w, r, &in) {
		return
	}
	st, err := s.svc.Statuses.Update(r.Context(), principal(r), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleStatusDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Statuses.Delete(r.Context(), principal(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
