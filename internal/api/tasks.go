package api

import (
	"net/http"

	"task-manager/internal/service"
)

func (s *Server) handleTaskList(w http.ResponseWriter, r *http.Request) {
	tasks, total, err := s.svc.Tasks.List(r.Context(), query(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeList(w, tasks, total)
}

func (s *Server) handleTaskGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	t, err := s.svc.Tasks.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskCreate(w http.ResponseWriter, r *http.Request) {
	var in service.TaskCreate
	if !s.decode(w, r, &in) {
		return
	}
	t, err := s.svc.Tasks.Create(r.Context(), principal(r), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleTaskUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var in service.TaskUpdate
	if !s.decode(w, r, &in) {
		return
	}
	t, err := s.svc.Tasks.Update(r.Context(), principal(r), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTaskDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Tasks.Delete(r.Context(), principal(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
