package api

import (
	"net/http"

	"task-manager/internal/service"
)

func (s *Server) handleLabelList(w http.ResponseWriter, r *http.Request) {
	labels, total, err := s.svc.Labels.List(r.Context(), query(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeList(w, labels, total)
}

func (s *Server) handleLabelGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	l, err := s.svc.Labels.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLabelCreate(w http.ResponseWriter, r *http.Request) {
	var in service.LabelCreate
	if !s.decode(w, r, &in) {
		return
	}
	l, err := s.svc.Labels.Create(r.Context(), principal(r), in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, l)
}

func (s *Server) handleLabelUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var in service.LabelUpdate
	if !s.decode(w, r, &in) {
		return
	}
	l, err := s.svc.Labels.Update(r.Context(), principal(r), id, in)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleLabelDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Labels.Delete(r.Context(), principal(r), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
