// Package api serves the REST interface over the services.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"task-manager/internal/auth"
	"task-manager/internal/logging"
	"task-manager/internal/service"
	"task-manager/pkg/apperr"
)

// Server is the HTTP API server.
type Server struct {
	svc    *service.Services
	login  *auth.Authenticator
	tokens *auth.Tokens
	log    logrus.FieldLogger
	router chi.Router
}

// New creates a new Server.
func New(svc *service.Services, login *auth.Authenticator, tokens *auth.Tokens, log logrus.FieldLogger) *Server {
	s := &Server{
		svc:    svc,
		login:  login,
		tokens: tokens,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(logging.Requests(s.log))
	r.Use(middleware.Recoverer)

	// Public
	r.Get("/welcome", s.handleWelcome)
	r.Get("/health", s.handleHealth)
	r.Post("/api/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.tokens, s.log))

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", s.handleTaskList)
			r.Post("/", s.handleTaskCreate)
			r.Get("/{id}", s.handleTaskGet)
			r.Put("/{id}", s.handleTaskUpdate)
			r.Delete("/{id}", s.handleTaskDelete)
		})
		r.Route("/api/task_statuses", func(r chi.Router) {
			r.Get("/", s.handleStatusList)
			r.Post("/", s.handleStatusCreate)
			r.Get("/{id}", s.handleStatusGet)
			r.Put("/{id}", s.handleStatusUpdate)
			r.Delete("/{id}", s.handleStatusDelete)
		})
		r.Route("/api/labels", func(r chi.Router) {
			r.Get("/", s.handleLabelList)
			r.Post("/", s.handleLabelCreate)
			r.Get("/{id}", s.handleLabelGet)
			r.Put("/{id}", s.handleLabelUpdate)
			r.Delete("/{id}", s.handleLabelDelete)
		})
		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", s.handleUserList)
			r.Post("/", s.handleUserCreate)
			r.Get("/{id}", s.handleUserGet)
			r.Put("/{id}", s.handleUserUpdate)
			r.Delete("/{id}", s.handleUserDelete)
		})
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("write json")
	}
}

func (s *Server) writeList(w http.ResponseWriter, items any, total int) {
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	w.Header().Set("Access-Control-Expose-Headers", "X-Total-Count")
	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

var statusByKind = map[apperr.Kind]int{
	apperr.KindValidation:   http.StatusBadRequest,
	apperr.KindDuplicate:    http.StatusBadRequest,
	apperr.KindNotFound:     http.StatusNotFound,
	apperr.KindInUse:        http.StatusMethodNotAllowed,
	apperr.KindUnauthorized: http.StatusUnauthorized,
}

// fail maps err to a status code. Unclassified errors are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		if status, ok := statusByKind[e.Kind]; ok {
			s.writeError(w, status, e.Message)
			return
		}
	}
	s.log.WithError(err).WithFields(logrus.Fields{
		"method":     r.Method,
		"path":       r.URL.Path,
		"request_id": middleware.GetReqID(r.Context()),
	}).Error("request failed")
	s.writeError(w, http.StatusInternalServerError, "something went wrong")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid id "+strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

// query flattens the URL query to its first value per key.
func query(r *http.Request) map[string]string {
	q := r.URL.Query()
	out := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}

func principal(r *http.Request) auth.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}
