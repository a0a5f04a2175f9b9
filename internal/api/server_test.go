package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"task-manager/internal/auth"
	"task-manager/internal/config"
	"task-manager/internal/logging"
	"task-manager/internal/seed"
	"task-manager/internal/service"
	"task-manager/internal/store"
)

type harness struct {
	t     *testing.T
	srv   *httptest.Server
	token string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	log := logging.Discard()
	hasher := auth.Hasher{Cost: bcrypt.MinCost}
	st := store.NewMemory()
	require.NoError(t, seed.Run(ctx, st, hasher, config.Seed{Enabled: true}, log))

	tokens := auth.NewTokens("test-secret", time.Hour)
	api := New(
		service.New(st, hasher, log),
		auth.NewAuthenticator(st.Repos().Users, hasher, tokens, log),
		tokens,
		log,
	)
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	h := &harness{t: t, srv: srv}
	resp := h.do(http.MethodPost, "/api/login", map[string]string{
		"username": seed.DefaultEmail,
		"password": seed.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	h.token = readBody(t, resp)
	return h
}

func (h *harness) do(method, path string, body any) *http.Response {
	h.t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(h.t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, h.srv.URL+path, r)
	require.NoError(h.t, err)
	req.Header.Set("Content-Type", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(h.t, err)
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestPublicEndpoints(t *testing.T) {
	h := newHarness(t)
	h.token = ""

	resp := h.do(http.MethodGet, "/welcome", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Welcome to Task Manager", readBody(t, resp))

	resp = h.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodGet, "/api/tasks", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginRejectsBadPassword(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodPost, "/api/login", map[string]string{"username": seed.DefaultEmail, "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "invalid credentials", body["error"])
}

func TestTaskCRUD(t *testing.T) {
	h := newHarness(t)

	resp := h.do(http.MethodPost, "/api/labels", map[string]string{"name": "feature"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	lbl := decodeBody[service.LabelView](t, resp)

	resp = h.do(http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Write docs",
		"index":    2,
		"status":   "draft",
		"labelIds": []int64{lbl.ID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[map[string]any](t, resp)
	assert.Equal(t, "Write docs", created["title"])
	assert.Equal(t, "draft", created["status"])
	assert.Nil(t, created["assigneeId"])
	assert.Nil(t, created["content"])
	assert.Equal(t, []any{float64(lbl.ID)}, created["labelIds"])
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, created["createdAt"])
	id := int64(created["id"].(float64))

	resp = h.do(http.MethodPut, fmt.Sprintf("/api/tasks/%d", id), `{"status": "published", "labelIds": null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[service.TaskView](t, resp)
	assert.Equal(t, "published", updated.Status)
	assert.Empty(t, updated.LabelIDs)
	assert.Equal(t, "Write docs", updated.Title)

	resp = h.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", id), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestTaskListHeaderAndFilters(t *testing.T) {
	h := newHarness(t)
	for i, st := range []string{"draft", "draft", "published", "draft", "draft"} {
		resp := h.do(http.MethodPost, "/api/tasks", map[string]any{"title": fmt.Sprintf("task %d", i), "status": st})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := h.do(http.MethodGet, "/api/tasks?status=draft&_start=1&_end=2&_sort=id&_order=DESC", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "4", resp.Header.Get("X-Total-Count"))
	assert.Equal(t, "X-Total-Count", resp.Header.Get("Access-Control-Expose-Headers"))
	page := decodeBody[[]service.TaskView](t, resp)
	require.Len(t, page, 2)
	assert.Equal(t, "task 3", page[0].Title)
	assert.Equal(t, "task 1", page[1].Title)

	for _, q := range []string{"_sort=color", "_order=up", "assigneeId=x", "_end=ten"} {
		resp := h.do(http.MethodGet, "/api/tasks?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
		resp.Body.Close()
	}
}

func TestErrorMapping(t *testing.T) {
	h := newHarness(t)

	resp := h.do(http.MethodPost, "/api/tasks", map[string]any{"title": "x", "status": "nonexistent-slug"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodPost, "/api/tasks", `{"title": `)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodGet, "/api/tasks/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodPost, "/api/task_statuses", map[string]string{"name": "draft", "slug": "draft"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody[map[string]string](t, resp)
	assert.Contains(t, body["error"], "already exists")

	resp = h.do(http.MethodPost, "/api/labels", map[string]string{"name": "ab"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteStatusInUse(t *testing.T) {
	h := newHarness(t)

	resp := h.do(http.MethodGet, "/api/task_statuses?_sort=slug", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "5", resp.Header.Get("X-Total-Count"))
	statuses := decodeBody[[]service.StatusView](t, resp)
	var draft service.StatusView
	for _, s := range statuses {
		if s.Slug == "draft" {
			draft = s
		}
	}
	require.NotZero(t, draft.ID)

	resp = h.do(http.MethodPost, "/api/tasks", map[string]any{"title": "T", "status": "draft"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decodeBody[service.TaskView](t, resp)

	path := fmt.Sprintf("/api/task_statuses/%d", draft.ID)
	resp = h.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = h.do(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestUsersNeverExposeDigest(t *testing.T) {
	h := newHarness(t)

	resp := h.do(http.MethodPost, "/api/users", map[string]string{
		"email": "jane@example.com", "firstName": "Jane", "password": "secret",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := readBody(t, resp)
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "digest")

	resp = h.do(http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-Total-Count"))
	users := decodeBody[[]service.UserView](t, resp)
	require.Len(t, users, 2)
	assert.Equal(t, seed.DefaultEmail, users[0].Email)

	resp = h.do(http.MethodPost, "/api/login", map[string]string{"username": "jane@example.com", "password": "secret"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
