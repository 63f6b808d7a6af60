package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringforge/ringforge/pkg/cache"
	"github.com/ringforge/ringforge/pkg/pipeline"
	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
	logger := log.New(io.Discard)
	return NewServer(":0", runner, s, logger), s
}

func get(srv *Server, url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", url, nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestServerCreation(t *testing.T) {
	srv, _ := newTestServer(t)
	require.NotNil(t, srv)
	require.NotNil(t, srv.server)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestBoardEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/board.svg?n_input=3&n_hidden=2&n_output=1")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
}

func TestBoardEndpointLayerVariant(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/board.svg?n_input=3&n_hidden=2&n_output=1&layer=top-etch")

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "display: none",
		"layer variant should suppress other passes")
}

func TestBoardEndpointMissingTopology(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/board.svg?n_input=3")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardEndpointInvalidFormat(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/board.gif?n_input=3&n_hidden=2&n_output=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardEndpointLayerRequiresSVG(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/board.json?n_input=3&n_hidden=2&n_output=1&layer=top-etch")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBoardEndpointOverflow(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/board.svg?n_input=3&n_hidden=2&n_output=1&diameter=100")
	assert.Equal(t, http.StatusBadRequest, w.Code,
		"overflowing layout should map to 400")
}

func TestListPlansEndpoint(t *testing.T) {
	srv, s := newTestServer(t)

	doc := plan.Document{
		Name:     "demo",
		Topology: plan.Topology{NInput: 3, NHidden: 2, NOutput: 1},
		Board:    plan.Board{DiameterMM: 400},
	}
	_, err := s.Save(context.Background(), doc)
	require.NoError(t, err)

	w := get(srv, "/plans")
	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
}

func TestGetPlanEndpoint(t *testing.T) {
	srv, s := newTestServer(t)

	doc := plan.Document{
		Name:     "demo",
		Topology: plan.Topology{NInput: 3, NHidden: 2, NOutput: 1},
		Board:    plan.Board{DiameterMM: 400},
	}
	_, err := s.Save(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(srv, "/plans/demo").Code)
	assert.Equal(t, http.StatusNotFound, get(srv, "/plans/missing").Code,
		"unknown plan should map to 404")
}

func TestNetworkEndpointValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(srv, "/network.svg?n_input=0&n_hidden=2&n_output=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
