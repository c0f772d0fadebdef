package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/tilegrid/pkg/board"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/store"
)

func setupServer(t *testing.T) (http.Handler, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return New(pipeline.NewRunner(nil, nil, nil), st, nil).Handler(), st
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("%s %s: status %d, want %d; body: %s", method, path, rec.Code, wantStatus, rec.Body.String())
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v; body: %s", err, rec.Body.String())
	}
}

func pos(x, y int) *geom.Vector2 {
	v := geom.V(x, y)
	return &v
}

func testBoard() *board.Board {
	return &board.Board{
		Name: "home",
		Grid: geom.V(6, 4),
		Widgets: []board.Widget{
			{ID: "clock", Size: geom.V(2, 2), Position: pos(0, 0)},
			{ID: "notes", Size: geom.V(2, 2), Position: pos(1, 1)},
		},
	}
}

func TestHealth(t *testing.T) {
	h, _ := setupServer(t)
	rec := doRequest(t, h, http.MethodGet, "/healthz", nil, http.StatusOK)

	var resp healthResponse
	decodeBody(t, rec, &resp)
	if resp.Status != "ok" || resp.Version == "" {
		t.Errorf("health = %+v", resp)
	}
}

func TestResolveEndpoint(t *testing.T) {
	h, _ := setupServer(t)
	rec := doRequest(t, h, http.MethodPost, "/api/resolve", testBoard(), http.StatusOK)

	var res pipeline.Result
	decodeBody(t, rec, &res)
	if res.Board == nil || len(res.Board.Widgets) != 2 {
		t.Fatalf("result board = %+v", res.Board)
	}
	if p := res.Board.Widgets[1].Position; p == nil || !p.Equal(geom.V(2, 0)) {
		t.Errorf("notes at %v, want (2,0)", p)
	}
	if res.Stats.Repositioned != 1 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
}

func TestResolveEndpointErrors(t *testing.T) {
	h, _ := setupServer(t)

	full := &board.Board{
		Grid: geom.V(2, 2),
		Widgets: []board.Widget{
			{ID: "a", Size: geom.V(2, 2), Position: pos(0, 0)},
			{ID: "b", Size: geom.V(1, 1)},
		},
	}
	tests := []struct {
		name   string
		path   string
		body   any
		status int
		code   errs.Code
	}{
		{"malformed", "/api/resolve", `{"grid":`, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"invalid grid", "/api/resolve", `{"grid":{"x":0,"y":1}}`, http.StatusBadRequest, errs.ErrCodeInvalidGrid},
		{"no space", "/api/resolve", full, http.StatusUnprocessableEntity, errs.ErrCodeNoSpace},
		{"bad flag", "/api/resolve?partial=maybe", full, http.StatusBadRequest, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, tt.path, tt.body, tt.status)
			var resp errorResponse
			decodeBody(t, rec, &resp)
			if resp.Code != tt.code || resp.Error == "" {
				t.Errorf("error response = %+v, want code %s", resp, tt.code)
			}
		})
	}

	rec := doRequest(t, h, http.MethodPost, "/api/resolve?partial=true", full, http.StatusOK)
	var res pipeline.Result
	decodeBody(t, rec, &res)
	if res.Stats.Unplaced != 1 {
		t.Errorf("partial Stats = %+v", res.Stats)
	}
}

func TestOversizedGridIsRejected(t *testing.T) {
	h, st := setupServer(t)

	huge := &board.Board{
		Grid:    geom.V(100000, 100000),
		Widgets: []board.Widget{{ID: "a", Size: geom.V(1, 1)}},
	}
	check := checkRequest{Grid: huge.Grid, Widgets: huge.Widgets, Rect: geom.R(0, 0, 1, 1)}
	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"resolve", http.MethodPost, "/api/resolve", huge},
		{"resolve overflowing area", http.MethodPost, "/api/resolve", `{"grid":{"x":4294967296,"y":4294967296},"widgets":[{"id":"a","size":{"x":1,"y":1}}]}`},
		{"check", http.MethodPost, "/api/check", check},
		{"put", http.MethodPut, "/api/boards/huge", huge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, tt.method, tt.path, tt.body, http.StatusBadRequest)
			var resp errorResponse
			decodeBody(t, rec, &resp)
			if resp.Code != errs.ErrCodeInvalidGrid {
				t.Errorf("code = %s, want INVALID_GRID", resp.Code)
			}
		})
	}

	if _, err := st.Get(t.Context(), "huge"); !errs.Is(err, errs.ErrCodeBoardNotFound) {
		t.Errorf("oversized board was stored: %v", err)
	}
}

func TestCheckEndpoint(t *testing.T) {
	h, _ := setupServer(t)
	b := testBoard()

	tests := []struct {
		name   string
		rect   geom.Rect2
		ignore []string
		want   bool
	}{
		{"free", geom.R(4, 0, 2, 2), nil, false},
		{"occupied", geom.R(1, 1, 1, 1), nil, true},
		{"ignoring the dragged widget", geom.R(0, 0, 1, 1), []string{"clock"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := checkRequest{Grid: b.Grid, Widgets: b.Widgets, Rect: tt.rect, Ignore: tt.ignore}
			rec := doRequest(t, h, http.MethodPost, "/api/check", req, http.StatusOK)
			var resp checkResponse
			decodeBody(t, rec, &resp)
			if resp.Occupied != tt.want {
				t.Errorf("occupied = %v, want %v", resp.Occupied, tt.want)
			}
		})
	}
}

func TestBoardLifecycle(t *testing.T) {
	h, st := setupServer(t)

	rec := doRequest(t, h, http.MethodGet, "/api/boards", nil, http.StatusOK)
	var list []store.Summary
	decodeBody(t, rec, &list)
	if len(list) != 0 {
		t.Fatalf("initial list = %+v", list)
	}

	rec = doRequest(t, h, http.MethodPut, "/api/boards/home", testBoard(), http.StatusOK)
	var res pipeline.Result
	decodeBody(t, rec, &res)
	if res.Board.ID != "home" {
		t.Errorf("stored board ID = %q, want home", res.Board.ID)
	}

	stored, err := st.Get(t.Context(), "home")
	if err != nil {
		t.Fatalf("store.Get error: %v", err)
	}
	if p := stored.Widgets[1].Position; p == nil || !p.Equal(geom.V(2, 0)) {
		t.Errorf("stored board is not resolved: notes at %v", p)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/boards/home", nil, http.StatusOK)
	var got board.Board
	decodeBody(t, rec, &got)
	if got.Name != "home" || len(got.Widgets) != 2 {
		t.Errorf("GET board = %+v", got)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/boards", nil, http.StatusOK)
	decodeBody(t, rec, &list)
	if len(list) != 1 || list[0].ID != "home" || list[0].Widgets != 2 {
		t.Errorf("list = %+v", list)
	}

	doRequest(t, h, http.MethodDelete, "/api/boards/home", nil, http.StatusNoContent)
	doRequest(t, h, http.MethodGet, "/api/boards/home", nil, http.StatusNotFound)
	doRequest(t, h, http.MethodDelete, "/api/boards/home", nil, http.StatusNotFound)
}

func TestBoardPutInvalidID(t *testing.T) {
	h, _ := setupServer(t)
	rec := doRequest(t, h, http.MethodPut, "/api/boards/..hidden", testBoard(), http.StatusBadRequest)
	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != errs.ErrCodeInvalidInput {
		t.Errorf("code = %s, want INVALID_INPUT", resp.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := setupServer(t)
	rec := doRequest(t, h, http.MethodGet, "/nope", nil, http.StatusNotFound)
	var resp errorResponse
	decodeBody(t, rec, &resp)
	if resp.Code != errs.ErrCodeNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}
