package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/pipeline"
	"github.com/matzehuels/tilegrid/pkg/store"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type checkRequest struct {
	Grid    geom.Vector2   `json:"grid"`
	Widgets []board.Widget `json:"widgets"`
	Rect    geom.Rect2     `json:"rect"`
	Ignore  []string       `json:"ignore,omitempty"`
}

type checkResponse struct {
	Occupied bool `json:"occupied"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	b, err := readBoard(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := resolveOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Resolve(r.Context(), b, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	b := &board.Board{Grid: req.Grid, Widgets: req.Widgets}
	occupied, err := pipeline.Occupied(b, req.Rect, req.Ignore...)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Occupied: occupied})
}

func (s *Server) handleBoardList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleBoardGet(w http.ResponseWriter, r *http.Request) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// handleBoardPut resolves the board in the body and stores the result under
// the ID from the path.
func (s *Server) handleBoardPut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateBoardID(id); err != nil {
		s.writeError(w, err)
		return
	}
	b, err := readBoard(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	b.ID = id

	opts, err := resolveOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	res, err := s.runner.Resolve(r.Context(), b, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), res.Board); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBoardDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

type errorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code"`
}

func readBoard(w http.ResponseWriter, r *http.Request) (*board.Board, error) {
	return board.ReadBoard(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func resolveOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	q := r.URL.Query()
	for name, dst := range map[string]*bool{"partial": &opts.AllowPartial, "refresh": &opts.Refresh} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "query parameter %s: invalid boolean %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errs.GetCode(err)
	if code == "" {
		s.logger.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "internal server error",
			Code:  errs.ErrCodeInternal,
		})
		return
	}
	writeJSON(w, errs.HTTPStatus(code), errorResponse{Error: errs.UserMessage(err), Code: code})
}
