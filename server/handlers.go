package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/dataset"
	"github.com/padangco/seagreen/engine"
	"github.com/padangco/seagreen/render"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *dashboard.Session)

// withSession resolves the {id} path value to a session.
func (s *Server) withSession(h sessionHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Get(r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		h(w, r, sess)
	}
}

// ── Reference and lifecycle ──────────────────────────────────────────────────

type referenceBody struct {
	Countries  []string `json:"countries"`
	Stages     []string `json:"stages"`
	Industries []string `json:"industries"`
	Periods    []string `json:"periods"`
	Views      []string `json:"views"`
	Charts     []string `json:"charts"`
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, referenceBody{
		Countries:  dataset.Countries,
		Stages:     dataset.Stages,
		Industries: dataset.Industries,
		Periods:    s.dispatcher.Datasets().Periods(),
		Views:      s.dispatcher.ViewNames(),
		Charts:     render.Charts,
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]string{"id": sess.ID})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Filter ───────────────────────────────────────────────────────────────────

func (s *Server) handleGetFilter(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	writeJSON(w, http.StatusOK, sess.Selection())
}

func (s *Server) handleSetCountries(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	var body struct {
		Countries []string `json:"countries"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	snap, err := sess.SetCountries(body.Countries)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleSetStage(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	var body struct {
		Stage string `json:"stage"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}
	snap, err := sess.SetStage(body.Stage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %v", errBadRequest, err)
	}
	return nil
}

// ── Views ────────────────────────────────────────────────────────────────────

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	out, err := sess.View(r.PathValue("view"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	q, err := parseTableQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tbl, err := sess.Pass().QueryTable(q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tbl)
}

// parseTableQuery reads contains.<column>=text, minYear and maxYear.
func parseTableQuery(r *http.Request) (engine.TableQuery, error) {
	var q engine.TableQuery
	for key, values := range r.URL.Query() {
		col, ok := strings.CutPrefix(key, "contains.")
		if !ok || len(values) == 0 {
			continue
		}
		if q.Contains == nil {
			q.Contains = make(map[string]string)
		}
		q.Contains[col] = values[0]
	}

	var err error
	if q.MinYear, err = yearParam(r, "minYear"); err != nil {
		return q, err
	}
	if q.MaxYear, err = yearParam(r, "maxYear"); err != nil {
		return q, err
	}
	return q, nil
}

func yearParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	y, err := strconv.Atoi(v)
	if err != nil || y < 0 {
		return 0, fmt.Errorf("%w: %s must be a year, got %q", errBadRequest, name, v)
	}
	return y, nil
}

// ── Charts and export ────────────────────────────────────────────────────────

// handleChart serves charts/{kind}.png as an image and charts/{kind}.json as
// the chart config the image is drawn from.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	file := r.PathValue("file")
	if kind, ok := strings.CutSuffix(file, ".json"); ok {
		cfg, err := render.Config(kind, sess.Pass())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
		return
	}

	kind, ok := strings.CutSuffix(file, ".png")
	if !ok {
		writeError(w, fmt.Errorf("%w: %q", render.ErrUnknownChart, file))
		return
	}
	var buf bytes.Buffer
	if err := render.PNG(&buf, kind, sess.Pass()); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	writeBody(w, buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request, sess *dashboard.Session) {
	var buf bytes.Buffer
	if err := render.TableXLSX(&buf, sess.Pass().Table()); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="seagreen-startups.xlsx"`)
	writeBody(w, buf.Bytes())
}
