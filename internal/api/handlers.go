package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/namekit/internal/query"
	"github.com/dmitrymomot/namekit/pkg/logger"
	"github.com/dmitrymomot/namekit/pkg/names"
)

var (
	errNoMatch      = errors.New("no name matches the filters")
	errInvalidCount = fmt.Errorf("count must be an integer between 1 and %d", MaxCount)
)

type handlers struct {
	ds   *names.Dataset
	rand names.Rand
	log  *slog.Logger
}

type nameResponse struct {
	Text    string         `json:"text"`
	Origins []names.Origin `json:"origins"`
	Gender  names.Gender   `json:"gender"`
	Kind    names.Kind     `json:"kind"`
}

func toResponse(n names.Name) nameResponse {
	origins := n.Origins
	if origins == nil {
		origins = []names.Origin{}
	}
	return nameResponse{Text: n.Text, Origins: origins, Gender: n.Gender, Kind: n.Kind}
}

type pickResponse struct {
	Names []nameResponse `json:"names"`
}

type fullResponse struct {
	First nameResponse `json:"first"`
	Last  nameResponse `json:"last"`
	Full  string       `json:"full"`
}

type countResponse struct {
	Count int `json:"count"`
}

type originInfo struct {
	Tag   names.Origin `json:"tag"`
	Count int          `json:"count"`
}

type originsResponse struct {
	Origins []originInfo `json:"origins"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GET /names
func (h *handlers) pick(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, ok := h.generator(w, r, q)
	if !ok {
		return
	}
	n, err := parseCount(q.Get("count"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := pickResponse{Names: make([]nameResponse, 0, n)}
	for range n {
		name, found := g.Finish(h.rand)
		if !found {
			writeError(w, http.StatusNotFound, errNoMatch.Error())
			return
		}
		out.Names = append(out.Names, toResponse(name))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /names/full
func (h *handlers) full(w http.ResponseWriter, r *http.Request) {
	g, ok := h.generator(w, r, r.URL.Query())
	if !ok {
		return
	}
	first, last, found := g.FullName(h.rand)
	if !found {
		writeError(w, http.StatusNotFound, errNoMatch.Error())
		return
	}
	writeJSON(w, http.StatusOK, fullResponse{
		First: toResponse(first),
		Last:  toResponse(last),
		Full:  first.Text + " " + last.Text,
	})
}

// GET /names/count
func (h *handlers) count(w http.ResponseWriter, r *http.Request) {
	g, ok := h.generator(w, r, r.URL.Query())
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: g.Count()})
}

// GET /origins
func (h *handlers) origins(w http.ResponseWriter, r *http.Request) {
	stats := h.ds.Stats()
	all := names.Origins()
	out := originsResponse{Origins: make([]originInfo, 0, len(all))}
	for _, o := range all {
		out.Origins = append(out.Origins, originInfo{Tag: o, Count: stats.ByOrigin[o]})
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /stats
func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ds.Stats())
}

func (h *handlers) generator(w http.ResponseWriter, r *http.Request, q url.Values) (*names.Generator, bool) {
	p := query.Params{
		Letters: q["letter"],
		Origins: q["origin"],
		Kind:    q.Get("kind"),
		Gender:  q.Get("gender"),
	}
	g, err := p.Build(h.ds)
	if err != nil {
		h.log.DebugContext(r.Context(), "invalid filters",
			logger.Filters(p.Letters, p.Origins, p.Kind, p.Gender),
			logger.Error(err),
		)
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return g, true
}

func parseCount(s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxCount {
		return 0, errInvalidCount
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
