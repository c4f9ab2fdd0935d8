package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ThomasStivers/labeller/pkg/buildinfo"
	"github.com/ThomasStivers/labeller/pkg/cache"
	"github.com/ThomasStivers/labeller/pkg/enumerate"
	apperrors "github.com/ThomasStivers/labeller/pkg/errors"
	"github.com/ThomasStivers/labeller/pkg/label"
	"github.com/ThomasStivers/labeller/pkg/pipeline"
	"github.com/ThomasStivers/labeller/pkg/topology"
)

// BuildingResponse describes one building.
type BuildingResponse struct {
	Code    string         `json:"code"`
	Name    string         `json:"name"`
	Aliases []string       `json:"aliases,omitempty"`
	Family  string         `json:"family"`
	Types   []TypeResponse `json:"types"`
	Labels  int            `json:"labels"`
}

// TypeResponse describes one location type of a building.
type TypeResponse struct {
	Code  string `json:"code,omitempty"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

// LabelsResponse is the JSON body of the labels route.
type LabelsResponse struct {
	Building   string     `json:"building"`
	Expression string     `json:"expression,omitempty"`
	Count      int        `json:"count"`
	Columns    int        `json:"columns"`
	Labels     []string   `json:"labels"`
	Rows       [][]string `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	reg := s.runner.Registry
	e := enumerate.New(reg)

	buildings := reg.Buildings()
	out := make([]BuildingResponse, 0, len(buildings))
	for _, b := range buildings {
		types := make([]TypeResponse, len(b.Types))
		for i, t := range b.Types {
			types[i] = TypeResponse{Code: t.Code, Name: t.Name, Class: string(t.Class)}
		}
		out = append(out, BuildingResponse{
			Code:    b.Code,
			Name:    b.Name,
			Aliases: b.Aliases,
			Family:  string(b.Family),
			Types:   types,
			Labels:  e.Count(b.Code, nil),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLabels(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json":
	case pipeline.FormatText:
		opts.Format = pipeline.FormatText
	default:
		writeError(w, r, apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, text)", format))
		return
	}

	if format == pipeline.FormatText {
		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(result.Output)
		return
	}

	c, err := s.runner.Enumerate(opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows := c.Rows()
	resp := LabelsResponse{
		Building:   opts.Building,
		Expression: opts.Expression,
		Count:      c.Len(),
		Columns:    c.Columns(),
		Labels:     label.Strings(c.Labels()),
		Rows:       make([][]string, len(rows)),
	}
	for i, row := range rows {
		resp.Rows[i] = label.Strings(row)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Format = pipeline.FormatHTML
	opts.ImageDir = BarcodePath

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(result.Output)
}

func (s *Server) handleBarcode(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	text, ok := strings.CutSuffix(file, cache.FileExt)
	if !ok {
		writeError(w, r, notFound("barcode images end in %s", cache.FileExt))
		return
	}
	if err := apperrors.ValidateLabelText(text); err != nil {
		writeError(w, r, err)
		return
	}

	data, err := s.runner.Barcode(r.Context(), text)
	if err != nil {
		writeError(w, r, err)
		return
	}

	etag := cache.ETag(data)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// options builds pipeline options from the route and query string. The
// building must be known; unlike the CLI the API reports unknown
// buildings as 404.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	code := chi.URLParam(r, "code")
	b, ok := s.runner.Registry.Lookup(code)
	if !ok {
		return pipeline.Options{}, apperrors.Wrap(apperrors.ErrCodeUnknownBuilding, topology.ErrUnknownBuilding, "unknown building %q", code)
	}

	q := r.URL.Query()
	opts := pipeline.Options{
		Building:   b.Code,
		Expression: q.Get("expression"),
		Separator:  q.Get("separator"),
		Refresh:    q.Get("refresh") == "true",
	}
	if v := q.Get("columns"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, apperrors.New(apperrors.ErrCodeInvalidColumns, "columns must be a number, got %q", v)
		}
		if err := apperrors.ValidateColumns(n); err != nil {
			return pipeline.Options{}, err
		}
		opts.Columns = n
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func notFound(format string, args ...any) error {
	return apperrors.New(apperrors.ErrCodeNotFound, "%s", fmt.Sprintf(format, args...))
}
