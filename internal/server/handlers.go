package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"html/template"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/acotour/pkg/aco"
	"github.com/matzehuels/acotour/pkg/errors"
	"github.com/matzehuels/acotour/pkg/geom"
	acoio "github.com/matzehuels/acotour/pkg/io"
	"github.com/matzehuels/acotour/pkg/pipeline"
	"github.com/matzehuels/acotour/pkg/render/plot"
	"github.com/matzehuels/acotour/pkg/runstore"
)

type indexPage struct {
	Solver aco.Options
}

type plotPage struct {
	RunID    string
	Source   string
	Path     string
	Distance string
	ImgData  template.URL // data: URI of the PNG plot
}

type errorPage struct {
	Status  int
	Message string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "index.html", indexPage{Solver: s.cfg.Solver})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// handlePlot accepts a multipart upload with a "file" part and optional
// solver fields, and answers with an HTML result page.
func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		s.pageError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read upload"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.pageError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.pageError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read file"))
		return
	}
	solver, err := solverFromValues(r.MultipartForm.Value, s.cfg.Solver)
	if err != nil {
		s.pageError(w, err)
		return
	}

	run, result, err := s.solve(r, pipeline.Options{
		Input:   data,
		Source:  uploadSource(header.Filename),
		Solver:  solver,
		Formats: []string{pipeline.FormatPNG},
	})
	if err != nil {
		s.pageError(w, err)
		return
	}

	s.renderPage(w, http.StatusOK, "plot.html", plotPage{
		RunID:    run.ID,
		Source:   run.Source,
		Path:     acoio.FormatTour(result.Solve.Tour),
		Distance: acoio.FormatDistance(result.Solve.Distance),
		ImgData:  template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(result.Artifacts[pipeline.FormatPNG])),
	})
}

// uploadSource turns a client-supplied filename into a label for messages
// and the result page. The name is never used as a path.
func uploadSource(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if r := []rune(name); len(r) > maxSourceRunes {
		name = string(r[:maxSourceRunes])
	}
	if name == "" {
		return "upload"
	}
	return name
}

const maxSourceRunes = 255

// solveRequest is the JSON body of POST /api/solve. Exactly one of Points
// and Coordinates must be set. Options overlay the server defaults.
type solveRequest struct {
	Points      []geom.Point    `json:"points,omitempty"`
	Coordinates string          `json:"coordinates,omitempty"`
	Options     json.RawMessage `json:"options,omitempty"`
}

type solveResponse struct {
	ID         string    `json:"id"`
	Tour       aco.Tour  `json:"tour"`
	Distance   float64   `json:"distance"`
	Iterations int       `json:"iterations"`
	Seed       uint64    `json:"seed"`
	History    []float64 `json:"history,omitempty"`
	Cached     bool      `json:"cached"`
}

// handleSolve solves a JSON request, or a plain coordinate body with solver
// options in the query string.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeSolve(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	run, result, err := s.solve(r, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res := result.Solve
	writeJSON(w, http.StatusOK, solveResponse{
		ID:         run.ID,
		Tour:       res.Tour,
		Distance:   res.Distance,
		Iterations: res.Iterations,
		Seed:       res.Seed,
		History:    res.History,
		Cached:     result.CacheInfo.SolveHit,
	})
}

func (s *Server) decodeSolve(r *http.Request) (pipeline.Options, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		solver, err := solverFromValues(r.URL.Query(), s.cfg.Solver)
		if err != nil {
			return pipeline.Options{}, err
		}
		return pipeline.Options{Input: body, Source: "api", Solver: solver}, nil
	}

	var req solveRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}

	solver := s.cfg.Solver
	if len(req.Options) > 0 {
		dec := json.NewDecoder(bytes.NewReader(req.Options))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&solver); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode options")
		}
	}

	opts := pipeline.Options{Source: "api", Solver: solver}
	switch {
	case req.Points != nil && strings.TrimSpace(req.Coordinates) != "":
		return opts, errors.New(errors.ErrCodeInvalidInput, "set either points or coordinates, not both")
	case req.Points != nil:
		opts.Points = req.Points
	default:
		opts.Input = []byte(req.Coordinates)
	}
	return opts, nil
}

// solve runs the pipeline under the configured limits and stores the run.
func (s *Server) solve(r *http.Request, opts pipeline.Options) (*runstore.Run, *pipeline.Result, error) {
	if err := s.checkEffort(opts.Solver); err != nil {
		return nil, nil, err
	}
	ctx, cancel := s.solveContext(r.Context())
	defer cancel()

	opts.MaxNodes = s.cfg.MaxNodes
	opts.Logger = s.logger
	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	run := runstore.NewRun(opts.Source, result.Points, opts.Solver, result.Solve, s.cfg.RunTTL)
	if err := s.store.Set(r.Context(), run); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "store run")
	}
	s.logger.Info("stored run", "id", run.ID, "nodes", len(run.Points), "distance", run.Distance)
	return run, result, nil
}

func (s *Server) checkEffort(o aco.Options) error {
	if s.cfg.MaxAnts > 0 && o.NumAnts > s.cfg.MaxAnts {
		return errors.New(errors.ErrCodeInvalidInput, "too many ants: %d (limit %d)", o.NumAnts, s.cfg.MaxAnts)
	}
	if s.cfg.MaxIterations > 0 && o.NumIterations > s.cfg.MaxIterations {
		return errors.New(errors.ErrCodeInvalidInput, "too many iterations: %d (limit %d)", o.NumIterations, s.cfg.MaxIterations)
	}
	return nil
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.lookupRun(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRunPlot(w http.ResponseWriter, r *http.Request) {
	run, err := s.lookupRun(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	png, err := plot.RenderPNG(run.Points, run.Tour, plot.Options{})
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render plot"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (s *Server) lookupRun(r *http.Request) (*runstore.Run, error) {
	id := chi.URLParam(r, "id")
	if err := runstore.ValidateID(id); err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), id)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("render page", "page", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (s *Server) pageError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	s.renderPage(w, status, "error.html", errorPage{Status: status, Message: errors.UserMessage(err)})
}
