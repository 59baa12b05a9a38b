package server

import (
	"net/http"
	"strconv"

	"github.com/matzehuels/holepunch/pkg/buildinfo"
	"github.com/matzehuels/holepunch/pkg/errors"
	"github.com/matzehuels/holepunch/pkg/paper"
	"github.com/matzehuels/holepunch/pkg/pipeline"
	"github.com/matzehuels/holepunch/pkg/quiz"
	"github.com/matzehuels/holepunch/pkg/render/trace"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
	"dot":               "text/vnd.graphviz; charset=utf-8",
}

// =============================================================================
// Health and catalogue
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type catalogEntry struct {
	Name  string     `json:"name"`
	Fold  paper.Fold `json:"fold"`
	Valid *bool      `json:"valid,omitempty"`
}

type catalogResponse struct {
	Folds []catalogEntry `json:"folds"`
}

// handleCatalog lists the fold menu. Repeated ?fold= parameters replay a
// sequence and mark which entries are legal next.
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	var p *paper.Paper
	if folds := r.URL.Query()["fold"]; len(folds) > 0 {
		var err error
		p, err = s.runner.Simulate(r.Context(), pipeline.Options{Folds: folds})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	resp := catalogResponse{Folds: make([]catalogEntry, len(s.catalog))}
	for i, e := range s.catalog {
		resp.Folds[i] = catalogEntry{Name: e.Name, Fold: e.Fold}
		if p != nil {
			ok := p.IsValidFold(e.Fold)
			resp.Folds[i].Valid = &ok
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Simulation
// =============================================================================

type sequenceRequest struct {
	Folds   []string `json:"folds"`
	Punches []string `json:"punches,omitempty"`
}

type cellView struct {
	Origin  paper.GridPoint  `json:"origin"`
	Layer   int              `json:"layer"`
	Punched bool             `json:"punched,omitempty"`
	Halved  bool             `json:"halved,omitempty"`
	Hinge   string           `json:"hinge,omitempty"`
	Polygon []paper.Position `json:"polygon"`
}

type stackView struct {
	Position paper.Position `json:"position"`
	Cells    []cellView     `json:"cells"`
}

type stepView struct {
	Step   int         `json:"step"`
	Fold   string      `json:"fold,omitempty"`
	Stacks []stackView `json:"stacks"`
}

type simulateResponse struct {
	Folds []paper.Fold      `json:"folds"`
	Holes []paper.GridPoint `json:"holes"`
	Steps []stepView        `json:"steps"`
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req sequenceRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.runner.Simulate(r.Context(), pipeline.Options{Folds: req.Folds, Punches: req.Punches})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := simulateResponse{Folds: p.Folds(), Holes: p.Holes()}
	if resp.Holes == nil {
		resp.Holes = []paper.GridPoint{}
	}
	for step := 0; step <= p.FoldCount(); step++ {
		snap, err := p.CellsAtFold(step)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		view := stepView{Step: step}
		if step > 0 {
			view.Fold = resp.Folds[step-1].String()
		}
		for _, pos := range snap.Positions() {
			stack := stackView{Position: pos}
			for _, e := range snap[pos] {
				c := cellView{
					Origin:  e.Origin,
					Layer:   e.Rep.Layer(),
					Punched: e.Punched,
					Halved:  e.Rep.Halved,
					Polygon: e.Rep.Polygon(),
				}
				if e.Rep.Halved {
					c.Hinge = e.Rep.Hinge.String()
				}
				stack.Cells = append(stack.Cells, c)
			}
			view.Stacks = append(view.Stacks, stack)
		}
		resp.Steps = append(resp.Steps, view)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Rendering
// =============================================================================

type renderRequest struct {
	Folds       []string `json:"folds"`
	Punches     []string `json:"punches,omitempty"`
	Step        *int     `json:"step,omitempty"` // default: last
	Format      string   `json:"format,omitempty"`
	CellSize    float64  `json:"cell_size,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	HidePunches bool     `json:"hide_punches,omitempty"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	step := len(req.Folds)
	if req.Step != nil {
		step = *req.Step
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Folds:       req.Folds,
		Punches:     req.Punches,
		Steps:       []int{step},
		Formats:     []string{req.Format},
		CellSize:    req.CellSize,
		Scale:       req.Scale,
		HidePunches: req.HidePunches,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	w.Header().Set("X-Sequence-Hash", res.SeqHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.ArtifactName(step, req.Format)])
}

type traceRequest struct {
	Folds     []string `json:"folds"`
	Punches   []string `json:"punches,omitempty"`
	Format    string   `json:"format,omitempty"` // dot or svg
	Detailed  bool     `json:"detailed,omitempty"`
	MovesOnly bool     `json:"moves_only,omitempty"`
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var req traceRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.FormatSVG
	}
	p, err := s.runner.Simulate(r.Context(), pipeline.Options{Folds: req.Folds, Punches: req.Punches})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, hit, err := s.runner.Trace(r.Context(), p, req.Format,
		trace.Options{Detailed: req.Detailed, MovesOnly: req.MovesOnly}, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("X-Cache", cacheHeader(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// =============================================================================
// Quiz
// =============================================================================

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.Quiz
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		set  func(int)
	}{
		{"min", func(v int) { opts.MinFolds = v }},
		{"max", func(v int) { opts.MaxFolds = v }},
	} {
		if raw := q.Get(p.name); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", p.name, raw))
				return
			}
			p.set(v)
		}
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", raw))
			return
		}
		opts.Seed = seed
	}
	if opts.MaxFolds < opts.MinFolds && q.Get("max") == "" {
		opts.MaxFolds = opts.MinFolds
	}

	question, err := quiz.Generate(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// gradeRequest is a question from GET /quiz sent back with a guess.
type gradeRequest struct {
	ID    string          `json:"id,omitempty"`
	Seed  uint64          `json:"seed,omitempty"`
	Folds []string        `json:"folds"`
	Punch paper.GridPoint `json:"punch"`
	Guess []string        `json:"guess"`
}

type gradeResponse struct {
	ID string `json:"id"`
	quiz.Result
	Answer []paper.GridPoint `json:"answer"`
}

func (s *Server) handleGrade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	folds, err := pipeline.ParseFolds(req.Folds)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	guess, err := pipeline.ParsePunches(req.Guess)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	question, err := quiz.Replay(folds, req.Punch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ID != "" {
		question.ID = req.ID
	}
	writeJSON(w, http.StatusOK, gradeResponse{
		ID:     question.ID,
		Result: quiz.Grade(question, guess),
		Answer: question.Answer(),
	})
}
