package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/pipeline"
	"github.com/ringforge/ringforge/pkg/plan"
	"github.com/ringforge/ringforge/pkg/render/netlink"
)

// contentTypes maps artifact formats to MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// handleBoard renders a board drawing from query parameters.
//
//	GET /board.svg?n_input=3&n_hidden=2&n_output=1&diameter=400&layer=top-etch
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	opts.Formats = []string{format}

	key := format
	layer := r.URL.Query().Get("layer")
	if layer != "" {
		if format != pipeline.FormatSVG {
			s.Error(w, http.StatusBadRequest, "layer selection requires the svg format")
			return
		}
		opts.Layers = []string{layer}
		key = "svg:" + layer
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		loggerFromContext(r.Context()).Error("pipeline failed", "error", err)
		s.Error(w, statusFor(err), err.Error())
		return
	}

	artifact, ok := result.Artifacts[key]
	if !ok {
		s.Error(w, http.StatusInternalServerError, fmt.Sprintf("artifact %q missing from pipeline result", key))
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

// handleNetwork renders the node-link diagram of a topology.
//
//	GET /network.svg?n_input=3&n_hidden=2&n_output=1&detailed=true
func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(r)
	if err != nil {
		s.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := errors.ValidateTopology(opts.NInput, opts.NHidden, opts.NOutput); err != nil {
		s.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	topo := plan.Topology{NInput: opts.NInput, NHidden: opts.NHidden, NOutput: opts.NOutput}
	dot := netlink.ToDOT(topo, netlink.Options{Detailed: queryBool(r, "detailed")})
	svg, err := netlink.RenderSVG(dot)
	if err != nil {
		loggerFromContext(r.Context()).Error("network render failed", "error", err)
		s.Error(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// handleListPlans lists stored plans, newest first.
func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.Error(w, http.StatusNotFound, "no plan store configured")
		return
	}

	docs, err := s.store.List(r.Context())
	if err != nil {
		s.Error(w, statusFor(err), err.Error())
		return
	}
	s.Success(w, http.StatusOK, docs)
}

// handleGetPlan returns a single stored plan by name.
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.Error(w, http.StatusNotFound, "no plan store configured")
		return
	}

	doc, err := s.store.GetByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.Error(w, statusFor(err), err.Error())
		return
	}
	s.Success(w, http.StatusOK, doc)
}

// optionsFromQuery builds pipeline options from request query parameters.
// Topology counts are required; board parameters fall back to defaults.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Refresh:     queryBool(r, "refresh"),
		DebugGuides: queryBool(r, "debug"),
	}

	var err error
	if opts.NInput, err = queryInt(r, "n_input"); err != nil {
		return opts, err
	}
	if opts.NHidden, err = queryInt(r, "n_hidden"); err != nil {
		return opts, err
	}
	if opts.NOutput, err = queryInt(r, "n_output"); err != nil {
		return opts, err
	}

	if opts.DiameterMM, err = queryFloat(r, "diameter"); err != nil {
		return opts, err
	}
	if opts.CenterDiameterMM, err = queryFloat(r, "center"); err != nil {
		return opts, err
	}
	if opts.PaddingMM, err = queryFloat(r, "padding"); err != nil {
		return opts, err
	}
	if opts.Scale, err = queryFloat(r, "scale"); err != nil {
		return opts, err
	}
	opts.Policy = r.URL.Query().Get("policy")

	return opts, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing required query parameter %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q: %w", name, err)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q: %w", name, err)
	}
	return v, nil
}

func queryBool(r *http.Request, name string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return v
}
