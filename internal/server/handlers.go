package server

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/buildinfo"
	"github.com/matzehuels/blobsmith/pkg/cache"
	"github.com/matzehuels/blobsmith/pkg/errors"
	"github.com/matzehuels/blobsmith/pkg/pipeline"
	"github.com/matzehuels/blobsmith/pkg/render/sink"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// Defaults for blob query parameters.
const (
	defaultCanvas = 400.0
	defaultRadius = 150.0
	defaultColor  = "#E07B6C"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

type styleResponse struct {
	Name   blob.Style `json:"name"`
	Points int        `json:"points"`
	Var1   float64    `json:"var1"`
	Var2   float64    `json:"var2"`
	Smooth float64    `json:"smooth"`
}

func (s *Server) handleStyles(w http.ResponseWriter, _ *http.Request) {
	styles := blob.Styles()
	out := make([]styleResponse, 0, len(styles))
	for _, st := range styles {
		p := blob.PresetFor(st)
		out = append(out, styleResponse{Name: st, Points: p.Points, Var1: p.Var1, Var2: p.Var2, Smooth: p.Smooth})
	}
	writeJSON(w, http.StatusOK, out)
}

// blobQuery holds the parsed parameters shared by the blob endpoints.
type blobQuery struct {
	layer         scene.Layer
	width, height float64
}

func parseBlobQuery(q url.Values) (blobQuery, error) {
	p := queryParser{q: q}
	bq := blobQuery{
		width:  p.float("width", defaultCanvas),
		height: p.float("height", defaultCanvas),
	}
	opacity := p.float("opacity", scene.DefaultOpacity)
	bq.layer = scene.Layer{
		CX:       p.float("cx", bq.width/2),
		CY:       p.float("cy", bq.height/2),
		RX:       p.float("rx", defaultRadius),
		RY:       p.float("ry", defaultRadius),
		Rotation: p.float("rotation", 0),
		Seed:     p.int64("seed", 0),
		Points:   int(p.int64("points", 0)),
		Style:    q.Get("style"),
		Color:    q.Get("color"),
		Opacity:  &opacity,
	}
	if p.err != nil {
		return blobQuery{}, p.err
	}

	from, to := q.Get("from"), q.Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return blobQuery{}, errors.New(errors.ErrCodeInvalidInput, "gradient needs both from and to")
		}
		bq.layer.Gradient = &scene.LayerGradient{From: from, To: to}
		bq.layer.Color = ""
	} else if bq.layer.Color == "" {
		bq.layer.Color = defaultColor
	}

	if !finite(bq.width) || !finite(bq.height) || bq.width <= 0 || bq.height <= 0 {
		return blobQuery{}, errors.New(errors.ErrCodeInvalidInput, "width and height must be positive")
	}
	if !finite(opacity) || opacity < 0 || opacity > 1 {
		return blobQuery{}, errors.New(errors.ErrCodeInvalidInput, "opacity must be in [0, 1], got %g", opacity)
	}
	colors := []*string{&bq.layer.Color}
	if g := bq.layer.Gradient; g != nil {
		colors = []*string{&g.From, &g.To}
	}
	for _, c := range colors {
		n, err := scene.NormalizeColor(*c)
		if err != nil {
			return blobQuery{}, err
		}
		*c = n
	}
	return bq, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (bq blobQuery) keyOpts(format string) cache.BlobKeyOpts {
	l := bq.layer
	fill := l.Color
	if l.Gradient != nil {
		fill = l.Gradient.From + ">" + l.Gradient.To
	}
	return cache.BlobKeyOpts{
		CX:       l.CX,
		CY:       l.CY,
		RX:       l.RX,
		RY:       l.RY,
		Rotation: l.Rotation,
		Seed:     l.Seed,
		Style:    l.Style,
		Points:   l.Points,
		Fill:     fill,
		Opacity:  l.EffectiveOpacity(),
		Format:   format + ":" + strconv.FormatFloat(bq.width, 'g', -1, 64) + "x" + strconv.FormatFloat(bq.height, 'g', -1, 64),
	}
}

func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	bq, err := parseBlobQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sh, err := bq.layer.Shape()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sink.Describe(blob.Style(bq.layer.Style), bq.layer.Seed, sh))
}

func (s *Server) handleBlobSVG(w http.ResponseWriter, r *http.Request) {
	bq, err := parseBlobQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	key := s.keyer.BlobKey(bq.keyOpts(pipeline.FormatSVG))
	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		w.Header().Set("X-Cache", "hit")
		writeBytes(w, pipeline.ContentType(pipeline.FormatSVG), data)
		return
	}

	sh, err := bq.layer.Shape()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var el string
	if sh.Gradient != nil {
		el = sink.GradientElement(blob.GradientBlob{Path: sh.Path, Gradient: *sh.Gradient})
	} else {
		el = sink.BlobElement(sh.Path, sh.Color, sh.Opacity)
	}
	data := sink.Document(bq.width, bq.height, el)

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache set failed", "err", err)
	}
	w.Header().Set("X-Cache", "miss")
	writeBytes(w, pipeline.ContentType(pipeline.FormatSVG), data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := strings.ToLower(strings.TrimSpace(q.Get("format")))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	p := queryParser{q: q}
	slide := int(p.int64("slide", 0))
	scale := p.float("scale", pipeline.DefaultScale)
	if p.err != nil {
		s.writeError(w, r, p.err)
		return
	}
	if format == pipeline.FormatSheet {
		slide = pipeline.SheetSlide
	} else if slide < 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "slide must be non-negative, got %d", slide))
		return
	}

	sc, err := scene.Parse(http.MaxBytesReader(w, r.Body, MaxSceneBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	a, err := s.runner.RenderOne(r.Context(), sc, slide, format, pipeline.Options{Scale: scale})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if a.Cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	writeBytes(w, pipeline.ContentType(format), a.Data)
}

// queryParser reads numeric query parameters, keeping the first error.
type queryParser struct {
	q   url.Values
	err error
}

func (p *queryParser) float(name string, def float64) float64 {
	raw := p.q.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %s", name)
	}
	return v
}

func (p *queryParser) int64(name string, def int64) int64 {
	raw := p.q.Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && p.err == nil {
		p.err = errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %s", name)
	}
	return v
}
