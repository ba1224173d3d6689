package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

const backgroundGradientID = "bg_gradient"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background bool
	title      string
}

// WithoutBackground omits the background rect so slides can be layered over
// other content.
func WithoutBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

// WithTitle adds a <title> element.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders slide i of the scene as a standalone SVG document.
func RenderSVG(s *scene.Scene, i int, opts ...SVGOption) ([]byte, error) {
	r := svgRenderer{background: true}
	for _, opt := range opts {
		opt(&r)
	}

	slide, err := s.Slide(i)
	if err != nil {
		return nil, err
	}
	shapes, err := slide.Shapes()
	if err != nil {
		return nil, err
	}
	gradients := dedupeGradients(shapes)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)

	if r.title != "" {
		buf.WriteString("  <title>")
		_ = xml.EscapeText(&buf, []byte(r.title))
		buf.WriteString("</title>\n")
	}

	bg := slide.Background
	hasBGGradient := r.background && bg.Gradient != nil
	if hasBGGradient || len(gradients) > 0 {
		buf.WriteString("  <defs>\n")
		if hasBGGradient {
			writeLinearGradient(&buf, backgroundGradientID, bg.Gradient.From, 1, bg.Gradient.To, 1)
		}
		for _, g := range gradients {
			writeGradientDef(&buf, g)
		}
		buf.WriteString("  </defs>\n")
	}

	if r.background {
		fill := bg.Color
		if hasBGGradient {
			fill = "url(#" + backgroundGradientID + ")"
		}
		fmt.Fprintf(&buf, "  <rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", attr(fill))
	}

	for _, sh := range shapes {
		buf.WriteString("  ")
		if sh.Gradient != nil {
			buf.WriteString(pathElement(sh.Path, "url(#"+sh.Gradient.ID+")", nil))
		} else {
			o := sh.Opacity
			buf.WriteString(pathElement(sh.Path, sh.Color, &o))
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// BlobElement renders a solid-filled blob as a single <path> element.
func BlobElement(p blob.Path, color string, opacity float64) string {
	return pathElement(p, color, &opacity)
}

// GradientElement renders a gradient blob as a <defs> block followed by its
// <path> element.
func GradientElement(gb blob.GradientBlob) string {
	var buf bytes.Buffer
	buf.WriteString("<defs>\n")
	writeGradientDef(&buf, gb.Gradient)
	buf.WriteString("</defs>")
	buf.WriteString(pathElement(gb.Path, "url(#"+gb.Gradient.ID+")", nil))
	return buf.String()
}

// Document wraps elements in a bare SVG root of the given size.
func Document(width, height float64, elements ...string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	for _, el := range elements {
		buf.WriteString("  ")
		buf.WriteString(el)
		buf.WriteByte('\n')
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func pathElement(p blob.Path, fill string, opacity *float64) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<path d="%s" fill="%s"`, p.D(), attr(fill))
	if opacity != nil {
		fmt.Fprintf(&buf, ` fill-opacity="%s"`, fmtOpacity(*opacity))
	}
	if t := p.Transform(); t != "" {
		fmt.Fprintf(&buf, ` transform="%s"`, t)
	}
	buf.WriteString("/>")
	return buf.String()
}

func writeGradientDef(buf *bytes.Buffer, g blob.Gradient) {
	start, end := g.StopOpacities()
	writeLinearGradient(buf, g.ID, g.From, start, g.To, end)
}

func writeLinearGradient(buf *bytes.Buffer, id, from string, fromOpacity float64, to string, toOpacity float64) {
	fmt.Fprintf(buf, "    <linearGradient id=\"%s\" x1=\"0%%\" y1=\"0%%\" x2=\"100%%\" y2=\"100%%\">\n", attr(id))
	fmt.Fprintf(buf, "      <stop offset=\"0%%\" stop-color=\"%s\" stop-opacity=\"%s\"/>\n", attr(from), fmtOpacity(fromOpacity))
	fmt.Fprintf(buf, "      <stop offset=\"100%%\" stop-color=\"%s\" stop-opacity=\"%s\"/>\n", attr(to), fmtOpacity(toOpacity))
	buf.WriteString("    </linearGradient>\n")
}

// dedupeGradients returns one definition per gradient id. Layers that share
// an id but not a fill (two gradient blobs with the same seed and different
// colors) are given a numbered id so each path keeps its own fill.
func dedupeGradients(shapes []scene.Shape) []blob.Gradient {
	var out []blob.Gradient
	seen := make(map[string]blob.Gradient)
	for i := range shapes {
		g := shapes[i].Gradient
		if g == nil {
			continue
		}
		if prev, ok := seen[g.ID]; ok {
			if prev == *g {
				continue
			}
			base := g.ID
			for n := 2; ; n++ {
				id := base + "_" + strconv.Itoa(n)
				if _, taken := seen[id]; !taken {
					renamed := *g
					renamed.ID = id
					shapes[i].Gradient = &renamed
					g = &renamed
					break
				}
			}
		}
		seen[g.ID] = *g
		out = append(out, *g)
	}
	return out
}

// attr escapes v for use inside a double-quoted attribute.
func attr(v string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(v))
	return b.String()
}

func fmtOpacity(o float64) string {
	return strconv.FormatFloat(math.Round(o*1e4)/1e4, 'f', -1, 64)
}
