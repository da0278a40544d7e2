package drawing

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/vec"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// WriteSVG writes img as a standalone SVG document.
func (img *Image) WriteSVG(w io.Writer) error {
	enc := xml.NewEncoder(w)
	root := xml.StartElement{
		Name: xml.Name{Space: svgNamespace, Local: KindImage.String()},
		Attr: []xml.Attr{
			numAttr("width", img.Width),
			numAttr("height", img.Height),
			{Name: xml.Name{Local: "viewBox"}, Value: "0 0 " + formatNum(img.Width) + " " + formatNum(img.Height)},
		},
	}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, g := range img.Groups {
		if err := encodeElement(enc, g); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	return enc.Flush()
}

// SVG returns img as an SVG document.
func (img *Image) SVG() []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer only fail for invalid tokens, which we never build
	if err := img.WriteSVG(&buf); err != nil {
		panic("drawing: " + err.Error())
	}
	return buf.Bytes()
}

func encodeElement(enc *xml.Encoder, el Element) error {
	var attrs []xml.Attr
	switch el := el.(type) {
	case *Group:
		start := xml.StartElement{Name: xml.Name{Local: el.Kind().String()}}
		if el.Class != "" {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "class"}, Value: el.Class})
		}
		if err := enc.EncodeToken(start); err != nil {
			return err
		}
		for _, child := range el.Children {
			if err := encodeElement(enc, child); err != nil {
				return err
			}
		}
		return enc.EncodeToken(start.End())
	case *Line:
		attrs = []xml.Attr{
			numAttr("x1", el.From.X),
			numAttr("y1", el.From.Y),
			numAttr("x2", el.To.X),
			numAttr("y2", el.To.Y),
		}
		attrs = appendStroke(attrs, el.Stroke)
	case *Circle:
		attrs = []xml.Attr{
			numAttr("cx", el.Center.X),
			numAttr("cy", el.Center.Y),
			numAttr("r", el.R),
		}
		attrs = appendFill(attrs, el.Fill)
		attrs = appendStroke(attrs, el.Stroke)
	case *Polyline:
		attrs = []xml.Attr{{Name: xml.Name{Local: "points"}, Value: formatPoints(el.Points)}}
		attrs = appendFill(attrs, el.Fill)
		attrs = appendStroke(attrs, el.Stroke)
	default:
		return fmt.Errorf("drawing: cannot nest %s", el.Kind())
	}

	start := xml.StartElement{Name: xml.Name{Local: el.Kind().String()}, Attr: attrs}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func appendFill(attrs []xml.Attr, fill string) []xml.Attr {
	if fill == "" {
		return attrs
	}
	return append(attrs, xml.Attr{Name: xml.Name{Local: "fill"}, Value: fill})
}

func appendStroke(attrs []xml.Attr, s Stroke) []xml.Attr {
	if s.Color != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "stroke"}, Value: s.Color})
	}
	if s.Width != 0 {
		attrs = append(attrs, numAttr("stroke-width", s.Width))
	}
	if s.Cap != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "stroke-linecap"}, Value: s.Cap})
	}
	if s.Join != "" {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: "stroke-linejoin"}, Value: s.Join})
	}
	return attrs
}

func numAttr(name string, v float64) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: formatNum(v)}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPoints(points []vec.Vec2) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = formatNum(p.X) + "," + formatNum(p.Y)
	}
	return strings.Join(parts, " ")
}
