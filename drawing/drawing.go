// Package drawing holds the declarative primitives a rendered note is made
// of. Nothing here knows about music; callers supply every coordinate.
package drawing

import "seehuhn.de/go/geom/vec"

// Kind identifies the type of an Element.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindPolyline
	KindGroup
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindPolyline:
		return "polyline"
	case KindGroup:
		return "g"
	case KindImage:
		return "svg"
	}
	return "unknown"
}

// Element is one of *Line, *Circle, *Polyline, *Group or *Image.
type Element interface {
	Kind() Kind
	isElement()
}

// Stroke describes how an outline is painted. Zero values are left out of
// the output so the viewer's defaults apply.
type Stroke struct {
	Color string
	Width float64
	Cap   string // butt, round, square
	Join  string // miter, round, bevel
}

type Line struct {
	From, To vec.Vec2
	Stroke   Stroke
}

type Circle struct {
	Center vec.Vec2
	R      float64
	Fill   string
	Stroke Stroke
}

type Polyline struct {
	Points []vec.Vec2
	Fill   string
	Stroke Stroke
}

// Group is a named container.
type Group struct {
	Class    string
	Children []Element
}

// Image is the root container, sized to its content.
type Image struct {
	Width, Height float64
	Groups        []*Group
}

func (*Line) Kind() Kind     { return KindLine }
func (*Circle) Kind() Kind   { return KindCircle }
func (*Polyline) Kind() Kind { return KindPolyline }
func (*Group) Kind() Kind    { return KindGroup }
func (*Image) Kind() Kind    { return KindImage }

func (*Line) isElement()     {}
func (*Circle) isElement()   {}
func (*Polyline) isElement() {}
func (*Group) isElement()    {}
func (*Image) isElement()    {}

func NewLine(from, to vec.Vec2, stroke Stroke) *Line {
	return &Line{From: from, To: to, Stroke: stroke}
}

func NewCircle(center vec.Vec2, r float64, fill string, stroke Stroke) *Circle {
	return &Circle{Center: center, R: r, Fill: fill, Stroke: stroke}
}

// NewPolyline copies points, so the caller may reuse its slice.
func NewPolyline(points []vec.Vec2, fill string, stroke Stroke) *Polyline {
	return &Polyline{Points: append([]vec.Vec2(nil), points...), Fill: fill, Stroke: stroke}
}

func NewGroup(class string, children ...Element) *Group {
	return &Group{Class: class, Children: children}
}

func (g *Group) Append(children ...Element) {
	g.Children = append(g.Children, children...)
}

func NewImage(width, height float64, groups ...*Group) *Image {
	return &Image{Width: width, Height: height, Groups: groups}
}

// Group returns the first group with the given class, or nil.
func (img *Image) Group(class string) *Group {
	for _, g := range img.Groups {
		if g.Class == class {
			return g
		}
	}
	return nil
}

// Walk calls fn for every element below img in document order, groups
// before their children.
func (img *Image) Walk(fn func(Element)) {
	for _, g := range img.Groups {
		walk(g, fn)
	}
}

func walk(el Element, fn func(Element)) {
	fn(el)
	if g, ok := el.(*Group); ok {
		for _, child := range g.Children {
			walk(child, fn)
		}
	}
}

// Count returns the number of elements of kind k below img.
func (img *Image) Count(k Kind) int {
	var n int
	img.Walk(func(el Element) {
		if el.Kind() == k {
			n++
		}
	})
	return n
}
