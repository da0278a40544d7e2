package note

import (
	"fmt"
	"testing"

	"github.com/jsphweid/staffnote/config"
	"github.com/jsphweid/staffnote/diag"
	"github.com/jsphweid/staffnote/drawing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"
)

func newTestRenderer() (*Renderer, *diag.Recorder) {
	rec := &diag.Recorder{}
	return NewRenderer(config.DefaultLayout(), rec), rec
}

func noteGroup(t *testing.T, img *drawing.Image) *drawing.Group {
	t.Helper()
	g := img.Group(NoteGroup)
	require.NotNil(t, g)
	return g
}

func TestSingleNotesHaveHeadAndStem(t *testing.T) {
	r, _ := newTestRenderer()
	for p := MinPitch; p <= MaxPitch; p++ {
		for _, d := range []Duration{Half, Quarter} {
			n := Descriptor{Pitch: p, Duration: d}
			t.Run(n.String(), func(t *testing.T) {
				img, err := r.Render(n, nil)
				require.NoError(t, err)

				assert := assert.New(t)
				assert.Equal(1, img.Count(drawing.KindCircle))
				assert.Equal(0, img.Count(drawing.KindPolyline))

				children := noteGroup(t, img).Children
				require.Len(t, children, 2)
				head := children[0].(*drawing.Circle)
				stem := children[1].(*drawing.Line)
				assert.Equal(vec.Vec2{X: 30, Y: config.DefaultLayout().Positions[p]}, head.Center)

				if p < 4 {
					assert.Equal(37.0, stem.From.X)
					assert.Equal(head.Center.Y-65, stem.To.Y)
				} else {
					assert.Equal(23.0, stem.From.X)
					assert.Equal(head.Center.Y+65, stem.To.Y)
				}
				assert.Equal(stem.From.X, stem.To.X)
				assert.Equal(head.Center.Y, stem.From.Y)
				assert.Equal("round", stem.Stroke.Cap)
			})
		}
	}
}

func TestNoteheadShape(t *testing.T) {
	r, _ := newTestRenderer()

	img, err := r.Render(Descriptor{Pitch: 2, Duration: Half}, nil)
	require.NoError(t, err)
	head := noteGroup(t, img).Children[0].(*drawing.Circle)
	assert.Equal(t, 7.0, head.R)
	assert.Equal(t, "transparent", head.Fill)
	assert.Equal(t, 4.0, head.Stroke.Width)

	img, err = r.Render(Descriptor{Pitch: 2, Duration: Quarter}, nil)
	require.NoError(t, err)
	head = noteGroup(t, img).Children[0].(*drawing.Circle)
	assert.Equal(t, 9.0, head.R)
	assert.Equal(t, "black", head.Fill)
}

func TestOrientation(t *testing.T) {
	l := NewLayout(config.DefaultLayout())
	for p := MinPitch; p <= MaxPitch; p++ {
		want := Down
		if p < 4 {
			want = Up
		}
		assert.Equal(t, want, l.Orientation(p), "pitch %d", p)
	}
}

// The pair's stems follow the first note only, whatever the second note is.
func TestPairOrientationFollowsFirstNote(t *testing.T) {
	r, _ := newTestRenderer()
	for p1 := MinPitch; p1 <= MaxPitch; p1++ {
		for p2 := MinPitch; p2 <= MaxPitch; p2++ {
			t.Run(fmt.Sprintf("%d-%d", p1, p2), func(t *testing.T) {
				img, err := r.RenderPair(Descriptor{Pitch: p1, Duration: Eighth}, Descriptor{Pitch: p2, Duration: Eighth})
				require.NoError(t, err)

				assert := assert.New(t)
				assert.Equal(2, img.Count(drawing.KindCircle))
				assert.Equal(1, img.Count(drawing.KindPolyline))
				assert.Equal(5, img.Count(drawing.KindLine), "only the staff lines, no stems")

				children := noteGroup(t, img).Children
				require.Len(t, children, 3)
				h1 := children[0].(*drawing.Circle)
				h2 := children[1].(*drawing.Circle)
				beam := children[2].(*drawing.Polyline)
				assert.Equal(15.0, h1.Center.X)
				assert.Equal(45.0, h2.Center.X)

				l := r.Layout()
				assert.Equal(l.Orientation(p1), l.PairOrientation(p1, p2))

				require.Len(t, beam.Points, 4)
				if p1 < 4 {
					// stems on the right, pointing up
					assert.Equal(22.0, beam.Points[0].X)
					assert.Equal(52.0, beam.Points[3].X)
					assert.Less(beam.Points[1].Y, beam.Points[0].Y)
					assert.Less(beam.Points[2].Y, beam.Points[3].Y)
				} else {
					assert.Equal(8.0, beam.Points[0].X)
					assert.Equal(38.0, beam.Points[3].X)
					assert.Greater(beam.Points[1].Y, beam.Points[0].Y)
					assert.Greater(beam.Points[2].Y, beam.Points[3].Y)
				}
			})
		}
	}
}

func TestBeamGeometry(t *testing.T) {
	r, _ := newTestRenderer()
	// pitch 2 (y 130) decides; pitch 6 (y 70) would point down on its own
	img, err := r.RenderPair(Descriptor{Pitch: 2, Duration: Eighth}, Descriptor{Pitch: 6, Duration: Eighth})
	require.NoError(t, err)

	beam := noteGroup(t, img).Children[2].(*drawing.Polyline)
	assert.Equal(t, []vec.Vec2{
		{X: 22, Y: 130},
		{X: 22, Y: 65},
		{X: 52, Y: 5},
		{X: 52, Y: 70},
	}, beam.Points)
	assert.Equal(t, "none", beam.Fill)
	assert.Equal(t, "round", beam.Stroke.Join)
	assert.Equal(t, 4.0, beam.Stroke.Width)
}

func TestRefusals(t *testing.T) {
	quarter := Descriptor{Pitch: 6, Duration: Quarter}
	cases := []struct {
		name    string
		note    Descriptor
		note2   *Descriptor
		kind    error
		mention string
	}{
		{"pitch 0", Descriptor{Pitch: 0, Duration: Quarter}, nil, ErrInvalidPitch, "pitch: 0"},
		{"pitch 8", Descriptor{Pitch: 8, Duration: Quarter}, nil, ErrInvalidPitch, "pitch: 8"},
		{"lone eighth", Descriptor{Pitch: 3, Duration: Eighth}, nil, ErrInvalidDuration, "eighth"},
		{"half with quarter", Descriptor{Pitch: 2, Duration: Half}, &quarter, ErrInvalidDuration, "quarter"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, rec := newTestRenderer()
			img, err := r.Render(c.note, c.note2)

			assert.Nil(t, img)
			assert.ErrorIs(t, err, c.kind)
			msgs := rec.Messages()
			require.Len(t, msgs, 1)
			assert.Contains(t, msgs[0], c.mention)
		})
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	r, _ := newTestRenderer()
	n := Descriptor{Pitch: 5, Duration: Half}

	a, err := r.Render(n, nil)
	require.NoError(t, err)
	b, err := r.Render(n, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
	assert.NotSame(t, a.Groups[0], b.Groups[0])

	// changing one leaves the other alone
	a.Group(NoteGroup).Children[0].(*drawing.Circle).R = 100
	assert.Equal(t, 7.0, b.Group(NoteGroup).Children[0].(*drawing.Circle).R)
}

func TestStaffWidth(t *testing.T) {
	r, _ := newTestRenderer()

	half, err := r.Render(Descriptor{Pitch: 4, Duration: Half}, nil)
	require.NoError(t, err)
	quarter, err := r.Render(Descriptor{Pitch: 4, Duration: Quarter}, nil)
	require.NoError(t, err)
	pair, err := r.RenderPair(Descriptor{Pitch: 4, Duration: Eighth}, Descriptor{Pitch: 4, Duration: Eighth})
	require.NoError(t, err)

	assert.Equal(t, 2*quarter.Width, half.Width)
	assert.Equal(t, 60.0, quarter.Width)
	assert.Equal(t, 60.0, pair.Width)
	for _, img := range []*drawing.Image{half, quarter, pair} {
		assert.Equal(t, 200.0, img.Height)
	}
}

func TestStaffAlwaysHasFiveLines(t *testing.T) {
	r, _ := newTestRenderer()
	images := []*drawing.Image{}
	for p := MinPitch; p <= MaxPitch; p++ {
		for _, d := range []Duration{Half, Quarter} {
			img, err := r.Render(Descriptor{Pitch: p, Duration: d}, nil)
			require.NoError(t, err)
			images = append(images, img)
		}
		img, err := r.RenderPair(Descriptor{Pitch: p, Duration: Eighth}, Descriptor{Pitch: 8 - p, Duration: Eighth})
		require.NoError(t, err)
		images = append(images, img)
	}

	for _, img := range images {
		staff := img.Group(StaffGroup)
		require.NotNil(t, staff)
		require.Len(t, staff.Children, 5)
		for i, el := range staff.Children {
			line := el.(*drawing.Line)
			assert.Equal(t, 0.0, line.From.X)
			assert.Equal(t, img.Width, line.To.X)
			assert.Equal(t, line.From.Y, line.To.Y)
			assert.Equal(t, config.DefaultLayout().StaffLines[i], line.From.Y)
			assert.Equal(t, 3.0, line.Stroke.Width)
		}
	}
}

func TestRenderAll(t *testing.T) {
	r, _ := newTestRenderer()

	img, err := r.RenderAll([]Descriptor{{Pitch: 1, Duration: Quarter}})
	require.NoError(t, err)
	assert.Equal(t, 1, img.Count(drawing.KindCircle))

	img, err = r.RenderAll([]Descriptor{{Pitch: 1, Duration: Eighth}, {Pitch: 7, Duration: Eighth}})
	require.NoError(t, err)
	assert.Equal(t, 2, img.Count(drawing.KindCircle))

	_, err = r.RenderAll(nil)
	assert.ErrorIs(t, err, ErrNoteCount)
	_, err = r.RenderAll(make([]Descriptor, 3))
	assert.ErrorIs(t, err, ErrNoteCount)
}

func TestNilSinkIsAllowed(t *testing.T) {
	r := NewRenderer(config.DefaultLayout(), nil)
	_, err := r.Render(Descriptor{Pitch: 0, Duration: Half}, nil)
	assert.Error(t, err)
}

func TestCustomLayout(t *testing.T) {
	cfg := config.DefaultLayout()
	cfg.UnitWidth = 100
	cfg.StemLength = 40
	r := NewRenderer(cfg, nil)

	img, err := r.Render(Descriptor{Pitch: 1, Duration: Half}, nil)
	require.NoError(t, err)
	assert.Equal(t, 200.0, img.Width)
	stem := img.Group(NoteGroup).Children[1].(*drawing.Line)
	assert.Equal(t, 145.0-40, stem.To.Y)
}
