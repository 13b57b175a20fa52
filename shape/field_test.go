package shape

import (
	"errors"
	"math"
	"sync"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

const eps = 1e-9

func mustField(t *testing.T) *Field {
	t.Helper()
	f, err := NewField(DefaultLayout())
	if err != nil {
		t.Fatalf("NewField failed: %v", err)
	}
	return f
}

func TestCapsuleDistance(t *testing.T) {
	c := &Capsule{A: v2.Vec{X: 0, Y: 0}, B: v2.Vec{X: 0, Y: 0.5}, HalfWidth: 0.05}

	tests := []struct {
		name string
		p    v2.Vec
		want float64
	}{
		{"Beyond end B", v2.Vec{X: 0, Y: 1}, 0.45},
		{"Beside middle", v2.Vec{X: 0.2, Y: 0.25}, 0.15},
		{"On axis", v2.Vec{X: 0, Y: 0.3}, -0.05},
		{"Before end A", v2.Vec{X: 0, Y: -0.1}, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Evaluate(tt.p); math.Abs(got-tt.want) > eps {
				t.Errorf("Evaluate(%v) = %f, want %f", tt.p, got, tt.want)
			}
		})
	}
}

func TestCapsuleDegenerate(t *testing.T) {
	c := &Capsule{A: v2.Vec{X: 1, Y: 1}, B: v2.Vec{X: 1, Y: 1}, HalfWidth: 0.1}
	if got := c.Evaluate(v2.Vec{X: 1, Y: 2}); math.Abs(got-0.9) > eps {
		t.Errorf("zero-length capsule distance = %f, want 0.9", got)
	}
}

func TestArcClipReturnsFar(t *testing.T) {
	clip := Open()
	clip.MinY = 0
	a := &Arc{Center: v2.Vec{}, Radius: 1, HalfWidth: 0.1, Clip: clip}

	if got := a.Evaluate(v2.Vec{X: 0, Y: 1}); math.Abs(got+0.1) > eps {
		t.Errorf("on-ring inside clip = %f, want -0.1", got)
	}
	if got := a.Evaluate(v2.Vec{X: 0, Y: -1}); got != Far {
		t.Errorf("on-ring outside clip = %f, want Far", got)
	}
	// Clip boundary is open
	if got := a.Evaluate(v2.Vec{X: 1, Y: 0}); got != Far {
		t.Errorf("on clip boundary = %f, want Far", got)
	}
}

func TestBarBand(t *testing.T) {
	b := &Bar{Axis: AxisHorizontal, Offset: 0, SpanMin: 0, SpanMax: 1, HalfWidth: 0.1, Band: 0.15}

	tests := []struct {
		name string
		p    v2.Vec
		want float64
	}{
		{"Centre line", v2.Vec{X: 0.5, Y: 0}, -0.1},
		{"Inside band outside stroke", v2.Vec{X: 0.5, Y: 0.12}, 0.02},
		{"Outside band", v2.Vec{X: 0.5, Y: 0.2}, Far},
		{"Outside span", v2.Vec{X: 1.5, Y: 0}, Far},
		{"Span boundary open", v2.Vec{X: 1, Y: 0}, Far},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Evaluate(tt.p); math.Abs(got-tt.want) > eps {
				t.Errorf("Evaluate(%v) = %f, want %f", tt.p, got, tt.want)
			}
		})
	}

	v := &Bar{Axis: AxisVertical, Offset: 2, SpanMin: -1, SpanMax: 1, HalfWidth: 0.1}
	if got := v.Evaluate(v2.Vec{X: 2.05, Y: 0}); math.Abs(got+0.05) > eps {
		t.Errorf("vertical bar = %f, want -0.05", got)
	}
}

func TestFieldClassification(t *testing.T) {
	f := mustField(t)

	tests := []struct {
		name   string
		x, y   float64
		inside bool
	}{
		{"N left stem", -1.1, 0, true},
		{"N right stem", -0.8, 0.2, true},
		{"N diagonal midpoint", -0.95, 0, true},
		{"A apex", -0.4, 0.3, true},
		{"A crossbar", -0.4, 0, true},
		{"S top arc crown", 0.15, 0.3, true},
		{"S bottom arc base", 0.15, -0.3, true},
		{"Second A left foot", 0.55, -0.3, true},
		{"Gap between N and A", -0.7, 0.25, false},
		{"S slot origin", 0, 0, false},
		{"Right margin", 1.5, 0, false},
		{"Far corner", 1.9, 0.9, false},
		{"Above glyphs", -1.1, 0.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := f.Distance(tt.x, tt.y)
			if got := f.Inside(tt.x, tt.y); got != tt.inside {
				t.Errorf("Inside(%.2f, %.2f) = %v (d=%f), want %v", tt.x, tt.y, got, d, tt.inside)
			}
		})
	}
}

func TestFieldStemDepth(t *testing.T) {
	f := mustField(t)
	// Centre of the N stem is exactly one half width inside
	if got := f.Distance(-1.1, 0); math.Abs(got+0.045) > eps {
		t.Errorf("stem centre distance = %f, want -0.045", got)
	}
}

func TestFieldStrokeCount(t *testing.T) {
	f := mustField(t)
	if f.Strokes() != 12 {
		t.Errorf("Strokes() = %d, want 12", f.Strokes())
	}
}

func TestFieldBounds(t *testing.T) {
	f := mustField(t)
	b := f.Bounds()
	if b.Min.X != -2 || b.Max.X != 2 || b.Min.Y != -1 || b.Max.Y != 1 {
		t.Errorf("Bounds() = %+v, want [-2,2]x[-1,1]", b)
	}

	// Every stroke fits inside the sampling rectangle
	bb := f.BoundingBox()
	if bb.Min.X < b.Min.X || bb.Max.X > b.Max.X || bb.Min.Y < b.Min.Y || bb.Max.Y > b.Max.Y {
		t.Errorf("stroke box %+v escapes sampling bounds %+v", bb, b)
	}
}

func TestFieldBoundsCoverLongLayouts(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		spacing float64
	}{
		{"Eight glyphs", "NASANASA", 0.55},
		{"Wide spacing", "NASA", 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := DefaultLayout()
			l.Text = tt.text
			l.Spacing = tt.spacing
			f, err := NewField(l)
			if err != nil {
				t.Fatalf("NewField failed: %v", err)
			}

			b, bb := f.Bounds(), f.BoundingBox()
			if bb.Max.X <= l.Bounds.Max.X {
				t.Fatalf("layout does not overflow the default rectangle: %+v", bb)
			}
			if bb.Min.X < b.Min.X || bb.Max.X > b.Max.X || bb.Min.Y < b.Min.Y || bb.Max.Y > b.Max.Y {
				t.Errorf("stroke box %+v escapes sampling bounds %+v", bb, b)
			}
			if b.Min != l.Bounds.Min {
				t.Errorf("Expected min corner kept at %v, got %v", l.Bounds.Min, b.Min)
			}

			// The last glyph's crossbar is inside both the field and the bounds
			lastX := l.StartX + float64(len(tt.text)-1)*l.Spacing
			if !f.Inside(lastX+0.15, 0) || lastX+0.15 > b.Max.X {
				t.Errorf("Expected the last A bar at x=%f inside the field and bounds", lastX+0.15)
			}
		})
	}
}

func TestFieldUnknownGlyph(t *testing.T) {
	l := DefaultLayout()
	l.Text = "NAZA"
	if _, err := NewField(l); !errors.Is(err, ErrUnknownGlyph) {
		t.Errorf("expected ErrUnknownGlyph, got %v", err)
	}

	l.Text = ""
	if _, err := NewField(l); !errors.Is(err, ErrUnknownGlyph) {
		t.Errorf("expected ErrUnknownGlyph for empty text, got %v", err)
	}

	for _, r := range "NAS" {
		if !Supported(r) {
			t.Errorf("expected %q supported", r)
		}
	}
	if Supported('Z') {
		t.Error("expected 'Z' unsupported")
	}
}

func TestFieldConcurrentEvaluation(t *testing.T) {
	f := mustField(t)

	const n = 2000
	want := make([]float64, n)
	for i := range want {
		x := -2 + 4*float64(i)/n
		want[i] = f.Distance(x, 0.1)
	}

	var wg sync.WaitGroup
	errs := make(chan int, 8*n)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n; i++ {
				x := -2 + 4*float64(i)/n
				if f.Distance(x, 0.1) != want[i] {
					errs <- i
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for i := range errs {
		t.Fatalf("concurrent Distance mismatch at sample %d", i)
	}
}
