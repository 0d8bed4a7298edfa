package graphics

import (
	"testing"

	"github.com/odvcencio/cellkit/pkg/ui/backend"
)

func TestRect_Intersection(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"overlap", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), NewRect(5, 5, 5, 5)},
		{"contained", NewRect(0, 0, 10, 10), NewRect(2, 3, 4, 4), NewRect(2, 3, 4, 4)},
		{"disjoint", NewRect(0, 0, 2, 2), NewRect(5, 5, 2, 2), Rect{}},
		{"touching", NewRect(0, 0, 2, 2), NewRect(2, 0, 2, 2), Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersection(tt.b); got != tt.want {
				t.Errorf("Intersection() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRect_Union(t *testing.T) {
	got := NewRect(1, 1, 2, 2).Union(NewRect(5, 0, 1, 1))
	if want := NewRect(1, 0, 5, 3); got != want {
		t.Errorf("Union() = %+v, want %+v", got, want)
	}
	if got := (Rect{}).Union(NewRect(3, 3, 1, 1)); got != NewRect(3, 3, 1, 1) {
		t.Errorf("Union with empty = %+v", got)
	}
}

func TestRect_InsetAndContains(t *testing.T) {
	r := NewRect(0, 0, 10, 5).Inset(Insets{Top: 1, Left: 1, Bottom: 1, Right: 1})
	if r != NewRect(1, 1, 8, 3) {
		t.Errorf("Inset() = %+v", r)
	}
	if !NewRect(0, 0, 10, 5).ContainsRect(r) {
		t.Error("outer rect should contain inset rect")
	}
	if NewRect(0, 0, 2, 2).Inset(Insets{Left: 5}).Width != 0 {
		t.Error("Inset should not go negative")
	}
	if !r.Contains(1, 1) || r.Contains(9, 1) {
		t.Error("Contains edge handling wrong")
	}
}

func TestSurface_ClipsWrites(t *testing.T) {
	buf := NewBuffer(10, 4)
	root := NewSurface(buf)
	child := root.Sub(NewRect(2, 1, 3, 2))

	style := backend.DefaultStyle()
	child.Fill(NewRect(-5, -5, 20, 20), '#', style)

	for y := 0; y < 4; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 1 && y < 3
			got := buf.Get(x, y).Rune
			if inside && got != '#' {
				t.Errorf("(%d,%d) = %q, want #", x, y, got)
			}
			if !inside && got != ' ' {
				t.Errorf("(%d,%d) = %q, want blank", x, y, got)
			}
		}
	}
	if child.Clip() != NewRect(0, 0, 3, 2) {
		t.Errorf("Clip() = %+v", child.Clip())
	}
}

func TestSurface_SubNeverWidens(t *testing.T) {
	buf := NewBuffer(10, 10)
	s := NewSurface(buf).Sub(NewRect(2, 2, 3, 3))
	grand := s.Sub(NewRect(-1, -1, 10, 10))
	if got := grand.AbsoluteClip(); got != NewRect(2, 2, 3, 3) {
		t.Errorf("AbsoluteClip() = %+v, want parent clip", got)
	}
	narrowed := s.WithClip(NewRect(1, 1, 1, 1))
	if got := narrowed.AbsoluteClip(); got != NewRect(3, 3, 1, 1) {
		t.Errorf("WithClip() = %+v", got)
	}
}

func TestSurface_DrawStringWide(t *testing.T) {
	buf := NewBuffer(6, 1)
	s := NewSurface(buf)

	n := s.DrawString(0, 0, "a界b", backend.DefaultStyle())
	if n != 4 {
		t.Errorf("advanced %d cells, want 4", n)
	}
	if buf.Get(1, 0).Rune != '界' || !buf.Get(2, 0).Tail {
		t.Errorf("wide rune not laid out: %+v %+v", buf.Get(1, 0), buf.Get(2, 0))
	}
	if buf.Get(3, 0).Rune != 'b' {
		t.Errorf("cell 3 = %q, want b", buf.Get(3, 0).Rune)
	}

	clipped := NewSurface(buf).WithClip(NewRect(0, 0, 2, 1))
	clipped.DrawString(1, 0, "界", backend.DefaultStyle())
	if buf.Get(1, 0).Rune != ' ' {
		t.Errorf("straddling wide rune should become a space, got %q", buf.Get(1, 0).Rune)
	}
}

func TestSurface_DrawBox(t *testing.T) {
	buf := NewBuffer(4, 3)
	NewSurface(buf).DrawBox(NewRect(0, 0, 4, 3), backend.DefaultStyle())
	if buf.Get(0, 0).Rune != '┌' || buf.Get(3, 2).Rune != '┘' || buf.Get(1, 0).Rune != '─' || buf.Get(0, 1).Rune != '│' {
		t.Error("box corners/edges not drawn")
	}
	if buf.Get(1, 1).Rune != ' ' {
		t.Error("box interior should be untouched")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := StringWidth("界"); got != 2 {
		t.Errorf("StringWidth() = %d", got)
	}
}
