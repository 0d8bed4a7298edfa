package layout

import (
	"testing"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/component"
	"github.com/odvcencio/cellkit/pkg/ui/graphics"
)

func container(t *testing.T, lm component.LayoutManager, w, h int) (*component.Toolkit, *component.Component) {
	t.Helper()
	tk := component.NewToolkit(component.Options{})
	c := tk.New(component.Plain(component.KindPanel))
	if err := c.SetLayout(lm); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	c.SetBounds(graphics.NewRect(0, 0, w, h))
	return tk, c
}

func sized(tk *component.Toolkit, w, h int) *component.Component {
	c := tk.New(component.Plain(component.KindLabel))
	c.SetPreferredSize(&graphics.Size{Width: w, Height: h})
	return c
}

func mustBox(t *testing.T, axis Axis) *Box {
	t.Helper()
	b, err := NewBox(axis)
	if err != nil {
		t.Fatalf("NewBox(%d): %v", axis, err)
	}
	return b
}

func boundsOf(cs []*component.Component) []graphics.Rect {
	out := make([]graphics.Rect, len(cs))
	for i, c := range cs {
		out[i] = c.Bounds()
	}
	return out
}

func TestCompass_Regions(t *testing.T) {
	tk, parent := container(t, NewCompass(0, 0), 80, 24)
	north := sized(tk, 10, 3)
	south := sized(tk, 10, 2)
	west := sized(tk, 20, 5)
	center := sized(tk, 1, 1)
	_ = parent.Add(north, North)
	_ = parent.Add(south, South)
	_ = parent.Add(west, West)
	_ = parent.Add(center, nil)

	parent.Validate()

	tests := []struct {
		name string
		c    *component.Component
		want graphics.Rect
	}{
		{"north", north, graphics.NewRect(0, 0, 80, 3)},
		{"south", south, graphics.NewRect(0, 22, 80, 2)},
		{"west", west, graphics.NewRect(0, 3, 20, 19)},
		{"center", center, graphics.NewRect(20, 3, 60, 19)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Bounds(); got != tt.want {
				t.Errorf("bounds = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompass_GapsAndEast(t *testing.T) {
	tk, parent := container(t, NewCompass(1, 1), 30, 10)
	north := sized(tk, 5, 2)
	east := sized(tk, 6, 1)
	center := sized(tk, 1, 1)
	_ = parent.Add(north, North)
	_ = parent.Add(east, East)
	_ = parent.Add(center, Center)
	parent.Validate()

	if got := east.Bounds(); got != graphics.NewRect(24, 3, 6, 7) {
		t.Errorf("east = %+v", got)
	}
	if got := center.Bounds(); got != graphics.NewRect(0, 3, 23, 7) {
		t.Errorf("center = %+v", got)
	}
}

func TestCompass_ReplacesOccupant(t *testing.T) {
	tk, parent := container(t, NewCompass(0, 0), 10, 10)
	lm := parent.Layout().(*Compass)
	first := sized(tk, 1, 1)
	second := sized(tk, 1, 1)
	_ = parent.Add(first, North)
	_ = parent.Add(second, North)

	if lm.Occupant(North) != second {
		t.Error("second child should replace the north occupant")
	}
	if err := parent.Remove(second); err != nil {
		t.Fatal(err)
	}
	if lm.Occupant(North) != nil {
		t.Error("removing the occupant should empty the region")
	}
}

func TestCompass_InvalidConstraint(t *testing.T) {
	tk, parent := container(t, NewCompass(0, 0), 10, 10)
	for _, c := range []any{Region(42), "north", 3} {
		err := parent.Add(sized(tk, 1, 1), c)
		if !errors.IsCode(err, errors.ErrCodeInvalidConstraint) {
			t.Errorf("Add(%v) error = %v, want INVALID_CONSTRAINT", c, err)
		}
	}
	if parent.ChildCount() != 0 {
		t.Error("rejected children must not be added")
	}
}

func TestBox_TruncatesWithoutOverlap(t *testing.T) {
	tk, parent := container(t, mustBox(t, AxisX), 10, 3)
	a := sized(tk, 4, 1)
	b := sized(tk, 4, 1)
	c := sized(tk, 4, 1)
	for _, ch := range []*component.Component{a, b, c} {
		_ = parent.Add(ch, nil)
	}
	parent.Validate()

	want := []graphics.Rect{
		graphics.NewRect(0, 0, 4, 3),
		graphics.NewRect(4, 0, 4, 3),
		graphics.NewRect(8, 0, 2, 3),
	}
	got := boundsOf([]*component.Component{a, b, c})
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("child %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	for i := range got {
		for j := i + 1; j < len(got); j++ {
			if got[i].Intersects(got[j]) {
				t.Errorf("children %d and %d overlap", i, j)
			}
		}
	}
}

func TestBox_VerticalWithInsets(t *testing.T) {
	tk, parent := container(t, mustBox(t, AxisY), 10, 10)
	parent.SetInsets(graphics.Insets{Top: 1, Left: 1, Bottom: 1, Right: 1})
	a := sized(tk, 3, 2)
	b := sized(tk, 3, 9)
	_ = parent.Add(a, nil)
	_ = parent.Add(b, nil)
	parent.Validate()

	if a.Bounds() != graphics.NewRect(1, 1, 8, 2) {
		t.Errorf("a = %+v", a.Bounds())
	}
	if b.Bounds() != graphics.NewRect(1, 3, 8, 6) {
		t.Errorf("b = %+v (should be truncated to the insets)", b.Bounds())
	}
	if got := parent.Layout().PreferredSize(parent); got != (graphics.Size{Width: 5, Height: 13}) {
		t.Errorf("PreferredSize() = %+v", got)
	}
	if err := parent.Add(sized(tk, 1, 1), Cell(0, 0)); !errors.IsCode(err, errors.ErrCodeInvalidConstraint) {
		t.Errorf("box should reject constraints, got %v", err)
	}
}

func TestGrid_WeightsAndDefaults(t *testing.T) {
	tk, parent := container(t, NewGrid(), 30, 6)
	label := sized(tk, 8, 1)
	field := sized(tk, 10, 1)
	button := sized(tk, 6, 1)

	_ = parent.Add(label, Cell(0, 0))
	fc := Cell(1, 0)
	fc.WeightX = 1
	fc.Fill = FillHorizontal
	_ = parent.Add(field, fc)
	bc := Cell(0, 1)
	bc.ColSpan = 2
	bc.Anchor = AnchorEast
	_ = parent.Add(button, bc)
	parent.Validate()

	if got := label.Bounds(); got != graphics.NewRect(0, 0, 8, 1) {
		t.Errorf("label = %+v", got)
	}
	if got := field.Bounds(); got != graphics.NewRect(8, 0, 22, 1) {
		t.Errorf("field = %+v (weighted column should take the extra width)", got)
	}
	// No row weights: the last row receives all extra height.
	if got := button.Bounds(); got != graphics.NewRect(24, 3, 6, 1) {
		t.Errorf("button = %+v", got)
	}
}

func TestGrid_ShrinksLastColumnFirst(t *testing.T) {
	tk, parent := container(t, NewGrid(), 12, 1)
	a := sized(tk, 8, 1)
	b := sized(tk, 8, 1)
	_ = parent.Add(a, Cell(0, 0))
	_ = parent.Add(b, Cell(1, 0))
	parent.Validate()

	if a.Bounds() != graphics.NewRect(0, 0, 8, 1) {
		t.Errorf("a = %+v", a.Bounds())
	}
	if b.Bounds() != graphics.NewRect(8, 0, 4, 1) {
		t.Errorf("b = %+v", b.Bounds())
	}
}

func TestGrid_ProportionalWeights(t *testing.T) {
	tk, parent := container(t, NewGrid(), 40, 1)
	a := sized(tk, 0, 1)
	b := sized(tk, 0, 1)
	ac, bc := Cell(0, 0), Cell(1, 0)
	ac.WeightX, bc.WeightX = 1, 3
	ac.Fill, bc.Fill = FillBoth, FillBoth
	_ = parent.Add(a, ac)
	_ = parent.Add(b, bc)
	parent.Validate()

	if a.Bounds().Width != 10 || b.Bounds().Width != 30 {
		t.Errorf("widths = %d,%d, want 10,30", a.Bounds().Width, b.Bounds().Width)
	}
}

func TestGrid_InvalidConstraints(t *testing.T) {
	tk, parent := container(t, NewGrid(), 10, 10)
	bad := []any{
		GridConstraints{Col: -1},
		GridConstraints{WeightX: -1},
		GridConstraints{Fill: Fill(9)},
		GridConstraints{ColSpan: -2},
		"cell",
		(*GridConstraints)(nil),
	}
	for _, c := range bad {
		if err := parent.Add(sized(tk, 1, 1), c); !errors.IsCode(err, errors.ErrCodeInvalidConstraint) {
			t.Errorf("Add(%#v) error = %v, want INVALID_CONSTRAINT", c, err)
		}
	}
}

func TestLayout_Idempotent(t *testing.T) {
	layouts := map[string]func() component.LayoutManager{
		"compass": func() component.LayoutManager { return NewCompass(1, 0) },
		"box":     func() component.LayoutManager { return mustBox(t, AxisY) },
		"grid":    func() component.LayoutManager { return NewGrid() },
	}
	for name, mk := range layouts {
		t.Run(name, func(t *testing.T) {
			tk, parent := container(t, mk(), 25, 9)
			var kids []*component.Component
			constraints := map[string][]any{
				"compass": {North, West, nil},
				"box":     {nil, nil, nil},
				"grid":    {Cell(0, 0), Cell(1, 0), GridConstraints{Col: 0, Row: 1, ColSpan: 2, WeightY: 1, Fill: FillBoth}},
			}[name]
			for i, c := range constraints {
				k := sized(tk, 4+i, 2)
				if err := parent.Add(k, c); err != nil {
					t.Fatal(err)
				}
				kids = append(kids, k)
			}
			lm := parent.Layout()
			lm.LayoutContainer(parent)
			first := boundsOf(kids)
			lm.LayoutContainer(parent)
			second := boundsOf(kids)
			for i := range first {
				if first[i] != second[i] {
					t.Errorf("child %d moved: %+v -> %+v", i, first[i], second[i])
				}
			}
		})
	}
}

func TestNullLayout_KeepsManualBounds(t *testing.T) {
	tk := component.NewToolkit(component.Options{})
	parent := tk.New(component.Plain(component.KindPanel))
	parent.SetBounds(graphics.NewRect(0, 0, 10, 10))
	child := sized(tk, 5, 5)
	_ = parent.Add(child, nil)
	child.SetBounds(graphics.NewRect(3, 4, 2, 1))
	parent.Validate()
	if child.Bounds() != graphics.NewRect(3, 4, 2, 1) {
		t.Errorf("manual bounds changed: %+v", child.Bounds())
	}
}

func TestNewBox_RejectsInvalidAxis(t *testing.T) {
	for _, axis := range []Axis{Axis(-1), Axis(2), Axis(7)} {
		b, err := NewBox(axis)
		if !errors.IsCode(err, errors.ErrCodeInvalidEnum) {
			t.Errorf("NewBox(%d) error = %v, want INVALID_ENUM", axis, err)
		}
		if b != nil {
			t.Errorf("NewBox(%d) returned a layout", axis)
		}
	}

	var zero Box
	if zero.Axis() != AxisX || !zero.Axis().Valid() {
		t.Errorf("zero Box axis = %d, want AxisX", zero.Axis())
	}
}

func TestBox_MeasureAndPlaceAgree(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY} {
		tk, parent := container(t, mustBox(t, axis), 20, 10)
		a := sized(tk, 4, 1)
		b := sized(tk, 4, 1)
		_ = parent.Add(a, nil)
		_ = parent.Add(b, nil)
		parent.Validate()

		pref := parent.Layout().PreferredSize(parent)
		var want graphics.Size
		var wantB graphics.Rect
		if axis == AxisX {
			want = graphics.Size{Width: 8, Height: 1}
			wantB = graphics.NewRect(4, 0, 4, 10)
		} else {
			want = graphics.Size{Width: 4, Height: 2}
			wantB = graphics.NewRect(0, 1, 20, 1)
		}
		if pref != want {
			t.Errorf("axis %d: PreferredSize = %+v, want %+v", axis, pref, want)
		}
		if b.Bounds() != wantB {
			t.Errorf("axis %d: second child = %+v, want %+v", axis, b.Bounds(), wantB)
		}
	}
}
