// Package theme holds the default color pairs for each component kind and
// degrades them to what the terminal can display.
package theme

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/backend"
)

// Profile is a terminal color capability.
type Profile string

const (
	ProfileAuto      Profile = "auto"
	ProfileTrueColor Profile = "truecolor"
	Profile256       Profile = "256"
	Profile16        Profile = "16"
	ProfileMono      Profile = "mono"
)

// ParseProfile validates a profile name from configuration.
func ParseProfile(s string) (Profile, error) {
	switch p := Profile(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return ProfileAuto, nil
	case ProfileAuto, ProfileTrueColor, Profile256, Profile16, ProfileMono:
		return p, nil
	}
	return "", errors.Newf(errors.ErrCodeInvalidEnum, "unknown color profile %q", s)
}

// Detect resolves ProfileAuto from the environment.
func Detect() Profile {
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor:
		return ProfileTrueColor
	case termenv.ANSI256:
		return Profile256
	case termenv.ANSI:
		return Profile16
	default:
		return ProfileMono
	}
}

func (p Profile) termenv() termenv.Profile {
	switch p {
	case Profile256:
		return termenv.ANSI256
	case Profile16:
		return termenv.ANSI
	case ProfileMono:
		return termenv.Ascii
	case ProfileAuto:
		return Detect().termenv()
	default:
		return termenv.TrueColor
	}
}

// Theme defines the default styles for each component kind.
type Theme struct {
	Window        backend.Style
	Panel         backend.Style
	Border        backend.Style
	BorderFocused backend.Style
	Label         backend.Style
	Button        backend.Style
	ButtonFocused backend.Style
	Field         backend.Style
	FieldFocused  backend.Style
	CheckBox      backend.Style
	List          backend.Style
	ListSelected  backend.Style
	Disabled      backend.Style
}

// Default returns the built-in theme in true color.
func Default() *Theme {
	bg := backend.ColorRGB(22, 22, 28)
	fg := backend.ColorRGB(228, 226, 220)
	accent := backend.ColorRGB(95, 135, 255)
	muted := backend.ColorRGB(110, 108, 102)
	field := backend.ColorRGB(36, 36, 46)

	return &Theme{
		Window:        backend.Pair(fg, bg),
		Panel:         backend.Pair(fg, bg),
		Border:        backend.Pair(muted, bg),
		BorderFocused: backend.Pair(accent, bg),
		Label:         backend.Pair(fg, bg),
		Button:        backend.Pair(fg, field),
		ButtonFocused: backend.Pair(bg, accent).Bold(true),
		Field:         backend.Pair(fg, field),
		FieldFocused:  backend.Pair(fg, field).Underline(true),
		CheckBox:      backend.Pair(fg, bg),
		List:          backend.Pair(fg, bg),
		ListSelected:  backend.Pair(bg, accent),
		Disabled:      backend.Pair(muted, bg),
	}
}

// Degrade returns a copy of t with every color converted to p.
func (t *Theme) Degrade(p Profile) *Theme {
	tp := p.termenv()
	conv := func(s backend.Style) backend.Style {
		return s.Foreground(DegradeColor(s.FG(), tp)).Background(DegradeColor(s.BG(), tp))
	}
	return &Theme{
		Window:        conv(t.Window),
		Panel:         conv(t.Panel),
		Border:        conv(t.Border),
		BorderFocused: conv(t.BorderFocused),
		Label:         conv(t.Label),
		Button:        conv(t.Button),
		ButtonFocused: conv(t.ButtonFocused),
		Field:         conv(t.Field),
		FieldFocused:  conv(t.FieldFocused),
		CheckBox:      conv(t.CheckBox),
		List:          conv(t.List),
		ListSelected:  conv(t.ListSelected),
		Disabled:      conv(t.Disabled),
	}
}

// DegradeColor maps c onto the palette available in profile p. Colors the
// profile cannot show become the terminal default.
func DegradeColor(c backend.Color, p termenv.Profile) backend.Color {
	if c == backend.ColorDefault {
		return c
	}
	if p == termenv.Ascii {
		return backend.ColorDefault
	}
	var src termenv.Color
	if c.IsRGB() {
		r, g, b := c.RGB()
		src = termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	} else if c < 16 {
		src = termenv.ANSIColor(c)
	} else {
		src = termenv.ANSI256Color(c)
	}

	switch out := p.Convert(src).(type) {
	case termenv.RGBColor:
		return c
	case termenv.ANSI256Color:
		return backend.Color(out)
	case termenv.ANSIColor:
		return backend.Color(out)
	default:
		return backend.ColorDefault
	}
}
