// Package playback replays scripted input. A script is line oriented:
//
//	<delay-ms> KEY <hex-keycode>
//	<delay-ms> MOUSE <button> <x> <y>
//
// Blank lines and lines starting with # are ignored.
package playback

import (
	"strconv"
	"strings"
	"time"

	"github.com/odvcencio/cellkit/pkg/errors"
	"github.com/odvcencio/cellkit/pkg/ui/event"
)

// StepKind says which synthetic event a step produces.
type StepKind int

const (
	StepKey StepKind = iota + 1
	StepMouse
)

func (k StepKind) String() string {
	switch k {
	case StepKey:
		return "KEY"
	case StepMouse:
		return "MOUSE"
	}
	return "unknown"
}

// Step is one parsed script line.
type Step struct {
	Line  int
	Delay time.Duration
	Kind  StepKind

	Code event.Key

	Button int
	X, Y   int
}

// Event builds the synthetic event for s. It carries no source, so the
// dispatch loop routes keys to the focus owner and hit-tests mouse clicks.
func (s Step) Event() event.Event {
	if s.Kind == StepMouse {
		return event.NewMouseEvent(nil, event.MouseClicked, s.Button, s.X, s.Y)
	}
	return event.NewKeyEvent(nil, s.Code, 0)
}

// ParseLine parses one script line. ok is false for blank and comment lines.
func ParseLine(line string, lineNo int) (step Step, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Step{}, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) < 2 {
		return Step{}, false, parseError(lineNo, line, "expected <delay-ms> <KEY|MOUSE> ...")
	}
	ms, convErr := strconv.Atoi(fields[0])
	if convErr != nil || ms < 0 {
		return Step{}, false, parseError(lineNo, line, "delay must be a non-negative integer")
	}
	step = Step{Line: lineNo, Delay: time.Duration(ms) * time.Millisecond}

	args := fields[2:]
	switch strings.ToUpper(fields[1]) {
	case "KEY":
		if len(args) != 1 {
			return Step{}, false, parseError(lineNo, line, "KEY takes one hex key code")
		}
		hex := strings.TrimPrefix(strings.ToLower(args[0]), "0x")
		code, convErr := strconv.ParseUint(hex, 16, 32)
		if convErr != nil || code == 0 || event.Key(code) > event.KeyMax {
			return Step{}, false, parseError(lineNo, line, "invalid key code")
		}
		step.Kind = StepKey
		step.Code = event.Key(code)
	case "MOUSE":
		if len(args) != 3 {
			return Step{}, false, parseError(lineNo, line, "MOUSE takes <button> <x> <y>")
		}
		nums := make([]int, 3)
		for i, a := range args {
			n, convErr := strconv.Atoi(a)
			if convErr != nil || n < 0 {
				return Step{}, false, parseError(lineNo, line, "MOUSE arguments must be non-negative integers")
			}
			nums[i] = n
		}
		step.Kind = StepMouse
		step.Button, step.X, step.Y = nums[0], nums[1], nums[2]
	default:
		return Step{}, false, parseError(lineNo, line, "unknown step "+strconv.Quote(fields[1]))
	}
	return step, true, nil
}

func parseError(lineNo int, line, msg string) error {
	return errors.Newf(errors.ErrCodePlaybackParse, "line %d: %s", lineNo, msg).
		WithContext("line", lineNo).
		WithContext("text", line)
}
