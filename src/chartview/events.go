package chartview

import "fmt"

// EventType enumerates the raw pointer events the engine consumes.
type EventType int

const (
	EventDown EventType = iota
	EventMove
	EventUp
	EventWheel
)

func (t EventType) String() string {
	switch t {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	case EventWheel:
		return "wheel"
	default:
		return fmt.Sprintf("event(%d)", int(t))
	}
}

// Button identifies the pointer button of a down/up event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

func (b Button) String() string {
	if b == ButtonSecondary {
		return "secondary"
	}
	return "primary"
}

// Event is one pointer or wheel event in control-local pixels.
// WheelDelta is only meaningful for EventWheel; its sign selects the direction.
type Event struct {
	Type       EventType
	Button     Button
	Pos        Point
	WheelDelta int
}

// Bound selects the lower or upper end of an axis range.
type Bound int

const (
	BoundMin Bound = iota
	BoundMax
)

func (b Bound) String() string {
	if b == BoundMax {
		return "max"
	}
	return "min"
}

// EditRequest asks the application for a new value of one axis bound.
type EditRequest struct {
	Slot    int
	Bound   Bound
	Current float64
}

// Prompt is the human readable question shown by numeric entry dialogs.
func (r EditRequest) Prompt(seriesName string) string {
	if seriesName == "" {
		seriesName = fmt.Sprintf("Axis %d", r.Slot+1)
	}
	return fmt.Sprintf("%s %s value", seriesName, r.Bound)
}

// Result reports the side effects of one handled event.
// Redraw asks the renderer for a new frame. Edit is set when a pointer press
// landed on an axis label and no Prompter was injected to answer it inline.
type Result struct {
	Redraw bool
	Edit   *EditRequest
}
