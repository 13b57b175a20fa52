package input

// Kind discriminates input events
type Kind uint8

const (
	KindNone Kind = iota

	// Mouse pointer
	PointerDown
	PointerMove
	PointerUp
	PointerLeave // Pointer left the surface or focus was lost

	// Touch, single primary contact
	TouchStart
	TouchMove
	TouchEnd

	Resize
	Quit
)

var kindNames = [...]string{
	KindNone:     "none",
	PointerDown:  "pointer_down",
	PointerMove:  "pointer_move",
	PointerUp:    "pointer_up",
	PointerLeave: "pointer_leave",
	TouchStart:   "touch_start",
	TouchMove:    "touch_move",
	TouchEnd:     "touch_end",
	Resize:       "resize",
	Quit:         "quit",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is a surface-agnostic input event
// X, Y are in surface coordinates, Width and Height give the surface extent at event time
type Event struct {
	Kind   Kind
	X, Y   float32
	Width  float32
	Height float32
}

// Sink receives translated events
type Sink func(Event)
