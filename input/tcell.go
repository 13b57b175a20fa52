package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Translator converts tcell events into Events
// It tracks the primary button to turn held-button reports into down/move/up edges
type Translator struct {
	width  int
	height int
	down   bool
}

// NewTranslator creates a translator for a width×height cell surface
func NewTranslator(width, height int) *Translator {
	return &Translator{width: width, height: height}
}

// Translate maps ev, returning false for events with no simulation meaning
func (t *Translator) Translate(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return t.mouse(ev)

	case *tcell.EventResize:
		t.width, t.height = ev.Size()
		return Event{Kind: Resize, Width: float32(t.width), Height: float32(t.height)}, true

	case *tcell.EventFocus:
		if ev.Focused {
			return Event{}, false
		}
		t.down = false
		return t.event(PointerLeave, 0, 0), true

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return Event{Kind: Quit}, true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return Event{Kind: Quit}, true
			}
		}
	}
	return Event{}, false
}

func (t *Translator) mouse(ev *tcell.EventMouse) (Event, bool) {
	cx, cy := ev.Position()
	// Cell centre in surface coordinates
	x, y := float32(cx)+0.5, float32(cy)+0.5
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !t.down:
		t.down = true
		return t.event(PointerDown, x, y), true
	case !held && t.down:
		t.down = false
		return t.event(PointerUp, x, y), true
	default:
		return t.event(PointerMove, x, y), true
	}
}

func (t *Translator) event(k Kind, x, y float32) Event {
	return Event{Kind: k, X: x, Y: y, Width: float32(t.width), Height: float32(t.height)}
}

// ScreenSource forwards a tcell screen's events to subscribed sinks
type ScreenSource struct {
	screen tcell.Screen

	mu    sync.Mutex
	sinks map[int]Sink
	next  int

	startOnce sync.Once
	stopOnce  sync.Once
	quit      chan struct{}
	done      chan struct{}
}

// NewScreenSource wraps an initialized screen
func NewScreenSource(screen tcell.Screen) *ScreenSource {
	return &ScreenSource{
		screen: screen,
		sinks:  make(map[int]Sink),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Subscribe registers sink and starts polling on first use
// The returned cancel deregisters the sink and is safe to call more than once
func (s *ScreenSource) Subscribe(sink Sink) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.sinks[id] = sink
	s.mu.Unlock()

	s.startOnce.Do(s.start)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.sinks, id)
			s.mu.Unlock()
		})
	}
}

// Stop ends polling, sinks receive nothing afterwards
func (s *ScreenSource) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	// Only wait when the poller was started
	started := true
	s.startOnce.Do(func() { started = false; close(s.done) })
	if started {
		<-s.done
	}
}

func (s *ScreenSource) start() {
	w, h := s.screen.Size()
	tr := NewTranslator(w, h)
	ch := make(chan tcell.Event, 64)

	go s.screen.ChannelEvents(ch, s.quit)
	go func() {
		defer close(s.done)
		// ChannelEvents closes ch on quit or screen stop
		for ev := range ch {
			e, ok := tr.Translate(ev)
			if !ok {
				continue
			}
			s.dispatch(e)
		}
	}()
}

func (s *ScreenSource) dispatch(e Event) {
	s.mu.Lock()
	sinks := make([]Sink, 0, len(s.sinks))
	for _, sink := range s.sinks {
		sinks = append(sinks, sink)
	}
	s.mu.Unlock()

	for _, sink := range sinks {
		sink(e)
	}
}
