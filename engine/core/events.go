package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01
	// Keyboard key pressed.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02
	// Keyboard key released.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03
	// Mouse moved.
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06
	// Mouse wheel scrolled.
	EVENT_CODE_MOUSE_WHEEL SystemEventCode = 0x07
	// Resized/resolution changed from the OS.
	EVENT_CODE_RESIZED SystemEventCode = 0x08
	// Viewer projection switched between perspective and orthographic.
	EVENT_CODE_PROJECTION_CHANGED SystemEventCode = 0x09

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// KeyEvent is the payload of EVENT_CODE_KEY_PRESSED/RELEASED.
type KeyEvent struct {
	KeyCode KeyCode
}

// MouseEvent is the payload of EVENT_CODE_MOUSE_MOVED and EVENT_CODE_MOUSE_WHEEL.
type MouseEvent struct {
	X, Y   float64
	Scroll float64
}

// SystemEvent is the payload of EVENT_CODE_RESIZED.
type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

// ProjectionEvent is the payload of EVENT_CODE_PROJECTION_CHANGED.
type ProjectionEvent struct {
	Perspective bool
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	registered map[SystemEventCode][]FnOnEvent
}

var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState != nil {
		eventState.registered = make(map[SystemEventCode][]FnOnEvent)
	}
	return nil
}

// EventRegister subscribes a callback to the given code. Callbacks run
// synchronously, in registration order, on the thread that fires the event.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire dispatches the event to every listener of its code. The render
// loop owns the only firing thread, so no locking is needed here.
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	listeners := eventState.registered[context.Type]
	if len(listeners) == 0 {
		return false
	}
	for _, cb := range listeners {
		cb(context)
	}
	return true
}
