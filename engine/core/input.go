package core

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_TAB       KeyCode = 0x09
	KEY_SHIFT     KeyCode = 0x10
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_B         KeyCode = 0x42
	KEY_C         KeyCode = 0x43
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_F         KeyCode = 0x46
	KEY_O         KeyCode = 0x4F
	KEY_P         KeyCode = 0x50
	KEY_Q         KeyCode = 0x51
	KEY_S         KeyCode = 0x53
	KEY_W         KeyCode = 0x57
	KEYS_MAX_KEYS KeyCode = 0x100
)

type keyboardState struct {
	keys [KEYS_MAX_KEYS]bool
}

type mouseState struct {
	x, y float64
}

type inputState struct {
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState
}

var state *inputState

func InputInitialize() error {
	state = &inputState{}
	return nil
}

func InputShutdown() error {
	state = nil
	return nil
}

// InputUpdate copies current states to previous states. Should be called at
// the end of every frame, after all input for that frame has been recorded.
func InputUpdate(deltaTime float64) {
	if state == nil {
		return
	}
	state.keyboardPrevious = state.keyboardCurrent
	state.mousePrevious = state.mouseCurrent
}

// InputProcessKey records a key state change and fires the matching event.
func InputProcessKey(key KeyCode, pressed bool) {
	if state == nil || key >= KEYS_MAX_KEYS {
		return
	}
	if state.keyboardCurrent.keys[key] == pressed {
		return
	}
	state.keyboardCurrent.keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}

// InputProcessMouseMove records the new cursor position and fires a move event.
func InputProcessMouseMove(x, y float64) {
	if state == nil {
		return
	}
	if state.mouseCurrent.x == x && state.mouseCurrent.y == y {
		return
	}
	state.mouseCurrent.x = x
	state.mouseCurrent.y = y
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{X: x, Y: y},
	})
}

// InputProcessMouseWheel fires a wheel event. Wheel state is not retained.
func InputProcessMouseWheel(delta float64) {
	if state == nil {
		return
	}
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: delta},
	})
}

func IsKeyDown(key KeyCode) bool {
	if state == nil || key >= KEYS_MAX_KEYS {
		return false
	}
	return state.keyboardCurrent.keys[key]
}

func IsKeyUp(key KeyCode) bool {
	return !IsKeyDown(key)
}

// WasKeyDown reports the key state during the previous frame.
func WasKeyDown(key KeyCode) bool {
	if state == nil || key >= KEYS_MAX_KEYS {
		return false
	}
	return state.keyboardPrevious.keys[key]
}

// MousePosition returns the current cursor position in window coordinates.
func MousePosition() (float64, float64) {
	if state == nil {
		return 0, 0
	}
	return state.mouseCurrent.x, state.mouseCurrent.y
}
