package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a viewer command, not a physical key.
type Action int

const (
	ActionOrbitLeft Action = iota
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionRegenerate
	ActionExport
	ActionQuit
	ActionDrag
	ActionCount // sentinel for array sizing
)

// Manager tracks which actions are held and which changed this frame.
type Manager struct {
	mu sync.RWMutex

	keys    map[glfw.Key][]Action
	buttons map[glfw.MouseButton][]Action

	held         [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// cursor movement accumulated since the last PostUpdate
	lastX, lastY float64
	haveCursor   bool
	dx, dy       float64
}

// NewManager returns a manager with the default viewer bindings.
func NewManager() *Manager {
	m := &Manager{
		keys:    make(map[glfw.Key][]Action),
		buttons: make(map[glfw.MouseButton][]Action),
	}

	m.BindKey(glfw.KeyLeft, ActionOrbitLeft)
	m.BindKey(glfw.KeyA, ActionOrbitLeft)
	m.BindKey(glfw.KeyRight, ActionOrbitRight)
	m.BindKey(glfw.KeyD, ActionOrbitRight)
	m.BindKey(glfw.KeyUp, ActionOrbitUp)
	m.BindKey(glfw.KeyW, ActionOrbitUp)
	m.BindKey(glfw.KeyDown, ActionOrbitDown)
	m.BindKey(glfw.KeyS, ActionOrbitDown)
	m.BindKey(glfw.KeyEqual, ActionZoomIn)
	m.BindKey(glfw.KeyKPAdd, ActionZoomIn)
	m.BindKey(glfw.KeyMinus, ActionZoomOut)
	m.BindKey(glfw.KeyKPSubtract, ActionZoomOut)
	m.BindKey(glfw.KeyR, ActionRegenerate)
	m.BindKey(glfw.KeyE, ActionExport)
	m.BindKey(glfw.KeyEscape, ActionQuit)

	m.BindMouseButton(glfw.MouseButtonLeft, ActionDrag)
	return m
}

// BindKey binds a key to an action. A key may drive several actions.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = append(m.keys[key], action)
}

// BindMouseButton binds a mouse button to an action.
func (m *Manager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[button] = append(m.buttons[button], action)
}

// HandleKeyEvent updates state for a key event.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.keys[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent updates state for a mouse button event.
func (m *Manager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apply(m.buttons[button], action == glfw.Press)
}

// HandleCursorPos records cursor movement. The first position only sets the
// reference point.
func (m *Manager) HandleCursorPos(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.haveCursor {
		m.dx += x - m.lastX
		m.dy += y - m.lastY
	}
	m.lastX, m.lastY, m.haveCursor = x, y, true
}

func (m *Manager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !m.held[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.held[act] {
			m.justReleased[act] = true
		}
		m.held[act] = pressed
	}
}

// Attach installs the key, mouse button and cursor callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		m.HandleCursorPos(x, y)
	})
}

// PostUpdate clears the per-frame edges and cursor delta. Call it once at the
// end of each frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.justPressed[:])
	clear(m.justReleased[:])
	m.dx, m.dy = 0, 0
}

// IsActive reports whether the action is held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.held[action]
}

// JustPressed reports whether the action went down this frame.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether the action went up this frame.
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

// CursorDelta returns the cursor movement since the last PostUpdate.
func (m *Manager) CursorDelta() (dx, dy float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dx, m.dy
}
