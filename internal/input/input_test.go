package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyEdges(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyR, glfw.Press)
	if !m.JustPressed(ActionRegenerate) || !m.IsActive(ActionRegenerate) {
		t.Fatal("press not recorded")
	}

	// a repeat keeps the action held without a second edge
	m.PostUpdate()
	m.HandleKeyEvent(glfw.KeyR, glfw.Repeat)
	if m.JustPressed(ActionRegenerate) {
		t.Error("repeat produced a press edge")
	}
	if !m.IsActive(ActionRegenerate) {
		t.Error("repeat released the action")
	}

	m.HandleKeyEvent(glfw.KeyR, glfw.Release)
	if !m.JustReleased(ActionRegenerate) || m.IsActive(ActionRegenerate) {
		t.Error("release not recorded")
	}
	m.PostUpdate()
	if m.JustReleased(ActionRegenerate) {
		t.Error("edge survived PostUpdate")
	}
}

func TestSharedBindings(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	m.HandleKeyEvent(glfw.KeyA, glfw.Press)
	if !m.IsActive(ActionOrbitLeft) {
		t.Fatal("orbit left not held")
	}
	m.HandleKeyEvent(glfw.KeyUnknown, glfw.Press)
	if m.IsActive(ActionOrbitRight) {
		t.Error("unbound key activated an action")
	}
	if m.IsActive(ActionCount) || m.JustPressed(-1) {
		t.Error("out of range actions must read false")
	}
}

func TestCursorDelta(t *testing.T) {
	m := NewManager()
	m.HandleCursorPos(100, 100)
	m.HandleCursorPos(110, 95)
	m.HandleCursorPos(115, 90)
	if dx, dy := m.CursorDelta(); dx != 15 || dy != -10 {
		t.Errorf("delta = (%v, %v), want (15, -10)", dx, dy)
	}
	m.PostUpdate()
	if dx, dy := m.CursorDelta(); dx != 0 || dy != 0 {
		t.Errorf("delta after PostUpdate = (%v, %v)", dx, dy)
	}

	m.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	if !m.IsActive(ActionDrag) {
		t.Error("drag not held")
	}
}
