package dnd

// Tracker holds the transient gesture state of one client connection: which
// word is being dragged and which target the pointer is over. It is not safe
// for concurrent use; each connection's read loop owns one.
type Tracker struct {
	dragging string
	hovered  string
}

// Dragging returns the current payload, or "" when idle.
func (t *Tracker) Dragging() string { return t.dragging }

// Hovered returns the target under the pointer, or "".
func (t *Tracker) Hovered() string { return t.hovered }

// Start begins a drag of word.
func (t *Tracker) Start(word string) {
	t.dragging = word
	t.hovered = ""
}

// Over records the pointer entering target. Hover only matters mid-drag.
// It reports whether the visible state changed.
func (t *Tracker) Over(target string) bool {
	if t.dragging == "" || t.hovered == target {
		return false
	}
	t.hovered = target
	return true
}

// Leave clears the hover if the pointer left the hovered target.
func (t *Tracker) Leave(target string) bool {
	if t.hovered == "" || t.hovered != target {
		return false
	}
	t.hovered = ""
	return true
}

// Drop completes the gesture over target and hands the payload to onDrop.
// It reports false when no drag was in progress.
func (t *Tracker) Drop(target string, onDrop DropFunc) bool {
	payload := t.dragging
	t.End()
	if payload == "" {
		return false
	}
	DropTarget{Label: target}.Accept(payload, onDrop)
	return true
}

// End abandons any drag in progress.
func (t *Tracker) End() {
	t.dragging = ""
	t.hovered = ""
}
