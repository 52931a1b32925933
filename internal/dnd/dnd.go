// Package dnd models the drag-and-drop capability the game controller
// depends on: things that produce a draggable payload (DragSource), things
// that accept a drop and report hover (DropTarget), and the per-connection
// gesture state that turns raw pointer events into match attempts (Tracker).
package dnd

import "github.com/robalobadob/wordmatch/internal/game"

// Target colors, in precedence order.
const (
	ColorSolved  = "green"
	ColorHovered = "gold"
	ColorIdle    = "white"
)

// DragSource is one draggable word token.
type DragSource struct {
	Word     string `json:"word"`
	Dragging bool   `json:"dragging"`
}

// Payload is the identity exposed to the drop mechanism.
func (d DragSource) Payload() string { return d.Word }

// Opacity is 0.4 while the token is being dragged and 1 otherwise.
func (d DragSource) Opacity() float64 {
	if d.Dragging {
		return 0.4
	}
	return 1
}

// Cursor is the CSS cursor for the token.
func (d DragSource) Cursor() string {
	if d.Dragging {
		return "grabbing"
	}
	return "grab"
}

// DropTarget is one labeled slot.
type DropTarget struct {
	Label   string `json:"label"`
	Solved  bool   `json:"solved"`
	Hovered bool   `json:"hovered"`
}

// Color is a pure function of Solved and Hovered: solved beats hovered beats idle.
func (t DropTarget) Color() string {
	switch {
	case t.Solved:
		return ColorSolved
	case t.Hovered:
		return ColorHovered
	default:
		return ColorIdle
	}
}

// DropFunc receives (dragged word, target label). Correctness is the
// caller's concern.
type DropFunc func(name, target string)

// Accept forwards a completed gesture unconditionally.
func (t DropTarget) Accept(payload string, onDrop DropFunc) {
	onDrop(payload, t.Label)
}

// Sources builds one DragSource per pool word, in pool order.
func Sources(pool []string, dragging string) []DragSource {
	out := make([]DragSource, len(pool))
	for i, w := range pool {
		out[i] = DragSource{Word: w, Dragging: w == dragging}
	}
	return out
}

// Targets builds the target collection: one DropTarget per mapping entry,
// in mapping order.
func Targets(entries []game.Entry, hovered string) []DropTarget {
	out := make([]DropTarget, len(entries))
	for i, e := range entries {
		out[i] = DropTarget{Label: e.Word, Solved: e.Solved, Hovered: e.Word == hovered}
	}
	return out
}
