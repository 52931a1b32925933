// Package render produces the server-side HTML for the match board.
package render

import (
	htmlpkg "html"
	"strconv"
	"strings"

	"github.com/robalobadob/wordmatch/internal/dnd"
	"github.com/robalobadob/wordmatch/internal/game"
)

// Title is the page heading.
const Title = "Insert Fun Title Here!"

// DragSource renders one draggable word.
func DragSource(d dnd.DragSource) string {
	word := htmlpkg.EscapeString(d.Payload())
	var b strings.Builder
	b.WriteString(`<div class="word-box source`)
	if d.Dragging {
		b.WriteString(` dragging`)
	}
	b.WriteString(`" draggable="true" data-word="`)
	b.WriteString(word)
	b.WriteString(`" style="opacity:`)
	b.WriteString(strconv.FormatFloat(d.Opacity(), 'g', -1, 64))
	b.WriteString(`;cursor:`)
	b.WriteString(d.Cursor())
	b.WriteString(`">`)
	b.WriteString(word)
	b.WriteString(`</div>`)
	return b.String()
}

// DropTarget renders one labeled slot, colored by its state.
func DropTarget(t dnd.DropTarget) string {
	label := htmlpkg.EscapeString(t.Label)
	var b strings.Builder
	b.WriteString(`<div class="word-box target `)
	b.WriteString(t.Color())
	b.WriteString(`" data-label="`)
	b.WriteString(label)
	b.WriteString(`">`)
	b.WriteString(label)
	b.WriteString(`</div>`)
	return b.String()
}

// TargetCollection renders every target in order.
func TargetCollection(targets []dnd.DropTarget) string {
	var b strings.Builder
	b.WriteString(`<div class="picture-column">`)
	for _, t := range targets {
		b.WriteString(DropTarget(t))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// Board renders the word column next to the target column.
func Board(sources []dnd.DragSource, targets []dnd.DropTarget) string {
	var b strings.Builder
	b.WriteString(`<div class="drag-drop-area"><div class="word-column">`)
	for _, s := range sources {
		b.WriteString(DragSource(s))
	}
	b.WriteString(`</div>`)
	b.WriteString(TargetCollection(targets))
	b.WriteString(`</div>`)
	return b.String()
}

// BoardFor renders a snapshot as seen by one client's gesture state.
// A nil tracker renders the idle board.
func BoardFor(s game.Snapshot, tr *dnd.Tracker) string {
	var dragging, hovered string
	if tr != nil {
		dragging, hovered = tr.Dragging(), tr.Hovered()
	}
	return Board(dnd.Sources(s.Pool, dragging), dnd.Targets(s.Entries, hovered))
}

// Page renders the full document for a game.
func Page(s game.Snapshot) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
	b.WriteString(Title)
	b.WriteString(`</title><link rel="stylesheet" href="/static/style.css"></head><body><div class="App"><div class="content"><div class="title"><h1>`)
	b.WriteString(Title)
	b.WriteString(`</h1></div><div id="board" data-game="`)
	b.WriteString(htmlpkg.EscapeString(s.ID))
	b.WriteString(`">`)
	b.WriteString(BoardFor(s, nil))
	b.WriteString(`</div><div class="button-area"><button type="button" id="submit">Submit</button><button type="button" id="reset">Reset</button></div></div></div><script src="/static/app.js"></script></body></html>`)
	return b.String()
}
