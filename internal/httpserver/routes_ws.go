// internal/httpserver/routes_ws.go
//
// Live gesture stream for one game.
//
// Inbound (client → server), JSON:
//   {"type":"dragStart","word":W}  begin dragging W (ignored unless W is in the pool)
//   {"type":"dragOver","target":T} pointer entered target T
//   {"type":"dragLeave","target":T}
//   {"type":"drop","target":T}     commit a match attempt (payload, T)
//   {"type":"dragEnd"}             gesture abandoned or finished
//   {"type":"reset"} / {"type":"submit"}
//
// Outbound (server → client): a "state" message with target colors, plus the
// rendered board whenever its structure changed, plus the completion message
// when there is one to show.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordmatch/internal/dnd"
	"github.com/robalobadob/wordmatch/internal/game"
	"github.com/robalobadob/wordmatch/internal/live"
	"github.com/robalobadob/wordmatch/internal/render"
)

const (
	wsWriteWait    = 5 * time.Second
	wsMaxMessage   = 4096
	wsReplyBacklog = 16
)

// Inbound gesture types.
const (
	msgDragStart = "dragStart"
	msgDragOver  = "dragOver"
	msgDragLeave = "dragLeave"
	msgDrop      = "drop"
	msgDragEnd   = "dragEnd"
	msgReset     = "reset"
	msgSubmit    = "submit"
)

type gestureMsg struct {
	Type   string `json:"type"`
	Word   string `json:"word,omitempty"`
	Target string `json:"target,omitempty"`
}

type targetView struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

type stateMsg struct {
	Type    string       `json:"type"`
	Status  game.Status  `json:"status"`
	Solved  int          `json:"solved"`
	Total   int          `json:"total"`
	Targets []targetView `json:"targets"`
	HTML    string       `json:"html,omitempty"`
	Message string       `json:"message,omitempty"`
}

// encodeState builds an outbound message for snap as seen through tr.
// withBoard includes the rendered board. It returns nil if encoding fails.
func encodeState(snap game.Snapshot, tr *dnd.Tracker, withBoard bool, message string) []byte {
	var hovered string
	if tr != nil {
		hovered = tr.Hovered()
	}
	targets := dnd.Targets(snap.Entries, hovered)
	msg := stateMsg{
		Type:    "state",
		Status:  snap.Status,
		Solved:  snap.Solved,
		Total:   snap.Total,
		Targets: make([]targetView, len(targets)),
		Message: message,
	}
	for i, t := range targets {
		msg.Targets[i] = targetView{Label: t.Label, Color: t.Color()}
	}
	if withBoard {
		msg.HTML = render.BoardFor(snap, tr)
	}
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("gameId", snap.ID).Msg("encode state")
		return nil
	}
	return b
}

// publishBoard pushes an idle-rendered board to every socket of gameID but skip.
func (s *Server) publishBoard(gameID string, snap game.Snapshot, message string, skip *live.Subscriber) {
	if msg := encodeState(snap, nil, true, message); msg != nil {
		s.hub.Publish(gameID, msg, skip)
	}
}

// handleSocket upgrades the connection and runs the gesture loop.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	g := gameFrom(r)
	logger := hlog.FromRequest(r).With().Str("gameId", g.ID).Logger()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsMaxMessage)

	sub := s.hub.Subscribe(g.ID)
	defer s.hub.Unsubscribe(sub)
	s.metrics.LiveSockets.Inc()
	defer s.metrics.LiveSockets.Dec()
	logger.Info().Msg("socket open")
	defer func() { logger.Info().Msg("socket closed") }()

	replies := make(chan []byte, wsReplyBacklog)
	done := make(chan struct{})
	go writeLoop(conn, replies, sub.C, done)
	defer func() {
		close(replies)
		<-done
	}()

	var tr dnd.Tracker
	if first := encodeState(g.Snapshot(), &tr, true, ""); first != nil {
		replies <- first
	}

	ctx := logger.WithContext(r.Context())
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("socket read")
			}
			return
		}
		var m gestureMsg
		if err := json.Unmarshal(data, &m); err != nil {
			logger.Debug().Err(err).Msg("bad gesture message")
			continue
		}
		reply, broadcast := s.handleGesture(ctx, g, &tr, m)
		if reply != nil {
			replies <- reply
		}
		if broadcast != nil {
			s.hub.Publish(g.ID, broadcast, sub)
		}
	}
}

// handleGesture applies one inbound message. It returns the reply for this
// connection and, when the board changed, the update for other connections.
func (s *Server) handleGesture(ctx context.Context, g *game.Game, tr *dnd.Tracker, m gestureMsg) (reply, broadcast []byte) {
	logger := zerolog.Ctx(ctx)

	switch m.Type {
	case msgDragStart:
		if !g.InPool(m.Word) {
			logger.Debug().Str("word", m.Word).Msg("drag of a word not in the pool")
			return nil, nil
		}
		tr.Start(m.Word)
		return nil, nil

	case msgDragOver:
		if tr.Over(m.Target) {
			return encodeState(g.Snapshot(), tr, false, ""), nil
		}
		return nil, nil

	case msgDragLeave:
		if tr.Leave(m.Target) {
			return encodeState(g.Snapshot(), tr, false, ""), nil
		}
		return nil, nil

	case msgDrop:
		var (
			out     game.Outcome
			dropErr error
		)
		handled := tr.Drop(m.Target, func(name, target string) {
			out, dropErr = s.drop(ctx, g, name, target)
		})
		if !handled || dropErr != nil || !out.Matched {
			return encodeState(g.Snapshot(), tr, false, ""), nil
		}
		var message string
		if out.Completed {
			message = game.CompletionMessage
		}
		return encodeState(out.Snapshot, tr, true, message), encodeState(out.Snapshot, nil, true, message)

	case msgDragEnd:
		if tr.Dragging() == "" && tr.Hovered() == "" {
			return nil, nil
		}
		tr.End()
		return encodeState(g.Snapshot(), tr, false, ""), nil

	case msgReset:
		tr.End()
		snap := s.reset(ctx, g)
		return encodeState(snap, tr, true, ""), encodeState(snap, nil, true, "")

	case msgSubmit:
		rep := g.Check()
		return encodeState(g.Snapshot(), tr, false, rep.Message), nil

	default:
		logger.Debug().Str("type", m.Type).Msg("unknown gesture message")
		return nil, nil
	}
}

// writeLoop is the connection's single writer. It drains replies until the
// reader closes it, forwarding hub updates in between.
func writeLoop(conn *websocket.Conn, replies <-chan []byte, updates <-chan []byte, done chan<- struct{}) {
	defer close(done)
	for {
		var msg []byte
		select {
		case m, ok := <-replies:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(wsWriteWait))
				return
			}
			msg = m
		case m, ok := <-updates:
			if !ok {
				updates = nil
				continue
			}
			msg = m
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			// Unblocks the reader; keep draining until it closes replies.
			_ = conn.Close()
		}
	}
}
