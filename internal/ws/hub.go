// Package ws is the browser transport: frames out on /ws, commands in on
// /control, diagnostics on /diag.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/breath/internal/diagnostics"
	"github.com/coreman2200/breath/internal/element"
	"github.com/coreman2200/breath/internal/layout"
	"github.com/coreman2200/breath/internal/proximity"
	"github.com/coreman2200/breath/internal/render"
	"github.com/coreman2200/breath/internal/scene"
)

const writeWait = 200 * time.Millisecond

// Hub is a render.Driver that fans frames out to websocket clients. Frames
// are forwarded to Next first when set, so a hardware sink and the browser
// preview can run together.
type Hub struct {
	mu sync.RWMutex
	// wmu serialises writes to subscriber connections; gorilla allows one
	// concurrent writer per connection.
	wmu         sync.Mutex
	scene       *scene.Scene
	clients     map[*websocket.Conn]bool
	diagClients map[*websocket.Conn]bool
	startTime   time.Time
	lastSeq     uint64

	Next       render.Driver
	DriverName string

	up websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:     map[*websocket.Conn]bool{},
		diagClients: map[*websocket.Conn]bool{},
		startTime:   time.Now(),
		up:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Attach binds the scene that /control commands act on and routes its
// diagnostics to /diag listeners.
func (h *Hub) Attach(s *scene.Scene) {
	h.mu.Lock()
	h.scene = s
	h.mu.Unlock()
	s.OnDiag = h.PushDiag
}

func (h *Hub) Write(f render.Frame) error {
	var nextErr error
	if h.Next != nil {
		if nextErr = h.Next.Write(f); nextErr != nil {
			h.PushDiag(diag.New(diag.Err, diag.CodeSinkFailure, "Sink write failed").With("error", nextErr.Error()))
		}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.lastSeq = f.Seq
	h.mu.Unlock()
	h.broadcast(b)
	return nextErr
}

// Forget passes element removal on to Next.
func (h *Hub) Forget(id string) {
	if f, ok := h.Next.(render.Forgetter); ok {
		f.Forget(id)
	}
}

func (h *Hub) broadcast(b []byte) {
	h.wmu.Lock()
	defer h.wmu.Unlock()
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			log.Debug().Err(err).Msg("write frame")
		}
	}
}

// PushDiag sends d to every /diag listener.
func (h *Hub) PushDiag(d diag.Diagnostic) {
	b, err := json.Marshal(d)
	if err != nil {
		return
	}
	h.wmu.Lock()
	defer h.wmu.Unlock()
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.diagClients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		_ = c.WriteMessage(websocket.TextMessage, b)
	}
}

// subscribe upgrades the request and keeps conn in set until the peer goes
// away. hello runs before the first broadcast can reach conn. Inbound
// messages are discarded.
func (h *Hub) subscribe(w http.ResponseWriter, r *http.Request, set map[*websocket.Conn]bool, hello func(*websocket.Conn)) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if hello != nil {
		hello(conn)
	}
	h.mu.Lock()
	set[conn] = true
	h.mu.Unlock()
	go func() {
		defer func() {
			h.mu.Lock()
			delete(set, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	h.subscribe(w, r, h.clients, h.sendTopology)
}

func (h *Hub) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	h.subscribe(w, r, h.diagClients, nil)
}

// Control is one command from the page.
type Control struct {
	Type   string         `json:"type"`
	ID     string         `json:"id,omitempty"`
	Kind   string         `json:"kind,omitempty"`
	Rect   *layout.Rect   `json:"rect,omitempty"`
	Input  string         `json:"input,omitempty"` // "mouse" | "touch"
	X      float64        `json:"x,omitempty"`
	Y      float64        `json:"y,omitempty"`
	Points []layout.Point `json:"points,omitempty"`
	Value  bool           `json:"value,omitempty"`
}

// Reply acknowledges one Control.
type Reply struct {
	OK    bool   `json:"ok"`
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Hub) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Control
		if err := json.Unmarshal(data, &msg); err != nil {
			h.PushDiag(diag.New(diag.Warn, diag.CodeBadControl, "Malformed control message").With("error", err.Error()))
			h.reply(conn, Reply{Error: err.Error()})
			continue
		}
		h.reply(conn, h.apply(msg))
	}
}

func (h *Hub) reply(conn *websocket.Conn, rep Reply) {
	b, _ := json.Marshal(rep)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (h *Hub) apply(msg Control) Reply {
	h.mu.RLock()
	s := h.scene
	h.mu.RUnlock()
	rep := Reply{Type: msg.Type, ID: msg.ID}
	if s == nil {
		rep.Error = "no scene attached"
		return rep
	}
	var err error
	switch msg.Type {
	case "register":
		var kind element.Kind
		if kind, err = element.ParseKind(msg.Kind); err == nil {
			err = s.Add(msg.ID, kind, rectOrZero(msg.Rect))
		}
	case "remove":
		err = s.Remove(msg.ID)
	case "move":
		err = s.Move(msg.ID, rectOrZero(msg.Rect))
	case "pointer":
		in := proximity.Mouse
		if msg.Input == "touch" {
			in = proximity.Touch
		}
		s.Pointer(in, layout.Point{X: msg.X, Y: msg.Y})
	case "touch":
		if !s.Touch(msg.Points) {
			h.PushDiag(diag.New(diag.Warn, diag.CodeBadControl, "Touch without points"))
			rep.Error = "touch without points"
			return rep
		}
	case "leave":
		s.Leave()
	case "viewport":
		s.SetViewport(rectOrZero(msg.Rect))
	case "reduced_motion":
		s.SetReducedMotion(msg.Value)
	default:
		h.PushDiag(diag.New(diag.Warn, diag.CodeUnknownCmd, "Unknown control").With("type", msg.Type))
		rep.Error = "unknown control " + msg.Type
		return rep
	}
	if err != nil {
		rep.Error = err.Error()
		return rep
	}
	rep.OK = true
	return rep
}

func rectOrZero(r *layout.Rect) layout.Rect {
	if r == nil {
		return layout.Rect{}
	}
	return *r
}

func (h *Hub) sendTopology(conn *websocket.Conn) {
	h.mu.RLock()
	s := h.scene
	h.mu.RUnlock()
	top := map[string]any{"driver": h.DriverName}
	if s != nil {
		top["elements"] = s.Layout()
	}
	b, _ := json.Marshal(top)
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

func (h *Hub) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	s := h.scene
	resp := map[string]any{
		"frame_id":     h.lastSeq,
		"uptime_s":     time.Since(h.startTime).Seconds(),
		"clients":      len(h.clients),
		"diag_clients": len(h.diagClients),
		"driver":       h.DriverName,
	}
	h.mu.RUnlock()
	if s != nil {
		resp["scene"] = s.Snapshot()
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Routes registers the handlers on mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleFramesWS)
	mux.HandleFunc("/diag", h.HandleDiagWS)
	mux.HandleFunc("/control", h.HandleControlWS)
	mux.HandleFunc("/health", h.HandleHealth)
}
