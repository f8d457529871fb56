package bridge

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/garapadev/garapagent/internal/chat"
	"github.com/garapadev/garapagent/internal/workspace"
)

// Frame is the wire unit in both directions. Inbound types: "hello" (opens
// a conversation, carries the workspace root) and "message" (user text plus
// current editor context). Outbound types: "markdown", "fragment",
// "progress" and "done" (end of one message's processing).
type Frame struct {
	Type       string `json:"type"`
	Text       string `json:"text,omitempty"`
	Root       string `json:"root,omitempty"`
	ActiveFile string `json:"active_file,omitempty"`
	Language   string `json:"language,omitempty"`
	Selection  string `json:"selection,omitempty"`
}

// Server exposes the assistant to connected editors over a websocket. Each
// connection is one conversation with its own engine; frames on a
// connection are processed strictly in order.
type Server struct {
	addr      string
	newEngine func(info workspace.Info) *chat.Engine
	upgrader  websocket.Upgrader
}

func NewServer(addr string, newEngine func(info workspace.Info) *chat.Engine) *Server {
	return &Server{
		addr:      addr,
		newEngine: newEngine,
		upgrader: websocket.Upgrader{
			// The bridge binds to loopback; origin checks add nothing there.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)

	server := &http.Server{Addr: s.addr, Handler: mux}
	log.Printf("🌉 Bridge server listening on %s", s.addr)

	go func() {
		<-ctx.Done()
		server.Close()
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Handler exposes the websocket endpoint for embedding in tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade error: %v", err)
		return
	}
	defer conn.Close()

	var hello Frame
	if err := conn.ReadJSON(&hello); err != nil || hello.Type != "hello" {
		log.Printf("Bridge client did not send hello: %v", err)
		return
	}

	info := workspace.NewInfo(hello.Root)
	engine := s.newEngine(info)
	if engine == nil {
		log.Printf("⚠️ No engine for workspace %q, closing connection", hello.Root)
		return
	}
	log.Printf("🔌 Editor connected, workspace %q", hello.Root)

	for {
		var frame Frame
		if err := conn.ReadJSON(&frame); err != nil {
			log.Printf("Bridge connection closed: %v", err)
			return
		}
		if frame.Type != "message" {
			continue
		}

		info.ActiveFile = frame.ActiveFile
		info.Language = frame.Language
		info.Selection = frame.Selection
		engine.SetWorkspaceInfo(info)

		stream := &wsStream{conn: conn}
		if err := engine.HandleMessage(r.Context(), frame.Text, stream); err != nil {
			log.Printf("⚠️ Bridge message handling failed: %v", err)
		}
		if err := conn.WriteJSON(Frame{Type: "done"}); err != nil {
			return
		}
	}
}

// wsStream renders engine output as outbound frames. Writes are sequential
// per connection, which is what the websocket requires.
type wsStream struct {
	conn *websocket.Conn
}

func (s *wsStream) Markdown(text string) {
	s.write(Frame{Type: "markdown", Text: text})
}

func (s *wsStream) Fragment(delta string) {
	s.write(Frame{Type: "fragment", Text: delta})
}

func (s *wsStream) Progress(text string) {
	s.write(Frame{Type: "progress", Text: text})
}

func (s *wsStream) write(frame Frame) {
	if err := s.conn.WriteJSON(frame); err != nil {
		log.Printf("Bridge write failed: %v", err)
	}
}
