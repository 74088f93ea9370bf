//go:build !wasm
// +build !wasm

package live

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nogginhq/noggin/pkg/vdom"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 300 * time.Second
	pingPeriod = 54 * time.Second
)

// EventHandler receives decoded client events.
type EventHandler func(sessionID string, evt *Event)

// Server handles WebSocket connections for live updates and
// dev-reload broadcasts.
type Server struct {
	upgrader websocket.Upgrader
	sessions map[string]*Session
	onEvent  EventHandler
	logger   *slog.Logger
	mu       sync.RWMutex
}

// Session represents a live connection session
type Session struct {
	ID        string
	conn      *websocket.Conn
	lastSeq   uint64
	sendChan  chan []byte
	closeChan chan struct{}
	logger    *slog.Logger
	mu        sync.RWMutex
}

// NewServer creates a new live protocol server
func NewServer() *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		sessions: make(map[string]*Session),
		logger:   slog.Default().With("component", "live"),
	}
}

// SetEventHandler registers the callback for decoded client events.
func (s *Server) SetEventHandler(handler EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvent = handler
}

// HandleWebSocket handles WebSocket upgrade and session management.
// The session ID is the last path segment.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	if sessionID == "" {
		http.Error(w, "Session ID required", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	session := s.getOrCreateSession(sessionID, conn)
	go session.handleConnection(s)
}

func (s *Server) getOrCreateSession(sessionID string, conn *websocket.Conn) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, exists := s.sessions[sessionID]; exists {
		session.mu.Lock()
		if session.conn != nil {
			session.conn.Close()
		}
		session.conn = conn
		select {
		case <-session.closeChan:
			session.closeChan = make(chan struct{})
		default:
		}
		session.mu.Unlock()
		return session
	}

	session := &Session{
		ID:        sessionID,
		conn:      conn,
		sendChan:  make(chan []byte, 256),
		closeChan: make(chan struct{}),
		logger:    s.logger.With("session", sessionID),
	}
	s.sessions[sessionID] = session
	return session
}

// GetSession retrieves a session by ID
func (s *Server) GetSession(sessionID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[sessionID]
	return session, exists
}

// RemoveSession removes a session
func (s *Server) RemoveSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// BroadcastReload tells every connected client to reload the page.
// The dev server calls this after a successful rebuild.
func (s *Server) BroadcastReload() {
	frame := EncodeControl(ControlReload)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, session := range s.sessions {
		select {
		case session.sendChan <- frame:
		default:
			session.logger.Warn("send buffer full, dropping reload")
		}
	}
}

// SessionCount returns the number of connected sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Session) handleConnection(server *Server) {
	var closeOnce sync.Once
	cleanup := func() {
		closeOnce.Do(func() {
			s.conn.Close()
			select {
			case <-s.closeChan:
			default:
				close(s.closeChan)
			}
		})
	}
	defer cleanup()

	go s.writer()

	s.sendHello()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("unexpected close", "error", err)
			}
			break
		}

		if messageType == websocket.BinaryMessage {
			s.handleBinaryMessage(server, data)
		}
	}
}

func (s *Session) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-s.sendChan:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				s.logger.Warn("write failed", "error", err)
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-s.closeChan:
			return
		}
	}
}

func (s *Session) sendHello() {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)
	encoder.WriteBytes([]byte{byte(FrameControl)})
	encoder.WriteString(ControlHello)
	encoder.WriteUvarint(s.lastSeq)

	s.sendChan <- buf.Bytes()
}

func (s *Session) handleBinaryMessage(server *Server, data []byte) {
	if len(data) == 0 {
		return
	}

	switch MessageType(data[0]) {
	case FrameEvent:
		event, err := DecodeEvent(data)
		if err != nil {
			s.logger.Warn("bad event frame", "error", err)
			return
		}
		server.mu.RLock()
		handler := server.onEvent
		server.mu.RUnlock()
		if handler != nil {
			handler(s.ID, event)
		}

	case FrameControl:
		msgType, err := DecodeControl(data)
		if err != nil {
			s.logger.Warn("bad control frame", "error", err)
			return
		}
		if msgType == ControlPing {
			s.sendControl(ControlPong)
		}
	}
}

func (s *Session) sendControl(msgType string) {
	select {
	case s.sendChan <- EncodeControl(msgType):
	default:
	}
}

// SendPatches sends a batch of patches to the client
func (s *Session) SendPatches(patches []vdom.Patch) error {
	if len(patches) == 0 {
		return nil
	}

	data, err := EncodePatches(patches)
	if err != nil {
		return fmt.Errorf("encode patches: %w", err)
	}

	select {
	case s.sendChan <- data:
		s.mu.Lock()
		s.lastSeq++
		s.mu.Unlock()
		return nil
	default:
		return fmt.Errorf("send buffer full")
	}
}

// EncodePatches encodes patches to binary format
func EncodePatches(patches []vdom.Patch) ([]byte, error) {
	var buf bytes.Buffer
	encoder := NewEncoder(&buf)

	encoder.WriteBytes([]byte{byte(FramePatches)})
	encoder.WriteUvarint(uint64(len(patches)))

	for _, patch := range patches {
		encoder.WriteBytes([]byte{byte(patch.Op)})

		switch patch.Op {
		case vdom.OpReplaceText:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteString(patch.Value)

		case vdom.OpSetAttribute:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteString(patch.Key)
			encoder.WriteString(patch.Value)

		case vdom.OpRemoveAttribute:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteString(patch.Key)

		case vdom.OpRemoveNode:
			encoder.WriteUvarint(uint64(patch.NodeID))

		case vdom.OpInsertNode, vdom.OpMoveNode:
			encoder.WriteUvarint(uint64(patch.NodeID))
			encoder.WriteUvarint(uint64(patch.ParentID))
			encoder.WriteUvarint(uint64(patch.BeforeID))

		default:
			return nil, fmt.Errorf("unknown patch op: %v", patch.Op)
		}
	}

	return buf.Bytes(), nil
}
