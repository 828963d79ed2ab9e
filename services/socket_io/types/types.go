package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SessionsRoom is the room every subscribed gateway joins to receive
// session lifecycle events.
const SessionsRoom = "sessions"

// SocketServer is a struct that contains the socket.io server and a map of
// socket connections, keyed by the authenticated platform user id.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track user id -> socket connections
	UserConnections map[string]*socket.Socket
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(userID string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[userID] = client
}

func (s *SocketServer) RemoveConnection(userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, userID)
}

func (s *SocketServer) GetConnection(userID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	client, exists := s.UserConnections[userID]
	return client, exists
}

// BroadcastToSessions emits a session lifecycle event (session_created,
// session_updated, session_deleted) to every subscribed gateway so the
// embeds they rendered can be refreshed.
func (s *SocketServer) BroadcastToSessions(event string, payload interface{}) {
	if s == nil || s.Sio_server == nil {
		return
	}
	s.Sio_server.To(socket.Room(SessionsRoom)).Emit(event, payload)
}
