package room

// Broadcaster is the delivery interface the room emits through. It is
// defined here to break the import cycle between room and broadcast.
type Broadcaster interface {
	BroadcastToRoom(roomCode string, msgID uint16, data []byte) error
	SendToSession(sessionID string, msgID uint16, data []byte) error
}
