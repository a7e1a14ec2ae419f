package network

import (
	"encoding/binary"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Frame layout: 2 bytes msgID, 2 bytes payload length, then the JSON
// payload. Every message in both directions uses this shape.
const headerSize = 4

var ErrMalformedFrame = errors.New("malformed frame")

// Packet is one decoded frame.
type Packet struct {
	MsgID  uint16
	Data   []byte
	Length uint16
}

type Connection interface {
	Send(msgID uint16, data []byte) error
	Close() error
	RemoteAddr() net.Addr
	SetHeartbeat(interval time.Duration)
	ReadPacket() (*Packet, error)
}

// EncodeFrame serializes one message into the wire layout.
func EncodeFrame(msgID uint16, data []byte) []byte {
	frame := make([]byte, headerSize+len(data))
	binary.BigEndian.PutUint16(frame[0:2], msgID)
	binary.BigEndian.PutUint16(frame[2:4], uint16(len(data)))
	copy(frame[headerSize:], data)
	return frame
}

// DecodeFrame parses one wire frame. The declared length wins over any
// trailing bytes.
func DecodeFrame(frame []byte) (*Packet, error) {
	if len(frame) < headerSize {
		return nil, ErrMalformedFrame
	}

	length := binary.BigEndian.Uint16(frame[2:4])
	if len(frame) < headerSize+int(length) {
		return nil, ErrMalformedFrame
	}

	return &Packet{
		MsgID:  binary.BigEndian.Uint16(frame[0:2]),
		Length: length,
		Data:   frame[headerSize : headerSize+int(length)],
	}, nil
}

// WSConnection frames packets over one websocket. Writes are
// serialized; broadcast fan-out hits the same connection from
// different rooms.
type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	heartbeat time.Duration
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

func (c *WSConnection) Send(msgID uint16, data []byte) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteMessage(websocket.BinaryMessage, EncodeFrame(msgID, data))
}

func (c *WSConnection) ReadPacket() (*Packet, error) {
	_, frame, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	// Any inbound traffic counts as liveness.
	if c.heartbeat > 0 {
		c.conn.SetReadDeadline(time.Now().Add(c.heartbeat * 2))
	}

	return DecodeFrame(frame)
}

// SetHeartbeat arms the read deadline: a client that goes silent for
// two intervals gets its read loop broken.
func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	c.heartbeat = interval
	c.conn.SetReadDeadline(time.Now().Add(interval * 2))
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
