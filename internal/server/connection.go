package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/streetbook/internal/protocol"
	"github.com/lox/streetbook/internal/session"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps a WebSocket client and its game session.
type Connection struct {
	conn      *websocket.Conn
	session   *session.Session
	send      chan []byte
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func NewConnection(conn *websocket.Conn, sess *session.Session, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		session: sess,
		send:    make(chan []byte, 64),
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start begins the pumps and pushes the opening snapshot.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
	c.sendState()
}

func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) enqueue(data []byte) error {
	defer func() {
		if r := recover(); r != nil {
			// The send channel may close concurrently during shutdown.
			c.logger.Debug("enqueue on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- data:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			return
		}

		c.handleFrame(data)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleFrame decodes a command, dispatches it, and answers with the
// resulting snapshot. Malformed frames get an error message back; the
// connection stays open.
func (c *Connection) handleFrame(data []byte) {
	cmd, err := protocol.DecodeCommand(data)
	if err != nil {
		c.sendError("%v", err)
		return
	}

	action, err := cmd.ToAction()
	if err != nil {
		c.sendError("%v", err)
		return
	}

	c.logger.Debug("dispatching", "action", cmd.Action)
	c.session.Dispatch(c.ctx, action)
	c.sendState()
}

func (c *Connection) sendState() {
	data, err := protocol.Encode(protocol.NewState(c.session.State()))
	if err != nil {
		c.logger.Error("encode state failed", "error", err)
		return
	}
	_ = c.enqueue(data)
}

func (c *Connection) sendError(format string, args ...any) {
	data, err := protocol.Encode(protocol.NewError(format, args...))
	if err != nil {
		c.logger.Error("encode error failed", "error", err)
		return
	}
	_ = c.enqueue(data)
}
