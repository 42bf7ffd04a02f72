package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/coder/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Client is one viewer's connection to a preview room. Inbound traffic is
// limited to playback commands; everything else the client receives comes
// from the room (state changes and frame snapshots).
type Client struct {
	hub          *Hub
	conn         *websocket.Conn
	send         chan *Message
	UserID       string
	StoryboardID string
	ClientID     string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID, storyboardID, clientID string) *Client {
	return &Client{
		hub:          hub,
		conn:         conn,
		send:         make(chan *Message, 256),
		UserID:       userID,
		StoryboardID: storyboardID,
		ClientID:     clientID,
	}
}

// ReadPump decodes playback commands and applies them to the client's room.
// It returns when the connection drops, unregistering the client.
func (c *Client) ReadPump(ctx context.Context) {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "user", c.UserID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("malformed message")
			continue
		}

		switch msg.Type {
		case TypePlay:
			c.hub.Play(c.StoryboardID)
		case TypePause:
			c.hub.Pause(c.StoryboardID)
		case TypeSeek:
			var seek SeekPayload
			if err := json.Unmarshal(msg.Payload, &seek); err != nil {
				c.sendError("seek requires a frame number")
				continue
			}
			c.hub.Seek(c.StoryboardID, seek.Frame)
		default:
			c.sendError("unsupported command: " + msg.Type)
		}
	}
}

// WritePump drains the send queue onto the wire and keeps the connection
// alive with pings. Messages are marshalled here, once per client, so a
// slow marshal never blocks the room's broadcast path.
func (c *Client) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				slog.Error("marshal message", "error", err, "type", msg.Type)
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err = c.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "user", c.UserID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// Send queues a message for delivery. A client that cannot keep up with
// playback loses frames rather than stalling the room.
func (c *Client) Send(msg *Message) {
	select {
	case c.send <- msg:
	default:
		slog.Warn("client send buffer full, dropping message", "user", c.UserID, "type", msg.Type)
	}
}

func (c *Client) sendError(reason string) {
	payload, _ := json.Marshal(ErrorPayload{Error: reason})
	c.Send(&Message{Type: TypeError, StoryboardID: c.StoryboardID, Payload: payload})
}
