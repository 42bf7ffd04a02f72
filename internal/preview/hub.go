// Package preview streams resolved frame snapshots to WebSocket clients.
// Each storyboard gets a room with shared playback state; while playing,
// a ticker advances the playhead at the storyboard's frame rate and
// broadcasts the evaluated snapshot for every frame.
package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/framecraft/framecraft/internal/engine"
	"github.com/framecraft/framecraft/internal/timeline"
)

// SceneLoader builds the evaluable scene for a storyboard, typically from
// its latest stored snapshot.
type SceneLoader func(ctx context.Context, storyboardID string) (*engine.Scene, error)

type Room struct {
	storyboardID string
	clients      map[string]*Client // clientID -> client

	mu      sync.Mutex
	scene   *engine.Scene
	span    timeline.FrameRange
	frame   int
	playing bool
	stop    chan struct{}
}

func NewRoom(storyboardID string, scene *engine.Scene) *Room {
	span, ok := scene.FrameSpan()
	if !ok {
		span = timeline.FrameRange{Start: 1, End: 1}
	}
	return &Room{
		storyboardID: storyboardID,
		clients:      make(map[string]*Client),
		scene:        scene,
		span:         span,
		frame:        span.Start,
		stop:         make(chan struct{}),
	}
}

func (r *Room) state() StatePayload {
	fps := r.scene.FPS
	if fps <= 0 {
		fps = 24
	}
	return StatePayload{
		Frame:     r.frame,
		Playing:   r.playing,
		FPS:       fps,
		SpanStart: r.span.Start,
		SpanEnd:   r.span.End,
	}
}

type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // storyboardID -> room
	register   chan *Client
	unregister chan *Client
	loadScene  SceneLoader
}

func NewHub(loadScene SceneLoader) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		loadScene:  loadScene,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Stop halts playback in every room. Client connections are torn down by
// the server shutdown closing their contexts.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		close(room.stop)
		delete(h.rooms, id)
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.StoryboardID]
	h.mu.Unlock()

	if !ok {
		scene, err := h.loadScene(context.Background(), client.StoryboardID)
		if err != nil {
			slog.Warn("scene load failed", "storyboard", client.StoryboardID, "error", err)
			errPayload, _ := json.Marshal(ErrorPayload{Error: "storyboard cannot be previewed: " + err.Error()})
			client.Send(&Message{Type: TypeError, Payload: errPayload})
			close(client.send)
			return
		}

		h.mu.Lock()
		// Another client may have raced us here.
		room, ok = h.rooms[client.StoryboardID]
		if !ok {
			room = NewRoom(client.StoryboardID, scene)
			h.rooms[client.StoryboardID] = room
			go h.runPlayback(room)
		}
		h.mu.Unlock()
	}

	h.mu.Lock()
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	room.mu.Lock()
	state := room.state()
	room.mu.Unlock()

	statePayload, _ := json.Marshal(state)
	client.Send(&Message{
		Type:         TypeWelcome,
		StoryboardID: client.StoryboardID,
		ClientID:     client.ClientID,
		Payload:      statePayload,
	})
	h.sendFrame(room, client, state.Frame)

	slog.Info("preview client joined", "user", client.UserID, "storyboard", client.StoryboardID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.StoryboardID]
	if !ok {
		h.mu.Unlock()
		return
	}

	if _, registered := room.clients[client.ClientID]; !registered {
		h.mu.Unlock()
		return
	}
	delete(room.clients, client.ClientID)
	close(client.send)

	if len(room.clients) == 0 {
		close(room.stop)
		delete(h.rooms, client.StoryboardID)
	}
	h.mu.Unlock()

	slog.Info("preview client left", "user", client.UserID, "storyboard", client.StoryboardID)
}

// Invalidate replaces a room's scene after a new snapshot is saved.
// Playback state survives; the playhead is clamped to the new span.
func (h *Hub) Invalidate(ctx context.Context, storyboardID string) {
	h.mu.RLock()
	room, ok := h.rooms[storyboardID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	scene, err := h.loadScene(ctx, storyboardID)
	if err != nil {
		slog.Warn("scene reload failed", "storyboard", storyboardID, "error", err)
		return
	}

	room.mu.Lock()
	room.scene = scene
	if span, ok := scene.FrameSpan(); ok {
		room.span = span
	}
	if room.frame < room.span.Start {
		room.frame = room.span.Start
	}
	if room.frame > room.span.End {
		room.frame = room.span.End
	}
	state := room.state()
	room.mu.Unlock()

	h.broadcastState(room, state)
	h.broadcastFrame(room, state.Frame)
}

func (h *Hub) room(storyboardID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[storyboardID]
}

// Play resumes playback for a storyboard's room.
func (h *Hub) Play(storyboardID string) {
	room := h.room(storyboardID)
	if room == nil {
		return
	}
	room.mu.Lock()
	room.playing = true
	state := room.state()
	room.mu.Unlock()
	h.broadcastState(room, state)
}

// Pause freezes the playhead where it is.
func (h *Hub) Pause(storyboardID string) {
	room := h.room(storyboardID)
	if room == nil {
		return
	}
	room.mu.Lock()
	room.playing = false
	state := room.state()
	room.mu.Unlock()
	h.broadcastState(room, state)
}

// Seek moves the playhead, clamping it to the scene's frame span, and
// broadcasts the snapshot at the new position.
func (h *Hub) Seek(storyboardID string, frame int) {
	room := h.room(storyboardID)
	if room == nil {
		return
	}
	room.mu.Lock()
	if frame < room.span.Start {
		frame = room.span.Start
	}
	if frame > room.span.End {
		frame = room.span.End
	}
	room.frame = frame
	state := room.state()
	room.mu.Unlock()
	h.broadcastState(room, state)
	h.broadcastFrame(room, frame)
}

// runPlayback drives the room's playhead until the room empties out.
// Playback wraps around at the end of the frame span.
func (h *Hub) runPlayback(room *Room) {
	room.mu.Lock()
	fps := room.scene.FPS
	room.mu.Unlock()
	if fps <= 0 {
		fps = 24
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-room.stop:
			return
		case <-ticker.C:
			room.mu.Lock()
			if !room.playing {
				room.mu.Unlock()
				continue
			}
			room.frame++
			if room.frame > room.span.End {
				room.frame = room.span.Start
			}
			frame := room.frame
			room.mu.Unlock()

			h.broadcastFrame(room, frame)
		}
	}
}

func (h *Hub) broadcastState(room *Room, state StatePayload) {
	payload, _ := json.Marshal(state)
	h.broadcast(room, &Message{
		Type:         TypeState,
		StoryboardID: room.storyboardID,
		Payload:      payload,
	})
}

func (h *Hub) broadcastFrame(room *Room, frame int) {
	msg, ok := h.frameMessage(room, frame)
	if !ok {
		return
	}
	h.broadcast(room, msg)
}

func (h *Hub) sendFrame(room *Room, client *Client, frame int) {
	msg, ok := h.frameMessage(room, frame)
	if !ok {
		return
	}
	client.Send(msg)
}

func (h *Hub) frameMessage(room *Room, frame int) (*Message, bool) {
	room.mu.Lock()
	snap, err := room.scene.Snapshot(frame)
	room.mu.Unlock()
	if err != nil {
		slog.Warn("snapshot failed", "storyboard", room.storyboardID, "frame", frame, "error", err)
		return nil, false
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		slog.Error("marshal snapshot", "error", err)
		return nil, false
	}

	return &Message{
		Type:         TypeFrameUpdate,
		StoryboardID: room.storyboardID,
		Payload:      payload,
	}, true
}

func (h *Hub) broadcast(room *Room, msg *Message) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
