package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cristianoliveira/notitray/internal/domain"
	"github.com/cristianoliveira/notitray/internal/logging"
)

// DefaultHeartbeatInterval is how often an open subscription pings the server.
const DefaultHeartbeatInterval = 30 * time.Second

// WebsocketChannel implements Channel over a websocket connection to the
// realtime provider. Each subscription joins a topic filtered server-side to
// the subscriber's own records and receives full-row INSERT/UPDATE payloads.
type WebsocketChannel struct {
	url               string
	token             string
	heartbeatInterval time.Duration
	dialer            *websocket.Dialer
	logger            logging.Logger
}

// WebsocketOption configures a WebsocketChannel.
type WebsocketOption func(*WebsocketChannel)

// WithHeartbeatInterval overrides the heartbeat cadence.
func WithHeartbeatInterval(d time.Duration) WebsocketOption {
	return func(c *WebsocketChannel) {
		if d > 0 {
			c.heartbeatInterval = d
		}
	}
}

// WithLogger sets the structured logger used by subscriptions.
func WithLogger(l logging.Logger) WebsocketOption {
	return func(c *WebsocketChannel) {
		c.logger = l
	}
}

// NewWebsocketChannel creates a websocket-backed push channel.
func NewWebsocketChannel(url, token string, opts ...WebsocketOption) *WebsocketChannel {
	c := &WebsocketChannel{
		url:               url,
		token:             token,
		heartbeatInterval: DefaultHeartbeatInterval,
		dialer:            websocket.DefaultDialer,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.GetGlobal()
	}
	return c
}

// wireMessage is the framing used by the realtime provider.
type wireMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Ref     string          `json:"ref,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// changePayload is the body of a row-change event.
type changePayload struct {
	Type   string          `json:"type"` // "INSERT" or "UPDATE"
	Record json.RawMessage `json:"record"`
}

// Wire event names.
const (
	eventJoin      = "phx_join"
	eventLeave     = "phx_leave"
	eventHeartbeat = "heartbeat"
	eventReply     = "phx_reply"
	eventError     = "phx_error"
	eventClose     = "phx_close"
	eventChanges   = "postgres_changes"

	heartbeatTopic = "phoenix"
	topicPrefix    = "notifications:"
)

// Open dials the realtime endpoint, joins the identity-scoped topic, and
// starts delivering events to sink until the handle is closed or the
// transport fails. Transport failures stop delivery without retry.
func (c *WebsocketChannel) Open(ctx context.Context, identity string, sink Sink) (Handle, error) {
	if identity == "" {
		return nil, fmt.Errorf("push: identity cannot be empty")
	}
	if sink == nil {
		return nil, fmt.Errorf("push: sink cannot be nil")
	}

	header := http.Header{}
	if c.token != "" {
		header.Set("Authorization", "Bearer "+c.token)
	}

	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("push: dial %s: status %d: %w", c.url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("push: dial %s: %w", c.url, err)
	}

	sub := &websocketHandle{
		conn:   conn,
		topic:  topicPrefix + identity,
		logger: c.logger.With("topic", topicPrefix+identity),
		done:   make(chan struct{}),
	}

	if err := sub.writeMessage(wireMessage{
		Topic: sub.topic,
		Event: eventJoin,
		Ref:   uuid.NewString(),
	}); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("push: join %s: %w", sub.topic, err)
	}

	sub.wg.Add(2)
	go sub.readLoop(sink)
	go sub.heartbeatLoop(c.heartbeatInterval)

	sub.logger.Debug("subscription opened")
	return sub, nil
}

// websocketHandle is one open subscription.
type websocketHandle struct {
	conn     *websocket.Conn
	topic    string
	logger   logging.Logger
	writeMu  sync.Mutex
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	once     sync.Once
}

// stop signals the heartbeat loop and drops the connection. Called from
// readLoop when the transport or the server terminates the subscription, so
// the goroutine pair tears down together without waiting on a write failure.
func (h *websocketHandle) stop() {
	h.stopOnce.Do(func() { close(h.done) })
	_ = h.conn.Close()
}

func (h *websocketHandle) writeMessage(msg wireMessage) error {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return h.conn.WriteJSON(msg)
}

// readLoop delivers events in transport order. Events that fail to decode
// are skipped with a warning; the subscription keeps reading.
func (h *websocketHandle) readLoop(sink Sink) {
	defer h.wg.Done()
	for {
		var msg wireMessage
		if err := h.conn.ReadJSON(&msg); err != nil {
			select {
			case <-h.done:
				return
			default:
			}
			h.logger.Warn("subscription read failed", "error", err)
			h.stop()
			return
		}

		switch msg.Event {
		case eventChanges:
			ev, ok := h.decodeChange(msg.Payload)
			if !ok {
				continue
			}
			sink(ev)
		case eventReply, eventHeartbeat:
			// Acknowledgements; nothing to deliver.
		case eventError, eventClose:
			h.logger.Warn("subscription closed by server", "event", msg.Event)
			h.stop()
			return
		default:
			h.logger.Debug("ignoring unknown event", "event", msg.Event)
		}
	}
}

func (h *websocketHandle) decodeChange(payload json.RawMessage) (Event, bool) {
	var change changePayload
	if err := json.Unmarshal(payload, &change); err != nil {
		h.logger.Warn("malformed change payload", "error", err)
		return Event{}, false
	}

	var eventType EventType
	switch strings.ToUpper(change.Type) {
	case "INSERT":
		eventType = EventInsert
	case "UPDATE":
		eventType = EventUpdate
	default:
		h.logger.Debug("ignoring change type", "type", change.Type)
		return Event{}, false
	}

	var record domain.Notification
	if err := json.Unmarshal(change.Record, &record); err != nil {
		h.logger.Warn("malformed change record", "error", err)
		return Event{}, false
	}
	if record.ID == "" {
		h.logger.Warn("change record missing id")
		return Event{}, false
	}

	return Event{Type: eventType, Record: record}, true
}

func (h *websocketHandle) heartbeatLoop(interval time.Duration) {
	defer h.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			msg := wireMessage{Topic: heartbeatTopic, Event: eventHeartbeat, Ref: uuid.NewString()}
			if err := h.writeMessage(msg); err != nil {
				h.logger.Debug("heartbeat failed", "error", err)
				return
			}
		}
	}
}

// Close leaves the topic and tears down the connection. Safe to call more
// than once.
func (h *websocketHandle) Close() error {
	h.once.Do(func() {
		h.stopOnce.Do(func() { close(h.done) })
		// Best-effort leave; the connection is going away regardless.
		_ = h.writeMessage(wireMessage{Topic: h.topic, Event: eventLeave, Ref: uuid.NewString()})
		h.writeMu.Lock()
		_ = h.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		h.writeMu.Unlock()
		_ = h.conn.Close()
		h.wg.Wait()
		h.logger.Debug("subscription closed")
	})
	return nil
}
