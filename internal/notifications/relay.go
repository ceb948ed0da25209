// Package notifications runs the chat relay: it tracks live websocket
// connections per user and routes chat frames between them, fanning out
// across instances through Redis when available.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/validation"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	// Max connections per authenticated user
	maxConnsPerUser = 12
	// Max total connections
	maxTotalConns = 10000

	// ConnectedMessage greets every new connection.
	ConnectedMessage = "Connected to chat server"

	systemSenderID   = "system"
	systemSenderName = "System"
)

var (
	ErrServerFull = errors.New("server connection limit reached")
	ErrUserFull   = errors.New("user connection limit reached")
)

// SessionResolver maps a session token to a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uint, error)
}

// UserLookup loads sender profiles.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type RelayConfig struct {
	Sessions SessionResolver
	Users    UserLookup
	Notifier *Notifier
	// Targeted reports whether frames from userID that name a receiver go
	// only to that receiver. Nil means always.
	Targeted func(userID uint) bool
}

// Relay maps userID -> set of Clients. Guests are kept under user id 0.
type Relay struct {
	mu         sync.RWMutex
	conns      map[uint]map[*Client]struct{}
	totalConns int

	sessions   SessionResolver
	users      UserLookup
	notifier   *Notifier
	targeted   func(uint) bool
	instanceID string
	log        *observability.RelayLogger
	now        func() time.Time
}

type inboundFrame struct {
	Type       string `json:"type"`
	Content    string `json:"content"`
	SessionID  string `json:"sessionId"`
	ReceiverID *uint  `json:"receiverId"`
}

// fanoutFrame wraps an envelope published to other instances.
type fanoutFrame struct {
	Origin   string          `json:"origin"`
	Envelope json.RawMessage `json:"envelope"`
}

func NewRelay(cfg RelayConfig) *Relay {
	return &Relay{
		conns:      make(map[uint]map[*Client]struct{}),
		sessions:   cfg.Sessions,
		users:      cfg.Users,
		notifier:   cfg.Notifier,
		targeted:   cfg.Targeted,
		instanceID: uuid.NewString(),
		log:        observability.NewRelayLogger("chat relay"),
		now:        time.Now,
	}
}

// Name returns a human-readable identifier for this hub.
func (r *Relay) Name() string { return "chat relay" }

// Register a connection for a given userID. Returns the Client or error if limits exceeded.
func (r *Relay) Register(userID uint, conn *websocket.Conn) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.totalConns >= maxTotalConns {
		return nil, ErrServerFull
	}

	m, ok := r.conns[userID]
	if !ok {
		m = make(map[*Client]struct{})
		r.conns[userID] = m
	}
	if userID != 0 && len(m) >= maxConnsPerUser {
		return nil, ErrUserFull
	}

	client := newClient(r, conn, userID, func(c *Client, raw []byte) {
		r.HandleIncoming(context.Background(), c, raw)
	})
	m[client] = struct{}{}
	r.totalConns++
	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// UnregisterClient drops the client and closes its send buffer.
func (r *Relay) UnregisterClient(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.conns[client.UserID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	if len(m) == 0 {
		delete(r.conns, client.UserID)
	}
	r.totalConns--
	observability.WebSocketConnectionsTotal.Dec()
	close(client.Send)
}

// Serve runs a connection until the peer disconnects.
func (r *Relay) Serve(ctx context.Context, conn *websocket.Conn, userID uint) error {
	client, err := r.Register(userID, conn)
	if err != nil {
		return err
	}
	r.log.Connected(ctx, userID, client.ID, r.ConnectionCount())

	if hello, err := r.marshal(models.ChatEnvelope{
		Type:      models.EnvelopeSystem,
		Content:   ConnectedMessage,
		Timestamp: r.now().UTC(),
	}); err == nil {
		client.TrySend(hello)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		client.writeLoop()
	}()
	client.readLoop()
	<-done

	r.log.Disconnected(ctx, userID, client.ID, "closed", client.ConnectedAt)
	return nil
}

// HandleIncoming relays one chat frame from c. System frames and malformed
// input are ignored.
func (r *Relay) HandleIncoming(ctx context.Context, c *Client, raw []byte) {
	var in inboundFrame
	if err := json.Unmarshal(raw, &in); err != nil {
		slog.DebugContext(ctx, "relay: dropping malformed frame", "user_id", c.UserID, "conn_id", c.ID, "error", err)
		return
	}
	if in.Type != models.EnvelopeMessage {
		return
	}
	content := strings.TrimSpace(in.Content)
	if err := validation.ValidateMessage(content, validation.MessageMaxLength); err != nil {
		return
	}

	env := models.ChatEnvelope{
		Type:       models.EnvelopeMessage,
		Content:    content,
		ReceiverID: in.ReceiverID,
		Timestamp:  r.now().UTC(),
	}
	senderID := r.resolveSender(ctx, c, in.SessionID)
	env.SenderID, env.SenderName = r.senderIdentity(ctx, senderID)

	payload, err := r.marshal(env)
	if err != nil {
		r.log.Failed(ctx, c.UserID, err, "deliver")
		return
	}
	if in.ReceiverID != nil && r.isTargeted(senderID) {
		r.deliverUser(*in.ReceiverID, payload, c)
		observability.MessageThroughput.WithLabelValues("targeted").Inc()
		r.publish(ctx, in.ReceiverID, payload)
		return
	}
	r.deliverAll(payload, c)
	observability.MessageThroughput.WithLabelValues("broadcast").Inc()
	r.publish(ctx, nil, payload)
}

func (r *Relay) resolveSender(ctx context.Context, c *Client, sessionID string) uint {
	if sessionID != "" && r.sessions != nil {
		if id, err := r.sessions.Resolve(ctx, sessionID); err == nil {
			return id
		}
	}
	return c.UserID
}

func (r *Relay) senderIdentity(ctx context.Context, userID uint) (any, string) {
	if userID == 0 || r.users == nil {
		return systemSenderID, systemSenderName
	}
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return systemSenderID, systemSenderName
	}
	return user.ID, user.Username
}

func (r *Relay) isTargeted(userID uint) bool {
	return r.targeted == nil || r.targeted(userID)
}

// PushToUser delivers env to every connection of userID on every instance.
func (r *Relay) PushToUser(ctx context.Context, userID uint, env models.ChatEnvelope) error {
	payload, err := r.marshal(env)
	if err != nil {
		return err
	}
	r.deliverUser(userID, payload, nil)
	observability.MessageThroughput.WithLabelValues("push").Inc()
	return r.publish(ctx, &userID, payload)
}

// Announce broadcasts a system message to everyone.
func (r *Relay) Announce(ctx context.Context, content string) error {
	payload, err := r.marshal(models.ChatEnvelope{
		Type:      models.EnvelopeSystem,
		Content:   content,
		Timestamp: r.now().UTC(),
	})
	if err != nil {
		return err
	}
	r.deliverAll(payload, nil)
	return r.publish(ctx, nil, payload)
}

func (r *Relay) deliverUser(userID uint, payload []byte, exclude *Client) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sent := 0
	for c := range r.conns[userID] {
		if c != exclude && c.TrySend(payload) {
			sent++
		}
	}
	return sent
}

func (r *Relay) deliverAll(payload []byte, exclude *Client) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sent := 0
	for _, clients := range r.conns {
		for c := range clients {
			if c != exclude && c.TrySend(payload) {
				sent++
			}
		}
	}
	return sent
}

func (r *Relay) publish(ctx context.Context, userID *uint, payload []byte) error {
	if !r.notifier.Enabled() {
		return nil
	}
	frame, err := json.Marshal(fanoutFrame{Origin: r.instanceID, Envelope: payload})
	if err != nil {
		return err
	}
	if userID != nil {
		err = r.notifier.PublishUser(ctx, *userID, string(frame))
	} else {
		err = r.notifier.PublishBroadcast(ctx, string(frame))
	}
	if err != nil {
		r.log.Failed(ctx, 0, err, "publish")
	}
	return err
}

// StartWiring subscribes to frames published by other instances.
func (r *Relay) StartWiring(ctx context.Context) error {
	return r.notifier.StartPatternSubscriber(ctx, r.handleRemote)
}

func (r *Relay) handleRemote(channel, payload string) {
	var frame fanoutFrame
	if err := json.Unmarshal([]byte(payload), &frame); err != nil || frame.Origin == r.instanceID {
		return
	}
	observability.MessageThroughput.WithLabelValues("remote").Inc()
	if channel == broadcastChannel {
		r.deliverAll(frame.Envelope, nil)
		return
	}
	if userID, ok := parseUserChannel(channel); ok {
		r.deliverUser(userID, frame.Envelope, nil)
	}
}

// IsOnline reports whether a user has at least one live connection here.
func (r *Relay) IsOnline(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// ConnectionCount returns the number of live connections on this instance.
func (r *Relay) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalConns
}

func (r *Relay) marshal(env models.ChatEnvelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshal envelope: %w", err)
	}
	return data, nil
}

// Shutdown closes every send buffer; each write pump then sends a close
// frame and drops its connection.
func (r *Relay) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, clients := range r.conns {
		for client := range clients {
			close(client.Send)
			observability.WebSocketConnectionsTotal.Dec()
		}
	}
	r.log.Lifecycle(ctx, "shutdown", "connections", r.totalConns)
	r.conns = make(map[uint]map[*Client]struct{})
	r.totalConns = 0
	return nil
}
