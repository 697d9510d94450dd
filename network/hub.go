// Package network serves a read-only websocket feed of game snapshots
package network

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/snake/engine"
	"github.com/lixenwraith/snake/status"
)

// Hub fans snapshots out to spectators. It implements engine.Observer;
// Observe never blocks the game loop and drops frames when the hub lags
type Hub struct {
	cfg *Config

	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	// Observe runs on the loop goroutine only
	seq       uint64
	lastGame  string
	lastState engine.State

	// Replayed to new spectators so they draw immediately
	mu     sync.Mutex
	latest []byte

	statClients *atomic.Int64
	statSent    *atomic.Int64
	statDropped *atomic.Int64
}

// NewHub creates a hub; call Run to start fan-out
func NewHub(cfg *Config, reg *status.Registry) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		cfg:         cfg,
		clients:     make(map[*Client]struct{}),
		broadcast:   make(chan []byte, cfg.BroadcastQueueSize),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		statClients: reg.Ints.Get("network.spectators"),
		statSent:    reg.Ints.Get("network.messages_sent"),
		statDropped: reg.Ints.Get("network.messages_dropped"),
	}
}

// Run handles registration and broadcast until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			log.Printf("network: hub stopped")
			return

		case c := <-h.register:
			if len(h.clients) >= h.cfg.MaxSpectators {
				log.Printf("network: spectator limit %d reached", h.cfg.MaxSpectators)
				close(c.send)
				continue
			}
			h.clients[c] = struct{}{}
			h.statClients.Store(int64(len(h.clients)))

			h.mu.Lock()
			latest := h.latest
			h.mu.Unlock()
			if latest != nil {
				c.send <- latest
			}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
					h.statSent.Add(1)
				default:
					// Slow spectator
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	h.statClients.Store(int64(len(h.clients)))
}

// Observe implements engine.Observer
func (h *Hub) Observe(s engine.Snapshot) {
	now := time.Now()

	h.seq++
	snap := s
	h.publish(Message{Type: MsgSnapshot, Seq: h.seq, SentAt: now, Snapshot: &snap}, true)

	ended := s.State == engine.StateOver && (h.lastState != engine.StateOver || h.lastGame != s.GameID)
	h.lastGame, h.lastState = s.GameID, s.State
	if !ended {
		return
	}

	h.seq++
	h.publish(Message{
		Type:   MsgGameOver,
		Seq:    h.seq,
		SentAt: now,
		GameOver: &GameOverEvent{
			GameID:    s.GameID,
			Score:     s.Score,
			HighScore: s.HighScore,
			Length:    len(s.Snake),
			Ticks:     s.Tick,
		},
	}, false)
}

func (h *Hub) publish(m Message, keep bool) {
	payload, err := json.Marshal(m)
	if err != nil {
		log.Printf("network: encode %s: %v", m.Type, err)
		return
	}

	if keep {
		h.mu.Lock()
		h.latest = payload
		h.mu.Unlock()
	}

	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		h.statDropped.Add(1)
	}
}

// addClient hands a connection to Run; false once the hub has stopped
func (h *Hub) addClient(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) removeClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
