package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	feedQueue         = 16
	feedWriteDeadline = 5 * time.Second
	feedReadDeadline  = 60 * time.Second
	feedPingInterval  = 30 * time.Second
)

// FeedEvent is pushed to feed subscribers when a claim sets a new weekly
// best.
type FeedEvent struct {
	Type   string `json:"type"`
	WeekID string `json:"weekId"`
	Wallet string `json:"wallet"`
	Score  int64  `json:"score"`
	At     int64  `json:"at"`
}

// Feed broadcasts new weekly bests over websockets.
type Feed struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

// NewFeed creates an empty feed.
func NewFeed(logger *log.Logger) *Feed {
	if logger == nil {
		logger = log.Default()
	}
	return &Feed{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 4 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subs: make(map[chan []byte]struct{}),
	}
}

// Attach subscribes the feed to accepted claims of s.
func (f *Feed) Attach(s *Service) {
	s.OnAccepted(func(a Accepted) {
		if !a.NewBest {
			return
		}
		f.Publish(FeedEvent{
			Type:   "new_best",
			WeekID: a.WeekID,
			Wallet: a.Wallet,
			Score:  a.Score,
			At:     a.At.UnixMilli(),
		})
	})
}

// Publish sends ev to every subscriber. Slow subscribers drop events.
func (f *Feed) Publish(ev FeedEvent) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- b:
		default:
		}
	}
}

// Subscribers returns the number of connected clients.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

func (f *Feed) subscribe() chan []byte {
	ch := make(chan []byte, feedQueue)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	return ch
}

func (f *Feed) unsubscribe(ch chan []byte) {
	f.mu.Lock()
	delete(f.subs, ch)
	f.mu.Unlock()
}

// ServeHTTP upgrades the request and streams events until the client
// goes away.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	out := f.subscribe()
	defer f.unsubscribe(out)
	f.logger.Debug("feed subscriber joined", "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		ping := time.NewTicker(feedPingInterval)
		defer ping.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case b := <-out:
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteDeadline))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					cancel()
					return
				}
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(feedWriteDeadline)); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedReadDeadline))
	})
	for {
		_ = conn.SetReadDeadline(time.Now().Add(feedReadDeadline))
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	f.logger.Debug("feed subscriber left", "remote", r.RemoteAddr)
}
