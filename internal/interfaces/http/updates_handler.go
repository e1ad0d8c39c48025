package httpinterface

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const feedWriteTimeout = 10 * time.Second

// UpdatesFeed broadcasts every published event to the websocket clients
// connected to the live updates endpoint. It implements ports.Publisher so
// it can be composed with the webhook pubsub service.
type UpdatesFeed struct {
	upgrader websocket.Upgrader

	lock  sync.Mutex
	conns map[*websocket.Conn]struct{}
}

type feedEnvelope struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

func NewUpdatesFeed() *UpdatesFeed {
	return &UpdatesFeed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (f *UpdatesFeed) Publish(topic string, message string) error {
	buf, err := json.Marshal(feedEnvelope{
		Topic:   topic,
		Payload: json.RawMessage(message),
	})
	if err != nil {
		return err
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	for conn := range f.conns {
		conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, buf); err != nil {
			delete(f.conns, conn)
			conn.Close()
		}
	}
	return nil
}

func (f *UpdatesFeed) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("updates feed upgrade failed")
		return
	}

	f.lock.Lock()
	f.conns[conn] = struct{}{}
	f.lock.Unlock()

	// clients never send messages, the read loop just detects closes
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.remove(conn)
				return
			}
		}
	}()
}

func (f *UpdatesFeed) remove(conn *websocket.Conn) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if _, ok := f.conns[conn]; ok {
		delete(f.conns, conn)
		conn.Close()
	}
}

func (f *UpdatesFeed) closeAll() {
	f.lock.Lock()
	defer f.lock.Unlock()
	for conn := range f.conns {
		conn.Close()
		delete(f.conns, conn)
	}
}
