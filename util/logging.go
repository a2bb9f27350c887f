package util

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var LoggingEnabled = false

// LogF writes a debug message to stderr and to every client of the log sink.
func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	message := fmt.Sprintf(format, args...)
	log.Println(message)
	logs.broadcast([]byte(message))
}

const clientQueueSize = 64

type logClient struct {
	conn *websocket.Conn
	send chan []byte
}

type logHub struct {
	mu      sync.Mutex
	clients map[*logClient]bool
}

var logs = &logHub{clients: map[*logClient]bool{}}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// messages for a client whose queue is full are dropped
func (h *logHub) broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- message:
		default:
		}
	}
}

func (h *logHub) register(c *logClient) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *logHub) unregister(c *logClient) {
	h.mu.Lock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *logHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("log sink: upgrade failed:", err)
		return
	}

	c := &logClient{conn: conn, send: make(chan []byte, clientQueueSize)}
	h.register(c)

	go func() {
		for message := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// the sink is write only, reading just detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
}

// LogHandler returns the websocket endpoint of the log sink.
func LogHandler() http.Handler {
	return logs
}

// LogSubscribers returns the number of connected log clients.
func LogSubscribers() int {
	logs.mu.Lock()
	defer logs.mu.Unlock()
	return len(logs.clients)
}

// ServeLogs exposes the log sink on addr under /log.
func ServeLogs(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/log", LogHandler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Printf("log sink: could not listen on %s: %v", addr, err)
		}
	}()
}
