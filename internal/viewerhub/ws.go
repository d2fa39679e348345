package viewerhub

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/banshee-data/groundlink/internal/monitoring"
)

// writeTimeout bounds a single websocket write so one dead connection cannot
// hold its pump goroutine forever.
const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The station binds to the operator's own network; viewers connect from
	// file:// dashboards as well as the served UI.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler returns an HTTP handler that upgrades the request to a websocket,
// subscribes it to the hub, and streams every published event to it as a
// JSON text message until the viewer disconnects.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			monitoring.Logf("viewerhub: websocket upgrade failed: %v", err)
			return
		}

		id, events := hub.Subscribe()
		defer hub.Unsubscribe(id)
		defer conn.Close()

		// Drain reads so close frames are processed; viewers do not send
		// data of their own. The done channel also unblocks the write loop
		// when the viewer goes away between publishes.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				payload, err := event.EncodeJSON()
				if err != nil {
					monitoring.Logf("viewerhub: cannot encode %s event: %v", event.Type, err)
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			}
		}
	}
}
