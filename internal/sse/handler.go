package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wrecklessracks/racks/internal/logger"
)

// Handler streams hub events. ?types= is a comma-separated filter and ?account_id= adds
// that account's private events to the public feed.
func Handler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		var types []string
		for _, t := range strings.Split(r.URL.Query().Get(QueryTypes), ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		accountID := r.URL.Query().Get(QueryAccount)

		log := logger.FromContext(r.Context())
		client := hub.Register(types, accountID)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "types", types, "account_id", accountID)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(e Event) bool {
			msg, err := FormatMessage(e)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				return false
			}
			flusher.Flush()
			return true
		}

		hello := Event{
			ID:        uuid.NewString(),
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   map[string]interface{}{"client_id": client.ID, "types": types, "account_id": accountID},
		}
		if !write(hello) {
			return
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case e, ok := <-client.Events:
				if !ok {
					return
				}
				if !write(e) {
					return
				}
			case <-ticker.C:
				if _, err := w.Write([]byte(": " + EventTypeKeepalive + "\n\n")); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}
