package realtime

import (
	"encoding/json"
	"time"

	"glamour-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const ordersChannel = "orders_changed"

// StartOrderListener subscribes to the Postgres NOTIFY channel the
// orders trigger writes to and feeds every notification into the hub.
// It reconnects on its own; the feed is fire-and-forget.
func StartOrderListener(dsn string, hub *Hub) error {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.L().Warn("orders listener event", zap.Error(err))
			}
		})

	if err := listener.Listen(ordersChannel); err != nil {
		return err
	}

	go run(listener, hub)
	return nil
}

func run(listener *pq.Listener, hub *Hub) {
	for {
		select {
		case n := <-listener.Notify:
			if n == nil {
				// Connection was re-established; listeners may have
				// missed events, which is fine: clients re-fetch.
				continue
			}

			var ev Event
			if err := json.Unmarshal([]byte(n.Extra), &ev); err != nil {
				logger.L().Warn("malformed order notification",
					zap.String("payload", n.Extra),
					zap.Error(err),
				)
				continue
			}
			hub.Broadcast(ev)

		case <-time.After(90 * time.Second):
			go listener.Ping()
		}
	}
}
