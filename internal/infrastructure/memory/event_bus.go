package memory

import (
	"context"
	"sync"

	"auction-core/internal/domain"
	"auction-core/pkg/logger"
)

// EventBus fans auction events out to in-process subscribers. Delivery is
// asynchronous so a slow handler never stalls the publisher.
type EventBus struct {
	mu     sync.RWMutex
	subs   map[int]chan *domain.AuctionEvent
	nextID int
	buffer int
	log    logger.Logger
}

func NewEventBus(buffer int, log logger.Logger) *EventBus {
	if buffer <= 0 {
		buffer = 64
	}
	return &EventBus{
		subs:   make(map[int]chan *domain.AuctionEvent),
		buffer: buffer,
		log:    log,
	}
}

func (b *EventBus) PublishAuctionEvent(ctx context.Context, event *domain.AuctionEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subs {
		copied := *event
		select {
		case ch <- &copied:
		case <-ctx.Done():
			return ctx.Err()
		default:
			b.log.Warn("Dropping event for slow subscriber", "subscriber", id,
				"type", event.Type, "auction_id", event.AuctionID)
		}
	}
	return nil
}

// SubscribeToAuctionEvents blocks, calling handler for each event, until ctx
// is cancelled.
func (b *EventBus) SubscribeToAuctionEvents(ctx context.Context, handler domain.EventHandler) error {
	ch := make(chan *domain.AuctionEvent, b.buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()

	b.log.Info("Subscribed to auction events", "subscriber", id)

	for {
		select {
		case event := <-ch:
			if err := handler(event); err != nil {
				b.log.Error("Failed to handle event", "type", event.Type,
					"auction_id", event.AuctionID, "error", err)
			}
		case <-ctx.Done():
			b.log.Info("Event subscriber stopped", "subscriber", id)
			return ctx.Err()
		}
	}
}

// Subscribers reports how many handlers are currently attached.
func (b *EventBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
