package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yeremiapane/restaurant-reservations/floor"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

const relayBatchSize = 100

type Broadcaster interface {
	Broadcast(msg floor.Message)
}

// EventRelay polls the outbox and fans each committed event out to the floor
// screens and the message broker. Delivery is at least once.
type EventRelay struct {
	DB        *gorm.DB
	Hub       Broadcaster
	Publisher EventPublisher
	Interval  time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

func NewEventRelay(db *gorm.DB, hub Broadcaster, publisher EventPublisher) *EventRelay {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &EventRelay{
		DB:        db,
		Hub:       hub,
		Publisher: publisher,
		Interval:  time.Second,
		stopChan:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (r *EventRelay) Start() {
	if !r.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := r.ProcessPending(context.Background()); err != nil {
					utils.ErrorLogger.Printf("event relay: %v", err)
				}
			case <-r.stopChan:
				return
			}
		}
	}()
}

// Stop ends the polling loop and waits for the current batch.
func (r *EventRelay) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
		if r.started.Load() {
			<-r.done
		}
	})
}

// ProcessPending relays one batch of unprocessed events in creation order
// and returns how many were marked processed. No transaction is held while
// publishing, so a slow broker never blocks reservation writes. An event is
// marked only after it was published; a crash in between resends it.
func (r *EventRelay) ProcessPending(ctx context.Context) (int, error) {
	var events []models.ReservationEvent
	if err := r.DB.WithContext(ctx).
		Where("processed = ?", false).
		Order("id ASC").
		Limit(relayBatchSize).
		Find(&events).Error; err != nil {
		return 0, fmt.Errorf("fetch events: %w", err)
	}

	processed := 0
	for _, event := range events {
		if err := r.Publisher.Publish(ctx, event); err != nil {
			// retried on the next tick together with everything after it
			utils.ErrorLogger.Printf("publish event %s: %v", event.EventID, err)
			break
		}

		res := r.DB.WithContext(ctx).Model(&models.ReservationEvent{}).
			Where("id = ? AND processed = ?", event.ID, false).
			Update("processed", true)
		if res.Error != nil {
			return processed, fmt.Errorf("mark event %d processed: %w", event.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			// another relay got there first
			continue
		}
		if r.Hub != nil {
			r.Hub.Broadcast(floor.Message{Event: event.EventType, Data: json.RawMessage(event.Payload)})
		}
		processed++
	}

	if processed > 0 {
		utils.InfoLogger.Debugf("Relayed %d events", processed)
	}
	return processed, nil
}
