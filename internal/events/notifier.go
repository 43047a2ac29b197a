// Package events delivers catalogue change notifications to in-process
// subscribers over a watermill Go channel pub/sub.
//
// Delivery is broadcast: every subscriber receives every change published
// after it subscribed. Nothing is persisted; a subscriber that is not
// listening misses the change and is expected to re-query on its next
// notification.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicBooksChanged carries one message per committed book mutation.
const TopicBooksChanged = "books.changed"

type ChangeKind string

const (
	ChangeCreated ChangeKind = "created"
	ChangeUpdated ChangeKind = "updated"
	ChangeDeleted ChangeKind = "deleted"
)

// Change describes a committed mutation of a single book.
type Change struct {
	Kind   ChangeKind `json:"kind"`
	BookID uint       `json:"book_id"`
	At     time.Time  `json:"at"`
}

// Notifier publishes and fans out book changes.
type Notifier struct {
	pubsub *gochannel.GoChannel

	closeOnce sync.Once
	closeErr  error
}

// NewNotifier creates a notifier. Publish returns once every subscriber has
// taken the change, which keeps delivery in publish order.
func NewNotifier() *Notifier {
	return &Notifier{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer:            64,
				BlockPublishUntilSubscriberAck: true,
			},
			watermill.NewStdLogger(false, false),
		),
	}
}

// Publish broadcasts a change to all current subscribers.
func (n *Notifier) Publish(change Change) error {
	if change.At.IsZero() {
		change.At = time.Now().UTC()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := n.pubsub.Publish(TopicBooksChanged, msg); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Subscribe returns a channel of changes that is closed when ctx is done or
// the notifier is closed. When the subscriber falls more than a buffer behind,
// further changes are dropped until it catches up; the changes still queued
// are enough to trigger a re-query.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan Change, error) {
	messages, err := n.pubsub.Subscribe(ctx, TopicBooksChanged)
	if err != nil {
		return nil, fmt.Errorf("subscribe to %s: %w", TopicBooksChanged, err)
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		for msg := range messages {
			var change Change
			if err := json.Unmarshal(msg.Payload, &change); err != nil {
				log.Printf("[EVENTS] dropping malformed change %s: %v", msg.UUID, err)
				msg.Ack()
				continue
			}
			msg.Ack()

			select {
			case out <- change:
			case <-ctx.Done():
				return
			default:
				log.Printf("[EVENTS] subscriber lagging, dropped %s of book %d", change.Kind, change.BookID)
			}
		}
	}()

	return out, nil
}

// Close stops delivery and closes every subscriber channel. Calls after the
// first return the first result.
func (n *Notifier) Close() error {
	n.closeOnce.Do(func() {
		n.closeErr = n.pubsub.Close()
	})
	return n.closeErr
}
