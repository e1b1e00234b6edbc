package bridge

import (
	"sync"

	"github.com/google/uuid"
)

// ChannelID identifies one connection to a runtime. The Bridge trusts exactly
// one ChannelID at a time; it acts as the capability token for inbound traffic.
type ChannelID string

// NewChannelID returns a fresh random channel ID.
func NewChannelID() ChannelID {
	return ChannelID(uuid.NewString())
}

// Channel is the outbound side of a runtime connection.
type Channel interface {
	// ID returns the channel identity.
	ID() ChannelID

	// Send queues an encoded message for delivery.
	// Must be non-blocking; delivery is best effort.
	Send(msg []byte)
}

// QueueChannel is a Channel backed by a buffered Go channel. The transport
// drains Outbox and writes each message to the connection.
type QueueChannel struct {
	id       ChannelID
	out      chan []byte
	done     chan struct{}
	doneOnce sync.Once
}

// NewQueueChannel creates a channel handle with the given outbox size.
func NewQueueChannel(id ChannelID, bufferSize int) *QueueChannel {
	if bufferSize < 1 {
		bufferSize = 16
	}
	return &QueueChannel{
		id:   id,
		out:  make(chan []byte, bufferSize),
		done: make(chan struct{}),
	}
}

// ID returns the channel identity.
func (c *QueueChannel) ID() ChannelID {
	return c.id
}

// Send queues a message. When the outbox is full the oldest message is
// dropped. Sends after Close are discarded.
func (c *QueueChannel) Send(msg []byte) {
	select {
	case <-c.done:
		return
	default:
	}

	select {
	case c.out <- msg:
	default:
		select {
		case <-c.out:
		default:
		}
		select {
		case c.out <- msg:
		default:
		}
	}
}

// Outbox returns the queue the transport drains.
func (c *QueueChannel) Outbox() <-chan []byte {
	return c.out
}

// Done returns a channel that closes when the handle is closed.
func (c *QueueChannel) Done() <-chan struct{} {
	return c.done
}

// Close marks the handle closed. Safe to call multiple times.
func (c *QueueChannel) Close() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

var _ Channel = (*QueueChannel)(nil)
